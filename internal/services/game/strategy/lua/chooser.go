// Package lua runs player strategies written in Lua.
//
// A script defines a global function
//
//	function choose(card, player) ... end
//
// that returns "accept", "decline" or "defer". card carries name, action,
// kind, and when they apply land, price and amount. player carries id,
// balance, position, status, shortfall and properties (an array of land ids).
package lua

import (
	"fmt"
	"strings"
	"sync"

	golua "github.com/Shopify/go-lua"

	"github.com/louisbranch/boardwalk/internal/services/game/domain/card"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/turn"
	"github.com/louisbranch/boardwalk/internal/services/game/strategy"
)

const entrypoint = "choose"

// Chooser answers offers by calling the script's choose function.
type Chooser struct {
	mu    sync.Mutex
	state *golua.State
}

// New compiles source and runs its top level.
func New(source string) (*Chooser, error) {
	return open(func(state *golua.State) error { return golua.LoadString(state, source) })
}

// Load compiles the script at path and runs its top level.
func Load(path string) (*Chooser, error) {
	return open(func(state *golua.State) error { return golua.LoadFile(state, path, "") })
}

func open(load func(*golua.State) error) (*Chooser, error) {
	state := golua.NewState()
	golua.OpenLibraries(state)
	if err := load(state); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	state.Global(entrypoint)
	defer state.Pop(1)
	if !state.IsFunction(-1) {
		return nil, fmt.Errorf("lua script must define a %s function", entrypoint)
	}
	return &Chooser{state: state}, nil
}

// Choose calls choose(card, player) and maps its answer to a decision.
func (c *Chooser) Choose(t *turn.Turn, cd card.Card) (turn.Decision, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.state
	top := state.Top()
	defer state.SetTop(top)

	state.Global(entrypoint)
	pushCard(state, cd)
	pushPlayer(state, t)
	if err := state.ProtectedCall(2, 1, 0); err != nil {
		return 0, fmt.Errorf("lua %s(%s): %w", entrypoint, cd.Name, err)
	}
	answer, ok := state.ToString(-1)
	if !ok {
		return 0, fmt.Errorf("lua %s(%s) returned %s, want a string", entrypoint, cd.Name, golua.TypeNameOf(state, -1))
	}
	return parseDecision(answer)
}

func parseDecision(answer string) (turn.Decision, error) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "accept":
		return turn.DecisionAccept, nil
	case "decline":
		return turn.DecisionDecline, nil
	case "defer":
		return turn.DecisionDefer, nil
	default:
		return 0, fmt.Errorf("unknown decision %q", answer)
	}
}

func pushCard(state *golua.State, c card.Card) {
	state.NewTable()
	setString(state, "name", c.Name)
	setString(state, "action", c.Action.String())
	setString(state, "kind", c.Kind.String())
	if land, ok := c.Land(); ok {
		setInt(state, "land", land)
	}
	switch e := c.Effect.(type) {
	case card.Buy:
		setInt(state, "price", e.Price)
	case card.Contract:
		setInt(state, "price", e.Price)
	}
	if amount, ok := c.Debt(); ok {
		setInt(state, "amount", amount)
	}
}

func pushPlayer(state *golua.State, t *turn.Turn) {
	state.NewTable()
	setString(state, "id", string(t.Player()))
	setInt(state, "balance", t.Balance())
	setInt(state, "position", t.Position())
	setString(state, "status", t.Status().String())
	setInt(state, "shortfall", strategy.Shortfall(t))
	state.NewTable()
	for i, land := range t.Properties() {
		state.PushInteger(land)
		state.RawSetInt(-2, i+1)
	}
	state.SetField(-2, "properties")
}

func setString(state *golua.State, key, value string) {
	state.PushString(value)
	state.SetField(-2, key)
}

func setInt(state *golua.State, key string, value int) {
	state.PushInteger(value)
	state.SetField(-2, key)
}

var _ turn.Chooser = (*Chooser)(nil)
