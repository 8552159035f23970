package turn

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/louisbranch/boardwalk/internal/platform/logging"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/bank"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/board"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/card"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/chance"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/property"
)

// Roller rolls the pair of dice used for movement.
type Roller interface {
	Pair() (int, int)
}

// Deps are the shared registries a turn reads and mutates.
type Deps struct {
	Board      *board.Board
	Bank       *bank.Ledger
	Properties *property.Registry
	Chance     *chance.Pile
	Players    *player.Roster
	Dice       Roller
	Logger     *zap.Logger
	// Observer, when set, sees every step after it is applied.
	Observer func(Step)
}

func (d Deps) validate() error {
	switch {
	case d.Board == nil:
		return errors.New("board is required")
	case d.Bank == nil:
		return errors.New("bank is required")
	case d.Properties == nil:
		return errors.New("property registry is required")
	case d.Chance == nil:
		return errors.New("chance pile is required")
	case d.Players == nil:
		return errors.New("roster is required")
	case d.Dice == nil:
		return errors.New("dice are required")
	}
	return nil
}

// State is the phase a turn is in.
type State int

const (
	StateNotStarted State = iota + 1
	// StateResolving means an obligation or chance card is pending.
	StateResolving
	// StateAwaitingChoice means only cards needing a decision remain.
	StateAwaitingChoice
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateResolving:
		return "resolving"
	case StateAwaitingChoice:
		return "awaiting_choice"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

type entry struct {
	card card.Card
	seq  uint64
}

// Turn is the work queue of one player's turn.
type Turn struct {
	deps     Deps
	player   player.ID
	logger   *zap.Logger
	hand     []entry
	seq      uint64
	declined map[uint64]bool
	deferred map[uint64]bool
	moved    bool
	finished bool
	steps    int
}

// New opens a turn for id holding the cards carried over from earlier turns.
func New(deps Deps, id player.ID, held []card.Card) (*Turn, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	status, err := deps.Players.Status(id)
	if err != nil {
		return nil, err
	}
	if status.Final() {
		return nil, ErrTurnFinished
	}
	t := &Turn{
		deps:     deps,
		player:   id,
		logger:   logging.OrNop(deps.Logger).Named("turn").With(zap.String("player", string(id))),
		declined: make(map[uint64]bool),
		deferred: make(map[uint64]bool),
	}
	if err := t.Add(held...); err != nil {
		return nil, err
	}
	return t, nil
}

// Player returns whose turn this is.
func (t *Turn) Player() player.ID { return t.player }

// Board returns the board being played.
func (t *Turn) Board() *board.Board { return t.deps.Board }

// Balance returns the player's cash.
func (t *Turn) Balance() int {
	balance, _ := t.deps.Bank.Balance(t.player)
	return balance
}

// Position returns the player's land.
func (t *Turn) Position() int {
	pos, _ := t.deps.Players.Position(t.player)
	return pos
}

// Status returns the player's standing.
func (t *Turn) Status() player.Status {
	status, _ := t.deps.Players.Status(t.player)
	return status
}

// Properties returns the lands the player owns.
func (t *Turn) Properties() []int {
	return t.deps.Properties.PropertiesOf(t.player)
}

// OwnerOf returns the owner of a property land.
func (t *Turn) OwnerOf(land int) (player.ID, bool, error) {
	return t.deps.Properties.OwnerOf(land)
}

// Moved reports whether the player already moved this turn.
func (t *Turn) Moved() bool { return t.moved }

// Steps returns how many steps have run.
func (t *Turn) Steps() int { return t.steps }

// Finished reports whether the turn is over.
func (t *Turn) Finished() bool { return t.finished }

// State reports the turn phase.
func (t *Turn) State() State {
	switch {
	case t.finished:
		return StateFinished
	case t.steps == 0:
		return StateNotStarted
	case t.hasMandatory():
		return StateResolving
	default:
		return StateAwaitingChoice
	}
}

// Add queues cards. A keepable or contract card equal to one already held is
// not queued twice.
func (t *Turn) Add(cards ...card.Card) error {
	if t.finished {
		return ErrTurnFinished
	}
	for _, c := range cards {
		if err := card.Validate(c); err != nil {
			return err
		}
		t.push(c)
	}
	return nil
}

// push queues c and reports whether it was added.
func (t *Turn) push(c card.Card) bool {
	if c.Kind.Persistent() && t.find(c) != -1 {
		return false
	}
	t.seq++
	t.hand = append(t.hand, entry{card: c, seq: t.seq})
	return true
}

// Pending returns the held cards in execution order.
func (t *Turn) Pending() []card.Card {
	ordered := t.ordered()
	out := make([]card.Card, len(ordered))
	for i, e := range ordered {
		out[i] = e.card
	}
	return out
}

// Holds reports whether c is in hand.
func (t *Turn) Holds(c card.Card) bool {
	return t.find(c) != -1
}

// Next returns the card the next Step will act on.
func (t *Turn) Next() (card.Card, bool) {
	e, ok := t.next()
	return e.card, ok
}

// Kept returns the keepable and contract cards the player carries into the
// next turn.
func (t *Turn) Kept() []card.Card {
	var kept []card.Card
	for _, e := range t.ordered() {
		if e.card.Kind.Persistent() {
			kept = append(kept, e.card)
		}
	}
	return kept
}

// Abandon finishes the turn without checking obligations and hands back the
// cards still held, split into persistent cards and drawn chance cards.
func (t *Turn) Abandon() (kept, drawn []card.Card) {
	for _, e := range t.ordered() {
		switch {
		case e.card.Kind.Persistent():
			kept = append(kept, e.card)
		case isFortune(e.card):
			drawn = append(drawn, e.card)
		}
	}
	t.hand = nil
	t.finished = true
	t.logger.Info("turn abandoned", zap.Int("kept", len(kept)), zap.Int("chance", len(drawn)))
	return kept, drawn
}

func isFortune(c card.Card) bool {
	_, ok := c.Effect.(card.Fortune)
	return ok
}

func (t *Turn) ordered() []entry {
	out := append([]entry(nil), t.hand...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].card.Priority != out[j].card.Priority {
			return out[i].card.Priority < out[j].card.Priority
		}
		return out[i].seq < out[j].seq
	})
	return out
}

func (t *Turn) next() (entry, bool) {
	for _, e := range t.ordered() {
		if e.card.Mandatory() || (!t.declined[e.seq] && !t.deferred[e.seq]) {
			return e, true
		}
	}
	return entry{}, false
}

func (t *Turn) find(c card.Card) int {
	for i, e := range t.hand {
		if e.card.Equal(c) {
			return i
		}
	}
	return -1
}

func (t *Turn) remove(seq uint64) {
	for i, e := range t.hand {
		if e.seq == seq {
			t.hand = append(t.hand[:i], t.hand[i+1:]...)
			delete(t.declined, seq)
			delete(t.deferred, seq)
			return
		}
	}
}

// hasMandatory reports pending obligations other than the closing EndTurn.
func (t *Turn) hasMandatory() bool {
	return len(t.obligations()) > 0
}

func (t *Turn) obligations() []card.Card {
	var out []card.Card
	for _, e := range t.ordered() {
		if e.card.Mandatory() && e.card.Action != card.ActionEndTurn {
			out = append(out, e.card)
		}
	}
	return out
}

func (t *Turn) hasOffer() bool {
	for _, e := range t.hand {
		if !e.card.Mandatory() && !t.declined[e.seq] {
			return true
		}
	}
	return false
}
