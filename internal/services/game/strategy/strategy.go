// Package strategy provides the built-in choosers that answer the turn
// engine's offers on behalf of simulated players.
package strategy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/louisbranch/boardwalk/internal/services/game/domain/card"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/dice"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/turn"
)

// DefaultReserve is the cash Cautious keeps back.
const DefaultReserve = 200

const (
	NameGreedy   = "greedy"
	NameCautious = "cautious"
	NameRandom   = "random"
)

// Names lists the built-in chooser names.
func Names() []string {
	names := []string{NameGreedy, NameCautious, NameRandom}
	sort.Strings(names)
	return names
}

// ByName returns the built-in chooser called name. seed only matters for the
// random chooser.
func ByName(name string, seed int64) (turn.Chooser, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameGreedy:
		return Greedy{}, nil
	case NameCautious:
		return Cautious{Reserve: DefaultReserve}, nil
	case NameRandom:
		return NewRandom(seed), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (known: %s)", name, strings.Join(Names(), ", "))
	}
}

// Greedy buys whatever it can afford and sells only to cover a debt.
type Greedy struct{}

func (Greedy) Choose(t *turn.Turn, c card.Card) (turn.Decision, error) {
	switch e := c.Effect.(type) {
	case card.Buy:
		return acceptIf(t.Balance() >= e.Price), nil
	case card.Contract:
		return acceptIf(Shortfall(t) > 0), nil
	default:
		return turn.DecisionAccept, nil
	}
}

// Cautious keeps Reserve in cash. It never takes optional moves.
type Cautious struct {
	Reserve int
}

func (s Cautious) Choose(t *turn.Turn, c card.Card) (turn.Decision, error) {
	switch e := c.Effect.(type) {
	case card.Buy:
		return acceptIf(t.Balance()-e.Price >= s.Reserve), nil
	case card.BuyOrTrade:
		land, err := t.Board().Land(e.Land)
		if err != nil {
			return 0, err
		}
		return acceptIf(t.Balance()-land.Price >= s.Reserve), nil
	case card.Contract:
		return acceptIf(Shortfall(t) > 0), nil
	case card.Move, card.MoveTo:
		return turn.DecisionDecline, nil
	default:
		return turn.DecisionAccept, nil
	}
}

// Random flips a seeded coin for every offer except contracts, which it sells
// only to cover a debt.
type Random struct {
	dice *dice.Roller
}

// NewRandom returns a Random chooser seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{dice: dice.NewRoller(seed)}
}

func (r *Random) Choose(t *turn.Turn, c card.Card) (turn.Decision, error) {
	if _, ok := c.Effect.(card.Contract); ok {
		return acceptIf(Shortfall(t) > 0), nil
	}
	roll, err := r.dice.Roll(dice.DiceSpec{Sides: 2, Count: 1})
	if err != nil {
		return 0, err
	}
	return acceptIf(roll.Total == 1), nil
}

// Shortfall returns how much the pending debts exceed the player's cash.
func Shortfall(t *turn.Turn) int {
	owed := 0
	for _, c := range t.Pending() {
		if amount, ok := c.Debt(); ok {
			owed += amount
		}
	}
	if short := owed - t.Balance(); short > 0 {
		return short
	}
	return 0
}

func acceptIf(ok bool) turn.Decision {
	if ok {
		return turn.DecisionAccept
	}
	return turn.DecisionDecline
}

var (
	_ turn.Chooser = Greedy{}
	_ turn.Chooser = Cautious{}
	_ turn.Chooser = (*Random)(nil)
)
