// Package card defines action cards, the unit of work of a turn.
//
// A card couples scheduling data (action, kind, priority) with an Effect, a
// closed set of variant payloads. Execute dispatches on the variant and
// returns the follow-up cards the engine must queue.
package card

import (
	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
)

var (
	// ErrInvalidCard indicates a card whose action, kind and variant do not
	// belong together, or whose payload is out of range.
	ErrInvalidCard = apperrors.New(apperrors.CodeInvalidCard, "invalid card")
	// ErrUnknownEffect indicates a card with no known variant.
	ErrUnknownEffect = apperrors.New(apperrors.CodeUnknownEffect, "unknown card effect")
)

// Card is one unit of pending work.
type Card struct {
	Name     string
	Action   Action
	Kind     Kind
	Priority int
	Effect   Effect
}

// Equal compares cards by value, ignoring priority.
func (c Card) Equal(o Card) bool {
	return c.Name == o.Name &&
		c.Action == o.Action &&
		c.Kind == o.Kind &&
		c.Effect == o.Effect
}

func (c Card) String() string {
	return c.Name
}

// Mandatory reports whether the engine runs the card without asking.
func (c Card) Mandatory() bool {
	return c.Kind.Mandatory()
}

// New builds a card after checking the variant against the action and kind
// it is allowed to carry.
func New(name string, action Action, kind Kind, priority int, effect Effect) (Card, error) {
	c := Card{Name: name, Action: action, Kind: kind, Priority: priority, Effect: effect}
	if err := Validate(c); err != nil {
		return Card{}, err
	}
	return c, nil
}

// Validate checks c against the action/variant/kind table.
func Validate(c Card) error {
	if c.Effect == nil {
		return invalid(c, "missing effect")
	}
	action, kinds, ok := rules(c.Effect)
	if !ok {
		return apperrors.Derive(ErrUnknownEffect, map[string]string{"card": c.Name})
	}
	if action != c.Action {
		return invalid(c, "variant does not belong to action "+c.Action.String())
	}
	allowed := false
	for _, k := range kinds {
		if k == c.Kind {
			allowed = true
			break
		}
	}
	if !allowed {
		return invalid(c, "kind "+c.Kind.String()+" not allowed")
	}
	if reason := checkPayload(c.Effect); reason != "" {
		return invalid(c, reason)
	}
	return nil
}

func invalid(c Card, reason string) error {
	return apperrors.Derive(ErrInvalidCard, map[string]string{"card": c.Name, "reason": reason})
}

var (
	obligation = []Kind{KindObligation}
	chanceOnly = []Kind{KindChance}
	optional   = []Kind{KindOptional}
	either     = []Kind{KindObligation, KindOptional}
)

// rules is the closed mapping from variant to its action and permitted kinds.
func rules(e Effect) (Action, []Kind, bool) {
	switch e.(type) {
	case NewTurn:
		return ActionNewTurn, obligation, true
	case RollDice:
		return ActionRollDice, obligation, true
	case Move:
		return ActionMove, either, true
	case MoveTo:
		return ActionMoveTo, either, true
	case Arrival, Takeover:
		return ActionArrival, obligation, true
	case Buy:
		return ActionBuy, optional, true
	case PayRent, Gift, JailFine:
		return ActionDebt, obligation, true
	case Tax:
		return ActionTax, obligation, true
	case Contract:
		return ActionContract, []Kind{KindContract}, true
	case GoToJail:
		return ActionGoToJail, obligation, true
	case Fortune, TakeChance:
		return ActionChance, chanceOnly, true
	case Income, GoReward:
		return ActionIncome, obligation, true
	case EndTurn:
		return ActionEndTurn, obligation, true
	case SpawnGift:
		return ActionGift, obligation, true
	case BuyOrTrade:
		return ActionGift, []Kind{KindKeepable, KindOptional}, true
	case BirthdayParty:
		return ActionParty, obligation, true
	default:
		return 0, nil, false
	}
}

func checkPayload(e Effect) string {
	switch v := e.(type) {
	case Move:
		if v.Distance <= 0 {
			return "move distance must be positive"
		}
	case Buy:
		if v.Price < 0 {
			return "negative price"
		}
	case PayRent:
		if v.Amount < 0 || v.Owner == "" {
			return "rent needs an owner and a non-negative amount"
		}
	case Gift:
		if v.Amount < 0 || v.Recipient == "" {
			return "gift needs a recipient and a non-negative amount"
		}
	case JailFine:
		if v.Amount < 0 {
			return "negative fine"
		}
	case Tax:
		if v.Amount < 0 {
			return "negative tax"
		}
	case Income:
		if v.Amount < 0 {
			return "negative income"
		}
	case GoReward:
		if v.Amount < 0 {
			return "negative reward"
		}
	case BirthdayParty:
		if v.Amount < 0 {
			return "negative party amount"
		}
	case Contract:
		if v.Price < 0 {
			return "negative sale price"
		}
	}
	return ""
}

func build(name string, action Action, kind Kind, priority int, effect Effect) Card {
	c, err := New(name, action, kind, priority, effect)
	if err != nil {
		// Unreachable for canonical constructors with valid payloads.
		panic(err)
	}
	return c
}
