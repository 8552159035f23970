package turn

import "github.com/louisbranch/boardwalk/internal/services/game/domain/card"

// Decision is a player's answer to an offered card.
type Decision int

const (
	// DecisionAccept executes the card now.
	DecisionAccept Decision = iota + 1
	// DecisionDecline drops an optional card. Keepable and contract cards stay
	// in hand but are not offered again this turn.
	DecisionDecline
	// DecisionDefer skips the card until another card executes.
	DecisionDefer
)

func (d Decision) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionDecline:
		return "decline"
	case DecisionDefer:
		return "defer"
	default:
		return "unknown"
	}
}

// Chooser answers for a player when the engine offers a non-mandatory card.
type Chooser interface {
	Choose(t *Turn, c card.Card) (Decision, error)
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func(t *Turn, c card.Card) (Decision, error)

// Choose calls f.
func (f ChooserFunc) Choose(t *Turn, c card.Card) (Decision, error) {
	return f(t, c)
}
