package chance

import (
	"strconv"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/board"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/card"
)

// NewDeck turns board-file chance entries into fortune cards. Each entry gets
// its own serial so identical entries stay distinct cards.
func NewDeck(b *board.Board, specs []board.ChanceSpec) ([]card.Card, error) {
	if len(specs) == 0 && b.HasType(board.LandChance) {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidBoard, "chance lands need a chance deck",
			map[string]string{"board": b.Name()})
	}
	deck := make([]card.Card, 0, len(specs))
	for i, spec := range specs {
		which, ok := card.ParseChance(spec.Kind)
		if !ok {
			return nil, deckError(i, spec, "unknown chance kind")
		}
		f := card.Fortune{
			Serial:   i + 1,
			Chance:   which,
			Land:     spec.Params.Land,
			Amount:   spec.Params.Amount,
			Distance: spec.Params.Distance,
		}
		switch which {
		case card.ChanceAdvanceTo, card.ChanceOptionalAdvanceTo:
			if _, err := b.Land(f.Land); err != nil {
				return nil, deckError(i, spec, "land is not on the board")
			}
		case card.ChanceMove, card.ChanceOptionalMove:
			if f.Distance <= 0 {
				return nil, deckError(i, spec, "distance must be positive")
			}
		case card.ChanceIncome, card.ChanceTax, card.ChanceBirthday, card.ChancePayEachPlayer:
			if f.Amount < 0 {
				return nil, deckError(i, spec, "amount must not be negative")
			}
		}
		name := spec.Name
		if name == "" {
			name = which.String() + " #" + strconv.Itoa(f.Serial)
		}
		c, err := card.New(name, card.ActionChance, card.KindChance, card.PriorityDefault, f)
		if err != nil {
			return nil, err
		}
		deck = append(deck, c)
	}
	return deck, nil
}

func deckError(i int, spec board.ChanceSpec, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidBoard, "invalid chance entry", map[string]string{
		"entry":  strconv.Itoa(i),
		"kind":   spec.Kind,
		"reason": reason,
	})
}
