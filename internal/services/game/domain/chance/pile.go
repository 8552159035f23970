// Package chance holds the shared pile of fortune cards.
//
// A drawn card is outstanding until it comes back. At any moment the cards in
// the pile plus the outstanding ones make up the whole deck.
package chance

import (
	"strconv"

	"go.uber.org/zap"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
	"github.com/louisbranch/boardwalk/internal/platform/logging"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/card"
)

var (
	// ErrPileEmpty indicates a draw from an empty pile.
	ErrPileEmpty = apperrors.New(apperrors.CodeChancePileEmpty, "chance pile is empty")
	// ErrNotDrawn indicates a card returned without being drawn, or returned twice.
	ErrNotDrawn = apperrors.New(apperrors.CodeChanceNotDrawn, "chance card was not drawn")
	// ErrNotChance indicates a card that is not a fortune card.
	ErrNotChance = apperrors.New(apperrors.CodeNotAChanceCard, "not a chance card")
)

// Pile is a double-ended queue of fortune cards.
type Pile struct {
	cards       []card.Card
	outstanding []card.Card
	logger      *zap.Logger
}

// NewPile returns a pile holding deck in order, front first.
func NewPile(deck []card.Card, logger *zap.Logger) (*Pile, error) {
	p := &Pile{logger: logging.OrNop(logger).Named("chance")}
	for _, c := range deck {
		if err := checkFortune(c); err != nil {
			return nil, err
		}
		if p.index(p.cards, c) != -1 {
			return nil, apperrors.WithMetadata(apperrors.CodeInvalidCard, "duplicate chance card", map[string]string{"card": c.Name})
		}
		p.cards = append(p.cards, c)
	}
	return p, nil
}

// Len returns the number of cards in the pile.
func (p *Pile) Len() int { return len(p.cards) }

// Outstanding returns the number of drawn cards not yet returned.
func (p *Pile) Outstanding() int { return len(p.outstanding) }

// Cards returns the pile front first.
func (p *Pile) Cards() []card.Card {
	return append([]card.Card(nil), p.cards...)
}

// Draw removes and returns the front card.
func (p *Pile) Draw() (card.Card, error) {
	if len(p.cards) == 0 {
		return card.Card{}, ErrPileEmpty
	}
	c := p.cards[0]
	p.cards = p.cards[1:]
	p.outstanding = append(p.outstanding, c)
	p.logger.Debug("drew chance card", zap.String("card", c.Name), zap.Int("left", len(p.cards)))
	return c, nil
}

// ReturnToBack puts a drawn card at the back of the pile.
func (p *Pile) ReturnToBack(c card.Card) error {
	if err := p.settle(c); err != nil {
		return err
	}
	p.cards = append(p.cards, c)
	return nil
}

// ReturnToFront puts a drawn card at the front of the pile.
func (p *Pile) ReturnToFront(c card.Card) error {
	if err := p.settle(c); err != nil {
		return err
	}
	p.cards = append([]card.Card{c}, p.cards...)
	return nil
}

// BringToFront moves the first pile card of the given chance to the front.
// It reports false when no such card is in the pile.
func (p *Pile) BringToFront(which card.Chance) bool {
	for i, c := range p.cards {
		if got, ok := c.Chance(); ok && got == which {
			copy(p.cards[1:i+1], p.cards[:i])
			p.cards[0] = c
			return true
		}
	}
	return false
}

// Collect returns the fortune cards among held to the back of the pile and
// ignores the rest.
func (p *Pile) Collect(held []card.Card) error {
	for _, c := range held {
		if _, ok := c.Effect.(card.Fortune); !ok {
			continue
		}
		if err := p.ReturnToBack(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pile) settle(c card.Card) error {
	if err := checkFortune(c); err != nil {
		return err
	}
	i := p.index(p.outstanding, c)
	if i == -1 {
		return apperrors.Derive(ErrNotDrawn, map[string]string{"card": c.Name, "in_pile": strconv.FormatBool(p.index(p.cards, c) != -1)})
	}
	p.outstanding = append(p.outstanding[:i], p.outstanding[i+1:]...)
	return nil
}

func (p *Pile) index(cards []card.Card, c card.Card) int {
	for i, other := range cards {
		if other.Equal(c) {
			return i
		}
	}
	return -1
}

func checkFortune(c card.Card) error {
	if _, ok := c.Effect.(card.Fortune); !ok {
		return apperrors.Derive(ErrNotChance, map[string]string{"card": c.Name})
	}
	return nil
}
