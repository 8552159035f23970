package turn

import (
	"go.uber.org/zap"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/bank"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/board"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/card"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
)

// cardContext is the view of the turn handed to executing cards.
type cardContext struct {
	t *Turn
}

func (c *cardContext) Player() player.ID   { return c.t.player }
func (c *cardContext) Board() *board.Board { return c.t.deps.Board }
func (c *cardContext) Logger() *zap.Logger { return c.t.logger }
func (c *cardContext) Position() int       { return c.t.Position() }
func (c *cardContext) Moved() bool         { return c.t.moved }
func (c *cardContext) MarkMoved()          { c.t.moved = true }

func (c *cardContext) Opponents() []player.ID {
	var out []player.ID
	for _, id := range c.t.deps.Players.Active() {
		if id != c.t.player {
			out = append(out, id)
		}
	}
	return out
}

func (c *cardContext) MoveTo(land int) ([]int, error) {
	if _, err := c.t.deps.Board.Land(land); err != nil {
		return nil, err
	}
	path := c.t.deps.Board.PathTo(c.t.Position(), land)
	if err := c.t.deps.Players.SetPosition(c.t.player, land); err != nil {
		return nil, err
	}
	return path, nil
}

func (c *cardContext) Advance(distance int) ([]int, error) {
	path := c.t.deps.Board.Path(c.t.Position(), distance)
	if len(path) == 0 {
		return nil, apperrors.Derive(card.ErrInvalidCard, map[string]string{"reason": "move distance must be positive"})
	}
	if err := c.t.deps.Players.SetPosition(c.t.player, path[len(path)-1]); err != nil {
		return nil, err
	}
	return path, nil
}

func (c *cardContext) Teleport(land int) error {
	if _, err := c.t.deps.Board.Land(land); err != nil {
		return err
	}
	return c.t.deps.Players.SetPosition(c.t.player, land)
}

func (c *cardContext) RollDice() (int, int) { return c.t.deps.Dice.Pair() }

func (c *cardContext) Status() player.Status { return c.t.Status() }

func (c *cardContext) SetStatus(status player.Status) error {
	return c.t.deps.Players.SetStatus(c.t.player, status)
}

func (c *cardContext) Balance() int { return c.t.Balance() }

func (c *cardContext) Deposit(amount int) error {
	return c.t.deps.Bank.Deposit(c.t.player, amount)
}

func (c *cardContext) PayBank(amount int) (bank.Outcome, error) {
	return c.t.deps.Bank.Withdraw(c.t.player, amount)
}

func (c *cardContext) Pay(to player.ID, amount int) (bank.Outcome, error) {
	return c.t.deps.Bank.Transfer(c.t.player, to, amount)
}

func (c *cardContext) Collect(from player.ID, amount int) (bank.Outcome, error) {
	return c.t.deps.Bank.Transfer(from, c.t.player, amount)
}

func (c *cardContext) OwnerOf(land int) (player.ID, bool, error) {
	return c.t.deps.Properties.OwnerOf(land)
}

func (c *cardContext) Acquire(land int) error {
	_, _, err := c.t.deps.Properties.Transfer(land, c.t.player)
	return err
}

func (c *cardContext) Release(land int) error {
	_, _, err := c.t.deps.Properties.Clear(land)
	return err
}

func (c *cardContext) Properties() []int { return c.t.Properties() }

func (c *cardContext) FreeProperties() []int { return c.t.deps.Properties.Free() }

func (c *cardContext) DrawChance() (card.Card, error) { return c.t.deps.Chance.Draw() }

func (c *cardContext) ReturnChance(drawn card.Card) error {
	return c.t.deps.Chance.ReturnToBack(drawn)
}

func (c *cardContext) DropPending(match func(card.Card) bool) []card.Card {
	var dropped []card.Card
	kept := c.t.hand[:0]
	for _, e := range c.t.hand {
		if match(e.card) {
			dropped = append(dropped, e.card)
			delete(c.t.declined, e.seq)
			delete(c.t.deferred, e.seq)
			continue
		}
		kept = append(kept, e)
	}
	c.t.hand = kept
	return dropped
}

func (c *cardContext) EndTurn() error { return c.t.EndTurn() }

var _ card.Context = (*cardContext)(nil)
