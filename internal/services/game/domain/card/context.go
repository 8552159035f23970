package card

import (
	"go.uber.org/zap"

	"github.com/louisbranch/boardwalk/internal/services/game/domain/bank"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/board"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
)

// Context is everything a card may read or change while it executes. It is
// scoped to the player whose turn is running.
type Context interface {
	Player() player.ID
	// Opponents lists the other players still in the game, in seat order.
	Opponents() []player.ID
	Board() *board.Board
	Logger() *zap.Logger

	Position() int
	// MoveTo walks forward to land and returns the lands crossed, excluding
	// the starting land and including land.
	MoveTo(land int) ([]int, error)
	// Advance walks distance lands forward and returns every land crossed,
	// full laps included. The last entry is the new position.
	Advance(distance int) ([]int, error)
	// Teleport places the player on land without crossing anything.
	Teleport(land int) error
	Moved() bool
	MarkMoved()
	RollDice() (int, int)

	Status() player.Status
	SetStatus(status player.Status) error

	Balance() int
	Deposit(amount int) error
	PayBank(amount int) (bank.Outcome, error)
	Pay(to player.ID, amount int) (bank.Outcome, error)
	Collect(from player.ID, amount int) (bank.Outcome, error)

	OwnerOf(land int) (player.ID, bool, error)
	Acquire(land int) error
	Release(land int) error
	Properties() []int
	FreeProperties() []int

	DrawChance() (Card, error)
	ReturnChance(c Card) error

	// DropPending removes queued cards matching match and returns them.
	DropPending(match func(Card) bool) []Card
	EndTurn() error
}
