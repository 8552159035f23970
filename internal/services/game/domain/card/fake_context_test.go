package card

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/bank"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/board"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
)

var errFakePileEmpty = apperrors.New(apperrors.CodeChancePileEmpty, "chance pile is empty")

// fakeContext is a minimal in-memory Context for exercising single cards.
type fakeContext struct {
	me        player.ID
	opponents []player.ID
	b         *board.Board
	position  int
	status    player.Status
	moved     bool
	dice      [2]int
	balances  map[player.ID]int
	owners    map[int]player.ID
	strays    []int
	pile      []Card
	returned  []Card
	pending   []Card
	ended     bool
}

func newFakeContext(t *testing.T) *fakeContext {
	t.Helper()
	return &fakeContext{
		me:        "alice",
		opponents: []player.ID{"bob", "carol"},
		b:         testBoard(t),
		status:    player.StatusInGame,
		dice:      [2]int{3, 4},
		balances:  map[player.ID]int{"alice": 1000, "bob": 1000, "carol": 1000},
		owners:    map[int]player.ID{},
	}
}

// testBoard is a 12-land ring:
// 0 start, 1 lot(a), 2 chance, 3 lot(a), 4 tax, 5 jail, 6 lot(b), 7 parking,
// 8 go to jail, 9 lot(b), 10 lot, 11 chance.
func testBoard(t *testing.T) *board.Board {
	t.Helper()
	lands := []board.Land{
		{Name: "Start", Type: board.LandStart, Amount: 200},
		{Name: "A1", Type: board.LandProperty, Group: "a", Price: 60, Rent: 5},
		{Name: "Chance", Type: board.LandChance},
		{Name: "A2", Type: board.LandProperty, Group: "a", Price: 80, Rent: 7},
		{Name: "Tax", Type: board.LandTax, Amount: 100},
		{Name: "Jail", Type: board.LandJail},
		{Name: "B1", Type: board.LandProperty, Group: "b", Price: 120, Rent: 10},
		{Name: "Parking", Type: board.LandParking},
		{Name: "Go To Jail", Type: board.LandGoToJail},
		{Name: "B2", Type: board.LandProperty, Group: "b", Price: 140, Rent: 12},
		{Name: "Lone", Type: board.LandProperty, Price: 200, Rent: 20},
		{Name: "Chance", Type: board.LandChance},
	}
	b, err := board.New("test", lands, 50)
	if err != nil {
		t.Fatalf("test board: %v", err)
	}
	return b
}

func (f *fakeContext) Player() player.ID      { return f.me }
func (f *fakeContext) Opponents() []player.ID { return f.opponents }
func (f *fakeContext) Board() *board.Board    { return f.b }
func (f *fakeContext) Logger() *zap.Logger    { return zap.NewNop() }
func (f *fakeContext) Position() int          { return f.position }

func (f *fakeContext) MoveTo(land int) ([]int, error) {
	if _, err := f.b.Land(land); err != nil {
		return nil, err
	}
	path := f.b.PathTo(f.position, land)
	f.position = land
	return path, nil
}

func (f *fakeContext) Advance(distance int) ([]int, error) {
	path := f.b.Path(f.position, distance)
	if len(path) == 0 {
		return nil, errors.New("distance must be positive")
	}
	f.position = path[len(path)-1]
	return path, nil
}

func (f *fakeContext) Teleport(land int) error {
	f.position = land
	return nil
}

func (f *fakeContext) Moved() bool          { return f.moved }
func (f *fakeContext) MarkMoved()           { f.moved = true }
func (f *fakeContext) RollDice() (int, int) { return f.dice[0], f.dice[1] }

func (f *fakeContext) Status() player.Status { return f.status }
func (f *fakeContext) SetStatus(s player.Status) error {
	f.status = s
	return nil
}

func (f *fakeContext) Balance() int { return f.balances[f.me] }

func (f *fakeContext) Deposit(amount int) error {
	f.balances[f.me] += amount
	return nil
}

func (f *fakeContext) PayBank(amount int) (bank.Outcome, error) {
	if f.balances[f.me] < amount {
		return bank.OutcomeInsufficientFunds, nil
	}
	f.balances[f.me] -= amount
	return bank.OutcomeApplied, nil
}

func (f *fakeContext) Pay(to player.ID, amount int) (bank.Outcome, error) {
	return f.transfer(f.me, to, amount)
}

func (f *fakeContext) Collect(from player.ID, amount int) (bank.Outcome, error) {
	return f.transfer(from, f.me, amount)
}

func (f *fakeContext) transfer(from, to player.ID, amount int) (bank.Outcome, error) {
	if f.balances[from] < amount {
		return bank.OutcomeInsufficientFunds, nil
	}
	f.balances[from] -= amount
	f.balances[to] += amount
	return bank.OutcomeApplied, nil
}

func (f *fakeContext) OwnerOf(land int) (player.ID, bool, error) {
	owner, ok := f.owners[land]
	return owner, ok, nil
}

func (f *fakeContext) Acquire(land int) error {
	f.owners[land] = f.me
	return nil
}

func (f *fakeContext) Release(land int) error {
	delete(f.owners, land)
	return nil
}

func (f *fakeContext) Properties() []int {
	var out []int
	for _, id := range f.b.Properties() {
		if f.owners[id] == f.me {
			out = append(out, id)
		}
	}
	return append(out, f.strays...)
}

func (f *fakeContext) FreeProperties() []int {
	var out []int
	for _, id := range f.b.Properties() {
		if _, ok := f.owners[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func (f *fakeContext) DrawChance() (Card, error) {
	if len(f.pile) == 0 {
		return Card{}, errFakePileEmpty
	}
	c := f.pile[0]
	f.pile = f.pile[1:]
	return c, nil
}

func (f *fakeContext) ReturnChance(c Card) error {
	if _, ok := c.Effect.(Fortune); !ok {
		return errors.New("not a fortune card")
	}
	f.returned = append(f.returned, c)
	return nil
}

func (f *fakeContext) DropPending(match func(Card) bool) []Card {
	var kept, dropped []Card
	for _, c := range f.pending {
		if match(c) {
			dropped = append(dropped, c)
		} else {
			kept = append(kept, c)
		}
	}
	f.pending = kept
	return dropped
}

func (f *fakeContext) EndTurn() error {
	f.ended = true
	return nil
}

var _ Context = (*fakeContext)(nil)
