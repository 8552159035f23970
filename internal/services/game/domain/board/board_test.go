package board

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func ringBoard(t *testing.T, size int) *Board {
	t.Helper()
	lands := make([]Land, size)
	lands[0] = Land{Name: "Start", Type: LandStart, Amount: 200}
	lands[1] = Land{Name: "Jail", Type: LandJail}
	for i := 2; i < size; i++ {
		lands[i] = Land{Name: "Lot", Type: LandProperty, Price: 100, Rent: 10}
	}
	b, err := New("ring", lands, 50)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	return b
}

func TestPathWrapsAroundStart(t *testing.T) {
	t.Parallel()
	b := ringBoard(t, 40)

	tests := []struct {
		name     string
		start    int
		distance int
		want     []int
	}{
		{name: "forward", start: 3, distance: 2, want: []int{4, 5}},
		{name: "wrap", start: 38, distance: 5, want: []int{39, 0, 1, 2, 3}},
		{name: "land on start", start: 37, distance: 3, want: []int{38, 39, 0}},
		{name: "zero", start: 5, distance: 0, want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := b.Path(tc.start, tc.distance)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Path(%d, %d) = %v, want %v", tc.start, tc.distance, got, tc.want)
			}
		})
	}
}

func TestPathToStartCrossingCounts(t *testing.T) {
	t.Parallel()
	b := ringBoard(t, 40)

	path := b.PathTo(38, 3)
	if !reflect.DeepEqual(path, []int{39, 0, 1, 2, 3}) {
		t.Fatalf("PathTo(38, 3) = %v", path)
	}
	if got := b.PathTo(7, 7); len(got) != 0 {
		t.Fatalf("PathTo(same) = %v, want empty", got)
	}
	if got := b.PathTo(5, 2); len(got) != 37 || got[len(got)-1] != 2 {
		t.Fatalf("PathTo backwards target should go around, got %d lands", len(got))
	}
	if b.Next(39, 1) != 0 {
		t.Fatalf("Next(39, 1) = %d", b.Next(39, 1))
	}
}

func TestLandUnknown(t *testing.T) {
	t.Parallel()
	b := ringBoard(t, 10)
	for _, pos := range []int{-1, 10} {
		if _, err := b.Land(pos); !errors.Is(err, ErrUnknownLand) {
			t.Fatalf("Land(%d) error = %v", pos, err)
		}
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		lands []Land
	}{
		{name: "empty", lands: nil},
		{name: "no start", lands: []Land{{Type: LandJail}}},
		{name: "no jail", lands: []Land{{Type: LandStart}}},
		{name: "two jails", lands: []Land{{Type: LandStart}, {Type: LandJail}, {Type: LandJail}}},
		{name: "free property", lands: []Land{{Type: LandStart}, {Type: LandJail}, {Type: LandProperty, Rent: 1}}},
		{name: "bad type", lands: []Land{{Type: LandStart}, {Type: LandJail}, {Type: "casino"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New("bad", tc.lands, 0); !errors.Is(err, ErrInvalidBoard) {
				t.Fatalf("New() error = %v, want %v", err, ErrInvalidBoard)
			}
		})
	}
}

func TestClassicBoard(t *testing.T) {
	t.Parallel()
	b, specs, err := Classic()
	if err != nil {
		t.Fatalf("classic: %v", err)
	}
	if b.Size() != 40 {
		t.Fatalf("Size() = %d, want 40", b.Size())
	}
	if b.Jail() != 10 || b.JailFine() != 50 || b.Start() != 0 {
		t.Fatalf("jail=%d fine=%d start=%d", b.Jail(), b.JailFine(), b.Start())
	}
	if got := len(b.Properties()); got != 28 {
		t.Fatalf("properties = %d, want 28", got)
	}
	if got := b.Group("brown"); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("Group(brown) = %v", got)
	}
	land, err := b.Land(30)
	if err != nil || land.Type != LandGoToJail {
		t.Fatalf("Land(30) = %+v, %v", land, err)
	}
	if len(specs) != 16 {
		t.Fatalf("chance specs = %d, want 16", len(specs))
	}
	if specs[1].Kind != "advance_to" || specs[1].Params.Land != 24 {
		t.Fatalf("specs[1] = %+v", specs[1])
	}
}

func TestLoadDecodesWeaklyTypedParams(t *testing.T) {
	t.Parallel()
	src := `
name: Tiny
jail_fine: 20
lands:
  - {name: Start, type: Start, amount: 100}
  - {name: Jail, type: jail}
  - {name: Lot, type: property, price: 50, rent: 5}
chance:
  - {kind: income, params: {amount: "75"}}
`
	b, specs, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Name() != "Tiny" || b.Size() != 3 {
		t.Fatalf("board = %s/%d", b.Name(), b.Size())
	}
	if len(specs) != 1 || specs[0].Params.Amount != 75 {
		t.Fatalf("specs = %+v", specs)
	}
}

func TestLoadRejectsUnknownParams(t *testing.T) {
	t.Parallel()
	src := `
name: Tiny
lands:
  - {name: Start, type: start}
  - {name: Jail, type: jail}
chance:
  - {kind: income, params: {amonut: 75}}
`
	if _, _, err := Load(strings.NewReader(src)); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("Load() error = %v, want %v", err, ErrInvalidBoard)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	src := "name: Tiny\nsize: 3\n"
	if _, _, err := Load(strings.NewReader(src)); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("Load() error = %v, want %v", err, ErrInvalidBoard)
	}
}

func TestPathCountsFullLaps(t *testing.T) {
	t.Parallel()
	b := ringBoard(t, 4)

	tests := []struct {
		distance int
		last     int
		starts   int
	}{
		{distance: 4, last: 2, starts: 1},
		{distance: 5, last: 3, starts: 1},
		{distance: 9, last: 3, starts: 2},
	}
	for _, tc := range tests {
		path := b.Path(2, tc.distance)
		if len(path) != tc.distance || path[len(path)-1] != tc.last {
			t.Fatalf("Path(2, %d) = %v", tc.distance, path)
		}
		starts := 0
		for _, pos := range path {
			if pos == 0 {
				starts++
			}
		}
		if starts != tc.starts {
			t.Fatalf("Path(2, %d) crosses start %d times, want %d", tc.distance, starts, tc.starts)
		}
	}
}

func TestLoadRejectsChanceLandsWithoutDeck(t *testing.T) {
	t.Parallel()
	src := `
name: Tiny
lands:
  - {name: Start, type: start, amount: 100}
  - {name: Jail, type: jail}
  - {name: Chance, type: chance}
`
	if _, _, err := Load(strings.NewReader(src)); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("Load() error = %v, want %v", err, ErrInvalidBoard)
	}
	if b := ringBoard(t, 4); b.HasType(LandChance) {
		t.Fatal("ring board has no chance land")
	}
}
