// Package board describes the ring of lands players move around and resolves
// the paths they cross.
package board

import (
	"strconv"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
)

// LandType classifies what happens on a land.
type LandType string

const (
	LandStart    LandType = "start"
	LandProperty LandType = "property"
	LandChance   LandType = "chance"
	LandTax      LandType = "tax"
	LandJail     LandType = "jail"
	LandGoToJail LandType = "go_to_jail"
	LandParking  LandType = "parking"
)

func (t LandType) valid() bool {
	switch t {
	case LandStart, LandProperty, LandChance, LandTax, LandJail, LandGoToJail, LandParking:
		return true
	default:
		return false
	}
}

// Land is one square of the board.
type Land struct {
	ID    int
	Name  string
	Type  LandType
	Group string
	Price int
	Rent  int
	// Amount is the reward on START lands and the levy on TAX lands.
	Amount int
}

var (
	// ErrUnknownLand indicates a position outside the board.
	ErrUnknownLand = apperrors.New(apperrors.CodeUnknownLand, "unknown land")
	// ErrInvalidBoard indicates a board definition that cannot be played.
	ErrInvalidBoard = apperrors.New(apperrors.CodeInvalidBoard, "invalid board")
)

// Board is an immutable ring of lands.
type Board struct {
	name     string
	lands    []Land
	jail     int
	jailFine int
	groups   map[string][]int
}

// New validates lands and builds a board.
func New(name string, lands []Land, jailFine int) (*Board, error) {
	if len(lands) == 0 {
		return nil, invalid("board has no lands")
	}
	if jailFine < 0 {
		return nil, invalid("jail fine must not be negative")
	}
	b := &Board{
		name:     name,
		lands:    make([]Land, len(lands)),
		jail:     -1,
		jailFine: jailFine,
		groups:   make(map[string][]int),
	}
	starts := 0
	for i, land := range lands {
		land.ID = i
		if !land.Type.valid() {
			return nil, invalid("land " + strconv.Itoa(i) + " has unknown type " + string(land.Type))
		}
		switch land.Type {
		case LandStart:
			starts++
		case LandJail:
			if b.jail != -1 {
				return nil, invalid("board has more than one jail")
			}
			b.jail = i
		case LandProperty:
			if land.Price <= 0 || land.Rent <= 0 {
				return nil, invalid("property " + strconv.Itoa(i) + " needs a positive price and rent")
			}
			if land.Group != "" {
				b.groups[land.Group] = append(b.groups[land.Group], i)
			}
		}
		if land.Amount < 0 {
			return nil, invalid("land " + strconv.Itoa(i) + " has a negative amount")
		}
		b.lands[i] = land
	}
	if starts == 0 {
		return nil, invalid("board has no start land")
	}
	if b.jail == -1 {
		return nil, invalid("board has no jail")
	}
	return b, nil
}

func invalid(reason string) error {
	return apperrors.Derive(ErrInvalidBoard, map[string]string{"reason": reason})
}

// Name returns the board's display name.
func (b *Board) Name() string { return b.name }

// Size returns the number of lands.
func (b *Board) Size() int { return len(b.lands) }

// Jail returns the jail position.
func (b *Board) Jail() int { return b.jail }

// JailFine returns the cost of leaving jail.
func (b *Board) JailFine() int { return b.jailFine }

// Land returns the land at pos.
func (b *Board) Land(pos int) (Land, error) {
	if pos < 0 || pos >= len(b.lands) {
		return Land{}, apperrors.Derive(ErrUnknownLand, map[string]string{"land": strconv.Itoa(pos)})
	}
	return b.lands[pos], nil
}

// Lands returns a copy of every land in board order.
func (b *Board) Lands() []Land {
	return append([]Land(nil), b.lands...)
}

// Start returns the first START land.
func (b *Board) Start() int {
	for _, land := range b.lands {
		if land.Type == LandStart {
			return land.ID
		}
	}
	return 0
}

// Properties returns every ownable land id in board order.
func (b *Board) Properties() []int {
	var ids []int
	for _, land := range b.lands {
		if land.Type == LandProperty {
			ids = append(ids, land.ID)
		}
	}
	return ids
}

// Group returns the property ids sharing a colour group.
func (b *Board) Group(name string) []int {
	return append([]int(nil), b.groups[name]...)
}
