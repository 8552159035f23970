package card

import "strings"

// Chance identifies what a fortune card does once drawn.
type Chance int

const (
	ChanceAdvanceToStart Chance = iota + 1
	ChanceAdvanceTo
	ChanceOptionalAdvanceTo
	ChanceMove
	ChanceOptionalMove
	ChanceGoToJail
	ChanceIncome
	ChanceTax
	ChanceBirthday
	ChancePayEachPlayer
	ChanceGift
	ChanceDrawAgain
)

var chanceNames = map[Chance]string{
	ChanceAdvanceToStart:    "advance_to_start",
	ChanceAdvanceTo:         "advance_to",
	ChanceOptionalAdvanceTo: "optional_advance_to",
	ChanceMove:              "move",
	ChanceOptionalMove:      "optional_move",
	ChanceGoToJail:          "go_to_jail",
	ChanceIncome:            "income",
	ChanceTax:               "tax",
	ChanceBirthday:          "birthday",
	ChancePayEachPlayer:     "pay_each_player",
	ChanceGift:              "gift",
	ChanceDrawAgain:         "draw_again",
}

func (c Chance) String() string {
	if name, ok := chanceNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseChance maps a deck file kind to its Chance.
func ParseChance(name string) (Chance, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range chanceNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// Chance returns the chance identity of a fortune card.
func (c Card) Chance() (Chance, bool) {
	f, ok := c.Effect.(Fortune)
	if !ok {
		return 0, false
	}
	return f.Chance, true
}
