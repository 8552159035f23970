package card

import (
	"fmt"

	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
)

// Effect is the variant payload of a card. The set of variants is closed:
// only types in this package implement it.
type Effect interface {
	effect()
}

// NewTurn opens a turn.
type NewTurn struct{}

// RollDice rolls two dice and moves by their sum.
type RollDice struct{}

// Move advances the player Distance lands.
type Move struct{ Distance int }

// MoveTo advances the player to Land.
type MoveTo struct{ Land int }

// Arrival resolves landing on Land.
type Arrival struct{ Land int }

// Takeover acquires Land at its price, from the bank or from its owner.
type Takeover struct{ Land int }

// Buy purchases a free Land from the bank.
type Buy struct {
	Land  int
	Price int
}

// PayRent pays Owner the rent due for Land.
type PayRent struct {
	Owner  player.ID
	Land   int
	Amount int
}

// Gift pays Amount to another player.
type Gift struct {
	Recipient player.ID
	Amount    int
}

// JailFine pays the bank to leave jail.
type JailFine struct{ Amount int }

// Tax pays Amount to the bank.
type Tax struct{ Amount int }

// Contract sells Land back to the bank for Price.
type Contract struct {
	Land  int
	Price int
}

// Fortune is a chance card drawn from the pile. Serial tells apart copies of
// the same chance in one deck.
type Fortune struct {
	Serial   int
	Chance   Chance
	Land     int
	Amount   int
	Distance int
}

// TakeChance draws the top card of the chance pile.
type TakeChance struct{}

// GoToJail sends the player to jail.
type GoToJail struct{}

// SpawnGift offers a choice of properties to jump to.
type SpawnGift struct{}

// BuyOrTrade jumps to Land and takes it over.
type BuyOrTrade struct{ Land int }

// Income credits Amount from the bank.
type Income struct{ Amount int }

// GoReward credits the reward for crossing a START land.
type GoReward struct{ Amount int }

// EndTurn closes the turn.
type EndTurn struct{}

// BirthdayParty collects Amount from every other player.
type BirthdayParty struct{ Amount int }

func (NewTurn) effect()       {}
func (RollDice) effect()      {}
func (Move) effect()          {}
func (MoveTo) effect()        {}
func (Arrival) effect()       {}
func (Takeover) effect()      {}
func (Buy) effect()           {}
func (PayRent) effect()       {}
func (Gift) effect()          {}
func (JailFine) effect()      {}
func (Tax) effect()           {}
func (Contract) effect()      {}
func (Fortune) effect()       {}
func (TakeChance) effect()    {}
func (GoToJail) effect()      {}
func (SpawnGift) effect()     {}
func (BuyOrTrade) effect()    {}
func (Income) effect()        {}
func (GoReward) effect()      {}
func (EndTurn) effect()       {}
func (BirthdayParty) effect() {}

// NewTurnCard opens a turn.
func NewTurnCard() Card {
	return build("New turn", ActionNewTurn, KindObligation, PriorityNewTurn, NewTurn{})
}

// RollDiceCard rolls the dice and moves the player.
func RollDiceCard() Card {
	return build("Roll dice", ActionRollDice, KindObligation, PriorityDefault, RollDice{})
}

// MoveCard moves the player distance lands forward.
func MoveCard(distance int) Card {
	return build(fmt.Sprintf("Move %d", distance), ActionMove, KindObligation, PriorityDefault, Move{Distance: distance})
}

// OptionMoveCard is a move the player may decline.
func OptionMoveCard(distance int) Card {
	return build(fmt.Sprintf("Option to move %d", distance), ActionMove, KindOptional, PriorityDefault, Move{Distance: distance})
}

// MoveToCard walks the player forward to land.
func MoveToCard(land int) Card {
	return build(fmt.Sprintf("Move to %d", land), ActionMoveTo, KindObligation, PriorityDefault, MoveTo{Land: land})
}

// OptionMoveToCard is a jump the player may decline.
func OptionMoveToCard(land int) Card {
	return build(fmt.Sprintf("Option to move to %d", land), ActionMoveTo, KindOptional, PriorityDefault, MoveTo{Land: land})
}

// ArrivalCard resolves landing on land.
func ArrivalCard(land int) Card {
	return build(fmt.Sprintf("Arrive at %d", land), ActionArrival, KindObligation, PriorityDefault, Arrival{Land: land})
}

// TakeoverCard acquires land from the bank or its owner.
func TakeoverCard(land int) Card {
	return build(fmt.Sprintf("Take over %d", land), ActionArrival, KindObligation, PriorityDefault, Takeover{Land: land})
}

// BuyCard offers to buy a free land from the bank.
func BuyCard(land, price int) Card {
	return build(fmt.Sprintf("Buy %d", land), ActionBuy, KindOptional, PriorityDefault, Buy{Land: land, Price: price})
}

// PayRentCard owes owner the rent for land.
func PayRentCard(owner player.ID, land, amount int) Card {
	return build(fmt.Sprintf("Pay rent %d to %s", amount, owner), ActionDebt, KindObligation, PriorityDefault,
		PayRent{Owner: owner, Land: land, Amount: amount})
}

// GiftCard owes amount to recipient.
func GiftCard(recipient player.ID, amount int) Card {
	return build(fmt.Sprintf("Give %d to %s", amount, recipient), ActionDebt, KindObligation, PriorityDefault,
		Gift{Recipient: recipient, Amount: amount})
}

// JailFineCard pays the bank to leave jail.
func JailFineCard(amount int) Card {
	return build(fmt.Sprintf("Jail fine %d", amount), ActionDebt, KindObligation, PriorityDefault, JailFine{Amount: amount})
}

// TaxCard owes amount to the bank.
func TaxCard(amount int) Card {
	return build(fmt.Sprintf("Tax %d", amount), ActionTax, KindObligation, PriorityDefault, Tax{Amount: amount})
}

// ContractCard offers to sell land. It runs before the default band so a
// liquidation offer is seen before the debt that raised it is retried.
func ContractCard(land, price int) Card {
	return build(fmt.Sprintf("Sell %d", land), ActionContract, KindContract, PriorityHigh, Contract{Land: land, Price: price})
}

// FortuneCard wraps a chance effect drawn from the pile.
func FortuneCard(name string, f Fortune) Card {
	return build(name, ActionChance, KindChance, PriorityDefault, f)
}

// TakeChanceCard draws from the chance pile.
func TakeChanceCard() Card {
	return build("Take a chance card", ActionChance, KindChance, PriorityDefault, TakeChance{})
}

// GoToJailCard sends the player to jail.
func GoToJailCard() Card {
	return build("Go to jail", ActionGoToJail, KindObligation, PriorityDefault, GoToJail{})
}

// SpawnGiftCard offers free properties to jump to.
func SpawnGiftCard() Card {
	return build("Gift", ActionGift, KindObligation, PriorityHigh, SpawnGift{})
}

// BuyOrTradeCard is kept across turns until used.
func BuyOrTradeCard(land int) Card {
	return build(fmt.Sprintf("Jump to %d and take it", land), ActionGift, KindKeepable, PriorityHigh, BuyOrTrade{Land: land})
}

// IncomeCard credits amount from the bank.
func IncomeCard(amount int) Card {
	return build(fmt.Sprintf("Income %d", amount), ActionIncome, KindObligation, PriorityHigh, Income{Amount: amount})
}

// GoRewardCard pays the reward for crossing a START land.
func GoRewardCard(amount int) Card {
	return build(fmt.Sprintf("Start reward %d", amount), ActionIncome, KindObligation, PriorityHigh, GoReward{Amount: amount})
}

// EndTurnCard closes the turn.
func EndTurnCard() Card {
	return build("End turn", ActionEndTurn, KindObligation, PriorityLow, EndTurn{})
}

// BirthdayPartyCard collects amount from every other player.
func BirthdayPartyCard(amount int) Card {
	return build(fmt.Sprintf("Birthday party %d", amount), ActionParty, KindObligation, PriorityDefault, BirthdayParty{Amount: amount})
}

// Debt returns the amount a debt or tax card demands.
func (c Card) Debt() (int, bool) {
	switch v := c.Effect.(type) {
	case PayRent:
		return v.Amount, true
	case Gift:
		return v.Amount, true
	case JailFine:
		return v.Amount, true
	case Tax:
		return v.Amount, true
	default:
		return 0, false
	}
}

// Land returns the land a card refers to, if any.
func (c Card) Land() (int, bool) {
	switch v := c.Effect.(type) {
	case MoveTo:
		return v.Land, true
	case Arrival:
		return v.Land, true
	case Takeover:
		return v.Land, true
	case Buy:
		return v.Land, true
	case PayRent:
		return v.Land, true
	case Contract:
		return v.Land, true
	case BuyOrTrade:
		return v.Land, true
	default:
		return 0, false
	}
}
