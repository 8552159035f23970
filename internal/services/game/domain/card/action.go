package card

// Action names the kind of work a card performs.
type Action int

const (
	ActionNewTurn Action = iota + 1
	ActionRollDice
	ActionMove
	ActionMoveTo
	ActionArrival
	ActionBuy
	ActionDebt
	ActionTax
	ActionContract
	ActionGoToJail
	ActionChance
	ActionIncome
	ActionEndTurn
	ActionGift
	ActionParty
)

// Actions lists every action in declaration order.
func Actions() []Action {
	return []Action{
		ActionNewTurn, ActionRollDice, ActionMove, ActionMoveTo, ActionArrival,
		ActionBuy, ActionDebt, ActionTax, ActionContract, ActionGoToJail,
		ActionChance, ActionIncome, ActionEndTurn, ActionGift, ActionParty,
	}
}

func (a Action) String() string {
	switch a {
	case ActionNewTurn:
		return "NEW_TURN"
	case ActionRollDice:
		return "ROLL_DICE"
	case ActionMove:
		return "MOVE"
	case ActionMoveTo:
		return "MOVE_TO"
	case ActionArrival:
		return "ARRIVAL"
	case ActionBuy:
		return "BUY"
	case ActionDebt:
		return "DEBT"
	case ActionTax:
		return "TAX"
	case ActionContract:
		return "CONTRACT"
	case ActionGoToJail:
		return "GO_TO_JAIL"
	case ActionChance:
		return "CHANCE"
	case ActionIncome:
		return "INCOME"
	case ActionEndTurn:
		return "END_TURN"
	case ActionGift:
		return "GIFT"
	case ActionParty:
		return "PARTY"
	default:
		return "UNKNOWN"
	}
}

// Kind decides whether the engine runs a card on its own or asks the player.
type Kind int

const (
	KindOptional Kind = iota + 1
	KindObligation
	KindChance
	KindKeepable
	KindContract
)

// Mandatory reports whether the engine executes the card without asking.
func (k Kind) Mandatory() bool {
	return k == KindObligation || k == KindChance
}

// Persistent reports whether the card stays in hand across turns.
func (k Kind) Persistent() bool {
	return k == KindKeepable || k == KindContract
}

func (k Kind) String() string {
	switch k {
	case KindOptional:
		return "OPTIONAL"
	case KindObligation:
		return "OBLIGATION"
	case KindChance:
		return "CHANCE"
	case KindKeepable:
		return "KEEPABLE"
	case KindContract:
		return "CONTRACT"
	default:
		return "UNKNOWN"
	}
}

// Priority bands. Lower values run first.
const (
	PriorityHigh    = 0
	PriorityNewTurn = 100
	PriorityDefault = 1000
	PriorityLow     = 10000
)
