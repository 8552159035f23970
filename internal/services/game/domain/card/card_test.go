package card

import (
	"errors"
	"testing"
)

func TestNewEnforcesActionKindTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		action  Action
		kind    Kind
		effect  Effect
		wantErr error
	}{
		{name: "new turn", action: ActionNewTurn, kind: KindObligation, effect: NewTurn{}},
		{name: "optional move", action: ActionMove, kind: KindOptional, effect: Move{Distance: 2}},
		{name: "takeover under arrival", action: ActionArrival, kind: KindObligation, effect: Takeover{Land: 1}},
		{name: "jail fine is a debt", action: ActionDebt, kind: KindObligation, effect: JailFine{Amount: 50}},
		{name: "keepable gift", action: ActionGift, kind: KindKeepable, effect: BuyOrTrade{Land: 3}},
		{name: "contract kind", action: ActionContract, kind: KindContract, effect: Contract{Land: 3, Price: 80}},
		{name: "wrong action", action: ActionBuy, kind: KindObligation, effect: Tax{Amount: 1}, wantErr: ErrInvalidCard},
		{name: "mandatory buy", action: ActionBuy, kind: KindObligation, effect: Buy{Land: 1, Price: 10}, wantErr: ErrInvalidCard},
		{name: "optional tax", action: ActionTax, kind: KindOptional, effect: Tax{Amount: 1}, wantErr: ErrInvalidCard},
		{name: "keepable contract", action: ActionContract, kind: KindKeepable, effect: Contract{Land: 1}, wantErr: ErrInvalidCard},
		{name: "zero move", action: ActionMove, kind: KindObligation, effect: Move{}, wantErr: ErrInvalidCard},
		{name: "negative tax", action: ActionTax, kind: KindObligation, effect: Tax{Amount: -1}, wantErr: ErrInvalidCard},
		{name: "rent without owner", action: ActionDebt, kind: KindObligation, effect: PayRent{Amount: 5}, wantErr: ErrInvalidCard},
		{name: "missing effect", action: ActionEndTurn, kind: KindObligation, effect: nil, wantErr: ErrInvalidCard},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tc.name, tc.action, tc.kind, PriorityDefault, tc.effect)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("New() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestEveryActionHasAVariant(t *testing.T) {
	t.Parallel()
	samples := []Card{
		NewTurnCard(), RollDiceCard(), MoveCard(1), OptionMoveCard(1), MoveToCard(1),
		OptionMoveToCard(1), ArrivalCard(1), TakeoverCard(1), BuyCard(1, 1),
		PayRentCard("bob", 1, 1), GiftCard("bob", 1), JailFineCard(1), TaxCard(1),
		ContractCard(1, 1), FortuneCard("f", Fortune{Chance: ChanceIncome}), TakeChanceCard(),
		GoToJailCard(), SpawnGiftCard(), BuyOrTradeCard(1), IncomeCard(1), GoRewardCard(1),
		EndTurnCard(), BirthdayPartyCard(1),
	}
	seen := map[Action]bool{}
	for _, c := range samples {
		if err := Validate(c); err != nil {
			t.Fatalf("Validate(%s) = %v", c.Name, err)
		}
		seen[c.Action] = true
	}
	for _, a := range Actions() {
		if !seen[a] {
			t.Fatalf("action %s has no variant", a)
		}
	}
}

func TestEqualIgnoresPriority(t *testing.T) {
	t.Parallel()
	a := ContractCard(3, 80)
	b := a
	b.Priority = PriorityLow
	if !a.Equal(b) {
		t.Fatal("expected cards differing only by priority to be equal")
	}
	if a.Equal(ContractCard(4, 80)) {
		t.Fatal("expected different lands to differ")
	}
	f1 := FortuneCard("Dividend", Fortune{Serial: 1, Chance: ChanceIncome, Amount: 50})
	f2 := FortuneCard("Dividend", Fortune{Serial: 2, Chance: ChanceIncome, Amount: 50})
	if f1.Equal(f2) {
		t.Fatal("expected deck copies to differ by serial")
	}
}

func TestKinds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		kind       Kind
		mandatory  bool
		persistent bool
	}{
		{KindOptional, false, false},
		{KindObligation, true, false},
		{KindChance, true, false},
		{KindKeepable, false, true},
		{KindContract, false, true},
	}
	for _, tc := range tests {
		if tc.kind.Mandatory() != tc.mandatory || tc.kind.Persistent() != tc.persistent {
			t.Fatalf("%s: mandatory=%v persistent=%v", tc.kind, tc.kind.Mandatory(), tc.kind.Persistent())
		}
	}
}

func TestCardAccessors(t *testing.T) {
	t.Parallel()
	if amount, ok := TaxCard(75).Debt(); !ok || amount != 75 {
		t.Fatalf("Debt() = %d, %v", amount, ok)
	}
	if _, ok := BuyCard(1, 60).Debt(); ok {
		t.Fatal("buy is not a debt")
	}
	if land, ok := ContractCard(9, 140).Land(); !ok || land != 9 {
		t.Fatalf("Land() = %d, %v", land, ok)
	}
	if _, ok := EndTurnCard().Land(); ok {
		t.Fatal("end turn has no land")
	}
}

func TestParseChance(t *testing.T) {
	t.Parallel()
	for c := ChanceAdvanceToStart; c <= ChanceDrawAgain; c++ {
		got, ok := ParseChance(c.String())
		if !ok || got != c {
			t.Fatalf("ParseChance(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseChance("lottery"); ok {
		t.Fatal("expected unknown chance")
	}
}
