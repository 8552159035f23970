package card

import (
	"strconv"

	"go.uber.org/zap"

	apperrors "github.com/louisbranch/boardwalk/internal/platform/errors"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/bank"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/board"
	"github.com/louisbranch/boardwalk/internal/services/game/domain/player"
)

// Execute applies c's effect and returns the cards it produces. A debt the
// player cannot pay returns c itself followed by one contract per property
// the player owns, leaving balances untouched.
func Execute(ctx Context, c Card) ([]Card, error) {
	switch e := c.Effect.(type) {
	case NewTurn:
		return newTurn(ctx)
	case RollDice:
		return rollDice(ctx)
	case Move:
		return move(ctx, e)
	case MoveTo:
		return moveTo(ctx, e)
	case Arrival:
		return arrive(ctx, e)
	case Takeover:
		return takeover(ctx, e.Land)
	case Buy:
		return buy(ctx, e)
	case PayRent:
		return settle(ctx, c, func() (bank.Outcome, error) { return ctx.Pay(e.Owner, e.Amount) })
	case Gift:
		return settle(ctx, c, func() (bank.Outcome, error) { return ctx.Pay(e.Recipient, e.Amount) })
	case JailFine:
		return payJailFine(ctx, c, e)
	case Tax:
		return settle(ctx, c, func() (bank.Outcome, error) { return ctx.PayBank(e.Amount) })
	case Contract:
		return sell(ctx, e)
	case Fortune:
		return fortune(ctx, c, e)
	case TakeChance:
		return draw(ctx)
	case GoToJail:
		return goToJail(ctx)
	case SpawnGift:
		return spawnGift(ctx)
	case BuyOrTrade:
		return buyOrTrade(ctx, e)
	case Income:
		return nil, ctx.Deposit(e.Amount)
	case GoReward:
		return nil, ctx.Deposit(e.Amount)
	case EndTurn:
		return nil, ctx.EndTurn()
	case BirthdayParty:
		return party(ctx, e)
	default:
		return nil, apperrors.Derive(ErrUnknownEffect, map[string]string{"card": c.Name})
	}
}

func newTurn(ctx Context) ([]Card, error) {
	if ctx.Status() == player.StatusInJail {
		return []Card{JailFineCard(ctx.Board().JailFine()), EndTurnCard()}, nil
	}
	return []Card{RollDiceCard(), EndTurnCard()}, nil
}

func rollDice(ctx Context) ([]Card, error) {
	if ctx.Moved() {
		ctx.Logger().Debug("already moved this turn, dice not rolled", zap.String("player", string(ctx.Player())))
		return nil, nil
	}
	d1, d2 := ctx.RollDice()
	ctx.Logger().Info("rolled dice", zap.String("player", string(ctx.Player())), zap.Int("d1", d1), zap.Int("d2", d2))
	return []Card{MoveCard(d1 + d2)}, nil
}

func move(ctx Context, e Move) ([]Card, error) {
	if e.Distance <= 0 {
		return nil, apperrors.Derive(ErrInvalidCard, map[string]string{"reason": "move distance must be positive"})
	}
	path, err := ctx.Advance(e.Distance)
	if err != nil {
		return nil, err
	}
	target := path[len(path)-1]
	return crossed(ctx, path, target, ArrivalCard(target))
}

func moveTo(ctx Context, e MoveTo) ([]Card, error) {
	if _, err := ctx.Board().Land(e.Land); err != nil {
		return nil, err
	}
	return travel(ctx, e.Land, ArrivalCard(e.Land))
}

// travel walks forward to target and settles the crossed path.
func travel(ctx Context, target int, next Card) ([]Card, error) {
	path, err := ctx.MoveTo(target)
	if err != nil {
		return nil, err
	}
	return crossed(ctx, path, target, next)
}

// crossed pays the start reward once per START land on path, laps included,
// then queues next.
func crossed(ctx Context, path []int, target int, next Card) ([]Card, error) {
	ctx.MarkMoved()
	ctx.Logger().Info("moved",
		zap.String("player", string(ctx.Player())),
		zap.Int("land", target),
		zap.Int("steps", len(path)),
	)
	var out []Card
	for _, pos := range path {
		land, err := ctx.Board().Land(pos)
		if err != nil {
			return nil, err
		}
		if land.Type == board.LandStart {
			out = append(out, GoRewardCard(land.Amount))
		}
	}
	return append(out, next), nil
}

func arrive(ctx Context, e Arrival) ([]Card, error) {
	land, err := ctx.Board().Land(e.Land)
	if err != nil {
		return nil, err
	}
	switch land.Type {
	case board.LandProperty:
		owner, owned, err := ctx.OwnerOf(land.ID)
		if err != nil {
			return nil, err
		}
		switch {
		case !owned:
			return []Card{BuyCard(land.ID, land.Price)}, nil
		case owner == ctx.Player():
			return nil, nil
		default:
			return []Card{PayRentCard(owner, land.ID, rent(ctx, land, owner))}, nil
		}
	case board.LandGoToJail:
		return []Card{GoToJailCard()}, nil
	case board.LandChance:
		return draw(ctx)
	case board.LandTax:
		return []Card{TaxCard(land.Amount)}, nil
	default:
		return nil, nil
	}
}

// rent doubles when owner holds the whole colour group of land.
func rent(ctx Context, land board.Land, owner player.ID) int {
	if land.Group == "" {
		return land.Rent
	}
	for _, id := range ctx.Board().Group(land.Group) {
		o, owned, err := ctx.OwnerOf(id)
		if err != nil || !owned || o != owner {
			return land.Rent
		}
	}
	return land.Rent * 2
}

func takeover(ctx Context, landID int) ([]Card, error) {
	land, err := ctx.Board().Land(landID)
	if err != nil {
		return nil, err
	}
	if land.Type != board.LandProperty {
		return arrive(ctx, Arrival{Land: landID})
	}
	owner, owned, err := ctx.OwnerOf(landID)
	if err != nil {
		return nil, err
	}
	if owned && owner == ctx.Player() {
		return nil, nil
	}
	var outcome bank.Outcome
	if owned {
		outcome, err = ctx.Pay(owner, land.Price)
	} else {
		outcome, err = ctx.PayBank(land.Price)
	}
	if err != nil {
		return nil, err
	}
	if !outcome.OK() {
		ctx.Logger().Info("cannot afford takeover", zap.String("player", string(ctx.Player())), zap.Int("land", landID))
		return nil, nil
	}
	return nil, ctx.Acquire(landID)
}

func buy(ctx Context, e Buy) ([]Card, error) {
	_, owned, err := ctx.OwnerOf(e.Land)
	if err != nil {
		return nil, err
	}
	if owned {
		ctx.Logger().Info("property already owned, purchase skipped", zap.Int("land", e.Land))
		return nil, nil
	}
	outcome, err := ctx.PayBank(e.Price)
	if err != nil {
		return nil, err
	}
	if !outcome.OK() {
		ctx.Logger().Info("cannot afford property", zap.String("player", string(ctx.Player())), zap.Int("land", e.Land))
		return nil, nil
	}
	return nil, ctx.Acquire(e.Land)
}

func settle(ctx Context, c Card, pay func() (bank.Outcome, error)) ([]Card, error) {
	outcome, err := pay()
	if err != nil {
		return nil, err
	}
	if outcome.OK() {
		return nil, nil
	}
	return liquidate(ctx, c)
}

func liquidate(ctx Context, c Card) ([]Card, error) {
	owned := ctx.Properties()
	ctx.Logger().Info("insufficient funds, offering properties for sale",
		zap.String("player", string(ctx.Player())),
		zap.String("card", c.Name),
		zap.Int("properties", len(owned)),
	)
	out := make([]Card, 0, len(owned)+1)
	out = append(out, c)
	for _, id := range owned {
		land, err := ctx.Board().Land(id)
		if err != nil {
			return nil, err
		}
		out = append(out, ContractCard(id, land.Price))
	}
	return out, nil
}

func payJailFine(ctx Context, c Card, e JailFine) ([]Card, error) {
	out, err := settle(ctx, c, func() (bank.Outcome, error) { return ctx.PayBank(e.Amount) })
	if err != nil || len(out) > 0 {
		return out, err
	}
	if err := ctx.SetStatus(player.StatusInGame); err != nil {
		return nil, err
	}
	return []Card{RollDiceCard()}, nil
}

func sell(ctx Context, e Contract) ([]Card, error) {
	owner, owned, err := ctx.OwnerOf(e.Land)
	if err != nil {
		return nil, err
	}
	if !owned || owner != ctx.Player() {
		ctx.Logger().Info("contract no longer applies", zap.Int("land", e.Land))
		return nil, nil
	}
	if err := ctx.Release(e.Land); err != nil {
		return nil, err
	}
	return nil, ctx.Deposit(e.Price)
}

func draw(ctx Context) ([]Card, error) {
	c, err := ctx.DrawChance()
	if err != nil {
		return nil, err
	}
	return []Card{c}, nil
}

func fortune(ctx Context, c Card, f Fortune) ([]Card, error) {
	if err := ctx.ReturnChance(c); err != nil {
		return nil, err
	}
	switch f.Chance {
	case ChanceAdvanceToStart:
		return []Card{MoveToCard(ctx.Board().Start())}, nil
	case ChanceAdvanceTo:
		return []Card{MoveToCard(f.Land)}, nil
	case ChanceOptionalAdvanceTo:
		return []Card{OptionMoveToCard(f.Land)}, nil
	case ChanceMove:
		return []Card{MoveCard(f.Distance)}, nil
	case ChanceOptionalMove:
		return []Card{OptionMoveCard(f.Distance)}, nil
	case ChanceGoToJail:
		return []Card{GoToJailCard()}, nil
	case ChanceIncome:
		return []Card{IncomeCard(f.Amount)}, nil
	case ChanceTax:
		return []Card{TaxCard(f.Amount)}, nil
	case ChanceBirthday:
		return []Card{BirthdayPartyCard(f.Amount)}, nil
	case ChancePayEachPlayer:
		var out []Card
		for _, id := range ctx.Opponents() {
			out = append(out, GiftCard(id, f.Amount))
		}
		return out, nil
	case ChanceGift:
		return []Card{SpawnGiftCard()}, nil
	case ChanceDrawAgain:
		return []Card{TakeChanceCard()}, nil
	default:
		return nil, apperrors.Derive(ErrUnknownEffect, map[string]string{"chance": strconv.Itoa(int(f.Chance))})
	}
}

func goToJail(ctx Context) ([]Card, error) {
	if err := ctx.Teleport(ctx.Board().Jail()); err != nil {
		return nil, err
	}
	if err := ctx.SetStatus(player.StatusInJail); err != nil {
		return nil, err
	}
	ctx.MarkMoved()
	dropped := ctx.DropPending(func(p Card) bool {
		switch p.Action {
		case ActionRollDice, ActionMove, ActionMoveTo, ActionArrival:
			return true
		default:
			return false
		}
	})
	ctx.Logger().Info("sent to jail", zap.String("player", string(ctx.Player())), zap.Int("dropped", len(dropped)))
	return nil, nil
}

func spawnGift(ctx Context) ([]Card, error) {
	lands := ctx.FreeProperties()
	if len(lands) == 0 {
		for _, id := range ctx.Board().Properties() {
			owner, owned, err := ctx.OwnerOf(id)
			if err != nil {
				return nil, err
			}
			if owned && owner != ctx.Player() {
				lands = append(lands, id)
			}
		}
	}
	out := make([]Card, 0, len(lands))
	for _, id := range lands {
		out = append(out, BuyOrTradeCard(id))
	}
	return out, nil
}

func buyOrTrade(ctx Context, e BuyOrTrade) ([]Card, error) {
	ctx.DropPending(func(p Card) bool {
		_, sibling := p.Effect.(BuyOrTrade)
		return sibling
	})
	if _, err := ctx.Board().Land(e.Land); err != nil {
		return nil, err
	}
	return travel(ctx, e.Land, TakeoverCard(e.Land))
}

func party(ctx Context, e BirthdayParty) ([]Card, error) {
	for _, guest := range ctx.Opponents() {
		outcome, err := ctx.Collect(guest, e.Amount)
		if err != nil {
			return nil, err
		}
		if !outcome.OK() {
			ctx.Logger().Info("guest cannot pay birthday present", zap.String("guest", string(guest)))
		}
	}
	return nil, nil
}
