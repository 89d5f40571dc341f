package crime

import (
	"context"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"astralrp.ru/economy-bot/internal/catalog"
	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/ledger"
)

// Service управляет кражами и преступлениями.
type Service struct {
	ledger  *ledger.Ledger
	catalog *catalog.Catalog
	rand    *rand.Rand
	now     func() time.Time
}

// NewService создаёт сервис преступлений.
func NewService(l *ledger.Ledger, cat *catalog.Catalog, rng *rand.Rand) *Service {
	return &Service{ledger: l, catalog: cat, rand: rng, now: time.Now}
}

// Crimes возвращает список доступных преступлений.
func (s *Service) Crimes() []*Definition {
	out := make([]*Definition, len(crimes))
	copy(out, crimes)
	return out
}

// Steal пытается украсть из кошелька жертвы. Банк жертвы недосягаем.
// Перезарядка стартует только с реальной попытки: отказ по недосягаемой
// жертве перезарядку не трогает.
func (s *Service) Steal(ctx context.Context, thiefID, targetID int64) (*StealResult, error) {
	if thiefID == targetID {
		return nil, common.ErrSelfTarget
	}

	var result *StealResult
	err := s.ledger.Update(ctx, func() error {
		now := s.now()
		thief := s.ledger.GetOrCreate(ctx, thiefID)
		target := s.ledger.GetOrCreate(ctx, targetID)

		if thief.LastTheft != nil && now.Sub(*thief.LastTheft) < StealCooldown {
			return common.NewCooldown(*thief.LastTheft, StealCooldown, now)
		}
		if target.Wallet < StealMinTargetWallet {
			return &common.NotEligibleError{Reason: "у жертвы слишком мало денег в кошельке"}
		}

		thief.LastTheft = &now

		if s.rand.Float64() > 0.5 {
			cap := target.Wallet
			if cap > StealCap {
				cap = StealCap
			}
			stolen := s.randRange(StealMin, cap)
			target.Wallet -= stolen
			thief.Wallet += stolen
			thief.Reputation -= StealSuccessRepPenalty
			result = &StealResult{Success: true, Amount: stolen, Wallet: thief.Wallet, Reputation: thief.Reputation}
			return nil
		}

		fine := s.randRange(StealFineMin, StealFineMax)
		if fine > thief.Wallet {
			fine = thief.Wallet
		}
		thief.Wallet -= fine
		thief.Reputation -= StealFailRepPenalty
		result = &StealResult{Success: false, Amount: fine, Wallet: thief.Wallet, Reputation: thief.Reputation}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"thief":   thiefID,
		"target":  targetID,
		"success": result.Success,
		"amount":  result.Amount,
	}).Info("Попытка кражи")

	return result, nil
}

// Commit совершает преступление. Какое именно — решает случай: одно из
// пяти равновероятно. Плазменная пушка добавляет +0.30 к шансу успеха
// без верхней границы: для контрабанды суммарный шанс 0.70.
func (s *Service) Commit(ctx context.Context, userID int64) (*CrimeResult, error) {
	var result *CrimeResult
	err := s.ledger.Update(ctx, func() error {
		def := crimes[s.rand.Intn(len(crimes))]
		acc := s.ledger.GetOrCreate(ctx, userID)

		if s.rand.Float64() < successChance(def, acc) {
			payout := s.randRange(def.MinPayout, def.MaxPayout)
			acc.Wallet += payout
			acc.Reputation -= CrimeSuccessRepPenalty
			acc.XP += CrimeXP
			result = &CrimeResult{
				Crime:      def,
				Success:    true,
				Amount:     payout,
				XP:         CrimeXP,
				Wallet:     acc.Wallet,
				Reputation: acc.Reputation,
			}
			return nil
		}

		// Поддельный паспорт смягчает и штраф, и удар по репутации
		fineMin, fineMax := int64(CrimeFineMin), int64(CrimeFineMax)
		repPenalty := CrimeFailRepPenalty
		if acc.HasItem(catalog.MarketFakePassport) {
			fineMin, fineMax = ReducedFineMin, ReducedFineMax
			repPenalty = ReducedFailRepPenalty
		}
		fine := s.randRange(fineMin, fineMax)
		if fine > acc.Wallet {
			fine = acc.Wallet
		}
		acc.Wallet -= fine
		acc.Reputation -= repPenalty
		result = &CrimeResult{
			Crime:      def,
			Success:    false,
			Amount:     fine,
			Wallet:     acc.Wallet,
			Reputation: acc.Reputation,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"crime":   result.Crime.ID,
		"success": result.Success,
		"amount":  result.Amount,
	}).Info("Попытка преступления")

	return result, nil
}

// successChance считает шанс успеха преступления для аккаунта.
// Бонус пушки прибавляется без ограничения сверху: шанс выше 1.0
// означает гарантированный успех.
func successChance(def *Definition, acc *ledger.Account) float64 {
	chance := def.SuccessRate
	if acc.HasItem(catalog.MarketPlasmaGun) {
		chance += PlasmaGunBonus
	}
	return chance
}

// randRange возвращает случайное число из [min, max] включительно.
func (s *Service) randRange(min, max int64) int64 {
	if min >= max {
		return min
	}
	return min + s.rand.Int63n(max-min+1)
}
