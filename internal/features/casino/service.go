package casino

import (
	"context"
	"math"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/ledger"
)

// Service управляет азартными операциями.
type Service struct {
	ledger *ledger.Ledger
	rand   *rand.Rand
}

// NewService создаёт сервис казино.
func NewService(l *ledger.Ledger, rng *rand.Rand) *Service {
	return &Service{ledger: l, rand: rng}
}

// CoinFlip подбрасывает монету. Угадал — кошелёк растёт на ставку,
// не угадал — уменьшается на неё.
func (s *Service) CoinFlip(ctx context.Context, userID int64, choice string, stake int64) (*FlipResult, error) {
	if choice != SideHeads && choice != SideTails {
		return nil, common.ErrInvalidChoice
	}
	if stake <= 0 {
		return nil, common.ErrInvalidAmount
	}

	var result *FlipResult
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.Wallet < stake {
			return &common.InsufficientFundsError{Shortfall: stake - acc.Wallet}
		}

		landed := SideHeads
		if s.rand.Float64() < 0.5 {
			landed = SideTails
		}

		won := landed == choice
		if won {
			acc.Wallet += stake
		} else {
			acc.Wallet -= stake
		}

		result = &FlipResult{Choice: choice, Landed: landed, Won: won, Stake: stake, Wallet: acc.Wallet}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"stake":   stake,
		"won":     result.Won,
	}).Info("Подбрасывание монеты")

	return result, nil
}

// Invest вкладывает деньги в рискованную схему. С шансом 40% вклад
// умножается на случайный множитель из [1.5, 2.5]; иначе теряется
// случайная доля вклада из [0.3, 0.7]. Минимальный вклад — 500.
func (s *Service) Invest(ctx context.Context, userID int64, stake int64) (*InvestResult, error) {
	if stake <= 0 {
		return nil, common.ErrInvalidAmount
	}

	var result *InvestResult
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.Wallet < stake {
			return &common.InsufficientFundsError{Shortfall: stake - acc.Wallet}
		}
		if stake < InvestMinStake {
			return &common.NotEligibleError{Reason: "минимальный вклад — 500"}
		}

		if s.rand.Float64() < InvestWinChance {
			mult := InvestGainMinMul + s.rand.Float64()*(InvestGainMaxMul-InvestGainMinMul)
			profit := int64(math.Floor(float64(stake)*mult)) - stake
			acc.Wallet += profit
			result = &InvestResult{Won: true, Stake: stake, Delta: profit, Wallet: acc.Wallet}
			return nil
		}

		frac := InvestLossMinFr + s.rand.Float64()*(InvestLossMaxFr-InvestLossMinFr)
		loss := int64(math.Floor(float64(stake) * frac))
		acc.Wallet -= loss
		result = &InvestResult{Won: false, Stake: stake, Delta: -loss, Wallet: acc.Wallet}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"stake":   stake,
		"delta":   result.Delta,
	}).Info("Инвестиция")

	return result, nil
}
