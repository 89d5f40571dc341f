package ring

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"astralrp.ru/economy-bot/internal/catalog"
	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/config"
	"astralrp.ru/economy-bot/internal/ledger"
	"astralrp.ru/economy-bot/internal/modlog"
)

// Service управляет способностями Кольца.
type Service struct {
	ledger  *ledger.Ledger
	catalog *catalog.Catalog
	cfg     *config.Config
	sink    modlog.Sink
	now     func() time.Time
}

// NewService создаёт сервис Кольца.
func NewService(l *ledger.Ledger, cat *catalog.Catalog, cfg *config.Config, sink modlog.Sink) *Service {
	return &Service{ledger: l, catalog: cat, cfg: cfg, sink: sink, now: time.Now}
}

// Create сотворяет деньги из ничего — прямо в кошелёк носителя Кольца.
// Лимит за раз настраивается; способность доступна раз в календарные сутки.
func (s *Service) Create(ctx context.Context, ownerID, amount int64) (*CreateResult, error) {
	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}
	if amount > s.cfg.RingDailyLimit {
		return nil, fmt.Errorf("%w: максимум %d за раз", common.ErrInvalidAmount, s.cfg.RingDailyLimit)
	}

	var result *CreateResult
	var at time.Time
	err := s.ledger.Update(ctx, func() error {
		at = s.now()
		acc := s.ledger.GetOrCreate(ctx, ownerID)
		if !acc.HasItem(catalog.ItemSupremeRing) {
			return &common.NotEligibleError{Reason: "требуется Верховное Кольцо"}
		}

		today := common.DateOf(at)
		if acc.LastRingCreate == today {
			return &common.NotEligibleError{Reason: "способность уже использована сегодня"}
		}

		acc.Wallet += amount
		acc.LastRingCreate = today
		result = &CreateResult{Amount: amount, Wallet: acc.Wallet}
		return nil
	})
	if err != nil {
		return nil, err
	}

	modlog.Emit(s.sink, modlog.NewEvent(ownerID, 0, modlog.ActionRingCreate, amount, at))

	log.WithFields(log.Fields{"owner": ownerID, "amount": amount}).Warn("Кольцо сотворило деньги")
	return result, nil
}

// Punish обнуляет жертву целиком: кошелёк, банк, инвентарь, приложения
// и активацию телефона. Раз в календарные сутки, не на себя.
func (s *Service) Punish(ctx context.Context, ownerID, targetID int64) (*PunishResult, error) {
	if ownerID == targetID {
		return nil, common.ErrSelfTarget
	}

	var result *PunishResult
	var at time.Time
	err := s.ledger.Update(ctx, func() error {
		at = s.now()
		owner := s.ledger.GetOrCreate(ctx, ownerID)
		if !owner.HasItem(catalog.ItemSupremeRing) {
			return &common.NotEligibleError{Reason: "требуется Верховное Кольцо"}
		}

		today := common.DateOf(at)
		if owner.LastRingPunish == today {
			return &common.NotEligibleError{Reason: "способность уже использована сегодня"}
		}

		target := s.ledger.GetOrCreate(ctx, targetID)
		result = &PunishResult{
			TargetID:       targetID,
			WalletDrained:  target.Wallet,
			BankDrained:    target.Bank,
			ItemsDestroyed: len(target.Inventory),
			AppsDestroyed:  len(target.Apps),
		}

		target.Wallet = 0
		target.Bank = 0
		target.Inventory = make(map[string]bool)
		target.Apps = nil
		target.HasPhone = false

		owner.LastRingPunish = today
		return nil
	})
	if err != nil {
		return nil, err
	}

	modlog.Emit(s.sink, modlog.NewEvent(ownerID, targetID, modlog.ActionRingPunish, result.WalletDrained+result.BankDrained, at))

	log.WithFields(log.Fields{"owner": ownerID, "target": targetID}).Warn("Кольцо покарало жертву")
	return result, nil
}
