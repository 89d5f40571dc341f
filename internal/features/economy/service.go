// Package economy — service.go содержит бизнес-логику денежных операций.
// Правила только читают и мутируют аккаунты под замком леджера;
// сохранение таблицы оркестрирует сам леджер.
package economy

import (
	"context"
	"math/rand"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"astralrp.ru/economy-bot/internal/catalog"
	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/ledger"
)

// Service управляет денежными операциями.
type Service struct {
	ledger  *ledger.Ledger
	catalog *catalog.Catalog
	rand    *rand.Rand       // Инжектируемый источник случайности (seed в тестах)
	now     func() time.Time // Инжектируемые часы
}

// NewService создаёт сервис экономики.
func NewService(l *ledger.Ledger, cat *catalog.Catalog, rng *rand.Rand) *Service {
	return &Service{
		ledger:  l,
		catalog: cat,
		rand:    rng,
		now:     time.Now,
	}
}

// Daily выдаёт дневное пособие: случайная сумма из [DailyMin, DailyMax],
// +10 XP, перезарядка ровно 24 часа («≥ порога», не «>»).
func (s *Service) Daily(ctx context.Context, userID int64) (*DailyResult, error) {
	var result *DailyResult
	err := s.ledger.Update(ctx, func() error {
		now := s.now()
		acc := s.ledger.GetOrCreate(ctx, userID)

		if acc.LastDaily != nil && now.Sub(*acc.LastDaily) < DailyCooldown {
			return common.NewCooldown(*acc.LastDaily, DailyCooldown, now)
		}

		amount := int64(DailyMin) + s.rand.Int63n(DailyMax-DailyMin+1)
		acc.Wallet += amount
		acc.XP += DailyXP
		acc.LastDaily = &now

		result = &DailyResult{Amount: amount, XP: DailyXP, Wallet: acc.Wallet}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"amount":  result.Amount,
	}).Info("Выдано дневное пособие")

	return result, nil
}

// Transfer переводит деньги между пользователями.
// Отправитель теряет всю сумму, получатель получает сумму минус 5% комиссии;
// комиссия уничтожается (никому не начисляется).
func (s *Service) Transfer(ctx context.Context, fromUserID, toUserID, amount int64) (*TransferResult, error) {
	if fromUserID == toUserID {
		return nil, common.ErrSelfTarget
	}
	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}

	var result *TransferResult
	err := s.ledger.Update(ctx, func() error {
		sender := s.ledger.GetOrCreate(ctx, fromUserID)
		recipient := s.ledger.GetOrCreate(ctx, toUserID)

		if sender.Wallet < amount {
			return &common.InsufficientFundsError{Shortfall: amount - sender.Wallet}
		}

		fee := amount * TransferFeePercent / 100
		received := amount - fee

		sender.Wallet -= amount
		recipient.Wallet += received

		result = &TransferResult{
			Amount:       amount,
			Fee:          fee,
			Received:     received,
			SenderWallet: sender.Wallet,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"from":   fromUserID,
		"to":     toUserID,
		"amount": amount,
		"fee":    result.Fee,
	}).Info("Перевод выполнен")

	return result, nil
}

// Deposit перекладывает деньги из кошелька в банк (защита от кражи).
func (s *Service) Deposit(ctx context.Context, userID, amount int64) (*BankResult, error) {
	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}

	var result *BankResult
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.Wallet < amount {
			return &common.InsufficientFundsError{Shortfall: amount - acc.Wallet}
		}
		acc.Wallet -= amount
		acc.Bank += amount
		result = &BankResult{Amount: amount, Wallet: acc.Wallet, Bank: acc.Bank}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Withdraw снимает деньги из банка в кошелёк.
func (s *Service) Withdraw(ctx context.Context, userID, amount int64) (*BankResult, error) {
	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}

	var result *BankResult
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.Bank < amount {
			return &common.InsufficientFundsError{Shortfall: amount - acc.Bank}
		}
		acc.Bank -= amount
		acc.Wallet += amount
		result = &BankResult{Amount: amount, Wallet: acc.Wallet, Bank: acc.Bank}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Balance возвращает балансы пользователя (с ленивым созданием аккаунта).
func (s *Service) Balance(ctx context.Context, userID int64) *BalanceView {
	var view *BalanceView
	s.ledger.View(func() {
		acc := s.ledger.GetOrCreate(ctx, userID)
		view = &BalanceView{Wallet: acc.Wallet, Bank: acc.Bank, Total: acc.NetWorth()}
	})
	return view
}

// Profile возвращает полный профиль пользователя.
func (s *Service) Profile(ctx context.Context, userID int64) *ProfileView {
	var view *ProfileView
	s.ledger.View(func() {
		acc := s.ledger.GetOrCreate(ctx, userID)

		items := make([]string, 0, len(acc.Inventory))
		for id := range acc.Inventory {
			items = append(items, id)
		}
		sort.Strings(items)

		view = &ProfileView{
			Wallet:     acc.Wallet,
			Bank:       acc.Bank,
			Total:      acc.NetWorth(),
			Job:        acc.Job,
			Level:      acc.Level,
			XP:         acc.XP,
			Reputation: acc.Reputation,
			VIP:        acc.VIP,
			HasPhone:   acc.HasPhone,
			AppsCount:  len(acc.Apps),
			Items:      items,
			HasRing:    acc.HasItem(catalog.ItemSupremeRing),
		}
	})
	return view
}

// Rankings возвращает топ-N пользователей по суммарному состоянию.
func (s *Service) Rankings(limit int) []RankEntry {
	var entries []RankEntry
	s.ledger.View(func() {
		s.ledger.ForEach(func(userID int64, acc *ledger.Account) {
			entries = append(entries, RankEntry{
				UserID:  userID,
				Total:   acc.NetWorth(),
				HasRing: acc.HasItem(catalog.ItemSupremeRing),
			})
		})
	})

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].UserID < entries[j].UserID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
