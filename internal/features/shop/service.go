package shop

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"

	"astralrp.ru/economy-bot/internal/catalog"
	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/ledger"
)

// Service управляет покупками предметов, товаров чёрного рынка и приложений.
type Service struct {
	ledger  *ledger.Ledger
	catalog *catalog.Catalog
}

// NewService создаёт сервис магазина.
func NewService(l *ledger.Ledger, cat *catalog.Catalog) *Service {
	return &Service{ledger: l, catalog: cat}
}

// Items возвращает видимый ассортимент магазина (без секретных предметов).
func (s *Service) Items() []*catalog.Item {
	all := s.catalog.Items()
	visible := make([]*catalog.Item, 0, len(all))
	for _, it := range all {
		if !it.Secret {
			visible = append(visible, it)
		}
	}
	return visible
}

// MarketItems возвращает ассортимент чёрного рынка.
func (s *Service) MarketItems() []*catalog.MarketItem {
	return s.catalog.MarketItems()
}

// Apps возвращает каталог приложений.
func (s *Service) Apps() []*catalog.App {
	return s.catalog.Apps()
}

// BuyItem покупает предмет из магазина. Секретные предметы не продаются;
// повторная покупка уже имеющегося предмета отклоняется.
func (s *Service) BuyItem(ctx context.Context, userID int64, itemID string) (*PurchaseResult, error) {
	item, ok := s.catalog.Item(itemID)
	if !ok || item.Secret {
		return nil, common.ErrUnknownCatalogID
	}

	var result *PurchaseResult
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.HasItem(item.ID) {
			return common.ErrAlreadyOwned
		}
		if acc.Wallet < item.Price {
			return &common.InsufficientFundsError{Shortfall: item.Price - acc.Wallet}
		}
		acc.Wallet -= item.Price
		acc.AddItem(item.ID)
		result = &PurchaseResult{ID: item.ID, Price: item.Price, Wallet: acc.Wallet, Reputation: acc.Reputation}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "item": itemID}).Info("Куплен предмет")
	return result, nil
}

// BuyMarketItem покупает товар на чёрном рынке. Цена репутации: −20.
func (s *Service) BuyMarketItem(ctx context.Context, userID int64, itemID string) (*PurchaseResult, error) {
	item, ok := s.catalog.MarketItem(itemID)
	if !ok {
		return nil, common.ErrUnknownCatalogID
	}

	var result *PurchaseResult
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.HasItem(item.ID) {
			return common.ErrAlreadyOwned
		}
		if acc.Wallet < item.Price {
			return &common.InsufficientFundsError{Shortfall: item.Price - acc.Wallet}
		}
		acc.Wallet -= item.Price
		acc.AddItem(item.ID)
		acc.Reputation -= MarketReputationPenalty
		result = &PurchaseResult{ID: item.ID, Price: item.Price, Wallet: acc.Wallet, Reputation: acc.Reputation}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "item": itemID}).Warn("Покупка на чёрном рынке")
	return result, nil
}

// ActivatePhone включает телефон. Требуется предмет phone в инвентаре.
func (s *Service) ActivatePhone(ctx context.Context, userID int64) error {
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if !acc.HasItem(catalog.ItemPhone) {
			return &common.NotEligibleError{Reason: "сначала купите телефон в магазине"}
		}
		if acc.HasPhone {
			return common.ErrAlreadyOwned
		}
		acc.HasPhone = true
		return nil
	})
	if err != nil {
		return err
	}

	log.WithField("user_id", userID).Info("Телефон активирован")
	return nil
}

// InstallApp устанавливает приложение. Требуется активированный телефон.
func (s *Service) InstallApp(ctx context.Context, userID int64, appID string) (*PurchaseResult, error) {
	app, ok := s.catalog.App(appID)
	if !ok {
		return nil, common.ErrUnknownCatalogID
	}

	var result *PurchaseResult
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if !acc.HasPhone {
			return common.ErrNoPhone
		}
		if acc.HasApp(app.ID) {
			return common.ErrAlreadyOwned
		}
		if acc.Wallet < app.Price {
			return &common.InsufficientFundsError{Shortfall: app.Price - acc.Wallet}
		}
		acc.Wallet -= app.Price
		acc.Apps = append(acc.Apps, app.ID)
		result = &PurchaseResult{ID: app.ID, Price: app.Price, Wallet: acc.Wallet, Reputation: acc.Reputation}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "app": appID}).Info("Приложение установлено")
	return result, nil
}

// Inventory возвращает инвентарь пользователя.
func (s *Service) Inventory(ctx context.Context, userID int64) *InventoryView {
	var view *InventoryView
	s.ledger.View(func() {
		acc := s.ledger.GetOrCreate(ctx, userID)

		items := make([]string, 0, len(acc.Inventory))
		for id := range acc.Inventory {
			items = append(items, id)
		}
		sort.Strings(items)

		apps := make([]string, len(acc.Apps))
		copy(apps, acc.Apps)

		view = &InventoryView{Items: items, Apps: apps, HasPhone: acc.HasPhone}
	})
	return view
}
