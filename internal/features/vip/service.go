package vip

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"

	"astralrp.ru/economy-bot/internal/catalog"
	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/ledger"
)

// Service управляет VIP-планами.
type Service struct {
	ledger  *ledger.Ledger
	catalog *catalog.Catalog
}

// NewService создаёт сервис VIP.
func NewService(l *ledger.Ledger, cat *catalog.Catalog) *Service {
	return &Service{ledger: l, catalog: cat}
}

// Tiers возвращает прейскурант VIP-планов.
func (s *Service) Tiers() []*catalog.VIPTier {
	return s.catalog.VIPs()
}

// roleSignal собирает сигнал о привязанной роли плана.
func (s *Service) roleSignal(tierID string) RoleSignal {
	if tierID == "" {
		return RoleSignal{}
	}
	roleID, ok := s.catalog.LinkedRole(tierID)
	return RoleSignal{Linked: ok, RoleID: roleID}
}

// Purchase покупает VIP-план. Повторная покупка текущего плана
// отклоняется; смена плана разрешена и оплачивается по полной цене.
func (s *Service) Purchase(ctx context.Context, userID int64, tierID string) (*PurchaseResult, error) {
	tier, ok := s.catalog.VIP(tierID)
	if !ok {
		return nil, common.ErrUnknownCatalogID
	}

	var result *PurchaseResult
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.VIP == tier.ID {
			return common.ErrVIPAlreadyActive
		}
		if acc.Wallet < tier.Price {
			return &common.InsufficientFundsError{Shortfall: tier.Price - acc.Wallet}
		}

		previous := acc.VIP
		acc.Wallet -= tier.Price
		acc.VIP = tier.ID

		result = &PurchaseResult{
			Tier:      tier,
			Wallet:    acc.Wallet,
			GrantRole: s.roleSignal(tier.ID),
			DropRole:  s.roleSignal(previous),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "tier": tierID}).Info("Куплен VIP-план")
	return result, nil
}

// Grant выдаёт VIP-план без оплаты (админская операция).
func (s *Service) Grant(ctx context.Context, userID int64, tierID string) (*PurchaseResult, error) {
	tier, ok := s.catalog.VIP(tierID)
	if !ok {
		return nil, common.ErrUnknownCatalogID
	}

	var result *PurchaseResult
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		previous := acc.VIP
		acc.VIP = tier.ID
		result = &PurchaseResult{
			Tier:      tier,
			Wallet:    acc.Wallet,
			GrantRole: s.roleSignal(tier.ID),
			DropRole:  s.roleSignal(previous),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "tier": tierID}).Info("VIP-план выдан")
	return result, nil
}

// Revoke снимает VIP-план. Возвращает сигнал о роли снятого плана.
func (s *Service) Revoke(ctx context.Context, userID int64) (RoleSignal, error) {
	var dropped RoleSignal
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.VIP == "" {
			return common.ErrNoVIP
		}
		dropped = s.roleSignal(acc.VIP)
		acc.VIP = ""
		return nil
	})
	if err != nil {
		return RoleSignal{}, err
	}

	log.WithField("user_id", userID).Info("VIP-план снят")
	return dropped, nil
}

// Status возвращает VIP-статус пользователя.
func (s *Service) Status(ctx context.Context, userID int64) *StatusView {
	var view *StatusView
	s.ledger.View(func() {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.VIP == "" {
			view = &StatusView{}
			return
		}
		tier, ok := s.catalog.VIP(acc.VIP)
		if !ok {
			view = &StatusView{}
			return
		}
		view = &StatusView{Active: true, Tier: tier}
	})
	return view
}

// ListHolders возвращает всех обладателей VIP-планов.
func (s *Service) ListHolders() []Holder {
	var holders []Holder
	s.ledger.View(func() {
		s.ledger.ForEach(func(userID int64, acc *ledger.Account) {
			if acc.VIP != "" {
				holders = append(holders, Holder{UserID: userID, TierID: acc.VIP})
			}
		})
	})
	sort.Slice(holders, func(i, j int) bool { return holders[i].UserID < holders[j].UserID })
	return holders
}

// ConfigureRole привязывает внешнюю роль к VIP-плану.
func (s *Service) ConfigureRole(tierID string, roleID int64) error {
	if !s.catalog.SetLinkedRole(tierID, roleID) {
		return common.ErrUnknownCatalogID
	}
	log.WithFields(log.Fields{"tier": tierID, "role_id": roleID}).Info("Роль привязана к VIP-плану")
	return nil
}
