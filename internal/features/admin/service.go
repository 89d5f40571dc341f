package admin

import (
	"context"
	"math/rand"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"astralrp.ru/economy-bot/internal/catalog"
	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/config"
	"astralrp.ru/economy-bot/internal/features/vip"
	"astralrp.ru/economy-bot/internal/ledger"
	"astralrp.ru/economy-bot/internal/modlog"
)

// Service управляет админ-операциями.
type Service struct {
	ledger  *ledger.Ledger
	catalog *catalog.Catalog
	cfg     *config.Config
	vip     *vip.Service
	sink    modlog.Sink
	rand    *rand.Rand
	now     func() time.Time
}

// NewService создаёт админ-сервис.
func NewService(l *ledger.Ledger, cat *catalog.Catalog, cfg *config.Config, vipService *vip.Service, sink modlog.Sink, rng *rand.Rand) *Service {
	return &Service{
		ledger:  l,
		catalog: cat,
		cfg:     cfg,
		vip:     vipService,
		sink:    sink,
		rand:    rng,
		now:     time.Now,
	}
}

// Authorize проверяет право на админ-операции: ID в списке админов
// и пароль, совпадающий с хешем Argon2id из конфигурации.
func (s *Service) Authorize(actorID int64, password string) error {
	if !s.cfg.IsAdmin(actorID) {
		return common.ErrNotAdmin
	}
	if !verifyArgon2id(password, s.cfg.AdminPasswordHash) {
		log.WithField("actor", actorID).Warn("Неверный админ-пароль")
		return common.ErrWrongPassword
	}
	return nil
}

// AddMoney начисляет деньги в кошелёк пользователя.
func (s *Service) AddMoney(ctx context.Context, userID, amount int64) (*MoneyResult, error) {
	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}
	return s.editMoney(ctx, userID, func(acc *ledger.Account) {
		acc.Wallet += amount
	})
}

// RemoveMoney изымает деньги из кошелька. Изъятие сверх остатка
// ограничивается остатком: кошелёк не уходит в минус.
func (s *Service) RemoveMoney(ctx context.Context, userID, amount int64) (*MoneyResult, error) {
	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}
	return s.editMoney(ctx, userID, func(acc *ledger.Account) {
		if amount > acc.Wallet {
			acc.Wallet = 0
			return
		}
		acc.Wallet -= amount
	})
}

// SetMoney выставляет кошелёк в точное значение.
func (s *Service) SetMoney(ctx context.Context, userID, amount int64) (*MoneyResult, error) {
	if amount < 0 {
		return nil, common.ErrInvalidAmount
	}
	return s.editMoney(ctx, userID, func(acc *ledger.Account) {
		acc.Wallet = amount
	})
}

func (s *Service) editMoney(ctx context.Context, userID int64, edit func(*ledger.Account)) (*MoneyResult, error) {
	var result *MoneyResult
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		edit(acc)
		result = &MoneyResult{UserID: userID, Wallet: acc.Wallet, Bank: acc.Bank}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "wallet": result.Wallet}).Info("Деньги пользователя изменены")
	return result, nil
}

// SetLevel выставляет уровень. Уровень не опускается ниже 1.
// Это единственный способ поднять уровень: опыт сам по себе его не растит.
func (s *Service) SetLevel(ctx context.Context, userID int64, level int) error {
	if level < 1 {
		level = 1
	}
	return s.ledger.Update(ctx, func() error {
		s.ledger.GetOrCreate(ctx, userID).Level = level
		return nil
	})
}

// SetXP выставляет опыт. Опыт не опускается ниже нуля.
func (s *Service) SetXP(ctx context.Context, userID int64, xp int) error {
	if xp < 0 {
		xp = 0
	}
	return s.ledger.Update(ctx, func() error {
		s.ledger.GetOrCreate(ctx, userID).XP = xp
		return nil
	})
}

// SetReputation выставляет репутацию (может быть отрицательной).
func (s *Service) SetReputation(ctx context.Context, userID int64, reputation int) error {
	return s.ledger.Update(ctx, func() error {
		s.ledger.GetOrCreate(ctx, userID).Reputation = reputation
		return nil
	})
}

// SetJob назначает работу в обход требований уровня.
// Значение "none" очищает работу.
func (s *Service) SetJob(ctx context.Context, userID int64, jobID string) error {
	if jobID != JobNone {
		if _, ok := s.catalog.Job(jobID); !ok {
			return common.ErrUnknownCatalogID
		}
	}
	return s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if jobID == JobNone {
			acc.Job = ""
		} else {
			acc.Job = jobID
		}
		return nil
	})
}

// GiveItem выдаёт предмет бесплатно. Работает и для секретных предметов,
// и для товаров чёрного рынка — это единственный путь к Верховному Кольцу.
func (s *Service) GiveItem(ctx context.Context, userID int64, itemID string) error {
	if _, ok := s.catalog.AnyItem(itemID); !ok {
		return common.ErrUnknownCatalogID
	}
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.HasItem(itemID) {
			return common.ErrAlreadyOwned
		}
		acc.AddItem(itemID)
		return nil
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"user_id": userID, "item": itemID}).Info("Предмет выдан")
	return nil
}

// TakeItem изымает предмет из инвентаря.
func (s *Service) TakeItem(ctx context.Context, userID int64, itemID string) error {
	return s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if !acc.RemoveItem(itemID) {
			return common.ErrUnknownCatalogID
		}
		return nil
	})
}

// GiveVIP выдаёт VIP-план без оплаты. Сигналы ролей — в результате.
func (s *Service) GiveVIP(ctx context.Context, userID int64, tierID string) (*vip.PurchaseResult, error) {
	return s.vip.Grant(ctx, userID, tierID)
}

// RemoveVIP снимает VIP-план.
func (s *Service) RemoveVIP(ctx context.Context, userID int64) (vip.RoleSignal, error) {
	return s.vip.Revoke(ctx, userID)
}

// ListVIPs возвращает всех обладателей VIP-планов.
func (s *Service) ListVIPs() []vip.Holder {
	return s.vip.ListHolders()
}

// ConfigureVIPRole привязывает внешнюю роль к VIP-плану.
func (s *Service) ConfigureVIPRole(tierID string, roleID int64) error {
	return s.vip.ConfigureRole(tierID, roleID)
}

// ResetUser удаляет запись пользователя целиком: при следующем
// обращении он начнёт со стартовых значений.
func (s *Service) ResetUser(ctx context.Context, userID int64) error {
	err := s.ledger.Update(ctx, func() error {
		s.ledger.Delete(userID)
		return nil
	})
	if err != nil {
		return err
	}

	log.WithField("user_id", userID).Warn("Аккаунт пользователя сброшен")
	return nil
}

// WipeAll стирает всю таблицу аккаунтов. Необратимо: требуется
// точное подтверждающее слово из конфигурации.
func (s *Service) WipeAll(ctx context.Context, confirmation string) error {
	if confirmation != s.cfg.WipeConfirmToken {
		return common.ErrWrongConfirmation
	}
	err := s.ledger.Update(ctx, func() error {
		s.ledger.WipeAll()
		return nil
	})
	if err != nil {
		return err
	}

	log.Warn("Таблица аккаунтов полностью стёрта")
	return nil
}

// GiveAll начисляет сумму в кошелёк каждого известного не-админского
// аккаунта. Новые аккаунты не создаются.
func (s *Service) GiveAll(ctx context.Context, amount int64) (*GiveAllResult, error) {
	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}

	result := &GiveAllResult{Amount: amount}
	err := s.ledger.Update(ctx, func() error {
		s.ledger.ForEach(func(userID int64, acc *ledger.Account) {
			if s.cfg.IsAdmin(userID) {
				return
			}
			acc.Wallet += amount
			result.Recipients++
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"amount": amount, "recipients": result.Recipients}).Info("Массовая выплата")
	return result, nil
}

// Raffle разыгрывает приз среди всех известных не-админских аккаунтов.
// Победитель выбирается равновероятно; событие уходит в лог модерации.
// displayName — необязательное публичное имя победителя для объявления;
// настоящий победитель всегда в результате.
func (s *Service) Raffle(ctx context.Context, actorID, prize int64, displayName string) (*RaffleResult, error) {
	if prize <= 0 {
		return nil, common.ErrInvalidAmount
	}

	var result *RaffleResult
	var at time.Time
	err := s.ledger.Update(ctx, func() error {
		at = s.now()

		var candidates []int64
		s.ledger.ForEach(func(userID int64, acc *ledger.Account) {
			if !s.cfg.IsAdmin(userID) {
				candidates = append(candidates, userID)
			}
		})
		if len(candidates) == 0 {
			return &common.NotEligibleError{Reason: "нет участников для розыгрыша"}
		}
		// Детерминированный порядок до выборки: обход карты случаен
		sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

		winnerID := candidates[s.rand.Intn(len(candidates))]
		winner, _ := s.ledger.Get(winnerID)
		winner.Wallet += prize

		result = &RaffleResult{WinnerID: winnerID, Announced: displayName, Prize: prize, Wallet: winner.Wallet}
		return nil
	})
	if err != nil {
		return nil, err
	}

	modlog.Emit(s.sink, modlog.NewEvent(actorID, result.WinnerID, modlog.ActionRaffle, prize, at))

	log.WithFields(log.Fields{"winner": result.WinnerID, "prize": prize}).Info("Розыгрыш проведён")
	return result, nil
}

// Stats возвращает сводку по экономике.
func (s *Service) Stats() *StatsView {
	stats := &StatsView{}
	s.ledger.View(func() {
		stats.Accounts = s.ledger.Len()
		s.ledger.ForEach(func(userID int64, acc *ledger.Account) {
			stats.TotalWallet += acc.Wallet
			stats.TotalBank += acc.Bank
			if acc.HasItem(catalog.ItemSupremeRing) {
				stats.RingHolders++
			}
			if acc.VIP != "" {
				stats.ActiveVIPs++
			}
		})
	})
	stats.TotalMoney = stats.TotalWallet + stats.TotalBank
	if stats.Accounts > 0 {
		stats.AverageNet = stats.TotalMoney / int64(stats.Accounts)
	}
	return stats
}
