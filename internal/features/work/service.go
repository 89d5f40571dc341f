package work

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"astralrp.ru/economy-bot/internal/catalog"
	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/ledger"
)

// Service управляет работами и сменами.
type Service struct {
	ledger  *ledger.Ledger
	catalog *catalog.Catalog
	now     func() time.Time
}

// NewService создаёт сервис работ.
func NewService(l *ledger.Ledger, cat *catalog.Catalog) *Service {
	return &Service{ledger: l, catalog: cat, now: time.Now}
}

// Listings возвращает все вакансии с отметкой доступности для пользователя.
func (s *Service) Listings(ctx context.Context, userID int64) []JobListing {
	var level int
	s.ledger.View(func() {
		level = s.ledger.GetOrCreate(ctx, userID).Level
	})

	jobs := s.catalog.Jobs()
	listings := make([]JobListing, 0, len(jobs))
	for _, j := range jobs {
		listings = append(listings, JobListing{Job: *j, Available: level >= j.MinLevel})
	}
	return listings
}

// Apply устраивает пользователя на работу. Требование уровня проверяется
// на момент устройства; смена работы разрешена в любой момент.
func (s *Service) Apply(ctx context.Context, userID int64, jobID string) (*ApplyResult, error) {
	job, ok := s.catalog.Job(jobID)
	if !ok {
		return nil, common.ErrUnknownCatalogID
	}

	var result *ApplyResult
	err := s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.Level < job.MinLevel {
			return &common.NotEligibleError{Reason: "недостаточный уровень"}
		}
		acc.Job = job.ID
		result = &ApplyResult{JobID: job.ID, Salary: job.Salary}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "job": jobID}).Info("Пользователь устроился на работу")
	return result, nil
}

// Quit увольняет пользователя с текущей работы.
func (s *Service) Quit(ctx context.Context, userID int64) error {
	return s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.Job == "" {
			return common.ErrNoJob
		}
		acc.Job = ""
		return nil
	})
}

// Work отрабатывает смену: зарплата работы, умноженная на 1.0 плюс бонус
// игрового ПК, с усечением дробной части. Перезарядка своя у каждой работы.
func (s *Service) Work(ctx context.Context, userID int64) (*WorkResult, error) {
	var result *WorkResult
	err := s.ledger.Update(ctx, func() error {
		now := s.now()
		acc := s.ledger.GetOrCreate(ctx, userID)
		if acc.Job == "" {
			return common.ErrNoJob
		}
		job, ok := s.catalog.Job(acc.Job)
		if !ok {
			// Работа удалена из справочника — увольняем
			acc.Job = ""
			return common.ErrNoJob
		}

		if acc.LastWork != nil && now.Sub(*acc.LastWork) < job.Cooldown {
			return common.NewCooldown(*acc.LastWork, job.Cooldown, now)
		}

		multiplier := 1.0
		bonus := false
		if item, ok := s.catalog.Item(catalog.ItemGamingPC); ok && acc.HasItem(item.ID) {
			multiplier += item.WorkBonus
			bonus = true
		}
		earned := int64(float64(job.Salary) * multiplier)

		acc.Wallet += earned
		acc.XP += WorkXP
		acc.LastWork = &now

		result = &WorkResult{
			JobID:  job.ID,
			Earned: earned,
			Bonus:  bonus,
			XP:     WorkXP,
			Wallet: acc.Wallet,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"job":     result.JobID,
		"earned":  result.Earned,
	}).Info("Смена отработана")

	return result, nil
}
