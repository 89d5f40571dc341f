// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежечасный принудительный
// сброс таблицы аккаунтов на диск.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"astralrp.ru/economy-bot/internal/ledger"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron   *cron.Cron
	ledger *ledger.Ledger
}

// NewScheduler создаёт планировщик задач в настроенном часовом поясе.
func NewScheduler(l *ledger.Ledger, timezone string) *Scheduler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.WithError(err).WithField("timezone", timezone).Warn("Не удалось загрузить часовой пояс, используем UTC")
		loc = time.UTC
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		ledger: l,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Страховочный сброс таблицы на диск каждый час
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] Принудительный сброс таблицы аккаунтов")
		if err := s.ledger.Flush(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка сброса таблицы")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик, дожидаясь текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
