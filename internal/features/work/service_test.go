package work

import (
	"context"
	"errors"
	"testing"
	"time"

	"astralrp.ru/economy-bot/internal/catalog"
	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/ledger"
)

type memGateway struct{}

func (memGateway) LoadAll(ctx context.Context) (map[string]*ledger.Account, error) {
	return make(map[string]*ledger.Account), nil
}

func (memGateway) SaveAll(ctx context.Context, accounts map[string]*ledger.Account) error {
	return nil
}

func (memGateway) Close() error { return nil }

func newTestService(t *testing.T) *Service {
	t.Helper()
	l, err := ledger.Open(context.Background(), memGateway{}, 1000)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	return NewService(l, catalog.New())
}

func TestApplyLevelGate(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	// Уровень 1: курьер доступен, программист — нет
	if _, err := s.Apply(ctx, 1, "courier"); err != nil {
		t.Fatalf("courier: %v", err)
	}

	_, err := s.Apply(ctx, 1, "programmer")
	var ne *common.NotEligibleError
	if !errors.As(err, &ne) {
		t.Fatalf("ожидалась NotEligibleError, получено %v", err)
	}

	if _, err := s.Apply(ctx, 1, "astronaut"); !errors.Is(err, common.ErrUnknownCatalogID) {
		t.Fatalf("неизвестная работа: %v", err)
	}
}

func TestWorkRequiresJob(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	if _, err := s.Work(ctx, 1); !errors.Is(err, common.ErrNoJob) {
		t.Fatalf("без работы: %v", err)
	}
}

func TestWorkSalaryAndCooldown(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	if _, err := s.Apply(ctx, 1, "courier"); err != nil {
		t.Fatal(err)
	}

	res, err := s.Work(ctx, 1)
	if err != nil {
		t.Fatalf("Work: %v", err)
	}
	if res.Earned != 500 {
		t.Fatalf("заработано %d, ожидалось 500", res.Earned)
	}
	if res.Bonus {
		t.Fatal("бонус без игрового ПК")
	}

	// До истечения часа — отказ
	s.now = func() time.Time { return base.Add(30 * time.Minute) }
	var cd *common.CooldownError
	if _, err := s.Work(ctx, 1); !errors.As(err, &cd) {
		t.Fatalf("ожидалась CooldownError, получено %v", err)
	}

	// Ровно час — доступно
	s.now = func() time.Time { return base.Add(time.Hour) }
	if _, err := s.Work(ctx, 1); err != nil {
		t.Fatalf("через ровно час: %v", err)
	}
}

func TestWorkGamingPCBonus(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	s.ledger.Update(ctx, func() error {
		acc := s.ledger.GetOrCreate(ctx, 1)
		acc.Level = 5
		acc.AddItem(catalog.ItemGamingPC)
		return nil
	})

	if _, err := s.Apply(ctx, 1, "programmer"); err != nil {
		t.Fatal(err)
	}

	res, err := s.Work(ctx, 1)
	if err != nil {
		t.Fatalf("Work: %v", err)
	}
	// 1500 × 1.2 = 1800
	if res.Earned != 1800 {
		t.Fatalf("заработано %d, ожидалось 1800", res.Earned)
	}
	if !res.Bonus {
		t.Fatal("бонус игрового ПК не отмечен")
	}
}

func TestQuit(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	if err := s.Quit(ctx, 1); !errors.Is(err, common.ErrNoJob) {
		t.Fatalf("увольнение без работы: %v", err)
	}

	if _, err := s.Apply(ctx, 1, "courier"); err != nil {
		t.Fatal(err)
	}
	if err := s.Quit(ctx, 1); err != nil {
		t.Fatalf("Quit: %v", err)
	}
	if _, err := s.Work(ctx, 1); !errors.Is(err, common.ErrNoJob) {
		t.Fatal("после увольнения смена должна быть недоступна")
	}
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	listings := s.Listings(ctx, 1)
	if len(listings) != 5 {
		t.Fatalf("вакансий = %d, ожидалось 5", len(listings))
	}
	for _, l := range listings {
		want := l.Job.MinLevel <= 1
		if l.Available != want {
			t.Fatalf("вакансия %s: доступность %v при требовании уровня %d", l.Job.ID, l.Available, l.Job.MinLevel)
		}
	}
}
