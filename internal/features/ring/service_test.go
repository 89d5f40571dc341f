package ring

import (
	"context"
	"errors"
	"testing"
	"time"

	"astralrp.ru/economy-bot/internal/catalog"
	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/config"
	"astralrp.ru/economy-bot/internal/ledger"
	"astralrp.ru/economy-bot/internal/modlog"
)

type memGateway struct{}

func (memGateway) LoadAll(ctx context.Context) (map[string]*ledger.Account, error) {
	return make(map[string]*ledger.Account), nil
}

func (memGateway) SaveAll(ctx context.Context, accounts map[string]*ledger.Account) error {
	return nil
}

func (memGateway) Close() error { return nil }

// memSink копит события модерации.
type memSink struct {
	events []modlog.Event
}

func (s *memSink) Log(event modlog.Event) error {
	s.events = append(s.events, event)
	return nil
}

func newTestService(t *testing.T) (*Service, *memSink) {
	t.Helper()
	l, err := ledger.Open(context.Background(), memGateway{}, 1000)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	sink := &memSink{}
	cfg := &config.Config{RingDailyLimit: 500000}
	return NewService(l, catalog.New(), cfg, sink), sink
}

func giveRing(t *testing.T, s *Service, userID int64) {
	t.Helper()
	ctx := context.Background()
	if err := s.ledger.Update(ctx, func() error {
		s.ledger.GetOrCreate(ctx, userID).AddItem(catalog.ItemSupremeRing)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
}

func TestCreateRequiresRing(t *testing.T) {
	s, _ := newTestService(t)
	var ne *common.NotEligibleError
	if _, err := s.Create(context.Background(), 1, 1000); !errors.As(err, &ne) {
		t.Fatalf("без кольца: %v", err)
	}
}

func TestCreateLimits(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)
	giveRing(t, s, 1)

	if _, err := s.Create(ctx, 1, 0); !errors.Is(err, common.ErrInvalidAmount) {
		t.Fatalf("нулевая сумма: %v", err)
	}
	if _, err := s.Create(ctx, 1, 500001); !errors.Is(err, common.ErrInvalidAmount) {
		t.Fatalf("сверх лимита: %v", err)
	}

	res, err := s.Create(ctx, 1, 500000)
	if err != nil {
		t.Fatalf("ровно лимит: %v", err)
	}
	if res.Wallet != 501000 {
		t.Fatalf("кошелёк = %d", res.Wallet)
	}
}

func TestCreateOncePerCalendarDay(t *testing.T) {
	ctx := context.Background()
	s, sink := newTestService(t)
	giveRing(t, s, 1)

	// 23:30 — первое использование
	s.now = func() time.Time { return time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC) }
	if _, err := s.Create(ctx, 1, 1000); err != nil {
		t.Fatal(err)
	}

	// 23:59 тех же суток — отказ
	s.now = func() time.Time { return time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC) }
	var ne *common.NotEligibleError
	if _, err := s.Create(ctx, 1, 1000); !errors.As(err, &ne) {
		t.Fatalf("повтор в те же сутки: %v", err)
	}

	// 00:01 следующих суток — доступно (граница календарная, не 24 часа)
	s.now = func() time.Time { return time.Date(2024, 6, 2, 0, 1, 0, 0, time.UTC) }
	if _, err := s.Create(ctx, 1, 1000); err != nil {
		t.Fatalf("следующие сутки: %v", err)
	}

	if len(sink.events) != 2 {
		t.Fatalf("событий модерации = %d, ожидалось 2", len(sink.events))
	}
	if sink.events[0].Action != modlog.ActionRingCreate || sink.events[0].Amount != 1000 {
		t.Fatalf("первое событие: %+v", sink.events[0])
	}
}

func TestPunishTotality(t *testing.T) {
	ctx := context.Background()
	s, sink := newTestService(t)
	giveRing(t, s, 1)

	s.ledger.Update(ctx, func() error {
		target := s.ledger.GetOrCreate(ctx, 2)
		target.Wallet = 7000
		target.Bank = 3000
		target.AddItem(catalog.ItemPhone)
		target.AddItem(catalog.ItemGamingPC)
		target.Apps = []string{catalog.AppDigitalBank}
		target.HasPhone = true
		return nil
	})

	res, err := s.Punish(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Punish: %v", err)
	}
	if res.WalletDrained != 7000 || res.BankDrained != 3000 {
		t.Fatalf("изъято: %+v", res)
	}
	if res.ItemsDestroyed != 2 || res.AppsDestroyed != 1 {
		t.Fatalf("уничтожено: %+v", res)
	}

	s.ledger.View(func() {
		target := s.ledger.GetOrCreate(ctx, 2)
		if target.Wallet != 0 || target.Bank != 0 {
			t.Errorf("деньги не обнулены: %d / %d", target.Wallet, target.Bank)
		}
		if len(target.Inventory) != 0 || len(target.Apps) != 0 {
			t.Errorf("инвентарь не обнулён")
		}
		if target.HasPhone {
			t.Errorf("телефон остался активированным")
		}
	})

	if len(sink.events) != 1 || sink.events[0].Action != modlog.ActionRingPunish {
		t.Fatalf("события модерации: %+v", sink.events)
	}
	if sink.events[0].Amount != 10000 {
		t.Fatalf("сумма события = %d", sink.events[0].Amount)
	}
}

func TestPunishGuards(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)
	giveRing(t, s, 1)

	if _, err := s.Punish(ctx, 1, 1); !errors.Is(err, common.ErrSelfTarget) {
		t.Fatalf("кара себя: %v", err)
	}

	if _, err := s.Punish(ctx, 1, 2); err != nil {
		t.Fatal(err)
	}
	var ne *common.NotEligibleError
	if _, err := s.Punish(ctx, 1, 3); !errors.As(err, &ne) {
		t.Fatalf("повторная кара в те же сутки: %v", err)
	}
}

func TestAbilitiesIndependentCooldowns(t *testing.T) {
	// Сотворение и кара расходуют независимые суточные маркеры
	ctx := context.Background()
	s, _ := newTestService(t)
	giveRing(t, s, 1)

	if _, err := s.Create(ctx, 1, 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Punish(ctx, 1, 2); err != nil {
		t.Fatalf("кара после сотворения в те же сутки: %v", err)
	}
}
