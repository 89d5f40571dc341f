package admin

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"golang.org/x/crypto/argon2"

	"astralrp.ru/economy-bot/internal/catalog"
	"astralrp.ru/economy-bot/internal/common"
	"astralrp.ru/economy-bot/internal/config"
	"astralrp.ru/economy-bot/internal/features/vip"
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

type memSink struct {
	events []modlog.Event
}

func (s *memSink) Log(event modlog.Event) error {
	s.events = append(s.events, event)
	return nil
}

// makeHash собирает хеш Argon2id с лёгкими параметрами для тестов.
func makeHash(password string) string {
	salt := []byte("0123456789abcdef")
	hash := argon2.IDKey([]byte(password), salt, 1, 1024, 1, 32)
	return fmt.Sprintf("$argon2id$v=19$m=1024,t=1,p=1$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}

func newTestService(t *testing.T) (*Service, *memSink) {
	t.Helper()
	l, err := ledger.Open(context.Background(), memGateway{}, 1000)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	cfg := &config.Config{
		AdminIDs:          []int64{100},
		AdminPasswordHash: makeHash("secret"),
		WipeConfirmToken:  "CONFIRMAR",
	}
	sink := &memSink{}
	cat := catalog.New()
	vipService := vip.NewService(l, cat)
	return NewService(l, cat, cfg, vipService, sink, rand.New(rand.NewSource(1))), sink
}

func TestAuthorize(t *testing.T) {
	s, _ := newTestService(t)

	if err := s.Authorize(100, "secret"); err != nil {
		t.Fatalf("валидная авторизация: %v", err)
	}
	if err := s.Authorize(100, "wrong"); !errors.Is(err, common.ErrWrongPassword) {
		t.Fatalf("неверный пароль: %v", err)
	}
	if err := s.Authorize(200, "secret"); !errors.Is(err, common.ErrNotAdmin) {
		t.Fatalf("не админ: %v", err)
	}
}

func TestMoneyEdits(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	res, err := s.AddMoney(ctx, 1, 500)
	if err != nil {
		t.Fatal(err)
	}
	if res.Wallet != 1500 {
		t.Fatalf("кошелёк = %d", res.Wallet)
	}

	// Изъятие сверх остатка ограничивается нулём
	res, err = s.RemoveMoney(ctx, 1, 99999)
	if err != nil {
		t.Fatal(err)
	}
	if res.Wallet != 0 {
		t.Fatalf("кошелёк = %d, ожидался 0", res.Wallet)
	}

	res, err = s.SetMoney(ctx, 1, 777)
	if err != nil {
		t.Fatal(err)
	}
	if res.Wallet != 777 {
		t.Fatalf("кошелёк = %d", res.Wallet)
	}

	if _, err := s.AddMoney(ctx, 1, 0); !errors.Is(err, common.ErrInvalidAmount) {
		t.Fatalf("нулевое начисление: %v", err)
	}
	if _, err := s.SetMoney(ctx, 1, -1); !errors.Is(err, common.ErrInvalidAmount) {
		t.Fatalf("отрицательное значение: %v", err)
	}
}

func TestSetLevelFloors(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	if err := s.SetLevel(ctx, 1, -5); err != nil {
		t.Fatal(err)
	}
	if err := s.SetXP(ctx, 1, -100); err != nil {
		t.Fatal(err)
	}
	if err := s.SetReputation(ctx, 1, -40); err != nil {
		t.Fatal(err)
	}

	s.ledger.View(func() {
		acc := s.ledger.GetOrCreate(ctx, 1)
		if acc.Level != 1 {
			t.Errorf("уровень = %d, ожидался 1", acc.Level)
		}
		if acc.XP != 0 {
			t.Errorf("опыт = %d, ожидался 0", acc.XP)
		}
		if acc.Reputation != -40 {
			t.Errorf("репутация = %d", acc.Reputation)
		}
	})
}

func TestSetJob(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	// В обход требования уровня
	if err := s.SetJob(ctx, 1, "businessman"); err != nil {
		t.Fatal(err)
	}
	s.ledger.View(func() {
		if job := s.ledger.GetOrCreate(ctx, 1).Job; job != "businessman" {
			t.Errorf("работа = %q", job)
		}
	})

	if err := s.SetJob(ctx, 1, JobNone); err != nil {
		t.Fatal(err)
	}
	s.ledger.View(func() {
		if job := s.ledger.GetOrCreate(ctx, 1).Job; job != "" {
			t.Errorf("работа не очищена: %q", job)
		}
	})

	if err := s.SetJob(ctx, 1, "pilot"); !errors.Is(err, common.ErrUnknownCatalogID) {
		t.Fatalf("неизвестная работа: %v", err)
	}
}

func TestGiveItemIncludingSecret(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	// Секретный предмет выдаётся только этой операцией
	if err := s.GiveItem(ctx, 1, catalog.ItemSupremeRing); err != nil {
		t.Fatal(err)
	}
	if err := s.GiveItem(ctx, 1, catalog.ItemSupremeRing); !errors.Is(err, common.ErrAlreadyOwned) {
		t.Fatalf("повторная выдача: %v", err)
	}

	// Товар чёрного рынка тоже доступен
	if err := s.GiveItem(ctx, 1, catalog.MarketPlasmaGun); err != nil {
		t.Fatal(err)
	}

	if err := s.GiveItem(ctx, 1, "teleporter"); !errors.Is(err, common.ErrUnknownCatalogID) {
		t.Fatalf("неизвестный предмет: %v", err)
	}

	if err := s.TakeItem(ctx, 1, catalog.MarketPlasmaGun); err != nil {
		t.Fatal(err)
	}
	if err := s.TakeItem(ctx, 1, catalog.MarketPlasmaGun); !errors.Is(err, common.ErrUnknownCatalogID) {
		t.Fatalf("изъятие отсутствующего: %v", err)
	}
}

func TestWipeAllConfirmationGate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	if _, err := s.AddMoney(ctx, 1, 100); err != nil {
		t.Fatal(err)
	}

	if err := s.WipeAll(ctx, "confirmar"); !errors.Is(err, common.ErrWrongConfirmation) {
		t.Fatalf("неточное слово: %v", err)
	}
	if err := s.WipeAll(ctx, ""); !errors.Is(err, common.ErrWrongConfirmation) {
		t.Fatalf("пустое слово: %v", err)
	}
	s.ledger.View(func() {
		if s.ledger.Len() == 0 {
			t.Fatal("таблица стёрта без подтверждения")
		}
	})

	if err := s.WipeAll(ctx, "CONFIRMAR"); err != nil {
		t.Fatal(err)
	}
	s.ledger.View(func() {
		if s.ledger.Len() != 0 {
			t.Fatal("таблица не стёрта")
		}
	})
}

func TestResetUser(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	if _, err := s.SetMoney(ctx, 1, 99999); err != nil {
		t.Fatal(err)
	}
	if err := s.ResetUser(ctx, 1); err != nil {
		t.Fatal(err)
	}

	s.ledger.View(func() {
		// Повторное обращение начинает со стартовых значений
		if acc := s.ledger.GetOrCreate(ctx, 1); acc.Wallet != 1000 {
			t.Errorf("кошелёк после сброса = %d", acc.Wallet)
		}
	})
}

func TestGiveAllSkipsAdmins(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	s.ledger.Update(ctx, func() error {
		s.ledger.GetOrCreate(ctx, 1)
		s.ledger.GetOrCreate(ctx, 2)
		s.ledger.GetOrCreate(ctx, 100) // админ
		return nil
	})

	res, err := s.GiveAll(ctx, 250)
	if err != nil {
		t.Fatal(err)
	}
	if res.Recipients != 2 {
		t.Fatalf("получателей = %d, ожидалось 2", res.Recipients)
	}

	s.ledger.View(func() {
		if acc := s.ledger.GetOrCreate(ctx, 100); acc.Wallet != 1000 {
			t.Errorf("админ получил выплату: %d", acc.Wallet)
		}
		if acc := s.ledger.GetOrCreate(ctx, 2); acc.Wallet != 1250 {
			t.Errorf("кошелёк получателя = %d", acc.Wallet)
		}
	})
}

func TestRaffle(t *testing.T) {
	ctx := context.Background()
	s, sink := newTestService(t)

	// Без участников — отказ
	var ne *common.NotEligibleError
	if _, err := s.Raffle(ctx, 100, 5000, ""); !errors.As(err, &ne) {
		t.Fatalf("пустой розыгрыш: %v", err)
	}

	s.ledger.Update(ctx, func() error {
		s.ledger.GetOrCreate(ctx, 1)
		s.ledger.GetOrCreate(ctx, 2)
		s.ledger.GetOrCreate(ctx, 100) // админ не участвует
		return nil
	})

	res, err := s.Raffle(ctx, 100, 5000, "Счастливчик")
	if err != nil {
		t.Fatal(err)
	}
	if res.WinnerID == 100 {
		t.Fatal("приз выиграл админ")
	}
	if res.Announced != "Счастливчик" {
		t.Fatalf("публичное имя = %q", res.Announced)
	}
	if res.Wallet != 6000 {
		t.Fatalf("кошелёк победителя = %d", res.Wallet)
	}

	if len(sink.events) != 1 {
		t.Fatalf("событий модерации = %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Action != modlog.ActionRaffle || ev.Actor != 100 || ev.Target != res.WinnerID || ev.Amount != 5000 {
		t.Fatalf("событие: %+v", ev)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	s.ledger.Update(ctx, func() error {
		s.ledger.GetOrCreate(ctx, 1).Bank = 500
		s.ledger.GetOrCreate(ctx, 2).Wallet = 3000
		return nil
	})

	stats := s.Stats()
	if stats.Accounts != 2 {
		t.Fatalf("аккаунтов = %d", stats.Accounts)
	}
	if stats.TotalWallet != 4000 || stats.TotalBank != 500 {
		t.Fatalf("сводка: %+v", stats)
	}
	if stats.TotalMoney != 4500 {
		t.Fatalf("всего денег = %d", stats.TotalMoney)
	}
	if stats.AverageNet != 2250 {
		t.Fatalf("среднее состояние = %d", stats.AverageNet)
	}
}

func TestStatsCountsRingAndVIP(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	if err := s.GiveItem(ctx, 1, catalog.ItemSupremeRing); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GiveVIP(ctx, 2, "alpha"); err != nil {
		t.Fatal(err)
	}

	stats := s.Stats()
	if stats.RingHolders != 1 {
		t.Fatalf("носителей кольца = %d", stats.RingHolders)
	}
	if stats.ActiveVIPs != 1 {
		t.Fatalf("активных VIP = %d", stats.ActiveVIPs)
	}
}

func TestVIPDelegation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	if err := s.ConfigureVIPRole("alpha", 777); err != nil {
		t.Fatal(err)
	}
	res, err := s.GiveVIP(ctx, 1, "alpha")
	if err != nil {
		t.Fatal(err)
	}
	if !res.GrantRole.Linked || res.GrantRole.RoleID != 777 {
		t.Fatalf("сигнал роли: %+v", res.GrantRole)
	}

	if holders := s.ListVIPs(); len(holders) != 1 || holders[0].UserID != 1 {
		t.Fatalf("обладатели: %+v", holders)
	}

	dropped, err := s.RemoveVIP(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if dropped.RoleID != 777 {
		t.Fatalf("снятая роль: %+v", dropped)
	}
}
