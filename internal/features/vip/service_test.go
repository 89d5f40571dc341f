package vip

import (
	"context"
	"errors"
	"testing"

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

func newTestService(t *testing.T, startingWallet int64) *Service {
	t.Helper()
	l, err := ledger.Open(context.Background(), memGateway{}, startingWallet)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	return NewService(l, catalog.New())
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, 20000)

	res, err := s.Purchase(ctx, 1, "alpha")
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if res.Wallet != 17000 {
		t.Fatalf("кошелёк = %d, ожидалось 17000", res.Wallet)
	}
	if res.GrantRole.Linked {
		t.Fatal("роль не привязана, но сигнал помечен Linked")
	}

	// Повторная покупка того же плана отклоняется
	if _, err := s.Purchase(ctx, 1, "alpha"); !errors.Is(err, common.ErrVIPAlreadyActive) {
		t.Fatalf("повторная покупка: %v", err)
	}

	// Смена плана разрешена, по полной цене
	res, err = s.Purchase(ctx, 1, "beta")
	if err != nil {
		t.Fatalf("смена плана: %v", err)
	}
	if res.Wallet != 7000 {
		t.Fatalf("кошелёк = %d, ожидалось 7000", res.Wallet)
	}
}

func TestPurchaseRejections(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, 100)

	if _, err := s.Purchase(ctx, 1, "platinum"); !errors.Is(err, common.ErrUnknownCatalogID) {
		t.Fatalf("неизвестный план: %v", err)
	}

	var insuf *common.InsufficientFundsError
	if _, err := s.Purchase(ctx, 1, "alpha"); !errors.As(err, &insuf) {
		t.Fatalf("нехватка средств: %v", err)
	}
}

func TestRoleSignals(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, 50000)

	if err := s.ConfigureRole("alpha", 111); err != nil {
		t.Fatal(err)
	}
	if err := s.ConfigureRole("beta", 222); err != nil {
		t.Fatal(err)
	}
	if err := s.ConfigureRole("platinum", 999); !errors.Is(err, common.ErrUnknownCatalogID) {
		t.Fatalf("привязка к неизвестному плану: %v", err)
	}

	res, err := s.Purchase(ctx, 1, "alpha")
	if err != nil {
		t.Fatal(err)
	}
	if !res.GrantRole.Linked || res.GrantRole.RoleID != 111 {
		t.Fatalf("сигнал выдачи: %+v", res.GrantRole)
	}
	if res.DropRole.Linked {
		t.Fatal("первая покупка не должна снимать роль")
	}

	// Смена alpha → beta: выдать 222, снять 111
	res, err = s.Purchase(ctx, 1, "beta")
	if err != nil {
		t.Fatal(err)
	}
	if res.GrantRole.RoleID != 222 || res.DropRole.RoleID != 111 {
		t.Fatalf("сигналы смены плана: grant=%+v drop=%+v", res.GrantRole, res.DropRole)
	}

	dropped, err := s.Revoke(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !dropped.Linked || dropped.RoleID != 222 {
		t.Fatalf("сигнал снятия: %+v", dropped)
	}
}

func TestGrantAndRevoke(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, 0)

	res, err := s.Grant(ctx, 1, "omega")
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if res.Wallet != 0 {
		t.Fatal("выдача плана не должна трогать кошелёк")
	}

	st := s.Status(ctx, 1)
	if !st.Active || st.Tier.ID != "omega" {
		t.Fatalf("статус: %+v", st)
	}

	if _, err := s.Revoke(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Revoke(ctx, 1); !errors.Is(err, common.ErrNoVIP) {
		t.Fatalf("повторное снятие: %v", err)
	}
	if st := s.Status(ctx, 1); st.Active {
		t.Fatal("статус активен после снятия")
	}
}

func TestListHolders(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, 0)

	if _, err := s.Grant(ctx, 3, "alpha"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Grant(ctx, 1, "beta"); err != nil {
		t.Fatal(err)
	}
	s.ledger.View(func() {
		s.ledger.GetOrCreate(ctx, 2) // без VIP
	})

	holders := s.ListHolders()
	if len(holders) != 2 {
		t.Fatalf("обладателей = %d, ожидалось 2", len(holders))
	}
	if holders[0].UserID != 1 || holders[1].UserID != 3 {
		t.Fatalf("порядок: %+v", holders)
	}
}
