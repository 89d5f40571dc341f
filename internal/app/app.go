// Package app инициализирует все компоненты движка.
// app.go — точка сборки: открывает хранилище, загружает леджер,
// создаёт каталог и сервисы и собирает всё в один объект App.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"astralrp.ru/economy-bot/internal/catalog"
	"astralrp.ru/economy-bot/internal/config"
	"astralrp.ru/economy-bot/internal/features/admin"
	"astralrp.ru/economy-bot/internal/features/casino"
	"astralrp.ru/economy-bot/internal/features/crime"
	"astralrp.ru/economy-bot/internal/features/economy"
	"astralrp.ru/economy-bot/internal/features/ring"
	"astralrp.ru/economy-bot/internal/features/shop"
	"astralrp.ru/economy-bot/internal/features/vip"
	"astralrp.ru/economy-bot/internal/features/work"
	"astralrp.ru/economy-bot/internal/jobs"
	"astralrp.ru/economy-bot/internal/ledger"
	"astralrp.ru/economy-bot/internal/modlog"
	"astralrp.ru/economy-bot/internal/storage"
)

// App содержит все компоненты движка.
type App struct {
	Ledger    *ledger.Ledger
	Catalog   *catalog.Catalog
	Scheduler *jobs.Scheduler
	Store     ledger.Gateway

	Economy *economy.Service
	Work    *work.Service
	Shop    *shop.Service
	Crime   *crime.Service
	Casino  *casino.Service
	VIP     *vip.Service
	Ring    *ring.Service
	Admin   *admin.Service
}

// New создаёт и инициализирует движок.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. Хранилище ===
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия хранилища: %w", err)
	}

	// === 2. Леджер ===
	l, err := ledger.Open(ctx, store, cfg.EconomyStartingWallet)
	if err != nil {
		store.Close()
		return nil, err
	}

	// === 3. Каталог и общие коллабораторы ===
	cat := catalog.New()
	sink := modlog.LogrusSink{}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// === 4. Сервисы ===
	economyService := economy.NewService(l, cat, rng)
	workService := work.NewService(l, cat)
	shopService := shop.NewService(l, cat)
	crimeService := crime.NewService(l, cat, rng)
	casinoService := casino.NewService(l, rng)
	vipService := vip.NewService(l, cat)
	ringService := ring.NewService(l, cat, cfg, sink)
	adminService := admin.NewService(l, cat, cfg, vipService, sink, rng)

	// === 5. Планировщик задач ===
	scheduler := jobs.NewScheduler(l, cfg.AppTimezone)

	return &App{
		Ledger:    l,
		Catalog:   cat,
		Scheduler: scheduler,
		Store:     store,
		Economy:   economyService,
		Work:      workService,
		Shop:      shopService,
		Crime:     crimeService,
		Casino:    casinoService,
		VIP:       vipService,
		Ring:      ringService,
		Admin:     adminService,
	}, nil
}

// Close сбрасывает таблицу на диск и закрывает хранилище.
func (a *App) Close(ctx context.Context) error {
	if err := a.Ledger.Flush(ctx); err != nil {
		a.Store.Close()
		return err
	}
	return a.Store.Close()
}
