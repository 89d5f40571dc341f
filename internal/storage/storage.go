// Package storage — storage.go выбирает реализацию шлюза по конфигурации.
package storage

import (
	"context"
	"fmt"

	"astralrp.ru/economy-bot/internal/config"
	"astralrp.ru/economy-bot/internal/ledger"
)

// Open возвращает шлюз персистентности согласно STORE_DRIVER.
func Open(ctx context.Context, cfg *config.Config) (ledger.Gateway, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverFile:
		return OpenFileStore(cfg.DataFile)
	case config.StoreDriverPostgres:
		return OpenPostgresStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища: %q", cfg.StoreDriver)
	}
}
