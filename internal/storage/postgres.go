// Package storage — postgres.go хранит снапшоты аккаунтов в PostgreSQL.
// Семантика та же, что у файла: SaveAll переписывает таблицу целиком
// в одной транзакции БД, LoadAll читает её при старте процесса.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"astralrp.ru/economy-bot/internal/config"
	"astralrp.ru/economy-bot/internal/ledger"
)

// PostgresStore — шлюз персистентности поверх пула pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgresStore создаёт пул соединений и готовит схему.
//
// Пул автоматически управляет открытием/закрытием соединений,
// переподключается при обрыве и ограничивает максимальное число соединений.
func OpenPostgresStore(ctx context.Context, cfg *config.Config) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга DSN: %w", err)
	}

	// Настройки пула соединений
	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("база данных недоступна: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("Подключение к PostgreSQL установлено")
	return s, nil
}

// ensureSchema создаёт таблицу снапшотов, если её нет.
func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			user_key   TEXT PRIMARY KEY,
			snapshot   JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("ошибка создания схемы: %w", err)
	}
	return nil
}

// LoadAll читает все снапшоты аккаунтов.
func (s *PostgresStore) LoadAll(ctx context.Context) (map[string]*ledger.Account, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_key, snapshot FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения аккаунтов: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]*ledger.Account)
	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("ошибка сканирования аккаунта: %w", err)
		}
		var acc ledger.Account
		if err := json.Unmarshal(raw, &acc); err != nil {
			return nil, fmt.Errorf("повреждён снапшот %s: %w", key, err)
		}
		accounts[key] = &acc
	}
	return accounts, rows.Err()
}

// SaveAll переписывает таблицу снапшотов целиком.
// Транзакция БД: либо вся таблица обновится, либо ничего.
func (s *PostgresStore) SaveAll(ctx context.Context, accounts map[string]*ledger.Account) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("ошибка очистки таблицы: %w", err)
	}

	for key, acc := range accounts {
		raw, err := json.Marshal(acc)
		if err != nil {
			return fmt.Errorf("ошибка сериализации аккаунта %s: %w", key, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO accounts (user_key, snapshot, updated_at)
			VALUES ($1, $2, NOW())
		`, key, raw)
		if err != nil {
			return fmt.Errorf("ошибка записи аккаунта %s: %w", key, err)
		}
	}

	return tx.Commit(ctx)
}

// Close закрывает пул соединений.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
