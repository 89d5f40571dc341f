// Package storage реализует шлюз персистентности таблицы аккаунтов.
// filestore.go — хранилище по умолчанию: один JSON-файл, читаемый глазами,
// ключ — строковый id пользователя, запись всегда целиком (без патчей).
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"astralrp.ru/economy-bot/internal/ledger"
)

// FileStore хранит всю таблицу аккаунтов в одном JSON-файле.
type FileStore struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// OpenFileStore открывает (или создаёт) файл данных.
// Родительская директория создаётся при необходимости.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию данных: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл данных: %w", err)
	}
	return &FileStore{file: f, path: path}, nil
}

// LoadAll читает всю таблицу аккаунтов. Пустой файл — пустая таблица.
func (s *FileStore) LoadAll(ctx context.Context) (map[string]*ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.file.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return make(map[string]*ledger.Account), nil
	}

	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	var accounts map[string]*ledger.Account
	if err := json.NewDecoder(s.file).Decode(&accounts); err != nil {
		return nil, fmt.Errorf("повреждён файл данных %s: %w", s.path, err)
	}
	return accounts, nil
}

// SaveAll переписывает файл целиком с отступами (human-diffable).
func (s *FileStore) SaveAll(ctx context.Context, accounts map[string]*ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(accounts); err != nil {
		return err
	}

	// Обрезаем хвост на случай, если новая таблица короче старой
	pos, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if err := s.file.Truncate(pos); err != nil {
		return err
	}
	return s.file.Sync()
}

// Close закрывает файл данных.
func (s *FileStore) Close() error {
	return s.file.Close()
}
