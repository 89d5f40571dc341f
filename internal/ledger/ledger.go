// Package ledger — ledger.go реализует операции над таблицей аккаунтов.
// Все мутации проходят через единый замок: два правила никогда не
// перемежают свои read–modify–write на одном аккаунте.
package ledger

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Gateway — шлюз персистентности (внешний коллаборатор).
// Таблица читается целиком при старте и пишется целиком после каждой мутации.
type Gateway interface {
	LoadAll(ctx context.Context) (map[string]*Account, error)
	SaveAll(ctx context.Context, accounts map[string]*Account) error
	Close() error
}

// Ledger держит таблицу аккаунтов в памяти и оркестрирует персистентность.
// Правила НЕ вызывают SaveAll сами — только Update, в одном месте.
type Ledger struct {
	mu             sync.Mutex
	gw             Gateway
	accounts       map[string]*Account
	startingWallet int64
}

// Open загружает таблицу аккаунтов из шлюза.
func Open(ctx context.Context, gw Gateway, startingWallet int64) (*Ledger, error) {
	accounts, err := gw.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить таблицу аккаунтов: %w", err)
	}
	if accounts == nil {
		accounts = make(map[string]*Account)
	}

	log.WithField("accounts", len(accounts)).Info("Таблица аккаунтов загружена")

	return &Ledger{
		gw:             gw,
		accounts:       accounts,
		startingWallet: startingWallet,
	}, nil
}

// Update выполняет тело правила под замком мутаций и, если правило
// завершилось успешно, durably сохраняет всю таблицу.
//
// Ошибка сохранения возвращается вызывающему, при этом память уже
// мутирована — отката нет (принятый риск, см. периодический Flush).
func (l *Ledger) Update(ctx context.Context, fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := fn(); err != nil {
		return err
	}
	if err := l.gw.SaveAll(ctx, l.accounts); err != nil {
		return fmt.Errorf("ошибка сохранения таблицы: %w", err)
	}
	return nil
}

// View выполняет fn под тем же замком без финального сохранения.
// Для запросов на чтение (балансы, профили, рейтинги).
func (l *Ledger) View(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

// GetOrCreate возвращает аккаунт пользователя, создавая его с дефолтами
// при первом обращении. Никогда не падает: ошибка немедленного сохранения
// новой записи логируется — запись попадёт в следующий успешный SaveAll.
//
// Вызывать только изнутри Update или View (замок уже взят).
func (l *Ledger) GetOrCreate(ctx context.Context, userID int64) *Account {
	key := Key(userID)
	if acc, ok := l.accounts[key]; ok {
		return acc
	}

	acc := NewAccount(l.startingWallet)
	l.accounts[key] = acc

	// Новая запись сохраняется сразу, не дожидаясь первой мутации
	if err := l.gw.SaveAll(ctx, l.accounts); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Не удалось сохранить новый аккаунт")
	}

	log.WithField("user_id", userID).Debug("Создан новый аккаунт")
	return acc
}

// Get возвращает существующий аккаунт без создания.
// Вызывать только под замком (Update/View).
func (l *Ledger) Get(userID int64) (*Account, bool) {
	acc, ok := l.accounts[Key(userID)]
	return acc, ok
}

// Delete удаляет запись пользователя (админский сброс).
// Вызывать только изнутри Update.
func (l *Ledger) Delete(userID int64) {
	delete(l.accounts, Key(userID))
}

// WipeAll очищает всю таблицу (необратимая админская операция).
// Вызывать только изнутри Update.
func (l *Ledger) WipeAll() {
	l.accounts = make(map[string]*Account)
}

// ForEach обходит все аккаунты. Вызывать только под замком (Update/View).
func (l *Ledger) ForEach(fn func(userID int64, acc *Account)) {
	for key, acc := range l.accounts {
		id, err := ParseKey(key)
		if err != nil {
			log.WithField("key", key).Warn("Некорректный ключ в таблице аккаунтов")
			continue
		}
		fn(id, acc)
	}
}

// Len возвращает число известных аккаунтов. Вызывать под замком.
func (l *Ledger) Len() int {
	return len(l.accounts)
}

// Flush принудительно сохраняет таблицу. Используется cron-задачей
// и при остановке процесса как страховка.
func (l *Ledger) Flush(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gw.SaveAll(ctx, l.accounts)
}
