// Package ledger владеет записями аккаунтов экономики.
// models.go описывает структуру аккаунта — единственную запись на пользователя.
package ledger

import (
	"strconv"
	"time"
)

// Account представляет экономическое состояние одного пользователя.
// Ledger — единственный владелец экземпляров; правила получают указатель
// и мутируют поля напрямую под общим замком мутаций.
//
// Арифметика полей здесь «сырая»: проверки достаточности средств и
// клампы — обязанность правила, которое вызывает мутацию.
type Account struct {
	Wallet     int64           `json:"wallet"`     // Наличные (уязвимы для кражи)
	Bank       int64           `json:"bank"`       // Банк (кража невозможна)
	Inventory  map[string]bool `json:"inventory"`  // Предметы, каждый максимум один
	Apps       []string        `json:"apps"`       // Приложения в порядке установки
	Job        string          `json:"job,omitempty"`
	Level      int             `json:"level"`
	XP         int             `json:"xp"`
	Reputation int             `json:"reputation"` // Может уходить в минус без ограничений
	VIP        string          `json:"vip,omitempty"`
	HasPhone   bool            `json:"has_phone"`

	// Перезарядки действий (nil = действие ещё не выполнялось)
	LastDaily *time.Time `json:"last_daily,omitempty"`
	LastWork  *time.Time `json:"last_work,omitempty"`
	LastTheft *time.Time `json:"last_theft,omitempty"`

	// Дневные маркеры Кольца: календарная дата "2006-01-02"
	LastRingCreate string `json:"last_ring_create,omitempty"`
	LastRingPunish string `json:"last_ring_punish,omitempty"`
}

// NewAccount создаёт аккаунт с документированными дефолтами.
func NewAccount(startingWallet int64) *Account {
	return &Account{
		Wallet:    startingWallet,
		Inventory: make(map[string]bool),
		Apps:      []string{},
		Level:     1,
	}
}

// HasItem сообщает, есть ли предмет в инвентаре.
func (a *Account) HasItem(itemID string) bool {
	return a.Inventory[itemID]
}

// AddItem кладёт предмет в инвентарь. Идемпотентность (отказ при повторе)
// обеспечивает правило, не леджер.
func (a *Account) AddItem(itemID string) {
	if a.Inventory == nil {
		a.Inventory = make(map[string]bool)
	}
	a.Inventory[itemID] = true
}

// RemoveItem убирает предмет. Возвращает false, если предмета не было.
func (a *Account) RemoveItem(itemID string) bool {
	if !a.Inventory[itemID] {
		return false
	}
	delete(a.Inventory, itemID)
	return true
}

// HasApp сообщает, установлено ли приложение.
func (a *Account) HasApp(appID string) bool {
	for _, id := range a.Apps {
		if id == appID {
			return true
		}
	}
	return false
}

// NetWorth возвращает суммарное состояние (кошелёк + банк).
func (a *Account) NetWorth() int64 {
	return a.Wallet + a.Bank
}

// Key возвращает строковый ключ пользователя в таблице аккаунтов.
// В хранилище таблица всегда индексируется строковым id.
func Key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// ParseKey — обратное преобразование ключа таблицы в user id.
func ParseKey(key string) (int64, error) {
	return strconv.ParseInt(key, 10, 64)
}
