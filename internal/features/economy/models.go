// Package economy управляет базовыми денежными операциями:
// дневное пособие, переводы, банк, профили и рейтинг.
// models.go описывает структурированные результаты правил.
package economy

import "time"

// Перезарядка дневного пособия.
const DailyCooldown = 24 * time.Hour

// Диапазон дневного пособия (включительно).
const (
	DailyMin = 800
	DailyMax = 1500
)

// Комиссия перевода: 5% уничтожается (никому не начисляется).
const TransferFeePercent = 5

// XP за получение пособия.
const DailyXP = 10

// DailyResult — результат получения дневного пособия.
type DailyResult struct {
	Amount int64 // Начислено в кошелёк
	XP     int   // Начислено опыта
	Wallet int64 // Кошелёк после начисления
}

// TransferResult — результат перевода.
type TransferResult struct {
	Amount       int64 // Списано у отправителя
	Fee          int64 // Комиссия (уничтожена)
	Received     int64 // Получено адресатом
	SenderWallet int64 // Кошелёк отправителя после перевода
}

// BankResult — результат депозита или снятия.
type BankResult struct {
	Amount int64
	Wallet int64
	Bank   int64
}

// BalanceView — срез балансов пользователя.
type BalanceView struct {
	Wallet int64
	Bank   int64
	Total  int64
}

// ProfileView — полный профиль пользователя.
type ProfileView struct {
	Wallet     int64
	Bank       int64
	Total      int64
	Job        string // "" = безработный
	Level      int
	XP         int
	Reputation int
	VIP        string // "" = нет VIP
	HasPhone   bool
	AppsCount  int
	Items      []string
	HasRing    bool
}

// RankEntry — строка рейтинга состояний.
type RankEntry struct {
	UserID  int64
	Total   int64
	HasRing bool
}
