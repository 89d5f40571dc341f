// Package admin управляет привилегированными операциями: прямые правки
// аккаунтов, массовые выплаты, розыгрыши и полный сброс таблицы.
// Каждая операция требует авторизации: ID в списке админов плюс пароль.
package admin

// Сброс работы: это значение очищает поле Job.
const JobNone = "none"

// MoneyResult — результат правки денег пользователя.
type MoneyResult struct {
	UserID int64
	Wallet int64
	Bank   int64
}

// GiveAllResult — результат массовой выплаты.
type GiveAllResult struct {
	Amount     int64
	Recipients int // Не-админские аккаунты, получившие выплату
}

// RaffleResult — результат розыгрыша.
type RaffleResult struct {
	WinnerID  int64
	Announced string // Публичное имя для объявления ("" = показывать ID)
	Prize     int64
	Wallet    int64 // Кошелёк победителя после начисления
}

// StatsView — сводка по экономике.
type StatsView struct {
	Accounts    int
	TotalWallet int64
	TotalBank   int64
	TotalMoney  int64
	AverageNet  int64 // Среднее состояние на аккаунт
	RingHolders int
	ActiveVIPs  int
}
