// Package work управляет работами: список вакансий, устройство и смены.
package work

import "astralrp.ru/economy-bot/internal/catalog"

// XP за отработанную смену.
const WorkXP = 20

// JobListing — вакансия с отметкой доступности для уровня пользователя.
type JobListing struct {
	Job       catalog.Job
	Available bool // Уровень пользователя достаточен
}

// ApplyResult — результат устройства на работу.
type ApplyResult struct {
	JobID  string
	Salary int64
}

// WorkResult — результат отработанной смены.
type WorkResult struct {
	JobID  string
	Earned int64 // С учётом бонуса от игрового ПК
	Bonus  bool  // Применён ли множитель gaming_pc
	XP     int
	Wallet int64
}
