// Package crime управляет нелегальным заработком: кражи и преступления.
package crime

import "time"

// Перезарядка кражи.
const StealCooldown = 2 * time.Hour

// Минимальный кошелёк жертвы, при котором кража возможна.
const StealMinTargetWallet = 100

// Границы суммы кражи и штрафа за провал.
const (
	StealMin     = 50
	StealCap     = 1000
	StealFineMin = 200
	StealFineMax = 500
)

// Репутационные штрафы кражи.
const (
	StealSuccessRepPenalty = 5
	StealFailRepPenalty    = 10
)

// Параметры преступлений.
const (
	CrimeXP                = 30
	CrimeSuccessRepPenalty = 15
	CrimeFailRepPenalty    = 25
	ReducedFailRepPenalty  = 15 // с поддельным паспортом
	CrimeFineMin           = 1000
	CrimeFineMax           = 3000
	ReducedFineMin         = 300
	ReducedFineMax         = 1000
	PlasmaGunBonus         = 0.30 // добавка к шансу успеха, без верхней границы
)

// Definition — описание преступления.
type Definition struct {
	ID          string
	Name        string
	MinPayout   int64
	MaxPayout   int64
	SuccessRate float64
}

// Пять преступлений исходной экономики.
var crimes = []*Definition{
	{ID: "atm", Name: "Взлом банкомата", MinPayout: 2000, MaxPayout: 5000, SuccessRate: 0.3},
	{ID: "jewelry", Name: "Ограбление ювелирного", MinPayout: 3000, MaxPayout: 8000, SuccessRate: 0.25},
	{ID: "bank", Name: "Ограбление банка", MinPayout: 5000, MaxPayout: 15000, SuccessRate: 0.2},
	{ID: "smuggling", Name: "Контрабанда товаров", MinPayout: 1500, MaxPayout: 4000, SuccessRate: 0.4},
	{ID: "fraud", Name: "Мошенничество с системой", MinPayout: 4000, MaxPayout: 10000, SuccessRate: 0.25},
}

// StealResult — результат попытки кражи.
type StealResult struct {
	Success    bool
	Amount     int64 // Украдено (успех) или штраф (провал)
	Wallet     int64
	Reputation int
}

// CrimeResult — результат попытки преступления.
type CrimeResult struct {
	Crime      *Definition
	Success    bool
	Amount     int64 // Добыча (успех) или штраф (провал)
	XP         int   // Начислено только при успехе
	Wallet     int64
	Reputation int
}
