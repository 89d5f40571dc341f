// Package casino управляет азартными операциями: подбрасывание монеты
// и рискованные инвестиции.
package casino

// Стороны монеты.
const (
	SideHeads = "heads"
	SideTails = "tails"
)

// Параметры инвестиций.
const (
	InvestMinStake   = 500
	InvestWinChance  = 0.4
	InvestGainMinMul = 1.5
	InvestGainMaxMul = 2.5
	InvestLossMinFr  = 0.3
	InvestLossMaxFr  = 0.7
)

// FlipResult — результат подбрасывания монеты.
type FlipResult struct {
	Choice string
	Landed string
	Won    bool
	Stake  int64
	Wallet int64
}

// InvestResult — результат инвестиции.
type InvestResult struct {
	Won    bool
	Stake  int64
	Delta  int64 // Прибыль (положительная) или потеря (отрицательная)
	Wallet int64
}
