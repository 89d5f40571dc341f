// Package shop управляет покупками: магазин, чёрный рынок и приложения.
package shop

// Репутационный штраф за покупку на чёрном рынке.
const MarketReputationPenalty = 20

// PurchaseResult — результат покупки предмета или приложения.
type PurchaseResult struct {
	ID         string
	Price      int64
	Wallet     int64
	Reputation int // Репутация после покупки (меняется только чёрным рынком)
}

// InventoryView — содержимое инвентаря пользователя.
type InventoryView struct {
	Items    []string
	Apps     []string
	HasPhone bool
}
