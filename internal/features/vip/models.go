// Package vip управляет VIP-планами: покупка, выдача, отзыв и привязка
// внешних ролей. Сам движок роли не назначает — он лишь сообщает
// вызывающему, какую привязанную роль выдать или снять.
package vip

import "astralrp.ru/economy-bot/internal/catalog"

// RoleSignal — сигнал внешнему слою о привязанной роли.
// RoleID значим только при Linked = true.
type RoleSignal struct {
	Linked bool
	RoleID int64
}

// PurchaseResult — результат покупки VIP-плана.
type PurchaseResult struct {
	Tier      *catalog.VIPTier
	Wallet    int64
	GrantRole RoleSignal // Роль нового плана
	DropRole  RoleSignal // Роль предыдущего плана (при смене)
}

// StatusView — текущий VIP-статус пользователя.
type StatusView struct {
	Active bool
	Tier   *catalog.VIPTier
}

// Holder — обладатель VIP-плана.
type Holder struct {
	UserID int64
	TierID string
}
