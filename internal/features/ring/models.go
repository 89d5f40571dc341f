// Package ring управляет способностями Верховного Кольца: сотворение
// денег из ничего и кара (полное обнуление жертвы). Каждая способность
// доступна раз в календарные сутки.
package ring

// CreateResult — результат сотворения денег.
type CreateResult struct {
	Amount int64
	Wallet int64
}

// PunishResult — результат кары.
type PunishResult struct {
	TargetID       int64
	WalletDrained  int64
	BankDrained    int64
	ItemsDestroyed int
	AppsDestroyed  int
}
