// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях движка экономики.
// Это терминальные исходы правил, а не исключения: обработчики различают
// их через errors.Is/errors.As и показывают пользователю понятное сообщение.
package common

import (
	"errors"
	"fmt"
	"time"
)

// Ошибки валидации (обнаруживаются ДО любой мутации)
var (
	// ErrSelfTarget — действие направлено на самого себя (перевод, кража)
	ErrSelfTarget = errors.New("нельзя выбрать целью самого себя")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
	// ErrUnknownCatalogID — id отсутствует в каталоге (предмет, работа, VIP)
	ErrUnknownCatalogID = errors.New("не найдено в каталоге")
	// ErrWrongConfirmation — строка подтверждения не совпала
	ErrWrongConfirmation = errors.New("неверная строка подтверждения")
	// ErrInvalidChoice — недопустимый вариант в ставке (не heads/tails)
	ErrInvalidChoice = errors.New("выберите heads или tails")
)

// Ошибки допуска (состояние аккаунта не позволяет действие)
var (
	// ErrAlreadyOwned — предмет уже есть в инвентаре
	ErrAlreadyOwned = errors.New("этот предмет уже есть")
	// ErrNoJob — у пользователя нет работы
	ErrNoJob = errors.New("у вас нет работы")
	// ErrNoPhone — нужен активированный телефон
	ErrNoPhone = errors.New("нужен телефон")
	// ErrVIPAlreadyActive — этот VIP-план уже активен
	ErrVIPAlreadyActive = errors.New("этот VIP уже активен")
	// ErrNoVIP — у пользователя нет VIP
	ErrNoVIP = errors.New("у пользователя нет VIP")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrWrongPassword — неверный пароль оператора
	ErrWrongPassword = errors.New("неверный пароль")
)

// CooldownError — действие на перезарядке. Remaining позволяет показать
// пользователю точное время ожидания.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("подождите ещё %s", FormatDuration(e.Remaining))
}

// NewCooldown строит CooldownError по моменту последнего использования.
func NewCooldown(last time.Time, period time.Duration, now time.Time) *CooldownError {
	return &CooldownError{Remaining: period - now.Sub(last)}
}

// InsufficientFundsError — не хватает средств. Shortfall — сколько не хватает.
type InsufficientFundsError struct {
	Shortfall int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("недостаточно средств: не хватает %d", e.Shortfall)
}

// NotEligibleError — действие недоступно по доменной причине
// (цель слишком бедна, мало уровня, нет нужного предмета).
type NotEligibleError struct {
	Reason string
}

func (e *NotEligibleError) Error() string {
	return e.Reason
}
