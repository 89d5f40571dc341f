// Package modlog отправляет структурированные события модерации
// (способности Кольца, админские розыгрыши) во внешний лог-приёмник.
// Доставка — best-effort: сбой приёмника никогда не влияет на исход
// основной операции.
package modlog

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Действия, попадающие в лог модерации.
const (
	ActionRingCreate = "ring_create"
	ActionRingPunish = "ring_punish"
	ActionRaffle     = "raffle"
)

// Event — одно событие модерации.
type Event struct {
	ID     uuid.UUID
	Actor  int64
	Target int64 // 0, если действие без цели
	Action string
	Amount int64 // 0, если действие без суммы
	At     time.Time
}

// Sink — приёмник событий модерации (внешний коллаборатор).
type Sink interface {
	Log(event Event) error
}

// NewEvent заполняет служебные поля события.
func NewEvent(actor, target int64, action string, amount int64, at time.Time) Event {
	return Event{
		ID:     uuid.New(),
		Actor:  actor,
		Target: target,
		Action: action,
		Amount: amount,
		At:     at,
	}
}

// Emit отправляет событие в приёмник, проглатывая ошибку доставки.
func Emit(sink Sink, event Event) {
	if sink == nil {
		return
	}
	if err := sink.Log(event); err != nil {
		log.WithError(err).WithField("action", event.Action).Warn("Событие модерации не доставлено")
	}
}

// LogrusSink пишет события модерации в обычный лог процесса.
// Используется, пока не настроен внешний канал модерации.
type LogrusSink struct{}

// Log реализует Sink.
func (LogrusSink) Log(event Event) error {
	log.WithFields(log.Fields{
		"event_id": event.ID.String(),
		"actor":    event.Actor,
		"target":   event.Target,
		"action":   event.Action,
		"amount":   event.Amount,
		"at":       event.At.Format(time.RFC3339),
	}).Info("[MODLOG] Событие модерации")
	return nil
}
