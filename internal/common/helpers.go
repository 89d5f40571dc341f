// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: форматирование денег и длительностей, работа с датами.
package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout — формат календарной даты для дневных маркеров Кольца.
const DateLayout = "2006-01-02"

// FormatMoney форматирует сумму с разделителями тысяч.
//
// Примеры:
//
//	FormatMoney(950)     → "950"
//	FormatMoney(1500)    → "1.500"
//	FormatMoney(-100000) → "-100.000"
func FormatMoney(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}

	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// FormatDuration форматирует длительность как "2ч 15мин" или "45мин".
// Используется для сообщений о перезарядке.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dч %dмин", h, m)
	}
	return fmt.Sprintf("%dмин", m)
}

// DateOf возвращает календарную дату момента t в формате DateLayout.
// Дневные лимиты Кольца сравниваются именно по дате, не по 24 часам.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
