package common

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{950, "950"},
		{1500, "1.500"},
		{100000, "100.000"},
		{999999999, "999.999.999"},
		{-100, "-100"},
		{-100000, "-100.000"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%d) = %q, ожидалось %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{2*time.Hour + 15*time.Minute, "2ч 15мин"},
		{45 * time.Minute, "45мин"},
		{0, "0мин"},
		{-time.Minute, "0мин"},
		{24 * time.Hour, "24ч 0мин"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, ожидалось %q", tt.d, got, tt.want)
		}
	}
}

func TestDateOf(t *testing.T) {
	at := time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC)
	if got := DateOf(at); got != "2024-06-01" {
		t.Fatalf("DateOf = %q", got)
	}
	// Минута спустя — уже другая дата
	if got := DateOf(at.Add(time.Minute)); got != "2024-06-02" {
		t.Fatalf("DateOf после полуночи = %q", got)
	}
}

func TestNewCooldown(t *testing.T) {
	last := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := last.Add(90 * time.Minute)

	cd := NewCooldown(last, 2*time.Hour, now)
	if cd.Remaining != 30*time.Minute {
		t.Fatalf("Remaining = %v, ожидалось 30m", cd.Remaining)
	}
	if cd.Error() != "подождите ещё 30мин" {
		t.Fatalf("Error = %q", cd.Error())
	}
}
