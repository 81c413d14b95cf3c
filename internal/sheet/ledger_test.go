package sheet

import (
	"testing"
	"time"

	"github.com/skeemans/cafebot/internal/order"
)

func kyiv(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Kyiv")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestRowColumnOrder(t *testing.T) {
	loc := kyiv(t)
	l := &Ledger{loc: loc, now: func() time.Time {
		t.Fatal("now must not be called when PlacedAt is set")
		return time.Time{}
	}}

	placed := time.Date(2025, time.March, 7, 12, 5, 0, 0, time.UTC)
	row := l.row(order.Order{
		ClientFullName: "Яна Коваль",
		ProductName:    "еклер",
		ProductAmount:  "2",
		PaymentMethod:  order.PaymentCard,
		MoneyAmount:    "120",
		PlacedAt:       placed,
	})

	want := []interface{}{
		"Яна Коваль",
		"еклер",
		"2",
		placed.In(loc).Format("15:04 02-01-2006"),
		"Карта",
		"120",
	}
	if len(row) != len(want) {
		t.Fatalf("row has %d columns, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %d = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestRowTimestampUsesConfiguredTimezone(t *testing.T) {
	loc := kyiv(t)
	// 23:30 UTC on Dec 31 is already next year in Kyiv.
	fixed := time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC)
	l := &Ledger{loc: loc, now: func() time.Time { return fixed }}

	row := l.row(order.Order{PaymentMethod: order.PaymentCash})
	stamp, ok := row[3].(string)
	if !ok {
		t.Fatalf("timestamp column is %T, want string", row[3])
	}
	if stamp != "01:30 01-01-2025" {
		t.Fatalf("timestamp = %q, want %q", stamp, "01:30 01-01-2025")
	}
}
