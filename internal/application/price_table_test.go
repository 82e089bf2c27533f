package application

import (
	"testing"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
	"github.com/shopspring/decimal"
)

func TestIsoWeekday(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{date(2026, time.January, 5), 1},  // Monday
		{date(2026, time.January, 9), 5},  // Friday
		{date(2026, time.January, 10), 6}, // Saturday
		{date(2026, time.January, 11), 7}, // Sunday
	}

	for _, tt := range tests {
		if got := isoWeekday(tt.date); got != tt.want {
			t.Errorf("isoWeekday(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestPriceForExactWeekdayMatch(t *testing.T) {
	repo := &memPriceRepo{prices: []domain.NightlyPrice{
		{ID: 1, RoomTypeID: 1, DayOfWeek: 1, Amount: decimal.NewFromInt(1800)},
		{ID: 2, RoomTypeID: 1, DayOfWeek: 6, Amount: decimal.NewFromInt(2400)},
	}}
	table := NewPriceTable(repo, discardLogger())

	// 2026-01-10 is a Saturday
	got := table.PriceFor(1, domain.CategoryStandard, date(2026, time.January, 10))
	if !got.Equal(decimal.NewFromInt(2400)) {
		t.Errorf("saturday price = %s, want 2400", got)
	}

	got = table.PriceFor(1, domain.CategoryStandard, date(2026, time.January, 5))
	if !got.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("monday price = %s, want 1800", got)
	}
}

func TestPriceForFallsBackToAnyRowForType(t *testing.T) {
	repo := &memPriceRepo{prices: []domain.NightlyPrice{
		{ID: 1, RoomTypeID: 2, DayOfWeek: 3, Amount: decimal.NewFromInt(3100)},
	}}
	table := NewPriceTable(repo, discardLogger())

	// Monday has no row for type 2; some row for the type wins over defaults.
	got := table.PriceFor(2, domain.CategoryLux, date(2026, time.January, 5))
	if !got.Equal(decimal.NewFromInt(3100)) {
		t.Errorf("fallback price = %s, want 3100", got)
	}
}

func TestPriceForDefaultsByCategory(t *testing.T) {
	table := NewPriceTable(&memPriceRepo{}, discardLogger())
	day := date(2026, time.March, 2)

	tests := []struct {
		category domain.RoomCategory
		want     int64
	}{
		{domain.CategoryStandard, 2000},
		{domain.CategoryComfort, 2500},
		{domain.CategoryLux, 3000},
		{domain.RoomCategory("penthouse"), 2000}, // unknown category
	}

	for _, tt := range tests {
		if got := table.PriceFor(9, tt.category, day); !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("default for %q = %s, want %d", tt.category, got, tt.want)
		}
	}
}

func TestPriceForNeverFailsOnRepositoryError(t *testing.T) {
	repo := &memPriceRepo{err: domain.ErrNotFound}
	table := NewPriceTable(repo, discardLogger())

	got := table.PriceFor(1, domain.CategoryComfort, date(2026, time.March, 2))
	if !got.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("price on repo error = %s, want 2500 default", got)
	}
}
