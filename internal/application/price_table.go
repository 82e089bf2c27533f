package application

import (
	"log/slog"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Built-in nightly rates used when a room type has no price rows at all.
// Pricing must never block a booking, so missing administrative data
// degrades to these instead of failing.
var defaultNightlyRates = map[domain.RoomCategory]decimal.Decimal{
	domain.CategoryStandard: decimal.NewFromInt(2000),
	domain.CategoryComfort:  decimal.NewFromInt(2500),
	domain.CategoryLux:      decimal.NewFromInt(3000),
}

var fallbackNightlyRate = decimal.NewFromInt(2000)

// PriceTable resolves a nightly rate for a room type on a given date.
type PriceTable struct {
	prices domain.PriceRepository
	log    *slog.Logger
}

// NewPriceTable creates a price table backed by the given repository.
func NewPriceTable(prices domain.PriceRepository, log *slog.Logger) *PriceTable {
	return &PriceTable{prices: prices, log: log}
}

// isoWeekday returns the ISO 8601 weekday (1 = Monday .. 7 = Sunday).
func isoWeekday(date time.Time) int {
	return (int(date.Weekday())+6)%7 + 1
}

// PriceFor returns the nightly rate for the room type on the given date.
//
// Resolution order: the exact (type, weekday) row; otherwise any price row
// for the type (which row is a fallback, not a guarantee); otherwise a
// built-in default by category. Lookup failures are logged and treated as
// absent rows, so the result is always a usable amount.
func (t *PriceTable) PriceFor(roomTypeID int, category domain.RoomCategory, date time.Time) decimal.Decimal {
	price, err := t.prices.LookupPrice(roomTypeID, isoWeekday(date))
	if err != nil {
		t.log.Warn("price lookup failed, falling back", "roomTypeId", roomTypeID, "error", err)
	} else if price != nil {
		return price.Amount
	}

	price, err = t.prices.AnyPriceForType(roomTypeID)
	if err != nil {
		t.log.Warn("price fallback lookup failed", "roomTypeId", roomTypeID, "error", err)
	} else if price != nil {
		return price.Amount
	}

	if rate, ok := defaultNightlyRates[category]; ok {
		return rate
	}
	return fallbackNightlyRate
}
