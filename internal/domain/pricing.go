package domain

import "github.com/shopspring/decimal"

// NightlyPrice is the rate for a room type on a given ISO weekday
// (1 = Monday .. 7 = Sunday). At most one row exists per (type, weekday).
type NightlyPrice struct {
	ID         int             `json:"id"`
	RoomTypeID int             `json:"roomTypeId"`
	DayOfWeek  int             `json:"dayOfWeek"`
	Amount     decimal.Decimal `json:"amount"`
}

// Discount is a stay-length discount tier. Only active discounts
// participate in selection.
type Discount struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	MinNights int             `json:"minNights"`
	Percent   decimal.Decimal `json:"percent"`
	IsActive  bool            `json:"isActive"`
}

// PriceRepository defines lookups over the nightly price table.
// Lookup methods return (nil, nil) when no row exists; absence is not
// an error because pricing falls back to defaults.
type PriceRepository interface {
	// LookupPrice returns the exact (roomType, weekday) row, if any
	LookupPrice(roomTypeID, dayOfWeek int) (*NightlyPrice, error)
	// AnyPriceForType returns some price row for the room type, if any.
	// Which row is returned is not specified.
	AnyPriceForType(roomTypeID int) (*NightlyPrice, error)
	// ListPrices returns all price rows
	ListPrices() ([]NightlyPrice, error)
	// CreatePrice inserts a new price row
	CreatePrice(p *NightlyPrice) error
	// UpdatePrice updates an existing price row or returns ErrNotFound
	UpdatePrice(p *NightlyPrice) error
	// DeletePrice removes a price row or returns ErrNotFound
	DeletePrice(id int) error
}

// DiscountRepository defines the data operations for discounts.
type DiscountRepository interface {
	// ActiveDiscounts returns all discounts with is_active = true
	ActiveDiscounts() ([]Discount, error)
	// GetDiscountByID returns a discount or ErrNotFound
	GetDiscountByID(id int) (*Discount, error)
	// ListDiscounts returns all discounts, active or not
	ListDiscounts() ([]Discount, error)
	// CreateDiscount inserts a new discount
	CreateDiscount(d *Discount) error
	// UpdateDiscount updates an existing discount or returns ErrNotFound
	UpdateDiscount(d *Discount) error
	// DeleteDiscount removes a discount or returns ErrNotFound
	DeleteDiscount(id int) error
}
