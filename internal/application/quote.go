package application

import (
	"fmt"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Nightly surcharge for the child bed add-on.
var childBedNightlyRate = decimal.NewFromInt(500)

var oneHundred = decimal.NewFromInt(100)

// Quote is the result of pricing a stay. Amounts are rounded to two
// decimal places at the end of the calculation, not per night.
type Quote struct {
	BaseTotal      decimal.Decimal  `json:"baseTotal"`
	ChildBedTotal  decimal.Decimal  `json:"childBedTotal"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	DiscountAmount decimal.Decimal  `json:"discountAmount"`
	FinalTotal     decimal.Decimal  `json:"finalTotal"`
	Nights         int              `json:"nights"`
	Discount       *domain.Discount `json:"discount,omitempty"`
}

// DiscountPercent returns the applied discount percent, zero when none.
func (q *Quote) DiscountPercent() decimal.Decimal {
	if q.Discount == nil {
		return decimal.Zero
	}
	return q.Discount.Percent
}

// QuoteCalculator prices a stay from the nightly price table, the child
// bed surcharge and the stay-length discount policy. It has no side
// effects: the same inputs against the same price and discount data
// produce the same quote.
type QuoteCalculator struct {
	priceTable *PriceTable
	discounts  *DiscountPolicy
}

// NewQuoteCalculator creates a quote calculator.
func NewQuoteCalculator(priceTable *PriceTable, discounts *DiscountPolicy) *QuoteCalculator {
	return &QuoteCalculator{priceTable: priceTable, discounts: discounts}
}

// Quote prices a stay in [checkIn, checkOut) for the given room type.
// The check-out day is not charged. Returns ErrInvalidRange when
// checkOut is not after checkIn.
func (c *QuoteCalculator) Quote(roomTypeID int, category domain.RoomCategory, checkIn, checkOut time.Time, needsChildBed bool) (*Quote, error) {
	if !checkOut.After(checkIn) {
		return nil, domain.ErrInvalidRange
	}

	baseTotal := decimal.Zero
	nights := 0
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		baseTotal = baseTotal.Add(c.priceTable.PriceFor(roomTypeID, category, d))
		nights++
	}

	childBedTotal := decimal.Zero
	if needsChildBed {
		childBedTotal = childBedNightlyRate.Mul(decimal.NewFromInt(int64(nights)))
	}
	subtotal := baseTotal.Add(childBedTotal)

	discount, err := c.discounts.BestFor(nights)
	if err != nil {
		return nil, fmt.Errorf("selecting discount: %w", err)
	}

	discountAmount := decimal.Zero
	finalTotal := subtotal
	if discount != nil {
		discountAmount = subtotal.Mul(discount.Percent).Div(oneHundred)
		finalTotal = subtotal.Sub(discountAmount)
	}

	return &Quote{
		BaseTotal:      baseTotal.Round(2),
		ChildBedTotal:  childBedTotal.Round(2),
		Subtotal:       subtotal.Round(2),
		DiscountAmount: discountAmount.Round(2),
		FinalTotal:     finalTotal.Round(2),
		Nights:         nights,
		Discount:       discount,
	}, nil
}
