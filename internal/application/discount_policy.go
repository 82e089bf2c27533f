package application

import (
	"fmt"

	"github.com/avdeenkov/hotel_backend/internal/domain"
)

// DiscountPolicy selects the stay-length discount for a booking.
type DiscountPolicy struct {
	discounts domain.DiscountRepository
}

// NewDiscountPolicy creates a discount policy backed by the given repository.
func NewDiscountPolicy(discounts domain.DiscountRepository) *DiscountPolicy {
	return &DiscountPolicy{discounts: discounts}
}

// BestFor returns the applicable discount for a stay of the given number
// of nights, or nil when none qualifies.
//
// Among active discounts with MinNights <= nights the one with the largest
// MinNights wins: the closest qualifying tier, not the largest percent.
// The schema allows several discounts with the same MinNights, so ties
// break by highest percent, then lowest ID, to keep selection
// deterministic regardless of storage order.
func (p *DiscountPolicy) BestFor(nights int) (*domain.Discount, error) {
	active, err := p.discounts.ActiveDiscounts()
	if err != nil {
		return nil, fmt.Errorf("loading active discounts: %w", err)
	}

	var best *domain.Discount
	for i := range active {
		d := &active[i]
		if d.MinNights > nights {
			continue
		}
		if best == nil || betterTier(d, best) {
			best = d
		}
	}

	if best == nil {
		return nil, nil
	}
	out := *best
	return &out, nil
}

// betterTier reports whether a should be selected over b.
func betterTier(a, b *domain.Discount) bool {
	if a.MinNights != b.MinNights {
		return a.MinNights > b.MinNights
	}
	if !a.Percent.Equal(b.Percent) {
		return a.Percent.GreaterThan(b.Percent)
	}
	return a.ID < b.ID
}
