package application

import (
	"fmt"

	"github.com/avdeenkov/hotel_backend/internal/domain"
	"github.com/shopspring/decimal"
)

// PricingAdminService manages the nightly price table and the discount
// tiers. Administrator-only; the booking core only reads this data.
type PricingAdminService struct {
	prices    domain.PriceRepository
	discounts domain.DiscountRepository
}

// NewPricingAdminService creates the pricing administration service.
func NewPricingAdminService(prices domain.PriceRepository, discounts domain.DiscountRepository) *PricingAdminService {
	return &PricingAdminService{prices: prices, discounts: discounts}
}

func (s *PricingAdminService) ListPrices() ([]domain.NightlyPrice, error) {
	return s.prices.ListPrices()
}

// CreatePrice validates and inserts a price row. Uniqueness over
// (room type, weekday) is enforced by the database.
func (s *PricingAdminService) CreatePrice(p *domain.NightlyPrice) error {
	if err := validatePrice(p); err != nil {
		return err
	}
	return s.prices.CreatePrice(p)
}

func (s *PricingAdminService) UpdatePrice(p *domain.NightlyPrice) error {
	if err := validatePrice(p); err != nil {
		return err
	}
	return s.prices.UpdatePrice(p)
}

func (s *PricingAdminService) DeletePrice(id int) error {
	return s.prices.DeletePrice(id)
}

func (s *PricingAdminService) ListDiscounts() ([]domain.Discount, error) {
	return s.discounts.ListDiscounts()
}

func (s *PricingAdminService) CreateDiscount(d *domain.Discount) error {
	if err := validateDiscount(d); err != nil {
		return err
	}
	return s.discounts.CreateDiscount(d)
}

func (s *PricingAdminService) UpdateDiscount(d *domain.Discount) error {
	if err := validateDiscount(d); err != nil {
		return err
	}
	return s.discounts.UpdateDiscount(d)
}

func (s *PricingAdminService) DeleteDiscount(id int) error {
	return s.discounts.DeleteDiscount(id)
}

func validatePrice(p *domain.NightlyPrice) error {
	if p.RoomTypeID <= 0 {
		return fmt.Errorf("roomTypeId must be positive")
	}
	if p.DayOfWeek < 1 || p.DayOfWeek > 7 {
		return fmt.Errorf("dayOfWeek must be between 1 (Monday) and 7 (Sunday)")
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be greater than 0")
	}
	return nil
}

func validateDiscount(d *domain.Discount) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.MinNights < 1 {
		return fmt.Errorf("minNights must be at least 1")
	}
	if d.Percent.LessThan(decimal.Zero) || d.Percent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("percent must be between 0 and 100")
	}
	return nil
}
