package http

import (
	"github.com/avdeenkov/hotel_backend/internal/application"
	"github.com/avdeenkov/hotel_backend/internal/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AdminHandler serves the price and discount management endpoints plus
// the dashboard counters.
type AdminHandler struct {
	pricing  *application.PricingAdminService
	bookings *application.BookingService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(pricing *application.PricingAdminService, bookings *application.BookingService) *AdminHandler {
	return &AdminHandler{pricing: pricing, bookings: bookings}
}

// PriceRequest is the payload for creating or updating a nightly price.
type PriceRequest struct {
	RoomTypeID int             `json:"roomTypeId"`
	DayOfWeek  int             `json:"dayOfWeek"` // 1 = Monday .. 7 = Sunday
	Amount     decimal.Decimal `json:"amount"`
}

// DiscountRequest is the payload for creating or updating a discount.
type DiscountRequest struct {
	Name      string          `json:"name"`
	MinNights int             `json:"minNights"`
	Percent   decimal.Decimal `json:"percent"`
	IsActive  bool            `json:"isActive"`
}

// ListPrices returns all nightly price rows.
func (h *AdminHandler) ListPrices(c *fiber.Ctx) error {
	prices, err := h.pricing.ListPrices()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": prices,
	})
}

// CreatePrice inserts a nightly price row.
func (h *AdminHandler) CreatePrice(c *fiber.Ctx) error {
	var req PriceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	price := domain.NightlyPrice{
		RoomTypeID: req.RoomTypeID,
		DayOfWeek:  req.DayOfWeek,
		Amount:     req.Amount,
	}
	if err := h.pricing.CreatePrice(&price); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "price created",
		"data":    price,
	})
}

// UpdatePrice updates a nightly price row.
func (h *AdminHandler) UpdatePrice(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid price id")
	}

	var req PriceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	price := domain.NightlyPrice{
		ID:         id,
		RoomTypeID: req.RoomTypeID,
		DayOfWeek:  req.DayOfWeek,
		Amount:     req.Amount,
	}
	if err := h.pricing.UpdatePrice(&price); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "price updated",
		"data":    price,
	})
}

// DeletePrice removes a nightly price row.
func (h *AdminHandler) DeletePrice(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid price id")
	}

	if err := h.pricing.DeletePrice(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "price deleted",
	})
}

// ListDiscounts returns every discount, active or not.
func (h *AdminHandler) ListDiscounts(c *fiber.Ctx) error {
	discounts, err := h.pricing.ListDiscounts()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": discounts,
	})
}

// CreateDiscount inserts a discount.
func (h *AdminHandler) CreateDiscount(c *fiber.Ctx) error {
	var req DiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	discount := domain.Discount{
		Name:      req.Name,
		MinNights: req.MinNights,
		Percent:   req.Percent,
		IsActive:  req.IsActive,
	}
	if err := h.pricing.CreateDiscount(&discount); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "discount created",
		"data":    discount,
	})
}

// UpdateDiscount updates a discount. Existing bookings keep the price
// they were quoted at.
func (h *AdminHandler) UpdateDiscount(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid discount id")
	}

	var req DiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	discount := domain.Discount{
		ID:        id,
		Name:      req.Name,
		MinNights: req.MinNights,
		Percent:   req.Percent,
		IsActive:  req.IsActive,
	}
	if err := h.pricing.UpdateDiscount(&discount); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "discount updated",
		"data":    discount,
	})
}

// DeleteDiscount removes a discount.
func (h *AdminHandler) DeleteDiscount(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid discount id")
	}

	if err := h.pricing.DeleteDiscount(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "discount deleted",
	})
}

// GetDashboard returns occupancy and booking counters for today.
func (h *AdminHandler) GetDashboard(c *fiber.Ctx) error {
	stats, err := h.bookings.Dashboard()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": stats,
	})
}
