package http

import (
	"errors"
	"strconv"

	"github.com/avdeenkov/hotel_backend/internal/application"
	"github.com/avdeenkov/hotel_backend/internal/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// QuoteHandler serves the public price-preview endpoint. The preview is
// advisory: no availability check, nothing is persisted, and the
// authoritative price is always recomputed when the booking is created.
type QuoteHandler struct {
	service *application.BookingService
	limiter *application.RateLimiter
}

// NewQuoteHandler creates a new quote handler. limiter may be nil to
// disable rate limiting.
func NewQuoteHandler(service *application.BookingService, limiter *application.RateLimiter) *QuoteHandler {
	return &QuoteHandler{service: service, limiter: limiter}
}

// GetQuote prices a stay for a room from query parameters:
// room_id, check_in, check_out (YYYY-MM-DD) and needs_child_bed.
func (h *QuoteHandler) GetQuote(c *fiber.Ctx) error {
	if h.limiter != nil {
		allowed, err := h.limiter.Allow(c.IP())
		if err != nil || !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests, try again later",
			})
		}
	}

	roomID, err := strconv.Atoi(c.Query("room_id"))
	if err != nil || roomID <= 0 {
		return badRequest(c, "room_id is required and must be a positive integer")
	}

	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		return badRequest(c, "invalid check_in, use YYYY-MM-DD")
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		return badRequest(c, "invalid check_out, use YYYY-MM-DD")
	}

	needsChildBed := c.QueryBool("needs_child_bed")

	quote, err := h.service.QuoteForRoom(roomID, checkIn, checkOut, needsChildBed)
	if err != nil {
		// The preview is form validation from the client's point of
		// view, so an unknown room is a 400 here rather than a 404.
		if errors.Is(err, domain.ErrNotFound) {
			return badRequest(c, "unknown room")
		}
		return respondError(c, err)
	}

	return c.JSON(quoteResponse(quote))
}

// quoteResponse builds the preview payload. discount_label is null,
// not an empty string, when no discount applies.
func quoteResponse(quote *application.Quote) fiber.Map {
	var label any
	if quote.Discount != nil {
		label = quote.Discount.Name
	}

	return fiber.Map{
		"final_total":      quote.FinalTotal,
		"base_total":       quote.BaseTotal,
		"child_bed_total":  quote.ChildBedTotal,
		"discount_amount":  quote.DiscountAmount,
		"nights":           quote.Nights,
		"discount_applied": quote.Discount != nil,
		"discount_label":   label,
		"price_per_night":  quote.Subtotal.Div(decimal.NewFromInt(int64(quote.Nights))).Round(2),
	}
}
