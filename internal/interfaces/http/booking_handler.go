package http

import (
	"github.com/avdeenkov/hotel_backend/internal/application"
	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// GuestData carries the guest contact fields of a booking request.
type GuestData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
}

// CreateBookingRequest is the payload for creating or updating a
// booking. Prices are never accepted from the client.
type CreateBookingRequest struct {
	Guest         GuestData `json:"guest"`
	RoomID        int       `json:"roomId"`
	CheckInDate   string    `json:"checkInDate"`  // Format: YYYY-MM-DD
	CheckOutDate  string    `json:"checkOutDate"` // Format: YYYY-MM-DD
	NeedsChildBed bool      `json:"needsChildBed"`
	Notes         string    `json:"notes,omitempty"`
}

func (r *CreateBookingRequest) toInput() (application.BookingInput, error) {
	checkIn, err := parseDate(r.CheckInDate)
	if err != nil {
		return application.BookingInput{}, err
	}
	checkOut, err := parseDate(r.CheckOutDate)
	if err != nil {
		return application.BookingInput{}, err
	}
	return application.BookingInput{
		Guest: application.GuestInput{
			FirstName: r.Guest.FirstName,
			LastName:  r.Guest.LastName,
			Phone:     r.Guest.Phone,
			Email:     r.Guest.Email,
		},
		RoomID:        r.RoomID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		NeedsChildBed: r.NeedsChildBed,
		Notes:         r.Notes,
	}, nil
}

// CreateBooking creates a new pending booking with a server-side price.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return badRequest(c, "invalid date format, use YYYY-MM-DD")
	}

	booking, err := h.service.CreateBooking(input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "booking created",
		"data":    booking,
	})
}

// GetBookingByID returns one booking.
func (h *BookingHandler) GetBookingByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid booking id")
	}

	booking, err := h.service.GetBooking(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": booking,
	})
}

// GetAllBookings returns all bookings, newest first.
func (h *BookingHandler) GetAllBookings(c *fiber.Ctx) error {
	bookings, err := h.service.ListBookings()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": bookings,
	})
}

// UpdateBooking updates the stay details of a booking and re-prices it.
func (h *BookingHandler) UpdateBooking(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid booking id")
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return badRequest(c, "invalid date format, use YYYY-MM-DD")
	}

	booking, err := h.service.UpdateBooking(id, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "booking updated",
		"data":    booking,
	})
}

// ConfirmBooking moves a pending booking to confirmed, re-checking
// availability first.
func (h *BookingHandler) ConfirmBooking(c *fiber.Ctx) error {
	return h.transition(c, h.service.Confirm, "booking confirmed")
}

// CheckInBooking registers the guest's arrival.
func (h *BookingHandler) CheckInBooking(c *fiber.Ctx) error {
	return h.transition(c, h.service.CheckIn, "guest checked in")
}

// CheckOutBooking registers the guest's departure.
func (h *BookingHandler) CheckOutBooking(c *fiber.Ctx) error {
	return h.transition(c, h.service.CheckOut, "guest checked out")
}

// CancelBooking cancels a booking that has not reached a terminal state.
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	return h.transition(c, h.service.Cancel, "booking cancelled")
}

func (h *BookingHandler) transition(c *fiber.Ctx, apply func(int) error, message string) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid booking id")
	}

	if err := apply(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": message,
	})
}
