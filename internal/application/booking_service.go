package application

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
	"github.com/avdeenkov/hotel_backend/internal/email"
	"github.com/google/uuid"
)

// BookingInput carries the client-supplied fields for creating or
// updating a booking. The total price is never part of the input; it is
// always recomputed server-side.
type BookingInput struct {
	Guest         GuestInput
	RoomID        int
	CheckInDate   time.Time
	CheckOutDate  time.Time
	NeedsChildBed bool
	Notes         string
}

// GuestInput carries the guest contact data submitted with a booking.
type GuestInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// BookingService owns the booking lifecycle: creation with server-side
// pricing, updates with re-pricing, and the status transitions.
type BookingService struct {
	bookings     domain.BookingRepository
	rooms        domain.RoomRepository
	guests       domain.GuestRepository
	calculator   *QuoteCalculator
	availability *AvailabilityChecker
	validator    *Validator
	emailClient  *email.Client
	log          *slog.Logger
	now          func() time.Time
}

// NewBookingService creates a booking service. emailClient may be nil;
// confirmation emails are then skipped.
func NewBookingService(
	bookings domain.BookingRepository,
	rooms domain.RoomRepository,
	guests domain.GuestRepository,
	calculator *QuoteCalculator,
	availability *AvailabilityChecker,
	emailClient *email.Client,
	log *slog.Logger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		rooms:        rooms,
		guests:       guests,
		calculator:   calculator,
		availability: availability,
		validator:    &Validator{},
		emailClient:  emailClient,
		log:          log,
		now:          time.Now,
	}
}

// today returns the current date truncated to midnight UTC, the same
// representation booking dates are stored in.
func (s *BookingService) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// CreateBooking validates the request, prices the stay and persists a new
// pending booking. The availability check here is advisory; the repository
// repeats it inside the insert transaction.
func (s *BookingService) CreateBooking(in BookingInput) (*domain.Booking, error) {
	if !in.CheckOutDate.After(in.CheckInDate) {
		return nil, domain.ErrInvalidRange
	}
	if in.CheckInDate.Before(s.today()) {
		return nil, domain.ErrPastCheckIn
	}
	if errs := s.validator.ValidateGuest(in.Guest.FirstName, in.Guest.LastName, in.Guest.Phone, in.Guest.Email); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidGuest, joinErrors(errs))
	}

	room, err := s.rooms.GetRoomByID(in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("loading room %d: %w", in.RoomID, err)
	}
	if !room.IsAvailable {
		return nil, domain.ErrRoomUnavailable
	}

	available, err := s.availability.IsAvailable(room.ID, in.CheckInDate, in.CheckOutDate, 0)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrRoomUnavailable
	}

	quote, err := s.calculator.Quote(room.RoomType.ID, room.RoomType.Category, in.CheckInDate, in.CheckOutDate, in.NeedsChildBed)
	if err != nil {
		return nil, err
	}

	guest, err := s.findOrCreateGuest(in.Guest)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Reference:     uuid.NewString(),
		GuestID:       guest.ID,
		RoomID:        room.ID,
		CheckInDate:   in.CheckInDate,
		CheckOutDate:  in.CheckOutDate,
		NeedsChildBed: in.NeedsChildBed,
		TotalPrice:    quote.FinalTotal,
		Status:        domain.StatusPending,
		Notes:         in.Notes,
	}
	if quote.Discount != nil {
		id := quote.Discount.ID
		booking.DiscountID = &id
	}

	if err := s.bookings.CreateBooking(booking); err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		"bookingId", booking.ID,
		"reference", booking.Reference,
		"roomId", room.ID,
		"nights", quote.Nights,
		"total", quote.FinalTotal)
	return booking, nil
}

// findOrCreateGuest looks a guest up by phone, creating the record when
// none exists yet.
func (s *BookingService) findOrCreateGuest(in GuestInput) (*domain.Guest, error) {
	guest, err := s.guests.FindGuestByPhone(in.Phone)
	if err != nil {
		return nil, fmt.Errorf("looking up guest: %w", err)
	}
	if guest != nil {
		return guest, nil
	}

	guest = &domain.Guest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Email:     in.Email,
	}
	if err := s.guests.CreateGuest(guest); err != nil {
		return nil, fmt.Errorf("creating guest: %w", err)
	}
	return guest, nil
}

// UpdateBooking changes the room, dates, child bed flag or notes of an
// existing booking and reprices it. The booking's own row is excluded
// from the conflict check.
func (s *BookingService) UpdateBooking(id int, in BookingInput) (*domain.Booking, error) {
	booking, err := s.bookings.GetBookingByID(id)
	if err != nil {
		return nil, err
	}
	if booking.Status.IsTerminal() {
		return nil, domain.ErrInvalidTransition
	}
	if !in.CheckOutDate.After(in.CheckInDate) {
		return nil, domain.ErrInvalidRange
	}
	if in.CheckInDate.Before(s.today()) {
		return nil, domain.ErrPastCheckIn
	}

	room, err := s.rooms.GetRoomByID(in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("loading room %d: %w", in.RoomID, err)
	}

	available, err := s.availability.IsAvailable(room.ID, in.CheckInDate, in.CheckOutDate, booking.ID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrRoomUnavailable
	}

	quote, err := s.calculator.Quote(room.RoomType.ID, room.RoomType.Category, in.CheckInDate, in.CheckOutDate, in.NeedsChildBed)
	if err != nil {
		return nil, err
	}

	booking.RoomID = room.ID
	booking.CheckInDate = in.CheckInDate
	booking.CheckOutDate = in.CheckOutDate
	booking.NeedsChildBed = in.NeedsChildBed
	booking.TotalPrice = quote.FinalTotal
	booking.Notes = in.Notes
	booking.DiscountID = nil
	if quote.Discount != nil {
		discountID := quote.Discount.ID
		booking.DiscountID = &discountID
	}

	if err := s.bookings.UpdateBooking(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetBooking returns a booking by ID.
func (s *BookingService) GetBooking(id int) (*domain.Booking, error) {
	return s.bookings.GetBookingByID(id)
}

// ListBookings returns all bookings, newest first.
func (s *BookingService) ListBookings() ([]domain.Booking, error) {
	return s.bookings.ListBookings()
}

// Confirm moves a pending booking to confirmed. Availability is
// re-checked inside the same transaction as the status write: the
// booking does not block while pending, so the room may have been taken
// in the meantime. On success a confirmation email is sent best-effort.
func (s *BookingService) Confirm(id int) error {
	booking, err := s.bookings.GetBookingByID(id)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransitionTo(domain.StatusConfirmed) {
		return domain.ErrInvalidTransition
	}

	if err := s.bookings.ConfirmPending(id); err != nil {
		return err
	}

	s.sendConfirmationEmail(booking)
	return nil
}

// CheckIn moves a confirmed booking to checked-in and records the actual
// check-in time.
func (s *BookingService) CheckIn(id int) error {
	booking, err := s.bookings.GetBookingByID(id)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransitionTo(domain.StatusCheckedIn) {
		return domain.ErrInvalidTransition
	}

	now := s.now()
	return s.bookings.UpdateBookingStatus(id, domain.StatusCheckedIn, &now, nil)
}

// CheckOut moves a checked-in booking to checked-out and records the
// actual check-out time.
func (s *BookingService) CheckOut(id int) error {
	booking, err := s.bookings.GetBookingByID(id)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransitionTo(domain.StatusCheckedOut) {
		return domain.ErrInvalidTransition
	}

	now := s.now()
	return s.bookings.UpdateBookingStatus(id, domain.StatusCheckedOut, nil, &now)
}

// Cancel moves any non-terminal booking to cancelled.
func (s *BookingService) Cancel(id int) error {
	booking, err := s.bookings.GetBookingByID(id)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransitionTo(domain.StatusCancelled) {
		return domain.ErrInvalidTransition
	}

	return s.bookings.UpdateBookingStatus(id, domain.StatusCancelled, nil, nil)
}

// QuoteForRoom prices a stay in the given room without persisting
// anything, for the interactive price preview. Unlike CreateBooking it
// rejects past check-in dates but does not touch availability: the
// preview is about price, not occupancy.
func (s *BookingService) QuoteForRoom(roomID int, checkIn, checkOut time.Time, needsChildBed bool) (*Quote, error) {
	if !checkOut.After(checkIn) {
		return nil, domain.ErrInvalidRange
	}
	if checkIn.Before(s.today()) {
		return nil, domain.ErrPastCheckIn
	}

	room, err := s.rooms.GetRoomByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("loading room %d: %w", roomID, err)
	}

	return s.calculator.Quote(room.RoomType.ID, room.RoomType.Category, checkIn, checkOut, needsChildBed)
}

// Dashboard returns the staff dashboard counters.
func (s *BookingService) Dashboard() (*domain.DashboardStats, error) {
	stats, err := s.bookings.DashboardCounts(s.today())
	if err != nil {
		return nil, fmt.Errorf("loading dashboard counters: %w", err)
	}

	availableRooms, err := s.rooms.CountAvailable()
	if err != nil {
		return nil, fmt.Errorf("counting available rooms: %w", err)
	}
	stats.AvailableRooms = availableRooms
	return stats, nil
}

// sendConfirmationEmail sends the confirmation email when the guest left
// an address. Failures are logged, never propagated: the confirmation
// itself already happened.
func (s *BookingService) sendConfirmationEmail(booking *domain.Booking) {
	if s.emailClient == nil {
		return
	}

	guest, err := s.guests.GetGuestByID(booking.GuestID)
	if err != nil {
		s.log.Warn("loading guest for confirmation email failed", "bookingId", booking.ID, "error", err)
		return
	}
	if guest.Email == "" {
		return
	}

	room, err := s.rooms.GetRoomByID(booking.RoomID)
	if err != nil {
		s.log.Warn("loading room for confirmation email failed", "bookingId", booking.ID, "error", err)
		return
	}

	info := email.BookingInfo{
		Reference:    booking.Reference,
		GuestName:    guest.FirstName + " " + guest.LastName,
		GuestEmail:   guest.Email,
		RoomNumber:   room.Number,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		Nights:       booking.Nights(),
		TotalPrice:   booking.TotalPrice,
	}
	if err := s.emailClient.SendBookingConfirmation(info); err != nil {
		s.log.Warn("sending confirmation email failed", "bookingId", booking.ID, "error", err)
	}
}

// joinErrors flattens validation errors into one message.
func joinErrors(errs []error) string {
	msg := ""
	for i, err := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += err.Error()
	}
	return msg
}
