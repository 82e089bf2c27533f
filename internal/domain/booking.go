package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusCheckedOut BookingStatus = "checked_out"
	StatusCancelled  BookingStatus = "cancelled"
)

// transitions lists the allowed next states per state. Cancellation is
// handled separately: any non-terminal state may cancel.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed},
	StatusConfirmed: {StatusCheckedIn},
	StatusCheckedIn: {StatusCheckedOut},
}

// IsTerminal reports whether no further transition is defined from s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a valid
// lifecycle step.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if next == StatusCancelled {
		return !s.IsTerminal()
	}
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Blocks reports whether a booking in this status occupies its room for
// availability purposes. Pending bookings do not block; neither do the
// terminal states.
func (s BookingStatus) Blocks() bool {
	return s == StatusConfirmed || s == StatusCheckedIn
}

// Booking is a reservation of one room over a half-open date range
// [CheckInDate, CheckOutDate): the check-out day is not charged and does
// not block a same-day check-in by another booking.
type Booking struct {
	ID             int             `json:"id"`
	Reference      string          `json:"reference"`
	GuestID        int             `json:"guestId"`
	RoomID         int             `json:"roomId"`
	CheckInDate    time.Time       `json:"checkInDate"`
	CheckOutDate   time.Time       `json:"checkOutDate"`
	NeedsChildBed  bool            `json:"needsChildBed"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	DiscountID     *int            `json:"discountId,omitempty"`
	Status         BookingStatus   `json:"status"`
	ActualCheckIn  *time.Time      `json:"actualCheckIn,omitempty"`
	ActualCheckOut *time.Time      `json:"actualCheckOut,omitempty"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Nights returns the number of charged nights.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

// DashboardStats are the counters shown on the staff dashboard.
type DashboardStats struct {
	TotalBookings  int `json:"totalBookings"`
	ActiveBookings int `json:"activeBookings"`
	TodayCheckIns  int `json:"todayCheckIns"`
	TodayCheckOuts int `json:"todayCheckOuts"`
	AvailableRooms int `json:"availableRooms"`
}

// BookingRepository defines the data operations for bookings.
//
// CreateBooking and UpdateBooking must re-run the overlap check inside
// the same transaction as the write: the service-level availability check
// is advisory only and two concurrent requests can both observe a free
// room.
type BookingRepository interface {
	// GetBookingByID returns a booking or ErrNotFound
	GetBookingByID(id int) (*Booking, error)
	// ListBookings returns all bookings, newest first
	ListBookings() ([]Booking, error)
	// FindOverlapping returns bookings for the room in a blocking status
	// whose range intersects [checkIn, checkOut). excludeID, when non-zero,
	// skips that booking so updates do not conflict with themselves.
	FindOverlapping(roomID int, checkIn, checkOut time.Time, excludeID int) ([]Booking, error)
	// CreateBooking inserts the booking, re-verifying availability in the
	// same transaction. Returns ErrRoomUnavailable on conflict.
	CreateBooking(b *Booking) error
	// UpdateBooking rewrites room, dates, child bed, price, discount and
	// notes, re-verifying availability. Returns ErrRoomUnavailable on
	// conflict and ErrNotFound if the booking does not exist.
	UpdateBooking(b *Booking) error
	// UpdateBookingStatus sets the status and, when non-nil, the actual
	// check-in/check-out timestamps. Returns ErrNotFound if missing.
	UpdateBookingStatus(id int, status BookingStatus, actualCheckIn, actualCheckOut *time.Time) error
	// ConfirmPending moves a pending booking to confirmed, re-verifying
	// availability in the same transaction as the status write. Returns
	// ErrNotFound if missing, ErrInvalidTransition if not pending, and
	// ErrRoomUnavailable if the room was taken while the booking sat
	// pending.
	ConfirmPending(id int) error
	// CancelStalePending cancels pending bookings whose check-in date is
	// before the given day and returns how many were cancelled.
	CancelStalePending(before time.Time) (int64, error)
	// DashboardCounts returns booking counters for the given day
	DashboardCounts(today time.Time) (*DashboardStats, error)
}
