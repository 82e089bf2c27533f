package application

import (
	"fmt"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
)

// AvailabilityChecker decides whether a room is free over a date range.
type AvailabilityChecker struct {
	bookings domain.BookingRepository
}

// NewAvailabilityChecker creates an availability checker.
func NewAvailabilityChecker(bookings domain.BookingRepository) *AvailabilityChecker {
	return &AvailabilityChecker{bookings: bookings}
}

// IsAvailable reports whether the room has no conflicting booking over
// [checkIn, checkOut). A conflict is an existing confirmed or checked-in
// booking whose half-open range intersects: b.checkIn < checkOut and
// b.checkOut > checkIn. A booking ending exactly on checkIn does not
// conflict. excludeBookingID, when non-zero, ignores that booking so an
// update does not collide with its own prior row.
//
// The check is advisory: the repository re-verifies inside the write
// transaction, because two concurrent requests can both see a free room
// here.
func (a *AvailabilityChecker) IsAvailable(roomID int, checkIn, checkOut time.Time, excludeBookingID int) (bool, error) {
	if !checkOut.After(checkIn) {
		return false, domain.ErrInvalidRange
	}

	overlapping, err := a.bookings.FindOverlapping(roomID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		return false, fmt.Errorf("checking availability for room %d: %w", roomID, err)
	}
	return len(overlapping) == 0, nil
}
