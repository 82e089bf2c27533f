package application

import (
	"errors"
	"testing"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
)

func TestIsAvailableHalfOpenBoundaries(t *testing.T) {
	repo := &memBookingRepo{}
	repo.CreateBooking(&domain.Booking{
		RoomID:       1,
		CheckInDate:  date(2026, time.January, 1),
		CheckOutDate: date(2026, time.January, 5),
		Status:       domain.StatusConfirmed,
	})
	checker := NewAvailabilityChecker(repo)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     bool
	}{
		{"starts on existing check-out day", date(2026, time.January, 5), date(2026, time.January, 10), true},
		{"ends on existing check-in day", date(2025, time.December, 28), date(2026, time.January, 1), true},
		{"overlaps tail", date(2026, time.January, 4), date(2026, time.January, 10), false},
		{"overlaps head", date(2025, time.December, 30), date(2026, time.January, 2), false},
		{"fully inside", date(2026, time.January, 2), date(2026, time.January, 4), false},
		{"fully covers", date(2025, time.December, 30), date(2026, time.January, 8), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.IsAvailable(1, tt.checkIn, tt.checkOut, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAvailable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAvailableIgnoresNonBlockingStatuses(t *testing.T) {
	repo := &memBookingRepo{}
	for _, status := range []domain.BookingStatus{
		domain.StatusPending, domain.StatusCancelled, domain.StatusCheckedOut,
	} {
		repo.bookings = append(repo.bookings, domain.Booking{
			ID:           len(repo.bookings) + 1,
			RoomID:       1,
			CheckInDate:  date(2026, time.January, 1),
			CheckOutDate: date(2026, time.January, 10),
			Status:       status,
		})
	}
	checker := NewAvailabilityChecker(repo)

	available, err := checker.IsAvailable(1, date(2026, time.January, 2), date(2026, time.January, 5), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("pending/cancelled/checked_out bookings must not block the room")
	}
}

func TestIsAvailableExcludesOwnBooking(t *testing.T) {
	repo := &memBookingRepo{}
	repo.CreateBooking(&domain.Booking{
		RoomID:       1,
		CheckInDate:  date(2026, time.January, 1),
		CheckOutDate: date(2026, time.January, 5),
		Status:       domain.StatusConfirmed,
	})
	checker := NewAvailabilityChecker(repo)

	// An update of booking 1 over its own dates must not conflict with itself.
	available, err := checker.IsAvailable(1, date(2026, time.January, 2), date(2026, time.January, 6), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("booking should not conflict with its own prior row")
	}
}

func TestIsAvailableOtherRoomDoesNotConflict(t *testing.T) {
	repo := &memBookingRepo{}
	repo.CreateBooking(&domain.Booking{
		RoomID:       2,
		CheckInDate:  date(2026, time.January, 1),
		CheckOutDate: date(2026, time.January, 5),
		Status:       domain.StatusCheckedIn,
	})
	checker := NewAvailabilityChecker(repo)

	available, err := checker.IsAvailable(1, date(2026, time.January, 2), date(2026, time.January, 4), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Error("a booking for another room must not block this one")
	}
}

func TestIsAvailableRejectsInvalidRange(t *testing.T) {
	checker := NewAvailabilityChecker(&memBookingRepo{})

	_, err := checker.IsAvailable(1, date(2026, time.January, 5), date(2026, time.January, 5), 0)
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("error = %v, want ErrInvalidRange", err)
	}
}
