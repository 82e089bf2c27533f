package application

import (
	"errors"
	"testing"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
	"github.com/shopspring/decimal"
)

type serviceFixture struct {
	service  *BookingService
	bookings *memBookingRepo
	rooms    *memRoomRepo
	guests   *memGuestRepo
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	bookings := &memBookingRepo{}
	rooms := &memRoomRepo{rooms: []domain.Room{
		{
			ID:          1,
			Number:      "101",
			RoomType:    domain.RoomType{ID: 1, Category: domain.CategoryStandard, Capacity: 2},
			Floor:       1,
			IsAvailable: true,
		},
		{
			ID:          2,
			Number:      "201",
			RoomType:    domain.RoomType{ID: 2, Category: domain.CategoryLux, Capacity: 2, HasChildBed: true},
			Floor:       2,
			IsAvailable: true,
		},
	}}
	guests := &memGuestRepo{}
	discounts := &memDiscountRepo{discounts: []domain.Discount{
		{ID: 1, Name: "week", MinNights: 5, Percent: pct(10), IsActive: true},
	}}

	calc := newCalculator(flatPrices(1, 2000), discounts)
	svc := NewBookingService(bookings, rooms, guests, calc,
		NewAvailabilityChecker(bookings), nil, discardLogger())
	svc.now = func() time.Time { return date(2026, time.May, 1) }

	return &serviceFixture{service: svc, bookings: bookings, rooms: rooms, guests: guests}
}

func validInput() BookingInput {
	return BookingInput{
		Guest: GuestInput{
			FirstName: "Anna",
			LastName:  "Petrova",
			Phone:     "+79160000001",
			Email:     "anna@example.com",
		},
		RoomID:       1,
		CheckInDate:  date(2026, time.June, 1),
		CheckOutDate: date(2026, time.June, 4),
	}
}

func TestCreateBookingComputesPriceServerSide(t *testing.T) {
	f := newFixture(t)

	booking, err := f.service.CreateBooking(validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending", booking.Status)
	}
	if !booking.TotalPrice.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("total = %s, want 6000 (3 nights * 2000)", booking.TotalPrice)
	}
	if booking.Reference == "" {
		t.Error("booking reference not set")
	}
	if booking.DiscountID != nil {
		t.Errorf("discountId = %v, want nil for a 3-night stay", *booking.DiscountID)
	}
	if len(f.guests.guests) != 1 {
		t.Errorf("guest count = %d, want 1", len(f.guests.guests))
	}
}

func TestCreateBookingSnapshotsDiscount(t *testing.T) {
	f := newFixture(t)
	in := validInput()
	in.CheckOutDate = date(2026, time.June, 8) // 7 nights, 10% tier applies

	booking, err := f.service.CreateBooking(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.DiscountID == nil || *booking.DiscountID != 1 {
		t.Fatalf("discountId = %v, want 1", booking.DiscountID)
	}
	// 7 * 2000 = 14000 minus 10%
	if !booking.TotalPrice.Equal(decimal.NewFromInt(12600)) {
		t.Errorf("total = %s, want 12600", booking.TotalPrice)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		mutate  func(*BookingInput)
		wantErr error
	}{
		{"checkout equals checkin", func(in *BookingInput) {
			in.CheckOutDate = in.CheckInDate
		}, domain.ErrInvalidRange},
		{"checkout before checkin", func(in *BookingInput) {
			in.CheckOutDate = in.CheckInDate.AddDate(0, 0, -2)
		}, domain.ErrInvalidRange},
		{"checkin in the past", func(in *BookingInput) {
			in.CheckInDate = date(2026, time.April, 20)
			in.CheckOutDate = date(2026, time.April, 25)
		}, domain.ErrPastCheckIn},
		{"missing guest phone", func(in *BookingInput) {
			in.Guest.Phone = ""
		}, domain.ErrInvalidGuest},
		{"unknown room", func(in *BookingInput) {
			in.RoomID = 99
		}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := f.service.CreateBooking(in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBookingRejectsAdministrativelyDisabledRoom(t *testing.T) {
	f := newFixture(t)
	f.rooms.rooms[0].IsAvailable = false

	_, err := f.service.CreateBooking(validInput())
	if !errors.Is(err, domain.ErrRoomUnavailable) {
		t.Errorf("error = %v, want ErrRoomUnavailable", err)
	}
}

func TestCreateBookingConflictsWithConfirmedBooking(t *testing.T) {
	f := newFixture(t)

	first, err := f.service.CreateBooking(validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.service.Confirm(first.ID); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	in := validInput()
	in.Guest.Phone = "+79160000002"
	_, err = f.service.CreateBooking(in)
	if !errors.Is(err, domain.ErrRoomUnavailable) {
		t.Errorf("error = %v, want ErrRoomUnavailable", err)
	}

	// Same dates on another room are fine. Room 2 has no price rows, so
	// pricing falls back to the lux default.
	in.RoomID = 2
	booking, err := f.service.CreateBooking(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !booking.TotalPrice.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("total = %s, want 9000 (3 nights * 3000 default)", booking.TotalPrice)
	}
}

func TestPendingBookingDoesNotBlockRoom(t *testing.T) {
	f := newFixture(t)

	if _, err := f.service.CreateBooking(validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := validInput()
	in.Guest.Phone = "+79160000002"
	if _, err := f.service.CreateBooking(in); err != nil {
		t.Errorf("second pending booking on same dates should succeed, got %v", err)
	}
}

func TestConfirmReChecksAvailability(t *testing.T) {
	f := newFixture(t)

	first, _ := f.service.CreateBooking(validInput())
	in := validInput()
	in.Guest.Phone = "+79160000002"
	second, _ := f.service.CreateBooking(in)

	if err := f.service.Confirm(first.ID); err != nil {
		t.Fatalf("confirming first booking: %v", err)
	}
	// The second went stale while pending.
	if err := f.service.Confirm(second.ID); !errors.Is(err, domain.ErrRoomUnavailable) {
		t.Errorf("error = %v, want ErrRoomUnavailable", err)
	}

	got, _ := f.service.GetBooking(second.ID)
	if got.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending left unchanged", got.Status)
	}
}

func TestLifecycleHappyPath(t *testing.T) {
	f := newFixture(t)
	now := date(2026, time.June, 1)
	f.service.now = func() time.Time { return now }

	booking, err := f.service.CreateBooking(validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.service.Confirm(booking.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := f.service.CheckIn(booking.ID); err != nil {
		t.Fatalf("check-in: %v", err)
	}

	got, _ := f.service.GetBooking(booking.ID)
	if got.Status != domain.StatusCheckedIn {
		t.Fatalf("status = %s, want checked_in", got.Status)
	}
	if got.ActualCheckIn == nil || !got.ActualCheckIn.Equal(now) {
		t.Errorf("actualCheckIn = %v, want %v", got.ActualCheckIn, now)
	}

	if err := f.service.CheckOut(booking.ID); err != nil {
		t.Fatalf("check-out: %v", err)
	}
	got, _ = f.service.GetBooking(booking.ID)
	if got.Status != domain.StatusCheckedOut {
		t.Fatalf("status = %s, want checked_out", got.Status)
	}
	if got.ActualCheckOut == nil {
		t.Error("actualCheckOut not recorded")
	}
}

func TestPendingCannotCheckInDirectly(t *testing.T) {
	f := newFixture(t)

	booking, _ := f.service.CreateBooking(validInput())

	err := f.service.CheckIn(booking.ID)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}

	got, _ := f.service.GetBooking(booking.ID)
	if got.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending after rejected transition", got.Status)
	}
	if got.ActualCheckIn != nil {
		t.Error("actualCheckIn must not be set by a rejected transition")
	}
}

func TestCancellationRules(t *testing.T) {
	f := newFixture(t)

	booking, _ := f.service.CreateBooking(validInput())
	if err := f.service.Confirm(booking.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// A confirmed booking can be cancelled.
	if err := f.service.Cancel(booking.ID); err != nil {
		t.Fatalf("cancel confirmed: %v", err)
	}

	// A terminal booking cannot.
	if err := f.service.Cancel(booking.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("cancel cancelled: error = %v, want ErrInvalidTransition", err)
	}

	other, _ := f.service.CreateBooking(validInput())
	f.service.Confirm(other.ID)
	f.service.CheckIn(other.ID)
	f.service.CheckOut(other.ID)
	if err := f.service.Cancel(other.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("cancel checked_out: error = %v, want ErrInvalidTransition", err)
	}
}

func TestCheckOutRequiresCheckedIn(t *testing.T) {
	f := newFixture(t)

	booking, _ := f.service.CreateBooking(validInput())
	f.service.Confirm(booking.ID)

	if err := f.service.CheckOut(booking.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}
}

func TestUpdateBookingReprices(t *testing.T) {
	f := newFixture(t)

	booking, _ := f.service.CreateBooking(validInput())

	in := validInput()
	in.CheckOutDate = date(2026, time.June, 8) // 7 nights, discount kicks in
	updated, err := f.service.UpdateBooking(booking.ID, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.TotalPrice.Equal(decimal.NewFromInt(12600)) {
		t.Errorf("total = %s, want 12600 after repricing", updated.TotalPrice)
	}
	if updated.DiscountID == nil {
		t.Error("discountId not set after repricing")
	}
}

func TestUpdateBookingRejectsPastCheckIn(t *testing.T) {
	f := newFixture(t)

	booking, _ := f.service.CreateBooking(validInput())

	in := validInput()
	in.CheckInDate = date(2026, time.April, 1) // now is pinned to 2026-05-01
	in.CheckOutDate = date(2026, time.April, 5)
	if _, err := f.service.UpdateBooking(booking.ID, in); !errors.Is(err, domain.ErrPastCheckIn) {
		t.Fatalf("err = %v, want ErrPastCheckIn", err)
	}

	// The stored booking keeps its original dates.
	stored, err := f.service.GetBooking(booking.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.CheckInDate.Equal(date(2026, time.June, 1)) {
		t.Errorf("checkIn = %v, want unchanged 2026-06-01", stored.CheckInDate)
	}
}

func TestUpdateBookingExcludesOwnRowFromConflict(t *testing.T) {
	f := newFixture(t)

	booking, _ := f.service.CreateBooking(validInput())
	f.service.Confirm(booking.ID)

	// Shift the confirmed booking by one day over its own range.
	in := validInput()
	in.CheckInDate = date(2026, time.June, 2)
	in.CheckOutDate = date(2026, time.June, 5)
	if _, err := f.service.UpdateBooking(booking.ID, in); err != nil {
		t.Errorf("update over own range failed: %v", err)
	}
}

func TestQuoteForRoomValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.QuoteForRoom(1, date(2026, time.June, 4), date(2026, time.June, 1), false)
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("error = %v, want ErrInvalidRange", err)
	}

	_, err = f.service.QuoteForRoom(1, date(2026, time.April, 1), date(2026, time.April, 3), false)
	if !errors.Is(err, domain.ErrPastCheckIn) {
		t.Errorf("error = %v, want ErrPastCheckIn", err)
	}

	_, err = f.service.QuoteForRoom(42, date(2026, time.June, 1), date(2026, time.June, 3), false)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	q, err := f.service.QuoteForRoom(1, date(2026, time.June, 1), date(2026, time.June, 3), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Nights != 2 || !q.FinalTotal.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("quote = %+v, want 2 nights at 4000", q)
	}
}

func TestDashboardCounters(t *testing.T) {
	f := newFixture(t)
	f.service.now = func() time.Time { return date(2026, time.June, 1) }

	firstIn := validInput()
	firstIn.CheckInDate = date(2026, time.June, 5)
	firstIn.CheckOutDate = date(2026, time.June, 8)
	first, _ := f.service.CreateBooking(firstIn)
	f.service.Confirm(first.ID)

	in := validInput()
	in.Guest.Phone = "+79160000002"
	in.RoomID = 2
	in.CheckInDate = date(2026, time.June, 1)
	in.CheckOutDate = date(2026, time.June, 3)
	second, _ := f.service.CreateBooking(in)
	f.service.Confirm(second.ID)

	stats, err := f.service.Dashboard()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalBookings != 2 {
		t.Errorf("totalBookings = %d, want 2", stats.TotalBookings)
	}
	if stats.ActiveBookings != 2 {
		t.Errorf("activeBookings = %d, want 2", stats.ActiveBookings)
	}
	if stats.TodayCheckIns != 1 {
		t.Errorf("todayCheckIns = %d, want 1 (second booking checks in today)", stats.TodayCheckIns)
	}
	if stats.AvailableRooms != 2 {
		t.Errorf("availableRooms = %d, want 2", stats.AvailableRooms)
	}
}
