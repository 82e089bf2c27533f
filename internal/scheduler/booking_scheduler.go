package scheduler

import (
	"log/slog"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
)

// BookingScheduler runs the daily sweep that cancels stale pending
// bookings. Pending bookings never block availability, so the sweep is
// bookkeeping only.
type BookingScheduler struct {
	bookings domain.BookingRepository
	log      *slog.Logger
	ticker   *time.Ticker
}

// NewBookingScheduler creates the booking maintenance scheduler.
func NewBookingScheduler(bookings domain.BookingRepository, log *slog.Logger) *BookingScheduler {
	return &BookingScheduler{
		bookings: bookings,
		log:      log,
	}
}

// Start runs one sweep immediately, then schedules a run shortly after
// midnight every day.
func (s *BookingScheduler) Start() {
	s.CancelStaleBookings()

	now := time.Now()
	nextRun := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 1, 0, 0, now.Location())
	s.log.Info("booking scheduler started", "nextRun", nextRun.Format("2006-01-02 15:04:05"))

	time.AfterFunc(time.Until(nextRun), func() {
		s.CancelStaleBookings()

		s.ticker = time.NewTicker(24 * time.Hour)
		go func() {
			for range s.ticker.C {
				s.CancelStaleBookings()
			}
		}()
	})
}

// Stop stops the scheduler.
func (s *BookingScheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.log.Info("booking scheduler stopped")
	}
}

// CancelStaleBookings cancels pending bookings whose check-in date has
// already passed without a confirmation.
func (s *BookingScheduler) CancelStaleBookings() {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	cancelled, err := s.bookings.CancelStalePending(today)
	if err != nil {
		s.log.Error("cancelling stale pending bookings failed", "error", err)
		return
	}
	if cancelled > 0 {
		s.log.Info("stale pending bookings cancelled", "count", cancelled)
	}
}
