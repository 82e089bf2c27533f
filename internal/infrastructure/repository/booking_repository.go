package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
)

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates the postgres-backed booking repository.
func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `
	b.booking_id,
	b.reference,
	b.guest_id,
	b.room_id,
	b.check_in_date,
	b.check_out_date,
	b.needs_child_bed,
	b.total_price,
	b.discount_id,
	b.status,
	b.actual_check_in,
	b.actual_check_out,
	b.notes,
	b.created_at,
	b.updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	var b domain.Booking
	var discountID sql.NullInt64
	var actualCheckIn, actualCheckOut sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.GuestID,
		&b.RoomID,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.NeedsChildBed,
		&b.TotalPrice,
		&discountID,
		&b.Status,
		&actualCheckIn,
		&actualCheckOut,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if discountID.Valid {
		id := int(discountID.Int64)
		b.DiscountID = &id
	}
	if actualCheckIn.Valid {
		t := actualCheckIn.Time
		b.ActualCheckIn = &t
	}
	if actualCheckOut.Valid {
		t := actualCheckOut.Time
		b.ActualCheckOut = &t
	}
	return &b, nil
}

// GetBookingByID returns a booking or domain.ErrNotFound.
func (r *bookingRepository) GetBookingByID(id int) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM booking b
		WHERE b.booking_id = $1`

	booking, err := scanBooking(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching booking %d: %w", id, err)
	}
	return booking, nil
}

// ListBookings returns all bookings, newest first.
func (r *bookingRepository) ListBookings() ([]domain.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM booking b
		ORDER BY b.created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// overlapCondition matches blocking bookings whose half-open range
// [check_in_date, check_out_date) intersects [$2, $3).
const overlapCondition = `
	b.room_id = $1
	AND b.status IN ('confirmed', 'checked_in')
	AND b.check_in_date < $3
	AND b.check_out_date > $2
	AND ($4 = 0 OR b.booking_id <> $4)`

// FindOverlapping returns blocking bookings intersecting the range.
func (r *bookingRepository) FindOverlapping(roomID int, checkIn, checkOut time.Time, excludeID int) ([]domain.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM booking b
		WHERE` + overlapCondition

	rows, err := r.db.Query(query, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return nil, fmt.Errorf("finding overlapping bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// lockConflicts re-runs the overlap check inside tx, locking matching
// rows so a concurrent insert for the same room serializes behind us.
func lockConflicts(tx *sql.Tx, roomID int, checkIn, checkOut time.Time, excludeID int) error {
	query := `
		SELECT b.booking_id
		FROM booking b
		WHERE` + overlapCondition + `
		FOR UPDATE`

	rows, err := tx.Query(query, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return fmt.Errorf("re-checking availability: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		return domain.ErrRoomUnavailable
	}
	return rows.Err()
}

// CreateBooking inserts the booking after re-verifying availability in
// the same transaction. The service-level check is advisory only.
func (r *bookingRepository) CreateBooking(b *domain.Booking) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockConflicts(tx, b.RoomID, b.CheckInDate, b.CheckOutDate, 0); err != nil {
		return err
	}

	query := `
		INSERT INTO booking (
			reference,
			guest_id,
			room_id,
			check_in_date,
			check_out_date,
			needs_child_bed,
			total_price,
			discount_id,
			status,
			notes,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING booking_id, created_at, updated_at`

	err = tx.QueryRow(
		query,
		b.Reference,
		b.GuestID,
		b.RoomID,
		b.CheckInDate,
		b.CheckOutDate,
		b.NeedsChildBed,
		b.TotalPrice,
		nullableInt(b.DiscountID),
		b.Status,
		b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing booking: %w", err)
	}
	return nil
}

// UpdateBooking rewrites the mutable fields, re-verifying availability
// in the same transaction with the booking's own row excluded.
func (r *bookingRepository) UpdateBooking(b *domain.Booking) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockConflicts(tx, b.RoomID, b.CheckInDate, b.CheckOutDate, b.ID); err != nil {
		return err
	}

	query := `
		UPDATE booking SET
			room_id = $1,
			check_in_date = $2,
			check_out_date = $3,
			needs_child_bed = $4,
			total_price = $5,
			discount_id = $6,
			notes = $7,
			updated_at = NOW()
		WHERE booking_id = $8`

	result, err := tx.Exec(
		query,
		b.RoomID,
		b.CheckInDate,
		b.CheckOutDate,
		b.NeedsChildBed,
		b.TotalPrice,
		nullableInt(b.DiscountID),
		b.Notes,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating booking %d: %w", b.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("booking %d: %w", b.ID, domain.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing booking update: %w", err)
	}
	return nil
}

// UpdateBookingStatus sets the status and the actual check-in/check-out
// timestamps when given.
func (r *bookingRepository) UpdateBookingStatus(id int, status domain.BookingStatus, actualCheckIn, actualCheckOut *time.Time) error {
	query := `
		UPDATE booking SET
			status = $1,
			actual_check_in = COALESCE($2, actual_check_in),
			actual_check_out = COALESCE($3, actual_check_out),
			updated_at = NOW()
		WHERE booking_id = $4`

	result, err := r.db.Exec(query, status, nullableTime(actualCheckIn), nullableTime(actualCheckOut), id)
	if err != nil {
		return fmt.Errorf("updating booking %d status: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CancelStalePending cancels pending bookings whose check-in date has
// passed without confirmation.
// ConfirmPending locks the booking row, re-runs the overlap check under
// the same transaction and flips the status to confirmed, so a
// concurrent confirmation of a competing booking cannot slip in between
// the check and the write.
func (r *bookingRepository) ConfirmPending(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		roomID            int
		checkIn, checkOut time.Time
		status            domain.BookingStatus
	)
	err = tx.QueryRow(`
		SELECT room_id, check_in_date, check_out_date, status
		FROM booking
		WHERE booking_id = $1
		FOR UPDATE`, id).Scan(&roomID, &checkIn, &checkOut, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("loading booking %d: %w", id, err)
	}
	if status != domain.StatusPending {
		return domain.ErrInvalidTransition
	}

	if err := lockConflicts(tx, roomID, checkIn, checkOut, id); err != nil {
		return err
	}

	_, err = tx.Exec(`
		UPDATE booking SET status = $1, updated_at = NOW()
		WHERE booking_id = $2`, domain.StatusConfirmed, id)
	if err != nil {
		return fmt.Errorf("confirming booking %d: %w", id, err)
	}

	return tx.Commit()
}

func (r *bookingRepository) CancelStalePending(before time.Time) (int64, error) {
	query := `
		UPDATE booking
		SET status = 'cancelled', updated_at = NOW()
		WHERE status = 'pending' AND check_in_date < $1`

	result, err := r.db.Exec(query, before)
	if err != nil {
		return 0, fmt.Errorf("cancelling stale pending bookings: %w", err)
	}
	return result.RowsAffected()
}

// DashboardCounts returns the booking counters for the dashboard.
func (r *bookingRepository) DashboardCounts(today time.Time) (*domain.DashboardStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status IN ('confirmed', 'checked_in')),
			COUNT(*) FILTER (WHERE status = 'confirmed' AND check_in_date = $1),
			COUNT(*) FILTER (WHERE status = 'checked_in' AND check_out_date = $1)
		FROM booking`

	stats := &domain.DashboardStats{}
	err := r.db.QueryRow(query, today).Scan(
		&stats.TotalBookings,
		&stats.ActiveBookings,
		&stats.TodayCheckIns,
		&stats.TodayCheckOuts,
	)
	if err != nil {
		return nil, fmt.Errorf("counting bookings: %w", err)
	}
	return stats, nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullableTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
