package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avdeenkov/hotel_backend/internal/domain"
	"github.com/lib/pq"
)

type priceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates the postgres-backed nightly price repository.
func NewPriceRepository(db *sql.DB) domain.PriceRepository {
	return &priceRepository{db: db}
}

// LookupPrice returns the exact (roomType, weekday) row, or (nil, nil)
// when no such row exists.
func (r *priceRepository) LookupPrice(roomTypeID, dayOfWeek int) (*domain.NightlyPrice, error) {
	query := `
		SELECT price_id, room_type_id, day_of_week, amount
		FROM nightly_price
		WHERE room_type_id = $1 AND day_of_week = $2`

	var p domain.NightlyPrice
	err := r.db.QueryRow(query, roomTypeID, dayOfWeek).Scan(&p.ID, &p.RoomTypeID, &p.DayOfWeek, &p.Amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up price: %w", err)
	}
	return &p, nil
}

// AnyPriceForType returns some price row for the room type, or
// (nil, nil) when the type has no rows. The row choice is not part of
// the contract; ordering by weekday just keeps it stable.
func (r *priceRepository) AnyPriceForType(roomTypeID int) (*domain.NightlyPrice, error) {
	query := `
		SELECT price_id, room_type_id, day_of_week, amount
		FROM nightly_price
		WHERE room_type_id = $1
		ORDER BY day_of_week
		LIMIT 1`

	var p domain.NightlyPrice
	err := r.db.QueryRow(query, roomTypeID).Scan(&p.ID, &p.RoomTypeID, &p.DayOfWeek, &p.Amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up fallback price: %w", err)
	}
	return &p, nil
}

// ListPrices returns all price rows.
func (r *priceRepository) ListPrices() ([]domain.NightlyPrice, error) {
	query := `
		SELECT price_id, room_type_id, day_of_week, amount
		FROM nightly_price
		ORDER BY room_type_id, day_of_week`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing prices: %w", err)
	}
	defer rows.Close()

	var prices []domain.NightlyPrice
	for rows.Next() {
		var p domain.NightlyPrice
		if err := rows.Scan(&p.ID, &p.RoomTypeID, &p.DayOfWeek, &p.Amount); err != nil {
			return nil, fmt.Errorf("scanning price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// CreatePrice inserts a price row. The (room_type, day_of_week) unique
// constraint surfaces as a duplicate error.
func (r *priceRepository) CreatePrice(p *domain.NightlyPrice) error {
	query := `
		INSERT INTO nightly_price (room_type_id, day_of_week, amount)
		VALUES ($1, $2, $3)
		RETURNING price_id`

	err := r.db.QueryRow(query, p.RoomTypeID, p.DayOfWeek, p.Amount).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("a price for this room type and weekday already exists")
		}
		return fmt.Errorf("inserting price: %w", err)
	}
	return nil
}

// UpdatePrice updates a price row or returns domain.ErrNotFound.
func (r *priceRepository) UpdatePrice(p *domain.NightlyPrice) error {
	query := `
		UPDATE nightly_price
		SET room_type_id = $1, day_of_week = $2, amount = $3
		WHERE price_id = $4`

	result, err := r.db.Exec(query, p.RoomTypeID, p.DayOfWeek, p.Amount, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("a price for this room type and weekday already exists")
		}
		return fmt.Errorf("updating price %d: %w", p.ID, err)
	}
	return requireAffected(result, p.ID)
}

// DeletePrice removes a price row or returns domain.ErrNotFound.
func (r *priceRepository) DeletePrice(id int) error {
	result, err := r.db.Exec(`DELETE FROM nightly_price WHERE price_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting price %d: %w", id, err)
	}
	return requireAffected(result, id)
}

// isUniqueViolation reports whether err is a postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func requireAffected(result sql.Result, id int) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
