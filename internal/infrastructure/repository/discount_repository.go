package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avdeenkov/hotel_backend/internal/domain"
)

type discountRepository struct {
	db *sql.DB
}

// NewDiscountRepository creates the postgres-backed discount repository.
func NewDiscountRepository(db *sql.DB) domain.DiscountRepository {
	return &discountRepository{db: db}
}

const discountColumns = "discount_id, name, min_nights, percent, is_active"

func scanDiscount(row interface{ Scan(...any) error }) (*domain.Discount, error) {
	var d domain.Discount
	if err := row.Scan(&d.ID, &d.Name, &d.MinNights, &d.Percent, &d.IsActive); err != nil {
		return nil, err
	}
	return &d, nil
}

// ActiveDiscounts returns all active discounts ordered by min_nights.
func (r *discountRepository) ActiveDiscounts() ([]domain.Discount, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discount
		WHERE is_active = true
		ORDER BY min_nights`

	return r.queryDiscounts(query)
}

// ListDiscounts returns every discount, active or not.
func (r *discountRepository) ListDiscounts() ([]domain.Discount, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discount
		ORDER BY min_nights`

	return r.queryDiscounts(query)
}

func (r *discountRepository) queryDiscounts(query string, args ...any) ([]domain.Discount, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying discounts: %w", err)
	}
	defer rows.Close()

	var discounts []domain.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning discount: %w", err)
		}
		discounts = append(discounts, *d)
	}
	return discounts, rows.Err()
}

// GetDiscountByID returns one discount or domain.ErrNotFound.
func (r *discountRepository) GetDiscountByID(id int) (*domain.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discount WHERE discount_id = $1`

	d, err := scanDiscount(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("discount %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting discount %d: %w", id, err)
	}
	return d, nil
}

// CreateDiscount inserts a discount and fills in its generated ID.
func (r *discountRepository) CreateDiscount(d *domain.Discount) error {
	query := `
		INSERT INTO discount (name, min_nights, percent, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING discount_id`

	err := r.db.QueryRow(query, d.Name, d.MinNights, d.Percent, d.IsActive).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("inserting discount: %w", err)
	}
	return nil
}

// UpdateDiscount updates a discount or returns domain.ErrNotFound.
func (r *discountRepository) UpdateDiscount(d *domain.Discount) error {
	query := `
		UPDATE discount
		SET name = $1, min_nights = $2, percent = $3, is_active = $4
		WHERE discount_id = $5`

	result, err := r.db.Exec(query, d.Name, d.MinNights, d.Percent, d.IsActive, d.ID)
	if err != nil {
		return fmt.Errorf("updating discount %d: %w", d.ID, err)
	}
	return requireAffected(result, d.ID)
}

// DeleteDiscount removes a discount or returns domain.ErrNotFound.
// Bookings keep their discount snapshot through ON DELETE SET NULL.
func (r *discountRepository) DeleteDiscount(id int) error {
	result, err := r.db.Exec(`DELETE FROM discount WHERE discount_id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting discount %d: %w", id, err)
	}
	return requireAffected(result, id)
}
