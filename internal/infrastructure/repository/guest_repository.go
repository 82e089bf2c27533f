package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avdeenkov/hotel_backend/internal/domain"
)

type guestRepository struct {
	db *sql.DB
}

// NewGuestRepository creates the postgres-backed guest repository.
func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{db: db}
}

const guestColumns = "guest_id, first_name, last_name, phone, email, created_at"

func scanGuest(row interface{ Scan(...any) error }) (*domain.Guest, error) {
	var (
		g     domain.Guest
		email sql.NullString
	)
	if err := row.Scan(&g.ID, &g.FirstName, &g.LastName, &g.Phone, &email, &g.CreatedAt); err != nil {
		return nil, err
	}
	if email.Valid {
		g.Email = email.String
	}
	return &g, nil
}

// GetGuestByID returns one guest or domain.ErrNotFound.
func (r *guestRepository) GetGuestByID(id int) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guest WHERE guest_id = $1`

	g, err := scanGuest(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("guest %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting guest %d: %w", id, err)
	}
	return g, nil
}

// FindGuestByPhone returns the guest with the given phone number, or
// (nil, nil) when none exists.
func (r *guestRepository) FindGuestByPhone(phone string) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guest WHERE phone = $1`

	g, err := scanGuest(r.db.QueryRow(query, phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding guest by phone: %w", err)
	}
	return g, nil
}

// CreateGuest inserts a guest and fills in the generated ID and
// creation timestamp.
func (r *guestRepository) CreateGuest(g *domain.Guest) error {
	query := `
		INSERT INTO guest (first_name, last_name, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING guest_id, created_at`

	var email any
	if g.Email != "" {
		email = g.Email
	}
	err := r.db.QueryRow(query, g.FirstName, g.LastName, g.Phone, email).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting guest: %w", err)
	}
	return nil
}
