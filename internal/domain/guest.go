package domain

import "time"

// Guest is the client a booking belongs to.
type Guest struct {
	ID        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// GuestRepository defines the data operations for guests.
type GuestRepository interface {
	// GetGuestByID returns a guest or ErrNotFound
	GetGuestByID(id int) (*Guest, error)
	// FindGuestByPhone returns (nil, nil) when no guest has the phone
	FindGuestByPhone(phone string) (*Guest, error)
	// CreateGuest inserts a new guest and fills in its ID
	CreateGuest(g *Guest) error
}
