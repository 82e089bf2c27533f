package domain

import "time"

// RoomCategory is the pricing tier of a room type.
type RoomCategory string

const (
	CategoryStandard RoomCategory = "standard"
	CategoryComfort  RoomCategory = "comfort"
	CategoryLux      RoomCategory = "lux"
)

// Valid reports whether the category is one of the known tiers.
func (c RoomCategory) Valid() bool {
	switch c {
	case CategoryStandard, CategoryComfort, CategoryLux:
		return true
	}
	return false
}

// RoomType represents a bookable room configuration. Reference data,
// immutable from the core's point of view.
type RoomType struct {
	ID          int          `json:"id"`
	Category    RoomCategory `json:"category"`
	Capacity    int          `json:"capacity"`
	HasChildBed bool         `json:"hasChildBed"`
	Description string       `json:"description"`
}

// Room represents a physical room in the hotel.
type Room struct {
	ID          int      `json:"id"`
	Number      string   `json:"number"`
	RoomType    RoomType `json:"roomType"`
	Floor       int      `json:"floor"`
	IsAvailable bool     `json:"isAvailable"`
	PhotoURL    *string  `json:"photoUrl,omitempty"`
}

// RoomRepository defines the data operations for rooms and room types.
type RoomRepository interface {
	// GetAllRooms returns all rooms with their type information
	GetAllRooms() ([]Room, error)
	// GetRoomByID returns a single room or ErrNotFound
	GetRoomByID(id int) (*Room, error)
	// GetAvailableRooms returns rooms free of conflicting bookings for
	// the half-open range [checkIn, checkOut)
	GetAvailableRooms(checkIn, checkOut time.Time) ([]Room, error)
	// GetRoomTypes returns all room types
	GetRoomTypes() ([]RoomType, error)
	// CountAvailable returns the number of rooms enabled for booking
	CountAvailable() (int, error)
	// SetRoomPhoto stores the photo URL for a room
	SetRoomPhoto(roomID int, url string) error
}
