package application

import (
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
)

// RoomService exposes room and room type queries to the handlers.
type RoomService struct {
	repo domain.RoomRepository
}

// NewRoomService creates a room service.
func NewRoomService(repo domain.RoomRepository) *RoomService {
	return &RoomService{repo: repo}
}

func (s *RoomService) GetAllRooms() ([]domain.Room, error) {
	return s.repo.GetAllRooms()
}

func (s *RoomService) GetRoomByID(id int) (*domain.Room, error) {
	return s.repo.GetRoomByID(id)
}

// GetAvailableRooms returns rooms free over [checkIn, checkOut).
func (s *RoomService) GetAvailableRooms(checkIn, checkOut time.Time) ([]domain.Room, error) {
	if !checkOut.After(checkIn) {
		return nil, domain.ErrInvalidRange
	}
	return s.repo.GetAvailableRooms(checkIn, checkOut)
}

func (s *RoomService) GetRoomTypes() ([]domain.RoomType, error) {
	return s.repo.GetRoomTypes()
}

// SetRoomPhoto stores the uploaded photo URL for a room.
func (s *RoomService) SetRoomPhoto(roomID int, url string) error {
	return s.repo.SetRoomPhoto(roomID, url)
}
