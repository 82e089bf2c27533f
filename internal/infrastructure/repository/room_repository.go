package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
)

type roomRepository struct {
	db *sql.DB
}

// NewRoomRepository creates the postgres-backed room repository.
func NewRoomRepository(db *sql.DB) domain.RoomRepository {
	return &roomRepository{db: db}
}

const roomColumns = `
	r.room_id,
	r.number,
	r.floor,
	r.is_available,
	r.photo_url,
	t.room_type_id,
	t.category,
	t.capacity,
	t.has_child_bed,
	t.description`

func scanRoom(row interface{ Scan(...any) error }) (*domain.Room, error) {
	var r domain.Room
	var photoURL sql.NullString

	err := row.Scan(
		&r.ID,
		&r.Number,
		&r.Floor,
		&r.IsAvailable,
		&photoURL,
		&r.RoomType.ID,
		&r.RoomType.Category,
		&r.RoomType.Capacity,
		&r.RoomType.HasChildBed,
		&r.RoomType.Description,
	)
	if err != nil {
		return nil, err
	}
	if photoURL.Valid {
		url := photoURL.String
		r.PhotoURL = &url
	}
	return &r, nil
}

// GetAllRooms returns all rooms with their type information.
func (r *roomRepository) GetAllRooms() ([]domain.Room, error) {
	query := `
		SELECT` + roomColumns + `
		FROM room r
		INNER JOIN room_type t ON t.room_type_id = r.room_type_id
		ORDER BY r.room_id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

// GetRoomByID returns a room or domain.ErrNotFound.
func (r *roomRepository) GetRoomByID(id int) (*domain.Room, error) {
	query := `
		SELECT` + roomColumns + `
		FROM room r
		INNER JOIN room_type t ON t.room_type_id = r.room_type_id
		WHERE r.room_id = $1`

	room, err := scanRoom(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching room %d: %w", id, err)
	}
	return room, nil
}

// GetAvailableRooms returns enabled rooms with no blocking booking over
// [checkIn, checkOut).
func (r *roomRepository) GetAvailableRooms(checkIn, checkOut time.Time) ([]domain.Room, error) {
	query := `
		SELECT` + roomColumns + `
		FROM room r
		INNER JOIN room_type t ON t.room_type_id = r.room_type_id
		WHERE r.is_available = TRUE
		AND NOT EXISTS (
			SELECT 1
			FROM booking b
			WHERE b.room_id = r.room_id
			AND b.status IN ('confirmed', 'checked_in')
			AND b.check_in_date < $2
			AND b.check_out_date > $1
		)
		ORDER BY r.room_id`

	rows, err := r.db.Query(query, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("listing available rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

// GetRoomTypes returns all room types.
func (r *roomRepository) GetRoomTypes() ([]domain.RoomType, error) {
	query := `
		SELECT room_type_id, category, capacity, has_child_bed, description
		FROM room_type
		ORDER BY room_type_id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing room types: %w", err)
	}
	defer rows.Close()

	var types []domain.RoomType
	for rows.Next() {
		var t domain.RoomType
		if err := rows.Scan(&t.ID, &t.Category, &t.Capacity, &t.HasChildBed, &t.Description); err != nil {
			return nil, fmt.Errorf("scanning room type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// CountAvailable returns the number of rooms enabled for booking.
func (r *roomRepository) CountAvailable() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM room WHERE is_available = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting available rooms: %w", err)
	}
	return count, nil
}

// SetRoomPhoto stores the photo URL for a room.
func (r *roomRepository) SetRoomPhoto(roomID int, url string) error {
	result, err := r.db.Exec(`UPDATE room SET photo_url = $1 WHERE room_id = $2`, url, roomID)
	if err != nil {
		return fmt.Errorf("updating room %d photo: %w", roomID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("room %d: %w", roomID, domain.ErrNotFound)
	}
	return nil
}
