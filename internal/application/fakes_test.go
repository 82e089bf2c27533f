package application

import (
	"io"
	"log/slog"
	"time"

	"github.com/avdeenkov/hotel_backend/internal/domain"
)

// In-memory repositories for exercising the services without a database.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type memPriceRepo struct {
	prices []domain.NightlyPrice
	err    error
}

func (m *memPriceRepo) LookupPrice(roomTypeID, dayOfWeek int) (*domain.NightlyPrice, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.prices {
		if m.prices[i].RoomTypeID == roomTypeID && m.prices[i].DayOfWeek == dayOfWeek {
			return &m.prices[i], nil
		}
	}
	return nil, nil
}

func (m *memPriceRepo) AnyPriceForType(roomTypeID int) (*domain.NightlyPrice, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.prices {
		if m.prices[i].RoomTypeID == roomTypeID {
			return &m.prices[i], nil
		}
	}
	return nil, nil
}

func (m *memPriceRepo) ListPrices() ([]domain.NightlyPrice, error) { return m.prices, nil }

func (m *memPriceRepo) CreatePrice(p *domain.NightlyPrice) error {
	p.ID = len(m.prices) + 1
	m.prices = append(m.prices, *p)
	return nil
}

func (m *memPriceRepo) UpdatePrice(p *domain.NightlyPrice) error {
	for i := range m.prices {
		if m.prices[i].ID == p.ID {
			m.prices[i] = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memPriceRepo) DeletePrice(id int) error {
	for i := range m.prices {
		if m.prices[i].ID == id {
			m.prices = append(m.prices[:i], m.prices[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memDiscountRepo struct {
	discounts []domain.Discount
	err       error
}

func (m *memDiscountRepo) ActiveDiscounts() ([]domain.Discount, error) {
	if m.err != nil {
		return nil, m.err
	}
	var active []domain.Discount
	for _, d := range m.discounts {
		if d.IsActive {
			active = append(active, d)
		}
	}
	return active, nil
}

func (m *memDiscountRepo) GetDiscountByID(id int) (*domain.Discount, error) {
	for i := range m.discounts {
		if m.discounts[i].ID == id {
			return &m.discounts[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memDiscountRepo) ListDiscounts() ([]domain.Discount, error) { return m.discounts, nil }

func (m *memDiscountRepo) CreateDiscount(d *domain.Discount) error {
	d.ID = len(m.discounts) + 1
	m.discounts = append(m.discounts, *d)
	return nil
}

func (m *memDiscountRepo) UpdateDiscount(d *domain.Discount) error {
	for i := range m.discounts {
		if m.discounts[i].ID == d.ID {
			m.discounts[i] = *d
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memDiscountRepo) DeleteDiscount(id int) error {
	for i := range m.discounts {
		if m.discounts[i].ID == id {
			m.discounts = append(m.discounts[:i], m.discounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memRoomRepo struct {
	rooms []domain.Room
}

func (m *memRoomRepo) GetAllRooms() ([]domain.Room, error) { return m.rooms, nil }

func (m *memRoomRepo) GetRoomByID(id int) (*domain.Room, error) {
	for i := range m.rooms {
		if m.rooms[i].ID == id {
			return &m.rooms[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRoomRepo) GetAvailableRooms(checkIn, checkOut time.Time) ([]domain.Room, error) {
	return m.rooms, nil
}

func (m *memRoomRepo) GetRoomTypes() ([]domain.RoomType, error) {
	var types []domain.RoomType
	for _, r := range m.rooms {
		types = append(types, r.RoomType)
	}
	return types, nil
}

func (m *memRoomRepo) CountAvailable() (int, error) {
	n := 0
	for _, r := range m.rooms {
		if r.IsAvailable {
			n++
		}
	}
	return n, nil
}

func (m *memRoomRepo) SetRoomPhoto(roomID int, url string) error { return nil }

type memGuestRepo struct {
	guests []domain.Guest
}

func (m *memGuestRepo) GetGuestByID(id int) (*domain.Guest, error) {
	for i := range m.guests {
		if m.guests[i].ID == id {
			return &m.guests[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memGuestRepo) FindGuestByPhone(phone string) (*domain.Guest, error) {
	for i := range m.guests {
		if m.guests[i].Phone == phone {
			return &m.guests[i], nil
		}
	}
	return nil, nil
}

func (m *memGuestRepo) CreateGuest(g *domain.Guest) error {
	g.ID = len(m.guests) + 1
	m.guests = append(m.guests, *g)
	return nil
}

type memBookingRepo struct {
	bookings []domain.Booking
	nextID   int
}

func (m *memBookingRepo) GetBookingByID(id int) (*domain.Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memBookingRepo) ListBookings() ([]domain.Booking, error) { return m.bookings, nil }

func (m *memBookingRepo) FindOverlapping(roomID int, checkIn, checkOut time.Time, excludeID int) ([]domain.Booking, error) {
	var overlapping []domain.Booking
	for _, b := range m.bookings {
		if b.RoomID != roomID || b.ID == excludeID || !b.Status.Blocks() {
			continue
		}
		if b.CheckInDate.Before(checkOut) && b.CheckOutDate.After(checkIn) {
			overlapping = append(overlapping, b)
		}
	}
	return overlapping, nil
}

func (m *memBookingRepo) CreateBooking(b *domain.Booking) error {
	if b.Status.Blocks() {
		conflicts, _ := m.FindOverlapping(b.RoomID, b.CheckInDate, b.CheckOutDate, 0)
		if len(conflicts) > 0 {
			return domain.ErrRoomUnavailable
		}
	}
	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.bookings = append(m.bookings, *b)
	return nil
}

func (m *memBookingRepo) UpdateBooking(b *domain.Booking) error {
	if b.Status.Blocks() {
		conflicts, _ := m.FindOverlapping(b.RoomID, b.CheckInDate, b.CheckOutDate, b.ID)
		if len(conflicts) > 0 {
			return domain.ErrRoomUnavailable
		}
	}
	for i := range m.bookings {
		if m.bookings[i].ID == b.ID {
			m.bookings[i] = *b
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memBookingRepo) UpdateBookingStatus(id int, status domain.BookingStatus, actualCheckIn, actualCheckOut *time.Time) error {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			m.bookings[i].Status = status
			if actualCheckIn != nil {
				m.bookings[i].ActualCheckIn = actualCheckIn
			}
			if actualCheckOut != nil {
				m.bookings[i].ActualCheckOut = actualCheckOut
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memBookingRepo) ConfirmPending(id int) error {
	for i := range m.bookings {
		if m.bookings[i].ID != id {
			continue
		}
		if m.bookings[i].Status != domain.StatusPending {
			return domain.ErrInvalidTransition
		}
		conflicts, _ := m.FindOverlapping(m.bookings[i].RoomID, m.bookings[i].CheckInDate, m.bookings[i].CheckOutDate, id)
		if len(conflicts) > 0 {
			return domain.ErrRoomUnavailable
		}
		m.bookings[i].Status = domain.StatusConfirmed
		return nil
	}
	return domain.ErrNotFound
}

func (m *memBookingRepo) CancelStalePending(before time.Time) (int64, error) {
	var n int64
	for i := range m.bookings {
		if m.bookings[i].Status == domain.StatusPending && m.bookings[i].CheckInDate.Before(before) {
			m.bookings[i].Status = domain.StatusCancelled
			n++
		}
	}
	return n, nil
}

func (m *memBookingRepo) DashboardCounts(today time.Time) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}
	for _, b := range m.bookings {
		stats.TotalBookings++
		if b.Status.Blocks() {
			stats.ActiveBookings++
		}
		if b.Status == domain.StatusConfirmed && b.CheckInDate.Equal(today) {
			stats.TodayCheckIns++
		}
		if b.Status == domain.StatusCheckedIn && b.CheckOutDate.Equal(today) {
			stats.TodayCheckOuts++
		}
	}
	return stats, nil
}
