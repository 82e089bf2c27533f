package http

import (
	"github.com/avdeenkov/hotel_backend/internal/application"
	"github.com/gofiber/fiber/v2"
)

type RoomHandler struct {
	service *application.RoomService
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(service *application.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// GetAllRooms returns every room with its type.
func (h *RoomHandler) GetAllRooms(c *fiber.Ctx) error {
	rooms, err := h.service.GetAllRooms()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": rooms,
	})
}

// GetRoomByID returns one room.
func (h *RoomHandler) GetRoomByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid room id")
	}

	room, err := h.service.GetRoomByID(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": room,
	})
}

// GetAvailableRooms returns rooms free for the whole [check_in, check_out)
// range.
func (h *RoomHandler) GetAvailableRooms(c *fiber.Ctx) error {
	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		return badRequest(c, "invalid check_in, use YYYY-MM-DD")
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		return badRequest(c, "invalid check_out, use YYYY-MM-DD")
	}

	rooms, err := h.service.GetAvailableRooms(checkIn, checkOut)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": rooms,
	})
}

// GetRoomTypes returns the room type catalog.
func (h *RoomHandler) GetRoomTypes(c *fiber.Ctx) error {
	types, err := h.service.GetRoomTypes()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": types,
	})
}
