package http

import (
	"strconv"

	"github.com/avdeenkov/hotel_backend/internal/application"
	services "github.com/avdeenkov/hotel_backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// PhotoHandler uploads room photos to S3 and records the resulting URL
// on the room.
type PhotoHandler struct {
	storage *services.PhotoStorage
	rooms   *application.RoomService
}

// NewPhotoHandler creates a new photo upload handler.
func NewPhotoHandler(storage *services.PhotoStorage, rooms *application.RoomService) *PhotoHandler {
	return &PhotoHandler{storage: storage, rooms: rooms}
}

// UploadRoomPhoto accepts a multipart form with a "file" part and a
// "roomId" field, stores the photo and attaches its URL to the room.
func (h *PhotoHandler) UploadRoomPhoto(c *fiber.Ctx) error {
	roomID, err := strconv.Atoi(c.FormValue("roomId"))
	if err != nil || roomID <= 0 {
		return badRequest(c, "roomId is required and must be a positive integer")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file part is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not open uploaded file",
		})
	}
	defer file.Close()

	url, err := h.storage.Upload(c.Context(), file, fileHeader)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not store photo",
		})
	}

	if err := h.rooms.SetRoomPhoto(roomID, url); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"url": url,
	})
}
