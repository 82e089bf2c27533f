package domain

import "errors"

// Sentinel errors for the booking core. Handlers map these to user-facing
// responses; anything else is treated as a persistence failure.
var (
	// ErrInvalidRange indicates check_out_date is not after check_in_date.
	ErrInvalidRange = errors.New("check-out date must be after check-in date")

	// ErrPastCheckIn indicates a check-in date before today.
	ErrPastCheckIn = errors.New("check-in date cannot be in the past")

	// ErrRoomUnavailable indicates an overlapping confirmed or checked-in
	// booking exists for the requested room and dates.
	ErrRoomUnavailable = errors.New("room is already booked for the selected dates")

	// ErrInvalidTransition indicates a lifecycle action attempted from a
	// state that does not support it. The booking is left unchanged.
	ErrInvalidTransition = errors.New("booking status does not allow this action")

	// ErrInvalidGuest indicates the guest contact data failed validation.
	ErrInvalidGuest = errors.New("invalid guest data")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)
