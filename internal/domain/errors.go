package domain

import (
	"errors"
	"fmt"
)

// Business error kinds. Every concrete error below wraps exactly one of them so
// callers can branch with errors.Is without caring about the specific cause.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrCapacity   = errors.New("capacity error")
)

var (
	ErrInvalidID         = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrInvalidCapacity   = fmt.Errorf("%w: invalid capacity", ErrValidation)
	ErrHotelNameRequired = fmt.Errorf("%w: hotel name required", ErrValidation)
	ErrRoomNameRequired  = fmt.Errorf("%w: room name required", ErrValidation)
	ErrNotEligible       = fmt.Errorf("%w: not eligible for hotel", ErrNotFound)
	ErrHotelNotFound     = fmt.Errorf("%w: hotel not found", ErrNotFound)
	ErrRoomNotFound      = fmt.Errorf("%w: room not found", ErrNotFound)
	ErrBookingNotFound   = fmt.Errorf("%w: booking not found", ErrNotFound)
	ErrRoomFull          = fmt.Errorf("%w: room is full", ErrCapacity)
	ErrAlreadyBooked     = fmt.Errorf("%w: user already holds a booking", ErrCapacity)
	ErrRoomAlreadyExists = fmt.Errorf("%w: room already exists", ErrValidation)
)
