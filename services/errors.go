package services

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrGuestMismatch  = errors.New("guest name does not match the room's occupant")
	ErrNoAvailability = errors.New("no vacant room available in this category")
	ErrRoomOccupied   = errors.New("room is already occupied")
	ErrInvalidInput   = errors.New("invalid input")
)
