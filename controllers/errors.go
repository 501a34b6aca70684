package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-rooms/services"
	"hotel-rooms/utils"
)

// classify maps service errors to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrRoomNotFound):
		return http.StatusNotFound, "room_not_found"
	case errors.Is(err, services.ErrGuestMismatch):
		return http.StatusConflict, "guest_mismatch"
	case errors.Is(err, services.ErrNoAvailability):
		return http.StatusConflict, "no_availability"
	case errors.Is(err, services.ErrRoomOccupied):
		return http.StatusConflict, "room_occupied"
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, utils.ErrParse):
		return http.StatusBadRequest, "invalid_input"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	utils.JSONError(c, status, code, message)
}

func respondInvalidPayload(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid_input", "Invalid request payload: "+err.Error())
}
