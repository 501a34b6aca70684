package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-rooms/services"
	"hotel-rooms/utils"
)

type roomPayload struct {
	Category    string   `json:"category" binding:"required"`
	Cost        *float64 `json:"cost" binding:"required"`
	FloorNumber int      `json:"floor_number"`
	GuestName   *string  `json:"guest_name"`
}

func (p roomPayload) input() services.RoomInput {
	return services.RoomInput{
		Category:    p.Category,
		Cost:        *p.Cost,
		FloorNumber: p.FloorNumber,
		GuestName:   p.GuestName,
	}
}

type checkInPayload struct {
	GuestName string `json:"guest_name" binding:"required"`
	Category  string `json:"category" binding:"required"`
}

type checkOutPayload struct {
	RoomID    int    `json:"room_id" binding:"required"`
	GuestName string `json:"guest_name" binding:"required"`
}

type RoomController struct {
	Inventory *services.InventoryService
	Log       *zap.Logger
}

func NewRoomController(inv *services.InventoryService, log *zap.Logger) *RoomController {
	return &RoomController{Inventory: inv, Log: log}
}

// GetRooms (GET /api/rooms). ?sort=status puts occupied rooms first.
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	if c.Query("sort") == "status" {
		c.JSON(http.StatusOK, ctrl.Inventory.SortByStatusThenID())
		return
	}
	c.JSON(http.StatusOK, ctrl.Inventory.List())
}

// GetRoom (GET /api/rooms/:id)
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, err := utils.ParseRoomID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	room, err := ctrl.Inventory.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetAvailability (GET /api/rooms/availability)
func (ctrl *RoomController) GetAvailability(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.Inventory.AvailabilityReport())
}

// CreateRoom (POST /api/rooms)
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	id, err := ctrl.Inventory.Create(payload.input())
	if err != nil {
		ctrl.Log.Warn("create room rejected", zap.Error(err))
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, fmt.Sprintf("Room %d created successfully.", id), gin.H{"room_id": id})
}

// UpdateRoom (PUT|PATCH /api/rooms/:id)
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, err := utils.ParseRoomID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	if err := ctrl.Inventory.Update(id, payload.input()); err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, fmt.Sprintf("Room %d updated successfully.", id), gin.H{"room_id": id})
}

// DeleteRoom (DELETE /api/rooms/:id)
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, err := utils.ParseRoomID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ctrl.Inventory.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, fmt.Sprintf("Room %d deleted successfully.", id), gin.H{"room_id": id})
}

// CheckIn (POST /api/checkin)
func (ctrl *RoomController) CheckIn(c *gin.Context) {
	var payload checkInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	id, err := ctrl.Inventory.CheckIn(payload.GuestName, payload.Category)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, fmt.Sprintf("Guest '%s' checked in to room %d.", payload.GuestName, id), gin.H{"room_id": id})
}

// CheckOut (POST /api/checkout)
func (ctrl *RoomController) CheckOut(c *gin.Context) {
	var payload checkOutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	if err := ctrl.Inventory.CheckOut(payload.RoomID, payload.GuestName); err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, fmt.Sprintf("Guest '%s' checked out of room %d.", payload.GuestName, payload.RoomID), gin.H{"room_id": payload.RoomID})
}
