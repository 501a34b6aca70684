package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-rooms/models"
	"hotel-rooms/services"
	"hotel-rooms/utils"
)

// roomForm mirrors the HTML form fields; values stay strings so a rejected
// submission can be re-rendered exactly as typed.
type roomForm struct {
	RoomID      string `form:"room_id"`
	Category    string `form:"category"`
	Cost        string `form:"cost"`
	FloorNumber string `form:"floor_number"`
	GuestName   string `form:"guest_name"`
}

func (f roomForm) input() (services.RoomInput, error) {
	cost, err := utils.ParseCost(f.Cost)
	if err != nil {
		return services.RoomInput{}, err
	}
	floor, err := utils.ParseFloor(f.FloorNumber)
	if err != nil {
		return services.RoomInput{}, err
	}
	return services.RoomInput{
		Category:    f.Category,
		Cost:        cost,
		FloorNumber: floor,
		GuestName:   utils.OptionalString(f.GuestName),
	}, nil
}

func formFromRoom(room models.Room) roomForm {
	return roomForm{
		RoomID:      strconv.Itoa(room.ID),
		Category:    room.Category,
		Cost:        strconv.FormatFloat(room.Cost, 'f', -1, 64),
		FloorNumber: strconv.Itoa(room.FloorNumber),
		GuestName:   room.Guest(),
	}
}

type pageData struct {
	Title   string
	Message string
	IsError bool

	Action string
	WithID bool
	Form   roomForm

	Rooms  []models.Room
	Report models.AvailabilityReport
}

// PageController serves the HTML menu, room table and form pages.
type PageController struct {
	Inventory *services.InventoryService
	Log       *zap.Logger
}

func NewPageController(inv *services.InventoryService, log *zap.Logger) *PageController {
	return &PageController{Inventory: inv, Log: log}
}

func (ctrl *PageController) renderResult(c *gin.Context, page string, data pageData, okStatus int, okMessage string, err error) {
	if err != nil {
		status, code := classify(err)
		ctrl.Log.Debug("form rejected", zap.String("page", page), zap.String("error", code), zap.Error(err))
		data.Message = err.Error()
		data.IsError = true
		c.HTML(status, page, data)
		return
	}
	data.Message = okMessage
	c.HTML(okStatus, page, data)
}

// Menu (GET /)
func (ctrl *PageController) Menu(c *gin.Context) {
	c.HTML(http.StatusOK, "menu.html", pageData{Title: "Hotel Room Management"})
}

// ViewRooms (GET /rooms/view)
func (ctrl *PageController) ViewRooms(c *gin.Context) {
	data := pageData{Title: "Hotel Room Status", Report: ctrl.Inventory.AvailabilityReport()}
	if c.Query("sort") == "status" {
		data.Title = "Rooms by Status"
		data.Rooms = ctrl.Inventory.SortByStatusThenID()
	} else {
		data.Rooms = ctrl.Inventory.List()
	}
	c.HTML(http.StatusOK, "rooms.html", data)
}

// ----------------------------------------------------
// Create
// ----------------------------------------------------

func createPage() pageData {
	return pageData{Title: "Add a Room", Action: "/rooms/create"}
}

func (ctrl *PageController) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "room_form.html", createPage())
}

func (ctrl *PageController) CreateSubmit(c *gin.Context) {
	data := createPage()
	if err := c.ShouldBind(&data.Form); err != nil {
		ctrl.renderResult(c, "room_form.html", data, 0, "", fmt.Errorf("%s: %w", err.Error(), services.ErrInvalidInput))
		return
	}

	in, err := data.Form.input()
	if err != nil {
		ctrl.renderResult(c, "room_form.html", data, 0, "", err)
		return
	}

	id, err := ctrl.Inventory.Create(in)
	if err != nil {
		ctrl.renderResult(c, "room_form.html", data, 0, "", err)
		return
	}

	data.Form = roomForm{}
	ctrl.renderResult(c, "room_form.html", data, http.StatusCreated, fmt.Sprintf("Room %d successfully added!", id), nil)
}

// ----------------------------------------------------
// Update
// ----------------------------------------------------

func updatePage() pageData {
	return pageData{Title: "Edit a Room", Action: "/rooms/update", WithID: true}
}

// UpdateForm pre-fills the form when ?id= names an existing room.
func (ctrl *PageController) UpdateForm(c *gin.Context) {
	data := updatePage()
	if raw := c.Query("id"); raw != "" {
		id, err := utils.ParseRoomID(raw)
		if err == nil {
			var room models.Room
			room, err = ctrl.Inventory.Get(id)
			if err == nil {
				data.Form = formFromRoom(room)
			}
		}
		if err != nil {
			data.Form.RoomID = raw
			ctrl.renderResult(c, "room_form.html", data, 0, "", err)
			return
		}
	}
	c.HTML(http.StatusOK, "room_form.html", data)
}

func (ctrl *PageController) UpdateSubmit(c *gin.Context) {
	data := updatePage()
	if err := c.ShouldBind(&data.Form); err != nil {
		ctrl.renderResult(c, "room_form.html", data, 0, "", fmt.Errorf("%s: %w", err.Error(), services.ErrInvalidInput))
		return
	}

	id, err := utils.ParseRoomID(data.Form.RoomID)
	if err != nil {
		ctrl.renderResult(c, "room_form.html", data, 0, "", err)
		return
	}
	in, err := data.Form.input()
	if err != nil {
		ctrl.renderResult(c, "room_form.html", data, 0, "", err)
		return
	}

	err = ctrl.Inventory.Update(id, in)
	ctrl.renderResult(c, "room_form.html", data, http.StatusOK, fmt.Sprintf("Room %d details successfully updated!", id), err)
}

// ----------------------------------------------------
// Delete
// ----------------------------------------------------

func deletePage() pageData {
	return pageData{Title: "Remove a Room"}
}

func (ctrl *PageController) DeleteForm(c *gin.Context) {
	c.HTML(http.StatusOK, "delete.html", deletePage())
}

func (ctrl *PageController) DeleteSubmit(c *gin.Context) {
	data := deletePage()
	data.Form.RoomID = c.PostForm("room_id")

	id, err := utils.ParseRoomID(data.Form.RoomID)
	if err == nil {
		err = ctrl.Inventory.Delete(id)
	}
	if err == nil {
		data.Form = roomForm{}
	}
	ctrl.renderResult(c, "delete.html", data, http.StatusOK, fmt.Sprintf("Room %d successfully removed!", id), err)
}

// ----------------------------------------------------
// Check-in / check-out
// ----------------------------------------------------

func checkInPage() pageData {
	return pageData{Title: "Check In a Guest"}
}

func (ctrl *PageController) CheckInForm(c *gin.Context) {
	c.HTML(http.StatusOK, "checkin.html", checkInPage())
}

func (ctrl *PageController) CheckInSubmit(c *gin.Context) {
	data := checkInPage()
	data.Form.GuestName = c.PostForm("guest_name")
	data.Form.Category = c.PostForm("category")

	id, err := ctrl.Inventory.CheckIn(data.Form.GuestName, data.Form.Category)
	msg := ""
	if err == nil {
		msg = fmt.Sprintf("Guest '%s' has been assigned to Room %d.", data.Form.GuestName, id)
		data.Form = roomForm{}
	}
	ctrl.renderResult(c, "checkin.html", data, http.StatusOK, msg, err)
}

func checkOutPage() pageData {
	return pageData{Title: "Check Out a Guest"}
}

func (ctrl *PageController) CheckOutForm(c *gin.Context) {
	c.HTML(http.StatusOK, "checkout.html", checkOutPage())
}

func (ctrl *PageController) CheckOutSubmit(c *gin.Context) {
	data := checkOutPage()
	data.Form.RoomID = c.PostForm("room_id")
	data.Form.GuestName = strings.TrimSpace(c.PostForm("guest_name"))

	id, err := utils.ParseRoomID(data.Form.RoomID)
	if err == nil {
		err = ctrl.Inventory.CheckOut(id, data.Form.GuestName)
	}
	msg := ""
	if err == nil {
		msg = fmt.Sprintf("Guest '%s' has checked out from Room %d.", data.Form.GuestName, id)
		data.Form = roomForm{}
	}
	ctrl.renderResult(c, "checkout.html", data, http.StatusOK, msg, err)
}
