// Package menu is the interactive console front end: a numbered menu that
// drives the inventory through blocking prompts.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"hotel-rooms/models"
	"hotel-rooms/services"
	"hotel-rooms/utils"
)

var errQuit = errors.New("quit")

type Menu struct {
	inv *services.InventoryService
	in  *bufio.Scanner
	out io.Writer
	log *zap.Logger

	title    lipgloss.Style
	occupied lipgloss.Style
	free     lipgloss.Style
	errStyle lipgloss.Style
}

func New(inv *services.InventoryService, in io.Reader, out io.Writer, log *zap.Logger) *Menu {
	if log == nil {
		log = zap.NewNop()
	}
	// the renderer inspects out, so colours are dropped when it is not a terminal
	r := lipgloss.NewRenderer(out)
	return &Menu{
		inv:      inv,
		in:       bufio.NewScanner(in),
		out:      out,
		log:      log,
		title:    r.NewStyle().Bold(true),
		occupied: r.NewStyle().Foreground(lipgloss.Color("9")),
		free:     r.NewStyle().Foreground(lipgloss.Color("10")),
		errStyle: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

var options = []string{
	"View all rooms",
	"Add a room",
	"Remove a room",
	"Edit a room",
	"Assign guest to room",
	"Check out guest",
	"Sort rooms by status",
	"Check availability",
	"Exit",
}

// Run loops until the user picks Exit or input ends.
func (m *Menu) Run() error {
	m.println("Welcome to the Hotel Room Management System!")

	for {
		m.println("")
		m.println(m.title.Render("--- Menu ---"))
		for i, opt := range options {
			m.printf("%d. %s\n", i+1, opt)
		}

		choice, err := m.prompt("Choose an option (1-9): ")
		if err != nil {
			return m.finish(err)
		}

		err = m.dispatch(choice)
		if err != nil {
			return m.finish(err)
		}
	}
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		m.println("Goodbye!")
		return nil
	}
	return err
}

func (m *Menu) dispatch(choice string) error {
	var err error
	switch choice {
	case "1":
		m.showRooms("Hotel Room Status", m.inv.List())
	case "2":
		err = m.addRoom()
	case "3":
		err = m.removeRoom()
	case "4":
		err = m.editRoom()
	case "5":
		err = m.assignGuest()
	case "6":
		err = m.checkOut()
	case "7":
		m.showRooms("Rooms by Status", m.inv.SortByStatusThenID())
	case "8":
		m.showAvailability()
	case "9":
		return errQuit
	default:
		m.println("Please choose a number between 1 and 9.")
		return nil
	}

	if err == nil || errors.Is(err, io.EOF) {
		return err
	}
	m.report(err)
	return nil
}

// report prints a recoverable failure; only input exhaustion ends the loop.
func (m *Menu) report(err error) {
	m.log.Debug("menu action failed", zap.Error(err))
	switch {
	case errors.Is(err, utils.ErrParse):
		m.println(m.errStyle.Render("Invalid input. Please enter valid numbers."))
	case errors.Is(err, services.ErrRoomNotFound):
		m.println(m.errStyle.Render("Error: Room not found."))
	case errors.Is(err, services.ErrRoomOccupied):
		m.println(m.errStyle.Render("This room is already occupied."))
	case errors.Is(err, services.ErrGuestMismatch):
		m.println(m.errStyle.Render("Error: Guest name does not match this room."))
	case errors.Is(err, services.ErrNoAvailability):
		m.println(m.errStyle.Render("Sorry, no vacant room in that category."))
	default:
		m.println(m.errStyle.Render("Error: " + err.Error()))
	}
}

// ----------------------------------------------------
// actions
// ----------------------------------------------------

func (m *Menu) addRoom() error {
	category, err := m.prompt("Enter the room category (e.g., Single/Double): ")
	if err != nil {
		return err
	}
	cost, err := m.promptCost("Enter the room cost per night: ")
	if err != nil {
		return err
	}
	floor, err := m.promptFloor("Enter the floor number (blank to derive): ")
	if err != nil {
		return err
	}
	guest, err := m.prompt("Enter the guest's name (blank if vacant): ")
	if err != nil {
		return err
	}

	id, err := m.inv.Create(services.RoomInput{
		Category:    category,
		Cost:        cost,
		FloorNumber: floor,
		GuestName:   utils.OptionalString(guest),
	})
	if err != nil {
		return err
	}
	m.printf("Room %d successfully added!\n", id)
	return nil
}

func (m *Menu) removeRoom() error {
	id, err := m.promptID("Enter the room number to remove: ")
	if err != nil {
		return err
	}
	if err := m.inv.Delete(id); err != nil {
		return err
	}
	m.println("Room successfully removed!")
	return nil
}

// editRoom keeps the current value of any field left blank.
func (m *Menu) editRoom() error {
	id, err := m.promptID("Enter the room number to update: ")
	if err != nil {
		return err
	}
	room, err := m.inv.Get(id)
	if err != nil {
		return err
	}

	in := services.RoomInput{
		Category:    room.Category,
		Cost:        room.Cost,
		FloorNumber: room.FloorNumber,
		GuestName:   room.GuestName,
	}

	category, err := m.prompt(fmt.Sprintf("Enter the new room category [%s]: ", room.Category))
	if err != nil {
		return err
	}
	if category != "" {
		in.Category = category
	}

	raw, err := m.prompt(fmt.Sprintf("Enter the new room cost per night [%s]: ", formatCost(room.Cost)))
	if err != nil {
		return err
	}
	if raw != "" {
		if in.Cost, err = utils.ParseCost(raw); err != nil {
			return err
		}
	}

	raw, err = m.prompt(fmt.Sprintf("Enter the new floor number [%d]: ", room.FloorNumber))
	if err != nil {
		return err
	}
	if raw != "" {
		if in.FloorNumber, err = utils.ParseFloor(raw); err != nil {
			return err
		}
	}

	if err := m.inv.Update(id, in); err != nil {
		return err
	}
	m.println("Room details successfully updated!")
	return nil
}

// assignGuest places the guest in a given room, or in the first vacant room
// of a category when the room number is left blank.
func (m *Menu) assignGuest() error {
	raw, err := m.prompt("Enter the room number to assign a guest (blank to pick by category): ")
	if err != nil {
		return err
	}

	if raw == "" {
		category, err := m.prompt("Enter the room category (e.g., Single/Double): ")
		if err != nil {
			return err
		}
		guest, err := m.prompt("Enter the guest's name: ")
		if err != nil {
			return err
		}
		id, err := m.inv.CheckIn(guest, category)
		if err != nil {
			return err
		}
		m.printf("Guest '%s' has been assigned to Room %d.\n", guest, id)
		return nil
	}

	id, err := utils.ParseRoomID(raw)
	if err != nil {
		return err
	}
	room, err := m.inv.Get(id)
	if err != nil {
		return err
	}
	if room.Occupied() {
		return fmt.Errorf("room %d: %w", id, services.ErrRoomOccupied)
	}
	guest, err := m.prompt("Enter the guest's name: ")
	if err != nil {
		return err
	}
	if err := m.inv.AssignGuest(id, guest); err != nil {
		return err
	}
	m.printf("Guest '%s' has been assigned to Room %d.\n", guest, id)
	return nil
}

func (m *Menu) checkOut() error {
	id, err := m.promptID("Enter the room number for checkout: ")
	if err != nil {
		return err
	}
	room, err := m.inv.Get(id)
	if err != nil {
		return err
	}
	if !room.Occupied() {
		m.println("This room is already free.")
		return nil
	}
	guest, err := m.prompt("Enter the guest's name: ")
	if err != nil {
		return err
	}
	if err := m.inv.CheckOut(id, guest); err != nil {
		return err
	}
	m.printf("Guest '%s' has checked out from Room %d.\n", guest, id)
	return nil
}

// ----------------------------------------------------
// views
// ----------------------------------------------------

func (m *Menu) showRooms(heading string, rooms []models.Room) {
	m.println("")
	m.println(m.title.Render("--- " + heading + " ---"))

	free, occupied := 0, 0
	for _, room := range rooms {
		guest := "No Guest"
		style := m.free
		if room.Occupied() {
			guest = room.Guest()
			style = m.occupied
			occupied++
		} else {
			free++
		}
		line := fmt.Sprintf("Room %d | Category: %s | Cost: $%s | Floor: %d | Guest: %s | Status: %s",
			room.ID, room.Category, formatCost(room.Cost), room.FloorNumber, guest, room.Status())
		m.println(style.Render(line))
	}

	m.println("")
	m.printf("Total Free Rooms: %d\n", free)
	m.printf("Total Occupied Rooms: %d\n", occupied)
}

func (m *Menu) showAvailability() {
	report := m.inv.AvailabilityReport()
	m.println("")
	m.println(m.title.Render("--- Room Availability Report ---"))
	m.printf("Occupied Rooms (%d): %s\n", report.OccupiedCount, joinIDs(report.Occupied))
	m.printf("Free Rooms (%d): %s\n", report.VacantCount, joinIDs(report.Vacant))
}

// ----------------------------------------------------
// input helpers
// ----------------------------------------------------

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		m.println("")
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) promptID(label string) (int, error) {
	raw, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	return utils.ParseRoomID(raw)
}

func (m *Menu) promptCost(label string) (float64, error) {
	raw, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	return utils.ParseCost(raw)
}

func (m *Menu) promptFloor(label string) (int, error) {
	raw, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	return utils.ParseFloor(raw)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func formatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', -1, 64)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
