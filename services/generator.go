package services

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"hotel-rooms/models"
)

// Mode selects how Initialize synthesizes the inventory.
type Mode string

const (
	ModeDeterministic Mode = "deterministic"
	ModeRandom        Mode = "random"
)

const (
	CategorySingle = "Single"
	CategoryDouble = "Double"

	singleCost = 100
	doubleCost = 150

	roomsPerFloor = 10
)

// GuestPool is the fixed set of names used for randomized occupancy.
var GuestPool = []string{"Alice", "Bob", "Charlie", "Diana", "Ethan", "Fatima", "George", "Hana"}

func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeDeterministic, "":
		return ModeDeterministic, nil
	case ModeRandom:
		return ModeRandom, nil
	default:
		return "", fmt.Errorf("unknown inventory mode %q: %w", raw, ErrInvalidInput)
	}
}

// FloorFor derives the floor of a room from its number, ten rooms per floor.
func FloorFor(id int) int {
	return (id-1)/roomsPerFloor + 1
}

// generateRooms builds rooms 1..count. Odd ids are singles, even ids doubles.
func generateRooms(count int, mode Mode, rng *rand.Rand) map[int]models.Room {
	rooms := make(map[int]models.Room, count)
	for id := 1; id <= count; id++ {
		room := models.Room{
			ID:          id,
			Category:    CategorySingle,
			Cost:        singleCost,
			FloorNumber: FloorFor(id),
		}
		if id%2 == 0 {
			room.Category = CategoryDouble
			room.Cost = doubleCost
		}
		if mode == ModeRandom && rng.IntN(2) == 0 {
			room.GuestName = models.StringPtr(GuestPool[rng.IntN(len(GuestPool))])
		}
		rooms[id] = room
	}
	return rooms
}
