package storage

import (
	"sort"

	"hotel-rooms/models"
)

func sortedIDs(rooms map[int]models.Room) []int {
	ids := make([]int, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
