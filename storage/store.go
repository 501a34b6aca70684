// Package storage persists the room inventory. Every Save writes the whole
// inventory; there is no incremental or versioned persistence.
package storage

import (
	"context"
	"errors"

	"hotel-rooms/models"
)

// ErrNotSaved is returned by Load when the store holds no inventory yet.
var ErrNotSaved = errors.New("no saved inventory")

// Store loads and saves the complete room mapping.
type Store interface {
	Load(ctx context.Context) (map[int]models.Room, error)
	Save(ctx context.Context, rooms map[int]models.Room) error
	Name() string
}
