package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hotel-rooms/models"
)

// GormStore keeps one row per room in the rooms table.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Name() string {
	return "gorm:" + s.DB.Dialector.Name()
}

// Migrate creates or updates the rooms table.
func (s *GormStore) Migrate() error {
	return s.DB.AutoMigrate(&models.RoomRecord{})
}

func (s *GormStore) Load(ctx context.Context) (map[int]models.Room, error) {
	var records []models.RoomRecord
	if err := s.DB.WithContext(ctx).Order("room_id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotSaved
	}

	rooms := make(map[int]models.Room, len(records))
	for _, rec := range records {
		rooms[rec.RoomID] = rec.Room()
	}
	return rooms, nil
}

// Save replaces the table contents inside one transaction.
func (s *GormStore) Save(ctx context.Context, rooms map[int]models.Room) error {
	records := make([]models.RoomRecord, 0, len(rooms))
	for _, id := range sortedIDs(rooms) {
		records = append(records, models.NewRoomRecord(rooms[id]))
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.RoomRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear rooms: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, 100).Error; err != nil {
			return fmt.Errorf("failed to insert rooms: %w", err)
		}
		return nil
	})
}
