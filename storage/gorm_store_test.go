package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-rooms/models"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "rooms.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := NewGormStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func TestGormStoreEmptyTable(t *testing.T) {
	store := newTestGormStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotSaved)
	assert.Equal(t, "gorm:sqlite", store.Name())
}

func TestGormStoreSaveReplacesRows(t *testing.T) {
	store := newTestGormStore(t)
	ctx := context.Background()

	rooms := map[int]models.Room{
		3: {ID: 3, Category: "Single", Cost: 100, FloorNumber: 1},
		1: {ID: 1, Category: "Single", Cost: 100, FloorNumber: 1, GuestName: models.StringPtr("Ana")},
		2: {ID: 2, Category: "Double", Cost: 150, FloorNumber: 1},
	}
	require.NoError(t, store.Save(ctx, rooms))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, rooms, loaded)

	var ids []int
	require.NoError(t, store.DB.Model(&models.RoomRecord{}).Order("room_id ASC").Pluck("room_id", &ids).Error)
	assert.Equal(t, []int{1, 2, 3}, ids)

	fewer := map[int]models.Room{
		2: {ID: 2, Category: "Suite", Cost: 300, FloorNumber: 4, GuestName: models.StringPtr("Bob")},
	}
	require.NoError(t, store.Save(ctx, fewer))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, fewer, loaded)

	var count int64
	require.NoError(t, store.DB.Model(&models.RoomRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, store.Save(ctx, map[int]models.Room{}))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotSaved)
}

func TestGormStoreBlankGuestIsVacant(t *testing.T) {
	store := newTestGormStore(t)
	ctx := context.Background()

	blank := ""
	require.NoError(t, store.DB.Create(&models.RoomRecord{
		RoomID: 1, Category: "Single", Cost: 100, FloorNumber: 1, GuestName: &blank,
	}).Error)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Contains(t, loaded, 1)
	assert.False(t, loaded[1].Occupied())
	assert.Nil(t, loaded[1].GuestName)
}
