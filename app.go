package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hotel-rooms/config"
	"hotel-rooms/models"
	"hotel-rooms/services"
	"hotel-rooms/storage"
)

// openStore returns the configured store and a func releasing what it holds.
func openStore(cfg *config.Config, log *zap.Logger) (storage.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverMySQL:
		db, err := config.ConnectDatabase(log)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		store := storage.NewGormStore(db)
		if err := store.Migrate(); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("migrate rooms table: %w", err)
		}
		log.Info("database connection established", zap.String("store", store.Name()))
		return store, func() { _ = sqlDB.Close() }, nil
	default:
		return storage.NewJSONFileStore(cfg.Inventory.Path), func() {}, nil
	}
}

// openInventory restores the saved inventory when asked to, and generates a
// fresh one only when the store holds nothing yet. An unreadable JSON file
// leaves an empty inventory and the file untouched; an unreadable MySQL table
// aborts start-up.
func openInventory(ctx context.Context, cfg *config.Config, log *zap.Logger, observe func(models.AvailabilityReport)) (*services.InventoryService, func(), error) {
	mode, err := services.ParseMode(cfg.Inventory.Mode)
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	opts := []services.Option{
		services.WithStore(store),
		services.WithLogger(log.Named("inventory")),
	}
	if observe != nil {
		opts = append(opts, services.WithObserver(observe))
	}
	inv := services.NewInventoryService(opts...)

	if cfg.Inventory.Load {
		loaded, err := inv.Restore(ctx)
		switch {
		case err != nil && cfg.Store.Driver == config.DriverMySQL:
			closeStore()
			return nil, nil, fmt.Errorf("restore inventory: %w", err)
		case err != nil:
			log.Warn("saved inventory unreadable, starting empty; it is replaced on the next change",
				zap.String("store", store.Name()), zap.Error(err))
			return inv, closeStore, nil
		case loaded:
			return inv, closeStore, nil
		}
	}
	if err := inv.Initialize(cfg.Inventory.Rooms, mode); err != nil {
		closeStore()
		return nil, nil, err
	}
	return inv, closeStore, nil
}
