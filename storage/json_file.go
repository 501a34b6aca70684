package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"hotel-rooms/models"
)

// document is the on-disk layout: {"rooms": {"<id>": {...}}}.
type document struct {
	Rooms map[string]models.Room `json:"rooms"`
}

// JSONFileStore keeps the inventory in one pretty-printed JSON file.
type JSONFileStore struct {
	Path string
}

func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{Path: path}
}

func (s *JSONFileStore) Name() string {
	return "json:" + s.Path
}

func (s *JSONFileStore) Load(ctx context.Context) (map[int]models.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.Path, ErrNotSaved)
		}
		return nil, fmt.Errorf("read inventory file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse inventory file %s: %w", s.Path, err)
	}

	rooms := make(map[int]models.Room, len(doc.Rooms))
	for key, room := range doc.Rooms {
		id, err := strconv.Atoi(key)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("parse inventory file %s: invalid room id %q", s.Path, key)
		}
		// the key is authoritative; the embedded id may be missing in older files
		room.ID = id
		rooms[id] = room
	}
	return rooms, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target, so a crash leaves either the old or the new document.
func (s *JSONFileStore) Save(ctx context.Context, rooms map[int]models.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := document{Rooms: make(map[string]models.Room, len(rooms))}
	for id, room := range rooms {
		doc.Rooms[strconv.Itoa(id)] = room
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir inventory dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("replace inventory file: %w", err)
	}
	return nil
}
