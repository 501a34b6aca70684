package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"hotel-rooms/models"
	"hotel-rooms/storage"
)

const flushTimeout = 5 * time.Second

// RoomInput carries the mutable fields of a room for Create and Update.
// A nil or blank GuestName means the room is vacant. FloorNumber 0 is
// derived from the room id.
type RoomInput struct {
	Category    string
	Cost        float64
	FloorNumber int
	GuestName   *string
}

// InventoryService owns the room mapping. All mutations are serialized by mu
// and flushed to the configured store before the lock is released.
type InventoryService struct {
	mu     sync.RWMutex
	rooms  map[int]models.Room
	lastID int

	store    storage.Store
	log      *zap.Logger
	rng      *rand.Rand
	observer func(models.AvailabilityReport)
}

type Option func(*InventoryService)

// WithStore makes every mutation flush the inventory through store.
func WithStore(store storage.Store) Option {
	return func(s *InventoryService) { s.store = store }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *InventoryService) { s.log = log }
}

// WithRand sets the random source used by ModeRandom.
func WithRand(rng *rand.Rand) Option {
	return func(s *InventoryService) { s.rng = rng }
}

// WithObserver registers a callback that receives the availability report
// after every change. It runs under the service lock and must not call back
// into the service.
func WithObserver(fn func(models.AvailabilityReport)) Option {
	return func(s *InventoryService) { s.observer = fn }
}

func NewInventoryService(opts ...Option) *InventoryService {
	s := &InventoryService{
		rooms: map[int]models.Room{},
		log:   zap.NewNop(),
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ----------------------------------------------------
// Lifecycle
// ----------------------------------------------------

// Initialize replaces the inventory with count generated rooms.
func (s *InventoryService) Initialize(count int, mode Mode) error {
	if count < 0 {
		return fmt.Errorf("room count %d: %w", count, ErrInvalidInput)
	}
	if mode != ModeDeterministic && mode != ModeRandom {
		return fmt.Errorf("inventory mode %q: %w", mode, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms = generateRooms(count, mode, s.rng)
	s.lastID = count
	s.log.Info("inventory initialized", zap.Int("rooms", count), zap.String("mode", string(mode)))
	s.changedLocked()
	return nil
}

// Load replaces the inventory with the JSON document at path. A missing or
// unreadable document leaves an empty inventory; it is never an error.
func (s *InventoryService) Load(path string) bool {
	loaded, _ := s.loadFrom(context.Background(), storage.NewJSONFileStore(path))
	return loaded
}

// Save writes the inventory to path as a JSON document.
func (s *InventoryService) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.saveTo(context.Background(), storage.NewJSONFileStore(path))
}

// Restore loads the inventory from the configured store and reports whether
// anything was read. On failure the inventory falls back to empty as in Load;
// the error is returned unless the store simply held nothing yet.
func (s *InventoryService) Restore(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, nil
	}
	return s.loadFrom(ctx, s.store)
}

// Flush saves the inventory through the configured store.
func (s *InventoryService) Flush(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.saveTo(ctx, s.store)
}

// Close flushes one last time; the service stays usable afterwards.
func (s *InventoryService) Close(ctx context.Context) error {
	return s.Flush(ctx)
}

// loadFrom never writes back, so a store that failed to read is left as is.
func (s *InventoryService) loadFrom(ctx context.Context, store storage.Store) (bool, error) {
	rooms, err := store.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		rooms = map[int]models.Room{}
	}
	s.rooms = rooms
	s.lastID = maxID(rooms)
	s.notifyLocked()

	switch {
	case errors.Is(err, storage.ErrNotSaved):
		s.log.Info("no saved inventory, starting empty", zap.String("store", store.Name()))
		return false, nil
	case err != nil:
		s.log.Warn("failed to load inventory, starting empty", zap.String("store", store.Name()), zap.Error(err))
		return false, err
	}
	s.log.Info("inventory loaded", zap.String("store", store.Name()), zap.Int("rooms", len(rooms)))
	return true, nil
}

func (s *InventoryService) saveTo(ctx context.Context, store storage.Store) error {
	if err := store.Save(ctx, s.snapshotLocked()); err != nil {
		s.log.Error("failed to save inventory", zap.String("store", store.Name()), zap.Error(err))
		return err
	}
	s.log.Debug("inventory saved", zap.String("store", store.Name()), zap.Int("rooms", len(s.rooms)))
	return nil
}

// ----------------------------------------------------
// Queries
// ----------------------------------------------------

// List returns copies of all rooms ordered by ascending id.
func (s *InventoryService) List() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.orderedLocked()
}

func (s *InventoryService) Get(id int) (models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return models.Room{}, fmt.Errorf("room %d: %w", id, ErrRoomNotFound)
	}
	return room.Clone(), nil
}

// SortByStatusThenID orders occupied rooms before vacant ones, each group by
// ascending id. The stored inventory is not reordered.
func (s *InventoryService) SortByStatusThenID() []models.Room {
	rooms := s.List()
	sort.SliceStable(rooms, func(i, j int) bool {
		if rooms[i].Occupied() != rooms[j].Occupied() {
			return rooms[i].Occupied()
		}
		return rooms[i].ID < rooms[j].ID
	})
	return rooms
}

func (s *InventoryService) AvailabilityReport() models.AvailabilityReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.reportLocked()
}

// Categories summarizes the inventory per category, sorted by name.
func (s *InventoryService) Categories() []models.CategorySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byName := map[string]*models.CategorySummary{}
	for _, room := range s.rooms {
		sum, ok := byName[room.Category]
		if !ok {
			sum = &models.CategorySummary{Category: room.Category, MinCost: room.Cost}
			byName[room.Category] = sum
		}
		sum.Total++
		if !room.Occupied() {
			sum.Vacant++
		}
		if room.Cost < sum.MinCost {
			sum.MinCost = room.Cost
		}
	}

	out := make([]models.CategorySummary, 0, len(byName))
	for _, sum := range byName {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// ----------------------------------------------------
// Mutations
// ----------------------------------------------------

// Create adds a room under the next unused id and returns that id. Ids are
// not reused within a session, even after the highest room is deleted.
func (s *InventoryService) Create(in RoomInput) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := max(s.lastID, maxID(s.rooms)) + 1
	room, err := buildRoom(id, in)
	if err != nil {
		return 0, err
	}

	s.rooms[id] = room
	s.lastID = id
	s.log.Info("room created", zap.Int("room_id", id), zap.String("category", room.Category), zap.Bool("occupied", room.Occupied()))
	s.changedLocked()
	return id, nil
}

// Update replaces every mutable field of an existing room.
func (s *InventoryService) Update(id int, in RoomInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[id]; !ok {
		return fmt.Errorf("room %d: %w", id, ErrRoomNotFound)
	}
	room, err := buildRoom(id, in)
	if err != nil {
		return err
	}

	s.rooms[id] = room
	s.log.Info("room updated", zap.Int("room_id", id), zap.Bool("occupied", room.Occupied()))
	s.changedLocked()
	return nil
}

func (s *InventoryService) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[id]; !ok {
		return fmt.Errorf("room %d: %w", id, ErrRoomNotFound)
	}

	delete(s.rooms, id)
	s.log.Info("room deleted", zap.Int("room_id", id))
	s.changedLocked()
	return nil
}

// CheckIn puts the guest in the lowest-numbered vacant room of category.
func (s *InventoryService) CheckIn(guest, category string) (int, error) {
	guest = strings.TrimSpace(guest)
	category = strings.TrimSpace(category)
	if guest == "" {
		return 0, fmt.Errorf("guest name is required: %w", ErrInvalidInput)
	}
	if category == "" {
		return 0, fmt.Errorf("category is required: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.idsLocked() {
		room := s.rooms[id]
		if room.Occupied() || !strings.EqualFold(room.Category, category) {
			continue
		}
		room.GuestName = models.StringPtr(guest)
		s.rooms[id] = room
		s.log.Info("guest checked in", zap.Int("room_id", id), zap.String("guest", guest))
		s.changedLocked()
		return id, nil
	}

	return 0, fmt.Errorf("category %q: %w", category, ErrNoAvailability)
}

// AssignGuest puts the guest in a specific vacant room.
func (s *InventoryService) AssignGuest(id int, guest string) error {
	guest = strings.TrimSpace(guest)
	if guest == "" {
		return fmt.Errorf("guest name is required: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return fmt.Errorf("room %d: %w", id, ErrRoomNotFound)
	}
	if room.Occupied() {
		return fmt.Errorf("room %d: %w", id, ErrRoomOccupied)
	}

	room.GuestName = models.StringPtr(guest)
	s.rooms[id] = room
	s.log.Info("guest assigned", zap.Int("room_id", id), zap.String("guest", guest))
	s.changedLocked()
	return nil
}

// CheckOut vacates the room when guest exactly matches its occupant.
func (s *InventoryService) CheckOut(id int, guest string) error {
	if strings.TrimSpace(guest) == "" {
		return fmt.Errorf("guest name is required: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return fmt.Errorf("room %d: %w", id, ErrRoomNotFound)
	}
	if !room.Occupied() || room.Guest() != guest {
		return fmt.Errorf("room %d: %w", id, ErrGuestMismatch)
	}

	room.GuestName = nil
	s.rooms[id] = room
	s.log.Info("guest checked out", zap.Int("room_id", id), zap.String("guest", guest))
	s.changedLocked()
	return nil
}

// ----------------------------------------------------
// helpers (callers hold mu)
// ----------------------------------------------------

func buildRoom(id int, in RoomInput) (models.Room, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return models.Room{}, fmt.Errorf("category is required: %w", ErrInvalidInput)
	}
	if in.Cost < 0 {
		return models.Room{}, fmt.Errorf("cost %.2f must not be negative: %w", in.Cost, ErrInvalidInput)
	}
	if in.FloorNumber < 0 {
		return models.Room{}, fmt.Errorf("floor %d must be positive: %w", in.FloorNumber, ErrInvalidInput)
	}

	floor := in.FloorNumber
	if floor == 0 {
		floor = FloorFor(id)
	}

	return models.Room{
		ID:          id,
		Category:    category,
		Cost:        in.Cost,
		FloorNumber: floor,
		GuestName:   models.GuestNamePtr(in.GuestName),
	}, nil
}

func (s *InventoryService) changedLocked() {
	if s.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		// best-effort: the in-memory change stands even if the write fails
		_ = s.saveTo(ctx, s.store)
		cancel()
	}
	s.notifyLocked()
}

func (s *InventoryService) notifyLocked() {
	if s.observer != nil {
		s.observer(s.reportLocked())
	}
}

func (s *InventoryService) idsLocked() []int {
	ids := make([]int, 0, len(s.rooms))
	for id := range s.rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *InventoryService) orderedLocked() []models.Room {
	out := make([]models.Room, 0, len(s.rooms))
	for _, id := range s.idsLocked() {
		out = append(out, s.rooms[id].Clone())
	}
	return out
}

func (s *InventoryService) snapshotLocked() map[int]models.Room {
	out := make(map[int]models.Room, len(s.rooms))
	for id, room := range s.rooms {
		out[id] = room.Clone()
	}
	return out
}

func (s *InventoryService) reportLocked() models.AvailabilityReport {
	report := models.AvailabilityReport{Occupied: []int{}, Vacant: []int{}}
	for _, id := range s.idsLocked() {
		if s.rooms[id].Occupied() {
			report.Occupied = append(report.Occupied, id)
		} else {
			report.Vacant = append(report.Vacant, id)
		}
	}
	report.OccupiedCount = len(report.Occupied)
	report.VacantCount = len(report.Vacant)
	return report
}

func maxID(rooms map[int]models.Room) int {
	highest := 0
	for id := range rooms {
		if id > highest {
			highest = id
		}
	}
	return highest
}
