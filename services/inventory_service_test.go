package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-rooms/models"
	"hotel-rooms/storage"
)

func newDeterministic(t *testing.T, count int) *InventoryService {
	t.Helper()
	s := NewInventoryService()
	require.NoError(t, s.Initialize(count, ModeDeterministic))
	return s
}

func assertOccupancyConsistent(t *testing.T, s *InventoryService) {
	t.Helper()
	report := s.AvailabilityReport()
	for _, room := range s.List() {
		if room.GuestName != nil {
			assert.Contains(t, report.Occupied, room.ID)
			assert.NotEmpty(t, *room.GuestName)
		} else {
			assert.Contains(t, report.Vacant, room.ID)
		}
	}
}

func TestInitializeDeterministic(t *testing.T) {
	s := newDeterministic(t, 20)

	rooms := s.List()
	require.Len(t, rooms, 20)
	for i, room := range rooms {
		id := i + 1
		assert.Equal(t, id, room.ID)
		assert.False(t, room.Occupied(), "room %d", id)
		assert.Equal(t, (id-1)/10+1, room.FloorNumber)
		if id%2 == 1 {
			assert.Equal(t, "Single", room.Category)
			assert.Equal(t, 100.0, room.Cost)
		} else {
			assert.Equal(t, "Double", room.Category)
			assert.Equal(t, 150.0, room.Cost)
		}
	}
	assert.Equal(t, 2, rooms[19].FloorNumber)
}

func TestInitializeRandomUsesGuestPool(t *testing.T) {
	s := NewInventoryService(WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, s.Initialize(200, ModeRandom))

	report := s.AvailabilityReport()
	assert.Equal(t, 200, report.OccupiedCount+report.VacantCount)
	assert.NotZero(t, report.OccupiedCount)
	assert.NotZero(t, report.VacantCount)

	for _, room := range s.List() {
		if room.Occupied() {
			assert.Contains(t, GuestPool, room.Guest())
		}
	}
	assertOccupancyConsistent(t, s)
}

func TestInitializeReplacesExistingInventory(t *testing.T) {
	s := newDeterministic(t, 20)
	_, err := s.CheckIn("Ana", "Single")
	require.NoError(t, err)

	require.NoError(t, s.Initialize(5, ModeDeterministic))
	assert.Len(t, s.List(), 5)
	assert.Zero(t, s.AvailabilityReport().OccupiedCount)
}

func TestInitializeRejectsBadInput(t *testing.T) {
	s := NewInventoryService()
	assert.ErrorIs(t, s.Initialize(-1, ModeDeterministic), ErrInvalidInput)
	assert.ErrorIs(t, s.Initialize(3, Mode("chaos")), ErrInvalidInput)
}

func TestCreateAssignsNextID(t *testing.T) {
	t.Run("empty inventory starts at 1", func(t *testing.T) {
		s := NewInventoryService()
		id, err := s.Create(RoomInput{Category: "Single", Cost: 90})
		require.NoError(t, err)
		assert.Equal(t, 1, id)
	})

	t.Run("max plus one", func(t *testing.T) {
		s := newDeterministic(t, 20)
		id, err := s.Create(RoomInput{Category: "Suite", Cost: 300, FloorNumber: 3, GuestName: models.StringPtr("Ana")})
		require.NoError(t, err)
		assert.Equal(t, 21, id)

		room, err := s.Get(21)
		require.NoError(t, err)
		assert.True(t, room.Occupied())
		assert.Equal(t, "Ana", room.Guest())
		assert.Equal(t, 3, room.FloorNumber)
	})

	t.Run("deleted ids are not reused", func(t *testing.T) {
		s := newDeterministic(t, 3)
		require.NoError(t, s.Delete(3))
		id, err := s.Create(RoomInput{Category: "Double", Cost: 150})
		require.NoError(t, err)
		assert.Equal(t, 4, id)
	})

	t.Run("floor derived when omitted", func(t *testing.T) {
		s := newDeterministic(t, 10)
		id, err := s.Create(RoomInput{Category: "Double", Cost: 150})
		require.NoError(t, err)
		room, err := s.Get(id)
		require.NoError(t, err)
		assert.Equal(t, 2, room.FloorNumber)
	})

	t.Run("blank guest means vacant", func(t *testing.T) {
		s := NewInventoryService()
		id, err := s.Create(RoomInput{Category: "Single", Cost: 100, GuestName: models.StringPtr("  ")})
		require.NoError(t, err)
		room, _ := s.Get(id)
		assert.False(t, room.Occupied())
	})
}

func TestCreateValidation(t *testing.T) {
	s := NewInventoryService()
	cases := map[string]RoomInput{
		"empty category": {Category: " ", Cost: 10},
		"negative cost":  {Category: "Single", Cost: -1},
		"negative floor": {Category: "Single", Cost: 10, FloorNumber: -2},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Create(in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, s.List())
}

func TestDelete(t *testing.T) {
	s := newDeterministic(t, 5)

	require.NoError(t, s.Delete(2))
	for _, room := range s.List() {
		assert.NotEqual(t, 2, room.ID)
	}

	err := s.Delete(42)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Len(t, s.List(), 4)
}

func TestUpdate(t *testing.T) {
	s := newDeterministic(t, 5)

	require.NoError(t, s.Update(1, RoomInput{Category: "Deluxe", Cost: 220, FloorNumber: 4, GuestName: models.StringPtr("Marta")}))
	room, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Deluxe", room.Category)
	assert.Equal(t, 220.0, room.Cost)
	assert.Equal(t, 4, room.FloorNumber)
	assert.True(t, room.Occupied())

	require.NoError(t, s.Update(1, RoomInput{Category: "Deluxe", Cost: 220, FloorNumber: 4}))
	room, _ = s.Get(1)
	assert.False(t, room.Occupied())
	assert.Nil(t, room.GuestName)

	assert.ErrorIs(t, s.Update(99, RoomInput{Category: "Single", Cost: 1}), ErrRoomNotFound)
	assertOccupancyConsistent(t, s)
}

func TestCheckInFirstFit(t *testing.T) {
	s := newDeterministic(t, 6)

	id, err := s.CheckIn("Ana", "Single")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	id, err = s.CheckIn("Ben", "single")
	require.NoError(t, err)
	assert.Equal(t, 3, id, "category match ignores case")

	id, err = s.CheckIn("Cleo", "Double")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
	assertOccupancyConsistent(t, s)
}

func TestCheckInNoAvailability(t *testing.T) {
	s := newDeterministic(t, 4)
	_, err := s.CheckIn("Ana", "Single")
	require.NoError(t, err)
	_, err = s.CheckIn("Ben", "Single")
	require.NoError(t, err)

	before := s.List()
	_, err = s.CheckIn("Ana", "Single")
	assert.ErrorIs(t, err, ErrNoAvailability)
	assert.Equal(t, before, s.List())

	_, err = s.CheckIn("Ana", "Penthouse")
	assert.ErrorIs(t, err, ErrNoAvailability)

	_, err = s.CheckIn(" ", "Double")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckInThenCheckOutRestoresVacancy(t *testing.T) {
	s := newDeterministic(t, 4)

	id, err := s.CheckIn("Ana", "Double")
	require.NoError(t, err)
	require.NoError(t, s.CheckOut(id, "Ana"))

	room, err := s.Get(id)
	require.NoError(t, err)
	assert.False(t, room.Occupied())
	assert.Nil(t, room.GuestName)
}

func TestCheckOutErrors(t *testing.T) {
	s := newDeterministic(t, 4)
	id, err := s.CheckIn("Ana", "Single")
	require.NoError(t, err)

	assert.ErrorIs(t, s.CheckOut(id, "ana"), ErrGuestMismatch, "names are case-sensitive")
	assert.ErrorIs(t, s.CheckOut(id, "Bob"), ErrGuestMismatch)
	room, _ := s.Get(id)
	assert.True(t, room.Occupied())

	assert.ErrorIs(t, s.CheckOut(2, "Ana"), ErrGuestMismatch, "vacant room")
	assert.ErrorIs(t, s.CheckOut(77, "Ana"), ErrRoomNotFound)
	assert.ErrorIs(t, s.CheckOut(id, ""), ErrInvalidInput)
	assert.ErrorIs(t, s.CheckOut(id, "  "), ErrInvalidInput)
	assert.ErrorIs(t, s.CheckOut(id, " Ana"), ErrGuestMismatch, "names are compared untrimmed")
}

func TestAssignGuest(t *testing.T) {
	s := newDeterministic(t, 3)

	require.NoError(t, s.AssignGuest(2, "Ana"))
	room, _ := s.Get(2)
	assert.Equal(t, "Ana", room.Guest())

	assert.ErrorIs(t, s.AssignGuest(2, "Ben"), ErrRoomOccupied)
	assert.ErrorIs(t, s.AssignGuest(9, "Ben"), ErrRoomNotFound)
	assert.ErrorIs(t, s.AssignGuest(1, ""), ErrInvalidInput)
}

func TestSortByStatusThenID(t *testing.T) {
	s := newDeterministic(t, 8)
	require.NoError(t, s.AssignGuest(7, "G"))
	require.NoError(t, s.AssignGuest(2, "E"))
	require.NoError(t, s.AssignGuest(5, "F"))

	var ids []int
	for _, room := range s.SortByStatusThenID() {
		ids = append(ids, room.ID)
	}
	assert.Equal(t, []int{2, 5, 7, 1, 3, 4, 6, 8}, ids)

	// storage order untouched
	assert.Equal(t, 1, s.List()[0].ID)
}

func TestAvailabilityReport(t *testing.T) {
	s := newDeterministic(t, 5)
	require.NoError(t, s.AssignGuest(4, "Ana"))
	require.NoError(t, s.AssignGuest(1, "Ben"))

	report := s.AvailabilityReport()
	assert.Equal(t, []int{1, 4}, report.Occupied)
	assert.Equal(t, []int{2, 3, 5}, report.Vacant)
	assert.Equal(t, 2, report.OccupiedCount)
	assert.Equal(t, 3, report.VacantCount)
}

func TestCategories(t *testing.T) {
	s := newDeterministic(t, 5)
	require.NoError(t, s.AssignGuest(1, "Ana"))

	cats := s.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, models.CategorySummary{Category: "Double", Total: 2, Vacant: 2, MinCost: 150}, cats[0])
	assert.Equal(t, models.CategorySummary{Category: "Single", Total: 3, Vacant: 2, MinCost: 100}, cats[1])
}

func TestListReturnsCopies(t *testing.T) {
	s := newDeterministic(t, 2)
	require.NoError(t, s.AssignGuest(1, "Ana"))

	rooms := s.List()
	*rooms[0].GuestName = "Mallory"
	rooms[1].Category = "Hacked"

	room, _ := s.Get(1)
	assert.Equal(t, "Ana", room.Guest())
	room, _ = s.Get(2)
	assert.Equal(t, "Double", room.Category)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rooms.json")

	s := newDeterministic(t, 12)
	require.NoError(t, s.AssignGuest(3, "Ana"))
	_, err := s.Create(RoomInput{Category: "Suite", Cost: 420.5, FloorNumber: 9, GuestName: models.StringPtr("Ben")})
	require.NoError(t, err)
	require.NoError(t, s.Save(path))

	loaded := NewInventoryService()
	require.True(t, loaded.Load(path))
	assert.Equal(t, s.List(), loaded.List())

	id, err := loaded.Create(RoomInput{Category: "Single", Cost: 1})
	require.NoError(t, err)
	assert.Equal(t, 14, id)
}

func TestLoadFallsBackToEmpty(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		s := newDeterministic(t, 3)
		assert.False(t, s.Load(filepath.Join(dir, "absent.json")))
		assert.Empty(t, s.List())
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"rooms": {"1": {`), 0644))
		s := newDeterministic(t, 3)
		assert.False(t, s.Load(path))
		assert.Empty(t, s.List())
	})

	t.Run("non-numeric key", func(t *testing.T) {
		path := filepath.Join(dir, "keys.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"rooms": {"A1": {"category": "Single"}}}`), 0644))
		s := NewInventoryService()
		assert.False(t, s.Load(path))
		assert.Empty(t, s.List())
	})
}

func TestLoadIgnoresStoredOccupiedFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	doc := `{"rooms": {
		"1": {"category": "Single", "cost": 100, "floor_number": 1, "guest_name": null, "occupied": true},
		"2": {"category": "Double", "cost": 150, "floor_number": 1, "guest_name": "Ana", "occupied": false},
		"3": {"category": "Single", "cost": 100, "floor_number": 1, "guest_name": "", "occupied": true},
		"4": {"category": "Double", "cost": 150, "floor_number": 1, "guest_name": "   "}
	}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	s := NewInventoryService()
	require.True(t, s.Load(path))
	report := s.AvailabilityReport()
	assert.Equal(t, []int{2}, report.Occupied)
	assert.Equal(t, []int{1, 3, 4}, report.Vacant)
	assertOccupancyConsistent(t, s)

	// a blank stored name is a vacant room, not a nameless guest
	assert.ErrorIs(t, s.CheckOut(3, ""), ErrInvalidInput)
	id, err := s.CheckIn("Bob", "Single")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	id, err = s.CheckIn("Cleo", "Single")
	require.NoError(t, err)
	assert.Equal(t, 3, id)
}

type failingStore struct {
	saves int
}

func (f *failingStore) Load(context.Context) (map[int]models.Room, error) {
	return nil, errors.New("boom")
}

func (f *failingStore) Save(context.Context, map[int]models.Room) error {
	f.saves++
	return errors.New("disk full")
}

func (f *failingStore) Name() string { return "failing" }

func TestMutationsFlushToStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	store := storage.NewJSONFileStore(path)

	s := NewInventoryService(WithStore(store))
	require.NoError(t, s.Initialize(4, ModeDeterministic))
	_, err := s.CheckIn("Ana", "Double")
	require.NoError(t, err)

	rooms, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 4)
	assert.Equal(t, "Ana", rooms[2].Guest())

	restored := NewInventoryService(WithStore(store))
	loaded, err := restored.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, s.List(), restored.List())
}

func TestFailedFlushKeepsInMemoryChange(t *testing.T) {
	store := &failingStore{}
	s := NewInventoryService(WithStore(store))
	require.NoError(t, s.Initialize(2, ModeDeterministic))

	id, err := s.CheckIn("Ana", "Single")
	require.NoError(t, err)
	room, _ := s.Get(id)
	assert.True(t, room.Occupied())
	assert.Equal(t, 2, store.saves)

	assert.Error(t, s.Close(context.Background()))
	loaded, err := s.Restore(context.Background())
	assert.EqualError(t, err, "boom")
	assert.False(t, loaded)
	assert.Empty(t, s.List())
	assert.Equal(t, 3, store.saves, "a failed load must not write back")
}

func TestRestoreWithoutSavedInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	s := NewInventoryService(WithStore(storage.NewJSONFileStore(path)))

	loaded, err := s.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Empty(t, s.List())
	assert.NoFileExists(t, path)
}

func TestObserverReceivesReports(t *testing.T) {
	var last models.AvailabilityReport
	calls := 0
	s := NewInventoryService(WithObserver(func(r models.AvailabilityReport) {
		calls++
		last = r
	}))

	require.NoError(t, s.Initialize(3, ModeDeterministic))
	require.NoError(t, s.AssignGuest(3, "Ana"))

	assert.Equal(t, 2, calls)
	assert.Equal(t, []int{3}, last.Occupied)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Random")
	require.NoError(t, err)
	assert.Equal(t, ModeRandom, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDeterministic, m)

	_, err = ParseMode("sometimes")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
