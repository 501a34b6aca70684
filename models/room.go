package models

import (
	"encoding/json"
	"strings"
)

// Room is one hotel room. Occupancy is derived from GuestName and never stored.
type Room struct {
	ID          int     `json:"id"`
	Category    string  `json:"category"`
	Cost        float64 `json:"cost"`
	FloorNumber int     `json:"floor_number"`
	GuestName   *string `json:"guest_name"`
}

// Occupied reports whether a guest is assigned to the room.
func (r Room) Occupied() bool {
	return r.GuestName != nil
}

// Guest returns the guest name or "" for a vacant room.
func (r Room) Guest() string {
	if r.GuestName == nil {
		return ""
	}
	return *r.GuestName
}

// Status is the display label used by the table views.
func (r Room) Status() string {
	if r.Occupied() {
		return "Occupied"
	}
	return "Free"
}

// roomJSON adds the computed occupied flag for API consumers.
type roomJSON struct {
	ID          int     `json:"id"`
	Category    string  `json:"category"`
	Cost        float64 `json:"cost"`
	FloorNumber int     `json:"floor_number"`
	GuestName   *string `json:"guest_name"`
	Occupied    bool    `json:"occupied"`
}

func (r Room) MarshalJSON() ([]byte, error) {
	return json.Marshal(roomJSON{
		ID:          r.ID,
		Category:    r.Category,
		Cost:        r.Cost,
		FloorNumber: r.FloorNumber,
		GuestName:   r.GuestName,
		Occupied:    r.Occupied(),
	})
}

// UnmarshalJSON accepts documents that still carry an "occupied" field but
// ignores it; only guest_name decides occupancy.
func (r *Room) UnmarshalJSON(data []byte) error {
	var raw roomJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Room{
		ID:          raw.ID,
		Category:    raw.Category,
		Cost:        raw.Cost,
		FloorNumber: raw.FloorNumber,
		GuestName:   GuestNamePtr(raw.GuestName),
	}
	return nil
}

// Clone returns a deep copy so callers never share the guest pointer.
func (r Room) Clone() Room {
	if r.GuestName != nil {
		name := *r.GuestName
		r.GuestName = &name
	}
	return r
}

// StringPtr is a small helper for optional guest names.
func StringPtr(s string) *string {
	return &s
}

// GuestNamePtr trims a guest name; nil or blank means vacant and yields nil.
func GuestNamePtr(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
