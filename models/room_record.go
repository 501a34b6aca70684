package models

import "time"

// RoomRecord is the MySQL row for a room when the gorm store is selected.
type RoomRecord struct {
	RoomID      int     `gorm:"column:room_id;primaryKey;autoIncrement:false"`
	Category    string  `gorm:"column:category;type:varchar(50)"`
	Cost        float64 `gorm:"column:cost"`
	FloorNumber int     `gorm:"column:floor_number"`
	GuestName   *string `gorm:"column:guest_name;type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RoomRecord) TableName() string {
	return "rooms"
}

func NewRoomRecord(r Room) RoomRecord {
	c := r.Clone()
	return RoomRecord{
		RoomID:      c.ID,
		Category:    c.Category,
		Cost:        c.Cost,
		FloorNumber: c.FloorNumber,
		GuestName:   c.GuestName,
	}
}

func (rec RoomRecord) Room() Room {
	return Room{
		ID:          rec.RoomID,
		Category:    rec.Category,
		Cost:        rec.Cost,
		FloorNumber: rec.FloorNumber,
		GuestName:   GuestNamePtr(rec.GuestName),
	}
}
