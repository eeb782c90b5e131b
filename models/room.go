package models

import (
	"time"
)

// Room represents a dormitory room. Identity is (number, building); the
// floor is stored as the first character of the room number.
type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    string    `gorm:"not null;uniqueIndex:idx_rooms_number_building" json:"number"`
	Building  string    `gorm:"not null;uniqueIndex:idx_rooms_number_building" json:"building"`
	Floor     string    `gorm:"not null" json:"floor"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Room model
func (Room) TableName() string {
	return "rooms"
}
