package services

import (
	"errors"

	"github.com/part-asrama/asrama-report-api/models"
	"gorm.io/gorm"
)

// FindOrCreateRoom looks up a room by its (number, building) identity and
// creates it when absent. The floor is derived as the first character of
// the room number, matching the existing room records.
func FindOrCreateRoom(db *gorm.DB, number, building string) (*models.Room, error) {
	if number == "" || building == "" {
		return nil, errors.New("room number and building are required")
	}

	var room models.Room
	err := db.Where("number = ? AND building = ?", number, building).First(&room).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	room = models.Room{
		Number:   number,
		Building: building,
		Floor:    number[:1],
	}
	if err := db.Create(&room).Error; err != nil {
		return nil, err
	}

	return &room, nil
}
