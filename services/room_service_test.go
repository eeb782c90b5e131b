package services

import (
	"testing"

	"github.com/part-asrama/asrama-report-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Report{},
		&models.Image{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestFindOrCreateRoom(t *testing.T) {
	db := setupServiceTestDB(t)

	room, err := FindOrCreateRoom(db, "101", "A")
	assert.NoError(t, err)
	assert.Equal(t, "101", room.Number)
	assert.Equal(t, "A", room.Building)
	assert.Equal(t, "1", room.Floor, "Floor is the first character of the room number")

	// A second lookup against the same (number, building) pair must reuse
	// the existing record, not create a duplicate
	again, err := FindOrCreateRoom(db, "101", "A")
	assert.NoError(t, err)
	assert.Equal(t, room.ID, again.ID)

	var count int64
	db.Model(&models.Room{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFindOrCreateRoomDistinctBuildings(t *testing.T) {
	db := setupServiceTestDB(t)

	roomA, err := FindOrCreateRoom(db, "205", "A")
	assert.NoError(t, err)
	roomB, err := FindOrCreateRoom(db, "205", "B")
	assert.NoError(t, err)

	assert.NotEqual(t, roomA.ID, roomB.ID, "Same number in different buildings is a different room")
	assert.Equal(t, "2", roomA.Floor)
	assert.Equal(t, "2", roomB.Floor)
}

func TestFindOrCreateRoomRequiresIdentity(t *testing.T) {
	db := setupServiceTestDB(t)

	_, err := FindOrCreateRoom(db, "", "A")
	assert.Error(t, err)
	_, err = FindOrCreateRoom(db, "101", "")
	assert.Error(t, err)
}
