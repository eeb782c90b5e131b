package services

import (
	"fmt"
	"log"

	"github.com/part-asrama/asrama-report-api/models"
	"github.com/part-asrama/asrama-report-api/utils"
	"gorm.io/gorm"
)

// Seed populates the database with the dormitory layout and the default
// accounts. All writes are idempotent upserts so running it repeatedly
// (e.g. on every startup in development) is safe.
func Seed(db *gorm.DB) error {
	// Buildings A-D, four floors, ten rooms per floor (101..410)
	buildings := []string{"A", "B", "C", "D"}
	for _, building := range buildings {
		for floor := 1; floor <= 4; floor++ {
			for room := 1; room <= 10; room++ {
				number := fmt.Sprintf("%d%02d", floor, room)
				r := models.Room{
					Number:   number,
					Building: building,
					Floor:    fmt.Sprintf("%d", floor),
				}
				if err := db.Where("number = ? AND building = ?", number, building).
					FirstOrCreate(&r).Error; err != nil {
					return fmt.Errorf("failed to seed room %s-%s: %w", building, number, err)
				}
			}
		}
	}

	if err := seedUser(db, "Admin PART", "admin@example.com", "admin123", models.RoleAdmin, nil); err != nil {
		return err
	}

	staffMembers := []struct{ name, email string }{
		{"Ahmad Teknisi", "ahmad@example.com"},
		{"Budi Teknisi", "budi.teknisi@example.com"},
		{"Citra Teknisi", "citra@example.com"},
	}
	for _, staff := range staffMembers {
		if err := seedUser(db, staff.name, staff.email, "staff123", models.RoleStaff, nil); err != nil {
			return err
		}
	}

	residents := []struct{ name, email, building, number string }{
		{"Budi Santoso", "budi@example.com", "A", "101"},
		{"Dewi Lestari", "dewi@example.com", "B", "205"},
		{"Ahmad Rizki", "ahmad.rizki@example.com", "C", "310"},
	}
	for _, res := range residents {
		room, err := FindOrCreateRoom(db, res.number, res.building)
		if err != nil {
			return err
		}
		if err := seedUser(db, res.name, res.email, "user123", models.RoleUser, &room.ID); err != nil {
			return err
		}
	}

	log.Println("Database seeded successfully")
	return nil
}

func seedUser(db *gorm.DB, name, email, password, role string, roomID *uint) error {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password for %s: %w", email, err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
		RoomID:   roomID,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to seed user %s: %w", email, err)
	}
	return nil
}
