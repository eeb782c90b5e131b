package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Residents report damage, staff and admins triage it.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User represents a registered account (resident, staff or admin)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Role      string         `gorm:"not null;default:'USER'" json:"role"`
	RoomID    *uint          `gorm:"index" json:"room_id"` // nullable, residents only
	Room      *Room          `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsStaff reports whether the user may triage any report
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleStaff
}
