package models

import (
	"time"

	"gorm.io/gorm"
)

// Report statuses. A report moves PENDING -> IN_PROGRESS -> COMPLETED.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// Report represents a damage report filed by a resident
type Report struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"not null" json:"category"` // electrical, plumbing, furniture, ...
	Status      string `gorm:"not null;default:'PENDING'" json:"status"`

	UserID uint `gorm:"not null;index" json:"user_id"` // the reporting resident
	User   User `gorm:"foreignKey:UserID" json:"user"`
	RoomID uint `gorm:"not null;index" json:"room_id"` // the room the damage is in
	Room   Room `gorm:"foreignKey:RoomID" json:"room"`

	// Denormalized copy of the damage room, which may differ from the
	// reporter's own room. The public history endpoint filters on these.
	ReportedRoomNumber string `gorm:"index" json:"reported_room_number"`
	ReportedBuilding   string `gorm:"index" json:"reported_building"`

	AssignedTo      *string    `json:"assigned_to"`      // nullable, set when staff takes the report
	RepairCost      *float64   `json:"repair_cost"`      // nullable, only meaningful when COMPLETED
	CompletedAt     *time.Time `json:"completed_at"`     // set exactly once on first completion
	CompletionNotes *string    `json:"completion_notes"` // nullable

	Images   []Image   `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"images"`
	Comments []Comment `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"comments"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Report model
func (Report) TableName() string {
	return "reports"
}
