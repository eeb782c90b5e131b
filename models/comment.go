package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a message on a report's discussion thread. Comments
// are written by the reporter, by staff, or synthetically by the system
// (receipt and status-change notices). Displayed oldest first.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	ReportID  uint           `gorm:"not null;index" json:"report_id"`
	Report    Report         `gorm:"foreignKey:ReportID" json:"-"` // don't include full report in JSON
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

// CommentAuthor is the minimal author projection returned with a comment
type CommentAuthor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
