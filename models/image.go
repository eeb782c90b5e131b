package models

import (
	"time"
)

// Image represents a photo attached to a report at submission time.
// URL is a relative path served by the uploads endpoint.
type Image struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"not null" json:"url"`
	ReportID  uint      `gorm:"not null;index" json:"report_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Image model
func (Image) TableName() string {
	return "images"
}
