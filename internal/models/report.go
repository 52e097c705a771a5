package models

import "time"

// Report is a rendered entity dossier, stored as JSON for the export and
// presentation endpoints.
type Report struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ReportID   string    `gorm:"uniqueIndex;not null" json:"report_id"`
	EntityID   uint      `gorm:"not null;index" json:"entity_id"`
	Title      string    `gorm:"not null" json:"title"`
	ReportType string    `gorm:"type:varchar(32)" json:"report_type"`
	Content    JSON      `gorm:"type:jsonb" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
