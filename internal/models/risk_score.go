package models

import "time"

// RiskScore is the latest composite assessment for an entity. It is
// recomputed wholesale on each analysis run; the factors column holds the
// full ordered factor list as JSON.
type RiskScore struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	EntityID     uint      `gorm:"not null;uniqueIndex" json:"entity_id"`
	Score        float64   `gorm:"not null" json:"score"`                       // [0,1]
	Level        string    `gorm:"type:varchar(16);not null" json:"level"`      // five-level tier
	Band         string    `gorm:"type:varchar(16);not null" json:"band"`       // four-level band over [0,10]
	Factors      JSON      `gorm:"type:jsonb" json:"factors"`                   // {"factors": [...]}
	Completeness string    `gorm:"type:varchar(16);not null" json:"completeness"` // full | partial | none
	LastUpdated  time.Time `gorm:"not null" json:"last_updated"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
