package model

import (
	"time"
)

// ReportModel mirrors the 'reports' table. The point is stored as two float columns.
type ReportModel struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	AccountID     int64   `gorm:"not null;index"`
	Title         string  `gorm:"type:varchar(200);not null"`
	Description   string  `gorm:"type:text"`
	Category      string  `gorm:"type:varchar(64)"`
	Latitude      float64 `gorm:"not null"`
	Longitude     float64 `gorm:"not null"`
	AttachmentKey string  `gorm:"type:varchar(512)"`
	Status        string  `gorm:"type:varchar(32);not null;default:open"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReportModel) TableName() string {
	return "reports"
}
