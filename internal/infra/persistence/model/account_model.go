package model

import (
	"time"
)

// AccountModel mirrors the 'accounts' table. Uniqueness of email and username among
// live rows is enforced by the partial indexes created in the migrations.
type AccountModel struct {
	ID                  int64      `gorm:"primaryKey;autoIncrement"`
	Email               string     `gorm:"type:varchar(255);not null"`
	Username            string     `gorm:"type:varchar(100);not null"`
	FirstName           string     `gorm:"type:varchar(100)"`
	LastName            string     `gorm:"type:varchar(100)"`
	Role                string     `gorm:"type:varchar(32);not null;default:citizen"`
	PasswordHash        string     `gorm:"type:varchar(255);not null" json:"-"`
	FailedLoginAttempts int        `gorm:"not null;default:0"`
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
