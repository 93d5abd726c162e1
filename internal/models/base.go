package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// Database connection instance
var DB *gorm.DB

// InitDB initializes the database connection and runs migrations.
// TranslateError is on so a violated unique index surfaces as
// gorm.ErrDuplicatedKey; the booking layer relies on that as the
// authoritative double-booking guard.
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	var err error

	DB, err = gorm.Open(mysql.Open(config.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = DB.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Doctor{},
		&AvailabilityRule{},
		&Appointment{},
	)
	if err != nil {
		return nil, err
	}

	return DB, nil
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
