package models

import (
	"time"
)

// RefreshToken represents a JWT refresh token in the database
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Revoke marks the token unusable and clamps its remaining lifetime.
func (t *RefreshToken) Revoke() {
	t.IsRevoked = true
	if now := time.Now(); t.ExpiresAt.After(now) {
		t.ExpiresAt = now
	}
}
