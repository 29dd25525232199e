package model

import (
	"time"

	"github.com/google/uuid"
)

// One row per email: the unique index is the upsert target, so a fresh
// request supersedes any previous code for the same address.
type PasswordResetOTP struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Otp       string    `gorm:"type:char(6);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PasswordResetOTP) TableName() string {
	return "password_reset_otps"
}
