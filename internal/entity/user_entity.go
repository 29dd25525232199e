package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	AvatarURL    *string
	IsActive     bool
	LastLogin    *time.Time
	Preferences  map[string]interface{}
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PasswordResetOTP is the server-side record backing the reset flow. At most
// one row exists per email: a new request supersedes the previous one.
type PasswordResetOTP struct {
	Id        uuid.UUID
	Email     string
	Otp       string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Active reports whether the record can still authorize a reset.
func (o *PasswordResetOTP) Active(now time.Time) bool {
	return !o.Used && o.ExpiresAt.After(now)
}

type UserSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	IpAddress string
	UserAgent string
	CreatedAt time.Time
}
