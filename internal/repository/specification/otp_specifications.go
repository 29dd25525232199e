package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByOtpCode filters reset records by the 6-digit code
type ByOtpCode struct {
	Otp string
}

func (s ByOtpCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("otp = ?", s.Otp)
}

// ActiveAt keeps only unused records that have not expired at the given
// instant. Expiry is logical: rows are never deleted on the happy path.
type ActiveAt struct {
	Now time.Time
}

func (s ActiveAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("used = ? AND expires_at > ?", false, s.Now)
}
