package specification

import "gorm.io/gorm"

// ByEmail filters by email address
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByTokenHash filters sessions by refresh-token hash
type ByTokenHash struct {
	TokenHash string
}

func (s ByTokenHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token_hash = ?", s.TokenHash)
}
