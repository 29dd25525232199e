package entity

import (
	"time"

	"github.com/google/uuid"
)

// TravelPreference keeps the interview answers worth reusing across trips.
type TravelPreference struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	HomeCity     string
	BudgetLevel  string // backpacker | mid-range | premium
	TravelStyles []string
	Dietary      string
	Language     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
