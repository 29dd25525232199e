package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TravelPreference struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	HomeCity     string         `gorm:"type:varchar(255)"`
	BudgetLevel  string         `gorm:"type:varchar(50)"`
	TravelStyles datatypes.JSON `gorm:"type:jsonb"`
	Dietary      string         `gorm:"type:varchar(50)"`
	Language     string         `gorm:"type:varchar(50)"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (TravelPreference) TableName() string {
	return "travel_preferences"
}
