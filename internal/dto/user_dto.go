package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName  string `json:"full_name" validate:"required,min=3"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

type TravelPreferencesRequest struct {
	HomeCity     string   `json:"home_city" validate:"omitempty,max=120"`
	BudgetLevel  string   `json:"budget_level" validate:"omitempty,oneof=budget moderate luxury"`
	TravelStyles []string `json:"travel_styles" validate:"omitempty,max=10,dive,max=50"`
	Dietary      string   `json:"dietary" validate:"omitempty,max=120"`
	Language     string   `json:"language" validate:"omitempty,max=20"`
}

type TravelPreferencesResponse struct {
	HomeCity     string   `json:"home_city"`
	BudgetLevel  string   `json:"budget_level"`
	TravelStyles []string `json:"travel_styles"`
	Dietary      string   `json:"dietary"`
	Language     string   `json:"language"`
}
