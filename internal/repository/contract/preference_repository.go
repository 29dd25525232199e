package contract

import (
	"context"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/repository/specification"
)

type PreferenceRepository interface {
	// Upsert by user_id: one preference record per user.
	Upsert(ctx context.Context, pref *entity.TravelPreference) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TravelPreference, error)
}
