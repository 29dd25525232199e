package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/mapper"
	"travelmate-be/internal/model"
	"travelmate-be/internal/repository/contract"
	"travelmate-be/internal/repository/specification"
)

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewPreferenceRepository(db *gorm.DB) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *PreferenceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PreferenceRepositoryImpl) Upsert(ctx context.Context, pref *entity.TravelPreference) error {
	m := r.mapper.ToModel(pref)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"home_city", "budget_level", "travel_styles", "dietary", "language", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*pref = *r.mapper.ToEntity(m)
	return nil
}

func (r *PreferenceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TravelPreference, error) {
	var m model.TravelPreference
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
