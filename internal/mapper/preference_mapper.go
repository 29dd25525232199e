package mapper

import (
	"encoding/json"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/model"
)

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToEntity(p *model.TravelPreference) *entity.TravelPreference {
	if p == nil {
		return nil
	}

	var styles []string
	if len(p.TravelStyles) > 0 {
		_ = json.Unmarshal(p.TravelStyles, &styles)
	}

	return &entity.TravelPreference{
		Id:           p.Id,
		UserId:       p.UserId,
		HomeCity:     p.HomeCity,
		BudgetLevel:  p.BudgetLevel,
		TravelStyles: styles,
		Dietary:      p.Dietary,
		Language:     p.Language,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *PreferenceMapper) ToModel(p *entity.TravelPreference) *model.TravelPreference {
	if p == nil {
		return nil
	}

	var styles []byte
	if p.TravelStyles != nil {
		styles, _ = json.Marshal(p.TravelStyles)
	}

	return &model.TravelPreference{
		Id:           p.Id,
		UserId:       p.UserId,
		HomeCity:     p.HomeCity,
		BudgetLevel:  p.BudgetLevel,
		TravelStyles: styles,
		Dietary:      p.Dietary,
		Language:     p.Language,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
