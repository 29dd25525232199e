package mapper

import (
	"encoding/json"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var prefs map[string]interface{}
	if len(u.Preferences) > 0 {
		// Malformed JSON in the column degrades to empty preferences.
		_ = json.Unmarshal(u.Preferences, &prefs)
	}

	return &entity.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		AvatarURL:    u.AvatarURL,
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
		Preferences:  prefs,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	var prefs []byte
	if u.Preferences != nil {
		prefs, _ = json.Marshal(u.Preferences)
	}

	return &model.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		AvatarURL:    u.AvatarURL,
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
		Preferences:  prefs,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(models []*model.User) []*entity.User {
	entities := make([]*entity.User, len(models))
	for i, u := range models {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UserMapper) SessionToEntity(s *model.UserSession) *entity.UserSession {
	if s == nil {
		return nil
	}
	return &entity.UserSession{
		Id:        s.Id,
		UserId:    s.UserId,
		TokenHash: s.TokenHash,
		ExpiresAt: s.ExpiresAt,
		Revoked:   s.Revoked,
		IpAddress: s.IpAddress,
		UserAgent: s.UserAgent,
		CreatedAt: s.CreatedAt,
	}
}

func (m *UserMapper) SessionToModel(s *entity.UserSession) *model.UserSession {
	if s == nil {
		return nil
	}
	return &model.UserSession{
		Id:        s.Id,
		UserId:    s.UserId,
		TokenHash: s.TokenHash,
		ExpiresAt: s.ExpiresAt,
		Revoked:   s.Revoked,
		IpAddress: s.IpAddress,
		UserAgent: s.UserAgent,
		CreatedAt: s.CreatedAt,
	}
}

func (m *UserMapper) OtpToEntity(o *model.PasswordResetOTP) *entity.PasswordResetOTP {
	if o == nil {
		return nil
	}
	return &entity.PasswordResetOTP{
		Id:        o.Id,
		Email:     o.Email,
		Otp:       o.Otp,
		ExpiresAt: o.ExpiresAt,
		Used:      o.Used,
		CreatedAt: o.CreatedAt,
	}
}

func (m *UserMapper) OtpToModel(o *entity.PasswordResetOTP) *model.PasswordResetOTP {
	if o == nil {
		return nil
	}
	return &model.PasswordResetOTP{
		Id:        o.Id,
		Email:     o.Email,
		Otp:       o.Otp,
		ExpiresAt: o.ExpiresAt,
		Used:      o.Used,
		CreatedAt: o.CreatedAt,
	}
}
