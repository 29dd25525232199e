package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"travelmate-be/internal/apperr"
	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/repository/specification"
	"travelmate-be/internal/repository/unitofwork"
)

// ProfileClaims carries the identity fields lifted from the access token.
type ProfileClaims struct {
	UserId   uuid.UUID
	Email    string
	FullName string
}

type IUserService interface {
	GetProfile(ctx context.Context, claims ProfileClaims) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	GetPreferences(ctx context.Context, userId uuid.UUID) (*dto.TravelPreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.TravelPreferencesRequest) (*dto.TravelPreferencesResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
	now        func() time.Time
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		log:        log,
		now:        time.Now,
	}
}

func (s *userService) GetProfile(ctx context.Context, claims ProfileClaims) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: claims.UserId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		// The token is valid but the row is gone (stale token after a data
		// migration, or a session outliving its user). Serve a profile from
		// the claims rather than breaking the whole page.
		return s.fallbackProfile(claims), nil
	}

	return profileResponse(user), nil
}

// fallbackProfile synthesizes a display profile from token claims alone.
func (s *userService) fallbackProfile(claims ProfileClaims) *dto.UserProfileResponse {
	name := claims.FullName
	if name == "" {
		name = displayNameFromEmail(claims.Email)
	}
	s.log.Warn("user", "serving fallback profile", map[string]interface{}{
		"user_id": claims.UserId.String(),
	})
	return &dto.UserProfileResponse{
		Id:        claims.UserId,
		Email:     claims.Email,
		FullName:  name,
		CreatedAt: s.now(),
	}
}

// displayNameFromEmail turns "jane.doe@x.com" into "Jane Doe".
func displayNameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return "Traveler"
	}
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	user.FullName = req.FullName
	if req.AvatarURL != "" {
		user.AvatarURL = &req.AvatarURL
	}
	user.UpdatedAt = s.now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return profileResponse(user), nil
}

func (s *userService) GetPreferences(ctx context.Context, userId uuid.UUID) (*dto.TravelPreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pref, err := uow.PreferenceRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if pref == nil {
		// Defaults for a user who never filled the form.
		return &dto.TravelPreferencesResponse{
			TravelStyles: []string{},
			Language:     "en",
		}, nil
	}

	return preferencesResponse(pref), nil
}

func (s *userService) UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.TravelPreferencesRequest) (*dto.TravelPreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pref := &entity.TravelPreference{
		Id:           uuid.New(),
		UserId:       userId,
		HomeCity:     req.HomeCity,
		BudgetLevel:  req.BudgetLevel,
		TravelStyles: req.TravelStyles,
		Dietary:      req.Dietary,
		Language:     req.Language,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	if pref.TravelStyles == nil {
		pref.TravelStyles = []string{}
	}

	if err := uow.PreferenceRepository().Upsert(ctx, pref); err != nil {
		return nil, err
	}

	return preferencesResponse(pref), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func profileResponse(user *entity.User) *dto.UserProfileResponse {
	var avatar string
	if user.AvatarURL != nil {
		avatar = *user.AvatarURL
	}
	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		AvatarURL: avatar,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}
}

func preferencesResponse(pref *entity.TravelPreference) *dto.TravelPreferencesResponse {
	return &dto.TravelPreferencesResponse{
		HomeCity:     pref.HomeCity,
		BudgetLevel:  pref.BudgetLevel,
		TravelStyles: pref.TravelStyles,
		Dietary:      pref.Dietary,
		Language:     pref.Language,
	}
}
