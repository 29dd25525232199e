package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"travelmate-be/internal/apperr"
	"travelmate-be/internal/config"
	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/repository/specification"
	"travelmate-be/internal/repository/unitofwork"
	"travelmate-be/pkg/events"
	pkgNats "travelmate-be/pkg/nats"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	jwtCfg         config.JWTConfig
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	jwtCfg config.JWTConfig,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		jwtCfg:         jwtCfg,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeUserRegistered, map[string]interface{}{
		"user_id": user.Id,
		"email":   user.Email,
	})

	return &dto.RegisterResponse{
		Id:       user.Id,
		Email:    user.Email,
		FullName: user.FullName,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.InvalidOrExpired("invalid credentials")
	}
	if !user.IsActive {
		return nil, apperr.InvalidOrExpired("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.InvalidOrExpired("invalid credentials")
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"user_id":   user.Id.String(),
		"email":     user.Email,
		"full_name": user.FullName,
		"exp":       expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, err
	}

	session := &entity.UserSession{
		Id:        uuid.New(),
		UserId:    user.Id,
		TokenHash: hashToken(signedToken),
		ExpiresAt: expiresAt,
		Revoked:   false,
		IpAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreateSession(ctx, session); err != nil {
		return nil, err
	}

	if err := uow.UserRepository().TouchLastLogin(ctx, user.Id); err != nil {
		s.log.Warn("auth", "failed to update last login", map[string]interface{}{
			"user_id": user.Id.String(),
			"error":   err.Error(),
		})
	}

	s.publishEvent(ctx, events.TypeUserLogin, map[string]interface{}{
		"user_id": user.Id,
		"device":  userAgent,
		"time":    time.Now().Format(time.RFC822),
	})

	var avatar string
	if user.AvatarURL != nil {
		avatar = *user.AvatarURL
	}

	return &dto.LoginResponse{
		Token:     signedToken,
		ExpiresAt: expiresAt,
		User: dto.UserDTO{
			Id:        user.Id,
			Email:     user.Email,
			FullName:  user.FullName,
			AvatarURL: avatar,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokenHash := hashToken(token)
	session, err := uow.UserRepository().FindSession(ctx, specification.ByTokenHash{TokenHash: tokenHash})
	if err != nil {
		return err
	}
	if session == nil || session.Revoked {
		return apperr.InvalidOrExpired("session not found or already revoked")
	}

	return uow.UserRepository().RevokeSession(ctx, tokenHash)
}

// publishEvent is fire and forget; a dead event bus never blocks auth.
func (s *authService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.log.Warn("auth", "failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
