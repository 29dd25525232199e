package contract

import (
	"context"

	"github.com/google/uuid"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Business specific
	UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error
	TouchLastLogin(ctx context.Context, userId uuid.UUID) error

	// Session management
	CreateSession(ctx context.Context, session *entity.UserSession) error
	RevokeSession(ctx context.Context, tokenHash string) error
	FindSession(ctx context.Context, specs ...specification.Specification) (*entity.UserSession, error)
}
