package contract

import (
	"context"

	"github.com/google/uuid"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/repository/specification"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error
	Touch(ctx context.Context, id uuid.UUID) error
}
