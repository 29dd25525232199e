package contract

import (
	"context"

	"github.com/google/uuid"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/repository/specification"
)

type ChatMessageRepository interface {
	CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
