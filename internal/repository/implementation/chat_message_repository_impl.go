package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/mapper"
	"travelmate-be/internal/model"
	"travelmate-be/internal/repository/contract"
	"travelmate-be/internal/repository/specification"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatMessageRepositoryImpl) CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	models := r.mapper.MessagesToModels(messages)
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *ChatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatMessage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MessageToEntity(m)
	}
	return entities, nil
}

func (r *ChatMessageRepositoryImpl) DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("conversation_id = ?", conversationId).Delete(&model.ChatMessage{}).Error
}

func (r *ChatMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
