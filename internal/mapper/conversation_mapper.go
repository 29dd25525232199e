package mapper

import (
	"time"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ConversationToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Conversation{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		IsSaved:   c.IsSaved,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ConversationMapper) ConversationToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Conversation{
		Id:        c.Id,
		UserId:    c.UserId,
		Title:     c.Title,
		IsSaved:   c.IsSaved,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ConversationMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		Timestamp:      msg.Timestamp,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		Timestamp:      msg.Timestamp,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessagesToModels(msgs []*entity.ChatMessage) []*model.ChatMessage {
	models := make([]*model.ChatMessage, len(msgs))
	for i, msg := range msgs {
		models[i] = m.MessageToModel(msg)
	}
	return models
}
