package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessageDTO struct {
	Role      string    `json:"role" validate:"required,oneof=user bot"`
	Content   string    `json:"content" validate:"required"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
}

type SaveConversationRequest struct {
	Title    string           `json:"title" validate:"omitempty,max=255"`
	Messages []ChatMessageDTO `json:"messages" validate:"required,min=1,dive"`
}

type SaveConversationResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type ConversationSummaryResponse struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	MessageCount int64      `json:"message_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type ConversationDetailResponse struct {
	Id        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Messages  []ChatMessageDTO `json:"messages"`
	CreatedAt time.Time        `json:"created_at"`
}

type RenameConversationRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type AppendMessagesRequest struct {
	Messages []ChatMessageDTO `json:"messages" validate:"required,min=1,dive"`
}
