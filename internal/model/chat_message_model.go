package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID `gorm:"type:uuid;not null;index"`
	Role           string    `gorm:"type:varchar(10);not null"`
	Content        string    `gorm:"type:text;not null"`
	// Timestamp preserves the client-side ordering of the chat; CreatedAt is
	// only the row insertion time.
	Timestamp time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
