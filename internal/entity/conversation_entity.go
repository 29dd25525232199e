package entity

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	IsSaved   bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ChatMessage is owned by exactly one Conversation; deleting the conversation
// must leave no messages behind.
type ChatMessage struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string // constant.ChatMessageRoleUser or ...Bot
	Content        string
	Timestamp      time.Time
	CreatedAt      time.Time
}
