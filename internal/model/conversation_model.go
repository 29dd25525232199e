package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:text;not null"`
	IsSaved   bool      `gorm:"default:true;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Conversation) TableName() string {
	return "chat_conversations"
}
