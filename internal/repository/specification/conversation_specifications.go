package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByConversationID filters messages by their owning conversation
type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

// SavedOnly keeps only conversations the user explicitly saved
type SavedOnly struct{}

func (s SavedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_saved = ?", true)
}
