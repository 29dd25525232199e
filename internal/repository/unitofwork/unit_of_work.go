package unitofwork

import (
	"context"

	"travelmate-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	OtpRepository() contract.OtpRepository
	ConversationRepository() contract.ConversationRepository
	ChatMessageRepository() contract.ChatMessageRepository
	PreferenceRepository() contract.PreferenceRepository
}
