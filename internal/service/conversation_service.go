package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelmate-be/internal/apperr"
	"travelmate-be/internal/constant"
	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/repository/specification"
	"travelmate-be/internal/repository/unitofwork"
)

const (
	titleMaxLen      = 50
	defaultListLimit = 50
	maxListLimit     = 100
)

type IConversationService interface {
	SaveConversation(ctx context.Context, userId uuid.UUID, req *dto.SaveConversationRequest) (*dto.SaveConversationResponse, error)
	ListConversations(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.ConversationSummaryResponse, error)
	LoadConversation(ctx context.Context, userId, conversationId uuid.UUID) (*dto.ConversationDetailResponse, error)
	DeleteConversation(ctx context.Context, userId, conversationId uuid.UUID) error
	RenameConversation(ctx context.Context, userId, conversationId uuid.UUID, req *dto.RenameConversationRequest) error
	AppendMessages(ctx context.Context, userId, conversationId uuid.UUID, req *dto.AppendMessagesRequest) error
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
	now        func() time.Time
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IConversationService {
	return &conversationService{
		uowFactory: uowFactory,
		log:        log,
		now:        time.Now,
	}
}

// titleFor derives a conversation title from the first user message,
// truncated to keep list rows readable. Falls back to a dated label when the
// transcript has no user turn at all.
func (s *conversationService) titleFor(messages []dto.ChatMessageDTO) string {
	for _, m := range messages {
		if m.Role == constant.ChatMessageRoleUser {
			text := strings.TrimSpace(m.Content)
			if text == "" {
				continue
			}
			if len(text) > titleMaxLen {
				return text[:titleMaxLen] + "..."
			}
			return text
		}
	}
	return "Chat " + s.now().Format("Jan 2, 2006")
}

func (s *conversationService) SaveConversation(ctx context.Context, userId uuid.UUID, req *dto.SaveConversationRequest) (*dto.SaveConversationResponse, error) {
	if len(req.Messages) == 0 {
		return nil, apperr.Validation("cannot save an empty conversation")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = s.titleFor(req.Messages)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation := &entity.Conversation{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		IsSaved:   true,
		CreatedAt: s.now(),
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}

	messages := make([]*entity.ChatMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = &entity.ChatMessage{
			Id:             uuid.New(),
			ConversationId: conversation.Id,
			Role:           m.Role,
			Content:        m.Content,
			Timestamp:      m.Timestamp,
			CreatedAt:      s.now(),
		}
	}

	if err := uow.ChatMessageRepository().CreateBulk(ctx, messages); err != nil {
		s.compensateConversationInsert(ctx, uow, conversation.Id)
		return nil, fmt.Errorf("failed to save conversation messages: %w", err)
	}

	return &dto.SaveConversationResponse{
		Id:    conversation.Id,
		Title: conversation.Title,
	}, nil
}

// compensateConversationInsert removes the conversation row created just
// before a message insert failed, so no empty shell is left behind.
func (s *conversationService) compensateConversationInsert(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID) {
	if err := uow.ConversationRepository().Delete(ctx, conversationId); err != nil {
		s.log.Error("conversation", "failed to compensate conversation insert", map[string]interface{}{
			"conversation_id": conversationId.String(),
			"error":           err.Error(),
		})
	}
}

func (s *conversationService) ListConversations(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.ConversationSummaryResponse, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.SavedOnly{},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.ConversationSummaryResponse, len(conversations))
	for i, c := range conversations {
		count, err := uow.ChatMessageRepository().Count(ctx, specification.ByConversationID{ConversationID: c.Id})
		if err != nil {
			return nil, err
		}
		summaries[i] = &dto.ConversationSummaryResponse{
			Id:           c.Id,
			Title:        c.Title,
			MessageCount: count,
			CreatedAt:    c.CreatedAt,
			UpdatedAt:    c.UpdatedAt,
		}
	}

	return summaries, nil
}

func (s *conversationService) LoadConversation(ctx context.Context, userId, conversationId uuid.UUID) (*dto.ConversationDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := s.findOwned(ctx, uow, userId, conversationId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "timestamp", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	messageDTOs := make([]dto.ChatMessageDTO, len(messages))
	for i, m := range messages {
		messageDTOs[i] = dto.ChatMessageDTO{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		}
	}

	return &dto.ConversationDetailResponse{
		Id:        conversation.Id,
		Title:     conversation.Title,
		Messages:  messageDTOs,
		CreatedAt: conversation.CreatedAt,
	}, nil
}

func (s *conversationService) DeleteConversation(ctx context.Context, userId, conversationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwned(ctx, uow, userId, conversationId); err != nil {
		return err
	}

	// Messages first so a crash in between leaves no orphaned rows.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByConversationId(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, conversationId); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *conversationService) RenameConversation(ctx context.Context, userId, conversationId uuid.UUID, req *dto.RenameConversationRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return apperr.Validation("title cannot be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwned(ctx, uow, userId, conversationId); err != nil {
		return err
	}

	return uow.ConversationRepository().UpdateTitle(ctx, conversationId, title)
}

func (s *conversationService) AppendMessages(ctx context.Context, userId, conversationId uuid.UUID, req *dto.AppendMessagesRequest) error {
	if len(req.Messages) == 0 {
		return apperr.Validation("no messages to append")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwned(ctx, uow, userId, conversationId); err != nil {
		return err
	}

	messages := make([]*entity.ChatMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = &entity.ChatMessage{
			Id:             uuid.New(),
			ConversationId: conversationId,
			Role:           m.Role,
			Content:        m.Content,
			Timestamp:      m.Timestamp,
			CreatedAt:      s.now(),
		}
	}

	if err := uow.ChatMessageRepository().CreateBulk(ctx, messages); err != nil {
		return err
	}

	return uow.ConversationRepository().Touch(ctx, conversationId)
}

func (s *conversationService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, conversationId uuid.UUID) (*entity.Conversation, error) {
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, apperr.NotFound("conversation not found")
	}
	return conversation, nil
}
