package service

import (
	"context"

	"travelmate-be/internal/apperr"
	"travelmate-be/internal/config"
	"travelmate-be/internal/constant"
	"travelmate-be/internal/dto"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/pkg/llm"
)

type IChatService interface {
	GenerateReply(ctx context.Context, req *dto.ChatReplyRequest) (*dto.ChatReplyResponse, error)
}

type chatService struct {
	provider llm.LLMProvider
	cfg      config.OpenAIConfig
	log      logger.ILogger
}

func NewChatService(provider llm.LLMProvider, cfg config.OpenAIConfig, log logger.ILogger) IChatService {
	return &chatService{
		provider: provider,
		cfg:      cfg,
		log:      log,
	}
}

func (s *chatService) GenerateReply(ctx context.Context, req *dto.ChatReplyRequest) (*dto.ChatReplyResponse, error) {
	if req.Message == "" {
		return nil, apperr.Validation("message cannot be empty")
	}

	history := buildHistory(req.History, req.Message)

	reply, err := s.provider.Chat(ctx, history,
		llm.WithModel(s.cfg.Model),
		llm.WithMaxTokens(s.cfg.MaxTokens),
		llm.WithTemperature(s.cfg.Temperature),
	)
	if err != nil {
		s.log.Error("chat", "completion failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	if reply == "" {
		return nil, apperr.New(apperr.KindEmptyResponse, "No response generated. Please try again.")
	}

	return &dto.ChatReplyResponse{Reply: reply}, nil
}

// buildHistory prepends the system persona, replays the prior turns with
// provider roles, then appends the new user message last.
func buildHistory(prior []dto.ChatMessageDTO, newMessage string) []llm.Message {
	history := make([]llm.Message, 0, len(prior)+2)
	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: constant.TravelAssistantSystemPromptV1,
	})
	for _, m := range prior {
		role := constant.ChatMessageRoleUser
		if m.Role == constant.ChatMessageRoleBot {
			role = constant.ChatMessageRoleAssistant
		}
		history = append(history, llm.Message{Role: role, Content: m.Content})
	}
	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: newMessage,
	})
	return history
}
