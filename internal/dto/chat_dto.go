package dto

type ChatReplyRequest struct {
	Message string           `json:"message" validate:"required"`
	History []ChatMessageDTO `json:"history" validate:"dive"`
}

type ChatReplyResponse struct {
	Reply string `json:"reply"`
}
