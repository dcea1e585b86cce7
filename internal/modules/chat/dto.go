package chat

import "rentalhub/internal/domain"

type SendMessageRequest struct {
	ReceiverID string             `json:"receiverId" binding:"required"`
	Type       domain.MessageType `json:"type"`
	Text       string             `json:"text" binding:"max=4000"`
	ImageURL   string             `json:"imageUrl" binding:"omitempty,url"`
}

type MessagesResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
	HasMore  bool                 `json:"hasMore"`
}

type UnreadResponse struct {
	Total          int64            `json:"total"`
	ByConversation map[string]int64 `json:"byConversation"`
}
