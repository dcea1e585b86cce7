package domain

import (
	"sort"
	"strings"
	"time"
)

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
)

// ChatMessage is a single message between a tenant and a landlord.
type ChatMessage struct {
	ID             string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ConversationID string      `json:"conversationId" gorm:"not null;index:idx_messages_conversation_created,priority:1"`
	SenderID       string      `json:"senderId" gorm:"not null"`
	ReceiverID     string      `json:"receiverId" gorm:"not null;index"`
	Type           MessageType `json:"type" gorm:"type:varchar(16);not null;default:text"`
	Text           string      `json:"text" gorm:"type:text"`
	ImageURL       string      `json:"imageUrl,omitempty"`
	CreatedAt      time.Time   `json:"createdAt" gorm:"not null;index:idx_messages_conversation_created,priority:2"`
}

func (ChatMessage) TableName() string {
	return "messages"
}

// ReadStatus records how far a user has read a conversation.
type ReadStatus struct {
	UserID         string    `json:"userId" gorm:"primaryKey"`
	ConversationID string    `json:"conversationId" gorm:"primaryKey"`
	LastReadAt     time.Time `json:"lastReadAt" gorm:"not null"`
}

func (ReadStatus) TableName() string {
	return "read_statuses"
}

// Conversation is a summary row for the conversation list.
type Conversation struct {
	ID          string       `json:"id"`
	OtherUserID string       `json:"otherUserId"`
	LastMessage *ChatMessage `json:"lastMessage,omitempty"`
	UnreadCount int64        `json:"unreadCount"`
}

// ConversationID joins the two participant ids in sorted order.
func ConversationID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

// OtherParticipant returns the id in conversationID that is not userID.
func OtherParticipant(conversationID, userID string) (string, bool) {
	parts := strings.SplitN(conversationID, "_", 2)
	if len(parts) != 2 {
		return "", false
	}
	switch userID {
	case parts[0]:
		return parts[1], true
	case parts[1]:
		return parts[0], true
	}
	return "", false
}
