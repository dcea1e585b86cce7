package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"rentalhub/internal/database"
	"rentalhub/internal/domain"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetMessage returns nil, nil when the message does not exist.
func (r *ChatRepository) GetMessage(ctx context.Context, id string) (*domain.ChatMessage, error) {
	var msg domain.ChatMessage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *ChatRepository) DeleteMessage(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ChatMessage{}).Error
}

// GetMessages returns up to limit messages older than before (when set), oldest first.
func (r *ChatRepository) GetMessages(ctx context.Context, conversationID string, limit int, before *time.Time) ([]domain.ChatMessage, error) {
	query := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var messages []domain.ChatMessage
	if err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *ChatRepository) LastMessage(ctx context.Context, conversationID string) (*domain.ChatMessage, error) {
	var msg domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// ConversationIDs lists every conversation userID has sent or received in.
func (r *ChatRepository) ConversationIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Distinct("conversation_id").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Pluck("conversation_id", &ids).Error
	return ids, err
}

// SetLastRead records lastReadAt for (userID, conversationID), inserting on first read.
func (r *ChatRepository) SetLastRead(ctx context.Context, userID, conversationID string, at time.Time) error {
	status := domain.ReadStatus{UserID: userID, ConversationID: conversationID, LastReadAt: at}
	err := r.db.WithContext(ctx).Create(&status).Error
	if err == nil {
		return nil
	}
	if !database.IsUniqueViolation(err) {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&domain.ReadStatus{}).
		Where("user_id = ? AND conversation_id = ?", userID, conversationID).
		Update("last_read_at", at).Error
}

// LastRead returns the zero time when userID never opened the conversation.
func (r *ChatRepository) LastRead(ctx context.Context, userID, conversationID string) (time.Time, error) {
	var status domain.ReadStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND conversation_id = ?", userID, conversationID).
		First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return status.LastReadAt, nil
}

// CountUnread counts messages from the other party after userID's lastReadAt.
func (r *ChatRepository) CountUnread(ctx context.Context, conversationID, userID string) (int64, error) {
	since, err := r.LastRead(ctx, userID, conversationID)
	if err != nil {
		return 0, err
	}

	var count int64
	query := r.db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("conversation_id = ?", conversationID).
		Where("sender_id != ?", userID)
	if !since.IsZero() {
		query = query.Where("created_at > ?", since)
	}
	err = query.Count(&count).Error
	return count, err
}
