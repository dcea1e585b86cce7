package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rentalhub/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ListByReceiver returns the newest first. limit <= 0 means no limit.
func (r *NotificationRepository) ListByReceiver(ctx context.Context, receiverID string, limit int) ([]domain.Notification, error) {
	var list []domain.Notification
	q := r.db.WithContext(ctx).
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&n).Error
	return n, err
}

func (r *NotificationRepository) UnreadIDs(ctx context.Context, receiverID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Order("created_at DESC").
		Pluck("id", &ids).Error
	return ids, err
}

// MarkRead is scoped to the receiver. A foreign or missing id is gorm.ErrRecordNotFound.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, receiverID string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.Notification{})
	return res.RowsAffected, res.Error
}
