package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentalhub/internal/domain"
)

type PushSubscriptionRepository struct {
	db *gorm.DB
}

func NewPushSubscriptionRepository(db *gorm.DB) *PushSubscriptionRepository {
	return &PushSubscriptionRepository{db: db}
}

// Upsert keys on endpoint. A browser that re-subscribes under another user moves to that user.
func (r *PushSubscriptionRepository) Upsert(ctx context.Context, sub *domain.PushSubscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth"}),
	}).Create(sub).Error
}

func (r *PushSubscriptionRepository) ListByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	var subs []domain.PushSubscription
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *PushSubscriptionRepository) Delete(ctx context.Context, endpoint string) error {
	return r.db.WithContext(ctx).Delete(&domain.PushSubscription{Endpoint: endpoint}).Error
}

// DeleteForUser removes endpoint only if userID owns it.
func (r *PushSubscriptionRepository) DeleteForUser(ctx context.Context, userID, endpoint string) error {
	return r.db.WithContext(ctx).
		Where("endpoint = ? AND user_id = ?", endpoint, userID).
		Delete(&domain.PushSubscription{}).Error
}
