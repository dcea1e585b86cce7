package notification

import (
	"context"
	"time"

	"rentalhub/internal/domain"
	"rentalhub/internal/realtime"
)

type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByReceiver(ctx context.Context, receiverID string, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	UnreadIDs(ctx context.Context, receiverID string) ([]string, error)
	MarkRead(ctx context.Context, id, receiverID string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type SubscriptionStore interface {
	Upsert(ctx context.Context, sub *domain.PushSubscription) error
	ListByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error)
	Delete(ctx context.Context, endpoint string) error
	DeleteForUser(ctx context.Context, userID, endpoint string) error
}

// Pusher delivers events to live sockets.
type Pusher interface {
	SendToUser(userID string, ev realtime.Event) bool
}

// Dispatcher queues a web push for an offline receiver.
type Dispatcher interface {
	Dispatch(job PushJob) bool
}
