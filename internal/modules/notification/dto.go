package notification

import "rentalhub/internal/domain"

type ListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

// MarkAllResult lists what changed. Each id is updated on its own, so Failed may be non-empty
// while Updated is too.
type MarkAllResult struct {
	Updated []string `json:"updated"`
	Failed  []string `json:"failed"`
}

type SubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256DH string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}
