package domain

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationBooking  NotificationType = "booking_success"
	NotificationRequest  NotificationType = "request_success"
	NotificationResident NotificationType = "resident_success"
	NotificationPayment  NotificationType = "payment_success"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationBooking, NotificationRequest, NotificationResident, NotificationPayment:
		return true
	}
	return false
}

// Notification is a document in the real-time store. Only isRead changes after creation.
type Notification struct {
	ID         string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ReceiverID string           `json:"receiverId" gorm:"not null;index:idx_notifications_receiver_created,priority:1"`
	SenderID   string           `json:"senderId" gorm:"not null"`
	Type       NotificationType `json:"type" gorm:"type:varchar(32);not null"`
	Message    string           `json:"message" gorm:"type:text;not null"`
	ContractID *string          `json:"contractId,omitempty"`
	Data       datatypes.JSON   `json:"data,omitempty"`
	IsRead     bool             `json:"isRead" gorm:"not null;default:false"`
	CreatedAt  time.Time        `json:"createdAt" gorm:"not null;index:idx_notifications_receiver_created,priority:2,sort:desc"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationInput is what producers hand to the notification service.
type NotificationInput struct {
	ReceiverID string           `json:"receiverId" validate:"required"`
	SenderID   string           `json:"senderId" validate:"required"`
	Type       NotificationType `json:"type" validate:"required"`
	Message    string           `json:"message" validate:"required"`
	ContractID string           `json:"contractId,omitempty"`
	Data       map[string]any   `json:"data,omitempty"`
}

// PushSubscription is a browser web push endpoint registered by a user.
type PushSubscription struct {
	Endpoint  string    `json:"endpoint" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"not null;index"`
	P256DH    string    `json:"p256dh" gorm:"column:p256dh;not null"`
	Auth      string    `json:"auth" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (PushSubscription) TableName() string {
	return "push_subscriptions"
}
