package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/validator"
	"rentalhub/internal/realtime"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

var (
	ErrInvalidNotification = errors.New("invalid notification")
	ErrNotFound            = errors.New("notification not found")
)

type Service struct {
	repo   Repository
	pusher Pusher
	push   Dispatcher
	now    func() time.Time
}

// NewService wires the store and the socket hub. push may be nil when VAPID keys are not configured.
func NewService(repo Repository, pusher Pusher, push Dispatcher) *Service {
	return &Service{
		repo:   repo,
		pusher: pusher,
		push:   push,
		now:    time.Now,
	}
}

// Create stores a notification and fans it out: an "added" event to live sockets,
// else a web push.
func (s *Service) Create(ctx context.Context, in domain.NotificationInput) (*domain.Notification, error) {
	if details := validator.Validate(in); details != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotification, details)
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidNotification, in.Type)
	}

	n := &domain.Notification{
		ID:         uuid.NewString(),
		ReceiverID: in.ReceiverID,
		SenderID:   in.SenderID,
		Type:       in.Type,
		Message:    in.Message,
		IsRead:     false,
		CreatedAt:  s.now().UTC(),
	}
	if in.ContractID != "" {
		contractID := in.ContractID
		n.ContractID = &contractID
	}
	if len(in.Data) > 0 {
		raw, err := json.Marshal(in.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: data: %v", ErrInvalidNotification, err)
		}
		n.Data = datatypes.JSON(raw)
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("store notification: %w", err)
	}

	s.deliver(n)
	return n, nil
}

func (s *Service) deliver(n *domain.Notification) {
	if s.pusher != nil && s.pusher.SendToUser(n.ReceiverID, realtime.Event{Type: realtime.EventAdded, Data: n, ID: n.ID}) {
		return
	}
	if s.push == nil {
		return
	}
	if !s.push.Dispatch(PushJob{UserID: n.ReceiverID, Notification: *n}) {
		log.Printf("push_dropped notification_id=%s receiver_id=%s", n.ID, n.ReceiverID)
	}
}

func (s *Service) List(ctx context.Context, receiverID string, limit int) (*ListResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	list, err := s.repo.ListByReceiver(ctx, receiverID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Notification{}
	}
	return &ListResponse{Notifications: list, UnreadCount: unread}, nil
}

// Snapshot is the full newest-first list a socket receives on connect, plus the
// IDs it carries.
func (s *Service) Snapshot(ctx context.Context, receiverID string) (realtime.Event, []string, error) {
	list, err := s.repo.ListByReceiver(ctx, receiverID, 0)
	if err != nil {
		return realtime.Event{}, nil, err
	}
	if list == nil {
		list = []domain.Notification{}
	}
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	return realtime.Event{Type: realtime.EventSnapshot, Data: list}, ids, nil
}

func (s *Service) MarkRead(ctx context.Context, receiverID, id string) error {
	err := s.repo.MarkRead(ctx, id, receiverID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// MarkAllRead updates every unread notification one by one and reports each outcome.
func (s *Service) MarkAllRead(ctx context.Context, receiverID string) (*MarkAllResult, error) {
	ids, err := s.repo.UnreadIDs(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	res := &MarkAllResult{Updated: []string{}, Failed: []string{}}
	for _, id := range ids {
		if err := s.repo.MarkRead(ctx, id, receiverID); err != nil {
			log.Printf("mark_read_error notification_id=%s receiver_id=%s error=%q", id, receiverID, err.Error())
			res.Failed = append(res.Failed, id)
			continue
		}
		res.Updated = append(res.Updated, id)
	}
	return res, nil
}

// Cleanup deletes notifications older than days.
func (s *Service) Cleanup(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("retention days must be > 0, got %d", days)
	}
	cutoff := s.now().UTC().AddDate(0, 0, -days)
	return s.repo.DeleteOlderThan(ctx, cutoff)
}
