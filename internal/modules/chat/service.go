package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentalhub/internal/domain"
	"rentalhub/internal/realtime"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

var (
	ErrNotParticipant    = errors.New("you are not a participant of this conversation")
	ErrEmptyContent      = errors.New("message content cannot be empty")
	ErrCannotMessageSelf = errors.New("cannot send message to yourself")
	ErrMessageNotFound   = errors.New("message not found")
	ErrNotSender         = errors.New("only the sender can delete a message")
	ErrUnknownType       = errors.New("unknown message type")
)

type Repository interface {
	CreateMessage(ctx context.Context, msg *domain.ChatMessage) error
	GetMessage(ctx context.Context, id string) (*domain.ChatMessage, error)
	DeleteMessage(ctx context.Context, id string) error
	GetMessages(ctx context.Context, conversationID string, limit int, before *time.Time) ([]domain.ChatMessage, error)
	LastMessage(ctx context.Context, conversationID string) (*domain.ChatMessage, error)
	ConversationIDs(ctx context.Context, userID string) ([]string, error)
	SetLastRead(ctx context.Context, userID, conversationID string, at time.Time) error
	CountUnread(ctx context.Context, conversationID, userID string) (int64, error)
}

type Pusher interface {
	SendToUser(userID string, ev realtime.Event) bool
}

type Service struct {
	repo   Repository
	pusher Pusher
	now    func() time.Time
}

func NewService(repo Repository, pusher Pusher) *Service {
	return &Service{repo: repo, pusher: pusher, now: time.Now}
}

// Send stores a message and pushes it to both parties.
func (s *Service) Send(ctx context.Context, sess domain.Session, req SendMessageRequest) (*domain.ChatMessage, error) {
	if req.ReceiverID == sess.UserID {
		return nil, ErrCannotMessageSelf
	}
	if req.Type == "" {
		req.Type = domain.MessageTypeText
	}
	text := strings.TrimSpace(req.Text)
	switch req.Type {
	case domain.MessageTypeText:
		if text == "" {
			return nil, ErrEmptyContent
		}
	case domain.MessageTypeImage:
		if req.ImageURL == "" {
			return nil, ErrEmptyContent
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, req.Type)
	}

	msg := &domain.ChatMessage{
		ID:             uuid.NewString(),
		ConversationID: domain.ConversationID(sess.UserID, req.ReceiverID),
		SenderID:       sess.UserID,
		ReceiverID:     req.ReceiverID,
		Type:           req.Type,
		Text:           text,
		ImageURL:       req.ImageURL,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}
	// The sender has read everything up to their own message.
	_ = s.repo.SetLastRead(ctx, sess.UserID, msg.ConversationID, msg.CreatedAt)

	s.broadcast(msg, realtime.Event{Type: realtime.EventChatMessage, Data: msg})
	return msg, nil
}

func (s *Service) Messages(ctx context.Context, sess domain.Session, conversationID string, limit int, before *time.Time) (*MessagesResponse, error) {
	if _, ok := domain.OtherParticipant(conversationID, sess.UserID); !ok {
		return nil, ErrNotParticipant
	}
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}

	msgs, err := s.repo.GetMessages(ctx, conversationID, limit+1, before)
	if err != nil {
		return nil, err
	}
	hasMore := len(msgs) > limit
	if hasMore {
		msgs = msgs[1:]
	}
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	return &MessagesResponse{Messages: msgs, HasMore: hasMore}, nil
}

func (s *Service) MarkRead(ctx context.Context, sess domain.Session, conversationID string) error {
	if _, ok := domain.OtherParticipant(conversationID, sess.UserID); !ok {
		return ErrNotParticipant
	}
	return s.repo.SetLastRead(ctx, sess.UserID, conversationID, s.now().UTC())
}

// Delete removes one of the caller's own messages.
func (s *Service) Delete(ctx context.Context, sess domain.Session, messageID string) error {
	msg, err := s.repo.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrMessageNotFound
	}
	if msg.SenderID != sess.UserID {
		return ErrNotSender
	}
	if err := s.repo.DeleteMessage(ctx, messageID); err != nil {
		return err
	}

	s.broadcast(msg, realtime.Event{
		Type: realtime.EventChatDeleted,
		Data: map[string]string{"id": msg.ID, "conversationId": msg.ConversationID},
	})
	return nil
}

// Conversations lists the caller's conversations, most recent first.
func (s *Service) Conversations(ctx context.Context, sess domain.Session) ([]domain.Conversation, error) {
	ids, err := s.repo.ConversationIDs(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Conversation, 0, len(ids))
	for _, id := range ids {
		other, ok := domain.OtherParticipant(id, sess.UserID)
		if !ok {
			continue
		}
		last, err := s.repo.LastMessage(ctx, id)
		if err != nil {
			return nil, err
		}
		unread, err := s.repo.CountUnread(ctx, id, sess.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Conversation{ID: id, OtherUserID: other, LastMessage: last, UnreadCount: unread})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return lastAt(out[i]).After(lastAt(out[j]))
	})
	return out, nil
}

func (s *Service) Unread(ctx context.Context, sess domain.Session) (*UnreadResponse, error) {
	ids, err := s.repo.ConversationIDs(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	res := &UnreadResponse{ByConversation: make(map[string]int64, len(ids))}
	for _, id := range ids {
		n, err := s.repo.CountUnread(ctx, id, sess.UserID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			res.ByConversation[id] = n
			res.Total += n
		}
	}
	return res, nil
}

func (s *Service) broadcast(msg *domain.ChatMessage, ev realtime.Event) {
	if s.pusher == nil {
		return
	}
	s.pusher.SendToUser(msg.SenderID, ev)
	s.pusher.SendToUser(msg.ReceiverID, ev)
}

func lastAt(c domain.Conversation) time.Time {
	if c.LastMessage == nil {
		return time.Time{}
	}
	return c.LastMessage.CreatedAt
}
