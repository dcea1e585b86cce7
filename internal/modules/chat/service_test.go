package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentalhub/internal/database"
	"rentalhub/internal/domain"
	"rentalhub/internal/middleware"
	"rentalhub/internal/pkg/jwt"
	"rentalhub/internal/realtime"
	"rentalhub/internal/repository"
)

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) SendToUser(userID string, ev realtime.Event) bool {
	return m.Called(userID, ev).Bool(0)
}

var (
	tenant   = domain.Session{UserID: "tenant-1", Role: domain.RoleUser}
	landlord = domain.Session{UserID: "landlord-1", Role: domain.RoleLandlord}
	base     = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
)

func newTestService(t *testing.T, pusher Pusher) *Service {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Connect("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(repository.NewChatRepository(db), pusher)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return svc
}

func TestSend_PushesToBothParties(t *testing.T) {
	pusher := new(MockPusher)
	svc := newTestService(t, pusher)
	isChat := mock.MatchedBy(func(ev realtime.Event) bool { return ev.Type == realtime.EventChatMessage })
	pusher.On("SendToUser", "tenant-1", isChat).Return(true).Once()
	pusher.On("SendToUser", "landlord-1", isChat).Return(false).Once()

	msg, err := svc.Send(context.Background(), tenant, SendMessageRequest{ReceiverID: "landlord-1", Text: "  Hello  "})
	require.NoError(t, err)
	assert.Equal(t, "landlord-1_tenant-1", msg.ConversationID)
	assert.Equal(t, "Hello", msg.Text)
	assert.Equal(t, domain.MessageTypeText, msg.Type)
	pusher.AssertExpectations(t)
}

func TestSend_Validation(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Send(ctx, tenant, SendMessageRequest{ReceiverID: "tenant-1", Text: "me"})
	assert.ErrorIs(t, err, ErrCannotMessageSelf)

	_, err = svc.Send(ctx, tenant, SendMessageRequest{ReceiverID: "landlord-1", Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = svc.Send(ctx, tenant, SendMessageRequest{ReceiverID: "landlord-1", Type: domain.MessageTypeImage})
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = svc.Send(ctx, tenant, SendMessageRequest{ReceiverID: "landlord-1", Type: "video", Text: "x"})
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestUnreadCountsOtherPartyAfterLastRead(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Send(ctx, landlord, SendMessageRequest{ReceiverID: "tenant-1", Text: "Rent is due"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, landlord, SendMessageRequest{ReceiverID: "tenant-1", Text: "Reminder"})
	require.NoError(t, err)

	unread, err := svc.Unread(ctx, tenant)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread.Total)

	mine, err := svc.Unread(ctx, landlord)
	require.NoError(t, err)
	assert.Zero(t, mine.Total)

	conv := domain.ConversationID("tenant-1", "landlord-1")
	require.NoError(t, svc.MarkRead(ctx, tenant, conv))
	unread, err = svc.Unread(ctx, tenant)
	require.NoError(t, err)
	assert.Zero(t, unread.Total)

	_, err = svc.Send(ctx, landlord, SendMessageRequest{ReceiverID: "tenant-1", Text: "One more"})
	require.NoError(t, err)
	convs, err := svc.Conversations(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "landlord-1", convs[0].OtherUserID)
	assert.Equal(t, int64(1), convs[0].UnreadCount)
	assert.Equal(t, "One more", convs[0].LastMessage.Text)
}

func TestMessages_NonParticipantRejected(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.Messages(context.Background(), tenant, "a_b", 10, nil)
	assert.ErrorIs(t, err, ErrNotParticipant)
	assert.ErrorIs(t, svc.MarkRead(context.Background(), tenant, "a_b"), ErrNotParticipant)
}

func TestMessages_HasMore(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Send(ctx, tenant, SendMessageRequest{ReceiverID: "landlord-1", Text: text})
		require.NoError(t, err)
	}

	res, err := svc.Messages(ctx, landlord, domain.ConversationID("tenant-1", "landlord-1"), 2, nil)
	require.NoError(t, err)
	assert.True(t, res.HasMore)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, "two", res.Messages[0].Text)
	assert.Equal(t, "three", res.Messages[1].Text)
}

func TestDelete_OnlySender(t *testing.T) {
	pusher := new(MockPusher)
	svc := newTestService(t, pusher)
	ctx := context.Background()
	pusher.On("SendToUser", mock.Anything, mock.Anything).Return(true)

	msg, err := svc.Send(ctx, tenant, SendMessageRequest{ReceiverID: "landlord-1", Text: "oops"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, landlord, msg.ID), ErrNotSender)
	require.NoError(t, svc.Delete(ctx, tenant, msg.ID))
	assert.ErrorIs(t, svc.Delete(ctx, tenant, msg.ID), ErrMessageNotFound)

	pusher.AssertCalled(t, "SendToUser", "landlord-1", mock.MatchedBy(func(ev realtime.Event) bool {
		return ev.Type == realtime.EventChatDeleted
	}))
}

func TestHandler_SendAndList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService(t, nil)
	jwtSvc := jwt.New("secret", time.Hour)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1", middleware.JWTAuth(jwtSvc)))
	token, _ := jwtSvc.GenerateToken("tenant-1", domain.RoleUser, "tok")

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/api/v1/chat/messages", `{"receiverId":"landlord-1","text":"Hi"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(http.MethodPost, "/api/v1/chat/messages", `{"receiverId":"tenant-1","text":"Hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(http.MethodGet, "/api/v1/chat/conversations/a_b/messages", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(http.MethodGet, "/api/v1/chat/conversations/landlord-1_tenant-1/messages?before=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(http.MethodGet, "/api/v1/chat/conversations/landlord-1_tenant-1/messages", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data MessagesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Messages, 1)
	assert.Equal(t, "Hi", body.Data.Messages[0].Text)
}
