package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"rentalhub/internal/domain"
)

// PushJob is one notification to deliver to every subscription of UserID.
type PushJob struct {
	UserID       string
	Notification domain.Notification
}

// NotificationSender sends a single web push.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

type WebPushSender struct{}

func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool delivers web pushes off the request path.
type WorkerPool struct {
	size    int
	jobs    chan PushJob
	subs    SubscriptionStore
	webpush *webpush.Options
	sender  NotificationSender
}

func NewWorkerPool(size int, subs SubscriptionStore, options *webpush.Options) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan PushJob, size*16),
		subs:    subs,
		webpush: options,
		sender:  &WebPushSender{},
	}
}

// PublicKey is the VAPID key browsers subscribe with.
func (wp *WorkerPool) PublicKey() string {
	if wp == nil || wp.webpush == nil {
		return ""
	}
	return wp.webpush.VAPIDPublicKey
}

func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("push_worker_started worker=%d", id)
	for {
		select {
		case job := <-wp.jobs:
			wp.deliver(ctx, job)
		case <-ctx.Done():
			log.Printf("push_worker_stopped worker=%d", id)
			return
		}
	}
}

// Dispatch queues job and reports false when the queue is full.
func (wp *WorkerPool) Dispatch(job PushJob) bool {
	select {
	case wp.jobs <- job:
		return true
	default:
		return false
	}
}

type pushPayload struct {
	ID         string                  `json:"id"`
	Type       domain.NotificationType `json:"type"`
	Title      string                  `json:"title"`
	Body       string                  `json:"body"`
	ContractID *string                 `json:"contractId,omitempty"`
}

var pushTitles = map[domain.NotificationType]string{
	domain.NotificationBooking:  "Booking update",
	domain.NotificationRequest:  "Maintenance request",
	domain.NotificationResident: "Resident update",
	domain.NotificationPayment:  "Payment update",
}

func (wp *WorkerPool) deliver(ctx context.Context, job PushJob) {
	subs, err := wp.subs.ListByUser(ctx, job.UserID)
	if err != nil {
		log.Printf("push_error user_id=%s error=%q", job.UserID, err.Error())
		return
	}
	if len(subs) == 0 {
		return
	}

	n := job.Notification
	payload, err := json.Marshal(pushPayload{
		ID:         n.ID,
		Type:       n.Type,
		Title:      pushTitles[n.Type],
		Body:       n.Message,
		ContractID: n.ContractID,
	})
	if err != nil {
		log.Printf("push_error notification_id=%s error=%q", n.ID, err.Error())
		return
	}

	for _, sub := range subs {
		wp.send(ctx, sub, payload)
	}
}

func (wp *WorkerPool) send(ctx context.Context, sub domain.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("push_error endpoint=%s error=%q", sub.Endpoint, err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("push_subscription_expired endpoint=%s", sub.Endpoint)
		if err := wp.subs.Delete(ctx, sub.Endpoint); err != nil {
			log.Printf("push_error endpoint=%s error=%q", sub.Endpoint, err.Error())
		}
	}
}
