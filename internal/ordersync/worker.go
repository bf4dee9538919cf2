package ordersync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pashm-co/storefront-api/pkg/commerce"
	"github.com/pashm-co/storefront-api/pkg/models"
)

// At-least-once replication of verified orders into the Medusa backend.
// Jobs live on a Redis list; failures are retried with backoff and parked on
// a dead-letter list once the attempt budget runs out, never silently
// dropped.

// Job is one order replication attempt, serialized as JSON on the queue.
type Job struct {
	ID       string             `json:"id"`
	OrderID  string             `json:"order_id"`
	UID      string             `json:"uid"`
	Items    []models.OrderItem `json:"items"`
	Total    float64            `json:"total"`
	Address  string             `json:"address"`
	Attempts int                `json:"attempts"`
}

func NewJob(order *models.Order) Job {
	return Job{
		ID:      uuid.NewString(),
		OrderID: order.ID.Hex(),
		UID:     order.User,
		Items:   order.Items,
		Total:   order.Total,
		Address: order.Address,
	}
}

// Queue is the job transport; the Redis list implementation lives in
// pkg/redis.
type Queue interface {
	Enqueue(ctx context.Context, payload []byte) error
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)
	Park(ctx context.Context, payload []byte) error
}

// Backend receives the replicated order.
type Backend interface {
	CreateDraftOrder(ctx context.Context, input commerce.DraftOrderInput) error
}

// UserDirectory resolves the customer email for a job's uid.
type UserDirectory interface {
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// Enqueuer adapts the queue to the checkout service's SyncQueue interface.
type Enqueuer struct {
	Queue Queue
}

func (e Enqueuer) EnqueueOrder(ctx context.Context, order *models.Order) error {
	payload, err := json.Marshal(NewJob(order))
	if err != nil {
		return fmt.Errorf("marshaling sync job: %w", err)
	}
	return e.Queue.Enqueue(ctx, payload)
}

// Worker drains the queue and posts draft orders to the backend.
type Worker struct {
	queue   Queue
	backend Backend
	users   UserDirectory

	MaxAttempts int
	Backoff     time.Duration
	PollTimeout time.Duration
}

func NewWorker(queue Queue, backend Backend, users UserDirectory) *Worker {
	return &Worker{
		queue:       queue,
		backend:     backend,
		users:       users,
		MaxAttempts: 5,
		Backoff:     30 * time.Second,
		PollTimeout: 5 * time.Second,
	}
}

// Run consumes jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		payload, err := w.queue.Dequeue(ctx, w.PollTimeout)
		if err != nil {
			log.Printf("Warning: order sync dequeue failed: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.PollTimeout):
			}
			continue
		}
		if payload == nil {
			continue
		}
		w.Process(ctx, payload)
	}
}

// Process handles one job payload: attempt the replication, requeue with an
// incremented attempt count on failure, park once the budget is exhausted.
func (w *Worker) Process(ctx context.Context, payload []byte) {
	var job Job
	if err := json.Unmarshal(payload, &job); err != nil {
		log.Printf("ERROR: order sync job is not valid JSON, parking it: %v", err)
		if parkErr := w.queue.Park(context.WithoutCancel(ctx), payload); parkErr != nil {
			log.Printf("ERROR: failed to park malformed sync job: %v", parkErr)
		}
		return
	}

	if err := w.backend.CreateDraftOrder(ctx, w.draftInput(ctx, job)); err != nil {
		job.Attempts++
		log.Printf("ERROR: order sync attempt %d/%d failed for order %s: %v", job.Attempts, w.MaxAttempts, job.OrderID, err)

		requeued, marshalErr := json.Marshal(job)
		if marshalErr != nil {
			log.Printf("ERROR: failed to re-marshal sync job for order %s: %v", job.OrderID, marshalErr)
			return
		}
		// The job is already popped off the list, so parking and requeueing
		// must outlive a shutdown or the job is lost.
		keepAlive := context.WithoutCancel(ctx)

		if job.Attempts >= w.MaxAttempts {
			log.Printf("ERROR: giving up on order sync for order %s after %d attempts, parking job %s", job.OrderID, job.Attempts, job.ID)
			if err := w.queue.Park(keepAlive, requeued); err != nil {
				log.Printf("ERROR: failed to park sync job %s: %v", job.ID, err)
			}
			return
		}

		select {
		case <-ctx.Done():
		case <-time.After(w.Backoff * time.Duration(job.Attempts)):
		}
		if err := w.queue.Enqueue(keepAlive, requeued); err != nil {
			log.Printf("ERROR: failed to requeue sync job %s: %v", job.ID, err)
		}
		return
	}

	log.Printf("Order %s replicated to commerce backend (job %s)", job.OrderID, job.ID)
}

func (w *Worker) draftInput(ctx context.Context, job Job) commerce.DraftOrderInput {
	email := ""
	if w.users != nil {
		if user, err := w.users.GetUserByUID(ctx, job.UID); err == nil {
			email = user.Email
		} else {
			log.Printf("Warning: no profile found for uid %s while syncing order %s: %v", job.UID, job.OrderID, err)
		}
	}

	items := make([]commerce.DraftOrderItem, 0, len(job.Items))
	for _, item := range job.Items {
		items = append(items, commerce.DraftOrderItem{
			VariantID: item.ID,
			Title:     item.Title,
			Quantity:  item.Qty,
			UnitPrice: item.Price,
		})
	}

	return commerce.DraftOrderInput{
		Email:   email,
		Items:   items,
		Total:   job.Total,
		Address: job.Address,
	}
}
