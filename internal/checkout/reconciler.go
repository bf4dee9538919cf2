package checkout

import (
	"context"
	"log"
	"time"

	"github.com/pashm-co/storefront-api/pkg/models"
)

// ReconcilerStore is the order access the reconciler needs.
type ReconcilerStore interface {
	FindStalePendingOrders(ctx context.Context, olderThan time.Time) ([]models.Order, error)
	MarkOrderPaid(ctx context.Context, gatewayOrderID, paymentID string) (*models.Order, error)
	MarkOrderAbandoned(ctx context.Context, gatewayOrderID string) error
}

// Reconciler closes the two gaps the verify callback leaves open: payments
// that were collected but whose verify call never arrived, and order records
// whose payment was abandoned. It periodically scans stale pending orders
// and asks the gateway what actually happened.
type Reconciler struct {
	gateway Gateway
	orders  ReconcilerStore
	sync    SyncQueue

	// Interval between scans, minimum age before a pending order is
	// inspected, and age after which an unpaid order is marked abandoned.
	Interval     time.Duration
	PendingAge   time.Duration
	AbandonAfter time.Duration
}

func NewReconciler(gateway Gateway, orders ReconcilerStore, sync SyncQueue) *Reconciler {
	return &Reconciler{
		gateway:      gateway,
		orders:       orders,
		sync:         sync,
		Interval:     15 * time.Minute,
		PendingAge:   10 * time.Minute,
		AbandonAfter: 24 * time.Hour,
	}
}

// Run scans on a ticker until the context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Reconcile(ctx); err != nil {
				log.Printf("ERROR: payment reconciliation pass failed: %v", err)
			}
		}
	}
}

// Reconcile runs a single pass. Per-order failures are logged and left for
// the next pass; only the stale-order scan itself returns an error.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	stale, err := r.orders.FindStalePendingOrders(ctx, time.Now().Add(-r.PendingAge))
	if err != nil {
		return err
	}

	for _, order := range stale {
		payments, err := r.gateway.OrderPayments(ctx, order.RazorpayOrderID)
		if err != nil {
			log.Printf("Warning: reconciler could not fetch payments for gateway order %s: %v", order.RazorpayOrderID, err)
			continue
		}

		captured := ""
		for _, p := range payments {
			if p.Status == "captured" {
				captured = p.ID
				break
			}
		}

		switch {
		case captured != "":
			// Payment went through but verify never reached us.
			paid, err := r.orders.MarkOrderPaid(ctx, order.RazorpayOrderID, captured)
			if err != nil {
				log.Printf("Warning: reconciler failed to mark order %s paid: %v", order.RazorpayOrderID, err)
				continue
			}
			if err := r.sync.EnqueueOrder(ctx, paid); err != nil {
				log.Printf("ERROR: reconciler failed to enqueue order %s for backend sync: %v", paid.ID.Hex(), err)
			}
			log.Printf("Reconciled gateway order %s: payment %s captured, order marked paid", order.RazorpayOrderID, captured)

		case time.Since(order.CreatedAt) > r.AbandonAfter:
			if err := r.orders.MarkOrderAbandoned(ctx, order.RazorpayOrderID); err != nil {
				log.Printf("Warning: reconciler failed to abandon order %s: %v", order.RazorpayOrderID, err)
				continue
			}
			log.Printf("Reconciled gateway order %s: no captured payment after %s, marked abandoned", order.RazorpayOrderID, r.AbandonAfter)
		}
	}

	return nil
}
