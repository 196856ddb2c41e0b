package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/garmentix/marketplace/internal/adapter/checkout"
	"github.com/garmentix/marketplace/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by
// the reconciler.
type PaymentFacade interface {
	OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error)
	ReconcileSession(ctx context.Context, sessionID string) error
}

// Reconciler periodically sweeps orders whose checkout session was initiated
// but never confirmed (the buyer closed the tab before returning to the
// success callback) and settles them against the provider concurrently.
type Reconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade PaymentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.OrdersForReconciliation(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch orders for reconciliation failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleOrder(ctx, order)
		}
	}
}

func (r *Reconciler) handleOrder(ctx context.Context, order model.Order) {
	err := r.facade.ReconcileSession(ctx, order.CheckoutSessionID)
	if err == nil {
		r.logger.Info("checkout session reconciled",
			slog.String("order_id", order.ID), slog.String("session_id", order.CheckoutSessionID))
		return
	}

	switch e := err.(type) {
	case checkout.TooManyRequestsError:
		r.logger.Warn("checkout provider rate limited", slog.Duration("retry_after", e.RetryAfter))
		time.Sleep(e.RetryAfter)
	default:
		if errors.Is(err, checkout.ErrSessionNotSettled) {
			// Still pending at the provider; picked up again next poll.
			return
		}
		r.logger.Error("checkout reconciliation failed",
			slog.String("order_id", order.ID), slog.String("error", err.Error()))
	}
}
