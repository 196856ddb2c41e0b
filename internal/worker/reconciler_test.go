package worker

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/garmentix/marketplace/internal/adapter/checkout"
	"github.com/garmentix/marketplace/internal/domain/model"
	testhelpers "github.com/garmentix/marketplace/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}

func TestReconcilerProcessesBatch(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Order{{
			{ID: "order-1", CheckoutSessionID: "sess-1"},
			{ID: "order-2", CheckoutSessionID: "sess-2"},
		}},
	}

	r := NewReconciler(facade, 10*time.Millisecond, 8, 2, discardLogger())
	r.Start(context.Background())
	defer r.Stop()

	waitFor(t, time.Second, func() bool {
		return len(facade.Reconciled) >= 2
	})

	seen := map[string]bool{}
	for _, id := range facade.Reconciled {
		seen[id] = true
	}
	if !seen["sess-1"] || !seen["sess-2"] {
		t.Fatalf("expected both sessions reconciled, got %v", facade.Reconciled)
	}
}

func TestReconcilerSkipsUnsettledSessions(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	facade := &testhelpers.WorkerFacadeStub{
		OrdersFn: func(ctx context.Context, limit int) ([]model.Order, error) {
			return []model.Order{{ID: "order-1", CheckoutSessionID: "sess-1"}}, nil
		},
		ReconcileFn: func(ctx context.Context, sessionID string) error {
			mu.Lock()
			attempts++
			mu.Unlock()
			return checkout.ErrSessionNotSettled
		},
	}

	r := NewReconciler(facade, 10*time.Millisecond, 4, 1, discardLogger())
	r.Start(context.Background())
	defer r.Stop()

	// Unsettled sessions are retried on later polls rather than dropped.
	waitFor(t, time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return attempts >= 2
	})
}

func TestReconcilerStop(t *testing.T) {
	facade := &testhelpers.WorkerFacadeStub{}
	r := NewReconciler(facade, 10*time.Millisecond, 4, 2, discardLogger())
	r.Start(context.Background())

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Stop did not return")
	}

	// Stop twice must be safe.
	r.Stop()
}

func TestReconcilerDefaults(t *testing.T) {
	r := NewReconciler(&testhelpers.WorkerFacadeStub{}, time.Second, 0, 0, discardLogger())
	if r.workers != 1 || r.batchSize != 1 {
		t.Fatalf("expected sane defaults, got workers=%d batch=%d", r.workers, r.batchSize)
	}
}
