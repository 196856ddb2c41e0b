package repository

import (
	"context"

	"github.com/garmentix/marketplace/internal/domain/model"
)

// TrackingRepository describes the append-only tracking timeline. There are
// deliberately no update or delete operations.
type TrackingRepository interface {
	Append(ctx context.Context, event *model.TrackingEvent) (*model.TrackingEvent, error)
	ListByOrder(ctx context.Context, orderID string) ([]model.TrackingEvent, error)
}
