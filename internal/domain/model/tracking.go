package model

import "time"

// TrackingEvent is one entry in an order's append-only tracking timeline.
// Events carry free-text production-stage labels ("Cutting Completed",
// "Shipped") and are never edited or removed once appended. The timeline is
// a descriptive channel fully decoupled from Order.Status.
type TrackingEvent struct {
	OrderID   string
	Seq       int
	Status    string
	Location  string
	Note      string
	Timestamp time.Time
	UpdatedBy string
}
