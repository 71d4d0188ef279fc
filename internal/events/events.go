// Package events publishes marketplace domain events after a write has been committed.
package events

import (
	"context"       // Context for publish deadlines
	"encoding/json" // JSON encoding
	"time"          // Timestamps and timeouts

	"github.com/pkg/errors"        // Error wrapping
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Event types
const (
	SellerRegistered = "seller_registered"
	PenAdded         = "pen_added"
	PenUpdated       = "pen_updated"
	PenDeleted       = "pen_deleted"
	CartItemAdded    = "cart_item_added"
	CartItemRemoved  = "cart_item_removed"
	PenPurchased     = "pen_purchased"
)

// publishTimeout bounds a single publish so a slow broker never stalls a request
const publishTimeout = 2 * time.Second

// Event is a single domain change
type Event struct {
	Type       string    `json:"type"`                   // Event type
	SellerID   uint      `json:"seller_id,omitempty"`    // Seller involved
	BuyerID    uint      `json:"buyer_id,omitempty"`     // Buyer involved
	PenID      uint      `json:"pen_id,omitempty"`       // Pen involved
	CartItemID uint      `json:"cart_item_id,omitempty"` // Cart row involved
	PurchaseID uint      `json:"purchase_id,omitempty"`  // Purchase involved
	At         time.Time `json:"at"`                     // Time of the change
}

// Publisher delivers events to a transport
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event
type Nop struct{}

// Publish implements Publisher
func (Nop) Publish(context.Context, Event) error { return nil }

// RedisPublisher appends events to a Redis stream
type RedisPublisher struct {
	rdb    *redis.Client // Redis client
	stream string        // Stream key
}

// NewRedisPublisher returns a publisher writing to stream
func NewRedisPublisher(rdb *redis.Client, stream string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, stream: stream}
}

// Publish appends e to the stream as {type, payload}
func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	b, err := json.Marshal(e) // Marshal event to JSON
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	err = p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,                                     // Target stream
		Values: map[string]any{"type": e.Type, "payload": b}, // Stream entry fields
	}).Err()
	if err != nil {
		return errors.Wrapf(err, "xadd %s", p.stream)
	}
	return nil
}

// Emit stamps and publishes e, logging failures instead of returning them
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, e); err != nil {
		logrus.WithFields(logrus.Fields{
			"type":  e.Type,      // Event type
			"error": err.Error(), // Error message
		}).Warn("Event publish failed")
	}
}
