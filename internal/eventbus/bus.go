// Package eventbus delivers registration domain events to in-process
// listeners after the registration transaction has committed.
package eventbus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

// Listener reacts to one delivered event. Its error is logged, never
// propagated to the publisher.
type Listener func(ctx context.Context, env domain.Envelope) error

type Bus struct {
	mu        sync.RWMutex
	listeners map[domain.EventKind][]Listener
	catchAll  []Listener
	now       func() time.Time
}

func New() *Bus {
	return &Bus{
		listeners: make(map[domain.EventKind][]Listener),
		now:       time.Now,
	}
}

// Subscribe registers l for the given kinds, or for every kind when none is
// given.
func (b *Bus) Subscribe(l Listener, kinds ...domain.EventKind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(kinds) == 0 {
		b.catchAll = append(b.catchAll, l)
		return
	}
	for _, kind := range kinds {
		b.listeners[kind] = append(b.listeners[kind], l)
	}
}

// Publish delivers evt synchronously, in subscription order. A failing or
// panicking listener does not stop the others.
func (b *Bus) Publish(ctx context.Context, evt domain.DomainEvent) {
	env := domain.Envelope{
		ID:         uuid.NewString(),
		Kind:       evt.Kind(),
		OccurredAt: b.now(),
		Payload:    evt,
	}

	b.mu.RLock()
	listeners := make([]Listener, 0, len(b.listeners[env.Kind])+len(b.catchAll))
	listeners = append(listeners, b.listeners[env.Kind]...)
	listeners = append(listeners, b.catchAll...)
	b.mu.RUnlock()

	for _, l := range listeners {
		if err := deliver(ctx, l, env); err != nil {
			zap.L().Warn("domain event listener failed",
				zap.String("event_id", env.ID),
				zap.String("kind", string(env.Kind)),
				zap.Error(err),
			)
		}
	}
}

func deliver(ctx context.Context, l Listener, env domain.Envelope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panic: %v", r)
		}
	}()

	return l(ctx, env)
}

// AuditListener writes every event to the global logger.
func AuditListener(_ context.Context, env domain.Envelope) error {
	zap.L().Info("registration event",
		zap.String("event_id", env.ID),
		zap.String("kind", string(env.Kind)),
		zap.Uint("aggregate_id", env.Payload.AggregateID()),
		zap.Any("payload", env.Payload),
	)

	return nil
}
