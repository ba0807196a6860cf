package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

type Listener func(State)

// Controller owns the State of one registration form. Listeners are called
// on the goroutine that changed the state.
type Controller struct {
	mu        sync.Mutex
	state     State
	transport Transport
	navigator Navigator

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

func NewController(eventID uint, transport Transport, navigator Navigator) *Controller {
	return &Controller{
		state:     NewState(eventID),
		transport: transport,
		navigator: navigator,
		listeners: make(map[int]Listener),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Subscribe registers l and returns the function removing it.
func (c *Controller) Subscribe(l Listener) func() {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = l

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()

		delete(c.listeners, id)
	}
}

func (c *Controller) Dispatch(action Action) {
	c.mu.Lock()
	c.state = Reduce(c.state, action)
	next := c.state
	c.mu.Unlock()

	c.notify(next)
}

func (c *Controller) notify(s State) {
	c.listenersMu.Lock()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.listenersMu.Unlock()

	for _, l := range listeners {
		l(s)
	}
}

// Refresh reloads participants and sessions. On failure the current state is
// kept as is.
func (c *Controller) Refresh(ctx context.Context) error {
	eventID := c.State().EventID

	var snapshot Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		participants, err := c.transport.Participants(gctx, eventID)
		if err != nil {
			return fmt.Errorf("c.transport.Participants -> %w", err)
		}
		snapshot.Participants = participants
		return nil
	})
	g.Go(func() error {
		occurrences, required, err := c.transport.Occurrences(gctx, eventID)
		if err != nil {
			return fmt.Errorf("c.transport.Occurrences -> %w", err)
		}
		snapshot.Occurrences = occurrences
		snapshot.RequireOccurrenceSelection = required
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.Dispatch(SnapshotLoaded{
		Participants:               snapshot.Participants,
		Occurrences:                snapshot.Occurrences,
		RequireOccurrenceSelection: snapshot.RequireOccurrenceSelection,
	})

	return nil
}

// Submit sends the registration when every guard holds. A blocked submit
// returns a *GuardError and never reaches the transport.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if guardErr := CheckSubmit(c.state); guardErr != nil {
		// A second submit while one is in flight must not clobber it.
		if guardErr.Guard != GuardInFlight {
			c.state = Reduce(c.state, SubmitBlocked{Guard: guardErr.Guard})
		}
		blocked := c.state
		c.mu.Unlock()

		c.notify(blocked)
		return guardErr
	}

	c.state = Reduce(c.state, SubmitStarted{})
	started := c.state
	c.mu.Unlock()
	c.notify(started)

	req := RegisterRequest{
		EventID:       started.EventID,
		ParticipantID: started.SelectedParticipant,
		Note:          started.Note,
		Occurrences:   started.SelectedOccurrences,
		Delivery:      started.Delivery,
	}

	outcome, err := c.transport.Register(ctx, req)
	if err != nil {
		message, code := failureMessage(err)
		c.Dispatch(SubmitFailed{Message: message, Code: code})
		return fmt.Errorf("c.transport.Register -> %w", err)
	}

	c.Dispatch(SubmitSucceeded{
		ParticipantID: req.ParticipantID,
		Status:        outcome.Status,
		Message:       outcome.Message,
		Payment:       outcome.Payment,
	})

	if p := outcome.Payment; p != nil && p.CheckoutURL != "" && p.Delivery == domain.DeliveryImmediate && c.navigator != nil {
		if err := c.navigator.OpenInNewTab(p.CheckoutURL); err != nil {
			// The payment summary stays open with the link.
			zap.L().Debug("failed to open checkout", zap.Error(err))
		}
	}

	c.refreshAfterMutation(ctx)

	return nil
}

// Cancel is independent from Submit and may run while one is in flight.
func (c *Controller) Cancel(ctx context.Context, participantID uint) error {
	eventID := c.State().EventID

	message, err := c.transport.Unregister(ctx, eventID, participantID)
	if err != nil {
		failure, _ := failureMessage(err)
		c.Dispatch(CancelFailed{Message: failure})
		return fmt.Errorf("c.transport.Unregister -> %w", err)
	}

	c.Dispatch(CancelSucceeded{ParticipantID: participantID, Message: message})
	c.refreshAfterMutation(ctx)

	return nil
}

// refreshAfterMutation replaces the optimistic state with the server view.
func (c *Controller) refreshAfterMutation(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		zap.L().Debug("failed to refresh after mutation", zap.Uint("event_id", c.State().EventID), zap.Error(err))
	}
}

// failureMessage keeps the server message verbatim. The reducer falls back
// to a generic message when it is empty.
func failureMessage(err error) (message, code string) {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Message, transportErr.Code
	}

	return "", ""
}
