package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType identifies an event kind on the bus
type EventType string

const (
	EventTypeLengthChanged     EventType = "length_changed"
	EventTypeChallengeResolved EventType = "challenge_resolved"
	EventTypeQuestCompleted    EventType = "quest_completed"
)

// LengthChangeReason explains why a user's length moved
type LengthChangeReason string

const (
	ReasonGrowth        LengthChangeReason = "growth"
	ReasonChallengeWin  LengthChangeReason = "challenge_win"
	ReasonChallengeLoss LengthChangeReason = "challenge_loss"
	ReasonQuestReward   LengthChangeReason = "quest_reward"
)

// Event is implemented by everything published on the bus
type Event interface {
	Type() EventType
}

// LengthChangedEvent is raised whenever a user's length is written
type LengthChangedEvent struct {
	UserID    int64
	GroupID   int64
	OldLength int64
	NewLength int64
	Reason    LengthChangeReason
}

func (e LengthChangedEvent) Type() EventType {
	return EventTypeLengthChanged
}

// Delta returns the signed change
func (e LengthChangedEvent) Delta() int64 {
	return e.NewLength - e.OldLength
}

// ChallengeResolvedEvent is raised once per accepted and resolved challenge
type ChallengeResolvedEvent struct {
	ChallengeID int64
	GroupID     int64
	WinnerID    int64
	LoserID     int64
	Amount      int64
}

func (e ChallengeResolvedEvent) Type() EventType {
	return EventTypeChallengeResolved
}

// QuestCompletedEvent is raised on a quest's first completion by a user
type QuestCompletedEvent struct {
	UserID  int64
	GroupID int64
	QuestID int64
	Title   string
	Reward  int64
}

func (e QuestCompletedEvent) Type() EventType {
	return EventTypeQuestCompleted
}

// Handler consumes one event
type Handler func(ctx context.Context, event Event)

// Bus fans events out to subscribers
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe registers handler for eventType
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler")
}

// Emit dispatches event to every subscriber. Handlers run on their own
// goroutines and a panicking handler does not affect the others.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event")

	for i, handler := range handlers {
		go func(h Handler, idx int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": idx,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events raised inside a unit of work until the
// transaction outcome is known.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus wraps real. A nil real bus drops flushed events.
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues e until Flush or Discard
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Pending returns the number of queued events
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}

// Flush forwards queued events to the real bus. Call only after commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing transactional bus")

	// handlers outlive the request, so they get a detached context
	eventCtx := context.WithoutCancel(ctx)

	if b.real != nil {
		for _, ev := range b.pending {
			b.real.Emit(eventCtx, ev)
		}
	}
	b.pending = nil
	return nil
}

// Discard drops queued events. Called on rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
