package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionalBus_FlushDelivers(t *testing.T) {
	bus := NewBus()
	tx := NewTransactionalBus(bus)

	received := make(chan LengthChangedEvent, 1)
	bus.Subscribe(EventTypeLengthChanged, func(ctx context.Context, event Event) {
		if e, ok := event.(LengthChangedEvent); ok {
			received <- e
		}
	})

	sent := LengthChangedEvent{UserID: 1, GroupID: 2, OldLength: 10, NewLength: 15, Reason: ReasonGrowth}
	tx.Publish(sent)
	assert.Equal(t, 1, tx.Pending())

	require.NoError(t, tx.Flush(context.Background()))
	assert.Equal(t, 0, tx.Pending())

	select {
	case got := <-received:
		assert.Equal(t, sent, got)
		assert.Equal(t, int64(5), got.Delta())
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestTransactionalBus_DiscardDropsEvents(t *testing.T) {
	bus := NewBus()
	tx := NewTransactionalBus(bus)

	var mu sync.Mutex
	count := 0
	bus.Subscribe(EventTypeChallengeResolved, func(ctx context.Context, event Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	tx.Publish(ChallengeResolvedEvent{ChallengeID: 1, GroupID: 1, WinnerID: 1, LoserID: 2, Amount: 5})
	tx.Discard()
	require.NoError(t, tx.Flush(context.Background()))

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, count)
}

func TestBus_RoutesByType(t *testing.T) {
	bus := NewBus()
	tx := NewTransactionalBus(bus)

	var wg sync.WaitGroup
	wg.Add(3)

	var mu sync.Mutex
	var lengths, quests int
	bus.Subscribe(EventTypeLengthChanged, func(ctx context.Context, event Event) {
		defer wg.Done()
		mu.Lock()
		lengths++
		mu.Unlock()
	})
	bus.Subscribe(EventTypeQuestCompleted, func(ctx context.Context, event Event) {
		defer wg.Done()
		mu.Lock()
		quests++
		mu.Unlock()
	})

	tx.Publish(QuestCompletedEvent{UserID: 1, GroupID: 1, QuestID: 3, Title: "Long Haul", Reward: 50})
	tx.Publish(LengthChangedEvent{UserID: 1, GroupID: 1, OldLength: 100, NewLength: 150, Reason: ReasonQuestReward})
	tx.Publish(LengthChangedEvent{UserID: 2, GroupID: 1, OldLength: 3, NewLength: 0, Reason: ReasonChallengeLoss})
	require.NoError(t, tx.Flush(context.Background()))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers did not run")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, lengths)
	assert.Equal(t, 1, quests)
}

func TestBus_PanickingHandlerIsIsolated(t *testing.T) {
	bus := NewBus()

	delivered := make(chan struct{}, 1)
	bus.Subscribe(EventTypeLengthChanged, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeLengthChanged, func(ctx context.Context, event Event) {
		delivered <- struct{}{}
	})

	bus.Emit(context.Background(), LengthChangedEvent{UserID: 1})

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler did not run")
	}
}

func TestTransactionalBus_FlushDetachesContext(t *testing.T) {
	bus := NewBus()
	tx := NewTransactionalBus(bus)

	errs := make(chan error, 1)
	bus.Subscribe(EventTypeLengthChanged, func(ctx context.Context, event Event) {
		errs <- ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	tx.Publish(LengthChangedEvent{UserID: 1})
	require.NoError(t, tx.Flush(ctx))
	cancel()

	select {
	case err := <-errs:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}
