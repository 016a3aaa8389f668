package event_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/vastra/pkg/event"
)

func TestFireReachesAllListeners(t *testing.T) {
	defer event.Flush()

	var calls atomic.Int32
	event.Listen("order.placed", func(payload interface{}) { calls.Add(1) })
	event.Listen("order.placed", func(payload interface{}) { calls.Add(1) })

	event.Fire("order.placed", map[string]uint{"order_id": 7})

	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 listener calls, got %d", got)
	}
}

func TestFirePassesPayload(t *testing.T) {
	defer event.Flush()

	var got interface{}
	event.Listen("order.status_updated", func(payload interface{}) { got = payload })

	event.Fire("order.status_updated", "Shipped")

	if got != "Shipped" {
		t.Errorf("expected payload Shipped, got %v", got)
	}
}

func TestFireAsyncDoesNotBlock(t *testing.T) {
	defer event.Flush()

	done := make(chan struct{})
	event.Listen("order.placed", func(payload interface{}) {
		time.Sleep(50 * time.Millisecond)
		close(done)
	})

	start := time.Now()
	event.FireAsync("order.placed", nil)
	if time.Since(start) > 25*time.Millisecond {
		t.Error("FireAsync should return immediately")
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("listener never ran")
	}
}

func TestForget(t *testing.T) {
	defer event.Flush()

	var calls atomic.Int32
	event.Listen("order.placed", func(payload interface{}) { calls.Add(1) })
	event.Forget("order.placed")

	event.Fire("order.placed", nil)

	if calls.Load() != 0 {
		t.Error("forgotten listener should not run")
	}
}
