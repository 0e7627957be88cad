package events

import (
	"encoding/json"
	"testing"
)

func TestHubFanOut(t *testing.T) {
	t.Parallel()

	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	h.Publish(Make(TypeRunStarted, nil))

	for _, ch := range []chan string{a, b} {
		select {
		case msg := <-ch:
			var evt Event
			if err := json.Unmarshal([]byte(msg), &evt); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if evt.Type != TypeRunStarted {
				t.Fatalf("unexpected type: %q", evt.Type)
			}
		default:
			t.Fatalf("subscriber did not receive the event")
		}
	}
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	t.Parallel()

	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// The subscriber buffer is bounded; a publisher never blocks on it.
	for i := 0; i < 100; i++ {
		h.Publish(Make(TypeDatasetReady, map[string]int{"i": i}))
	}

	drained := 0
	for {
		select {
		case <-ch:
			drained++
			continue
		default:
		}
		break
	}
	if drained == 0 || drained >= 100 {
		t.Fatalf("expected a bounded number of buffered events, got %d", drained)
	}
}

func TestMakeCarriesData(t *testing.T) {
	t.Parallel()

	msg := Make(TypeDatasetError, map[string]string{"error": "boom"})

	var evt Event
	if err := json.Unmarshal([]byte(msg), &evt); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if evt.Type != TypeDatasetError || evt.At.IsZero() {
		t.Fatalf("unexpected envelope: %+v", evt)
	}

	var data map[string]string
	if err := json.Unmarshal(evt.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["error"] != "boom" {
		t.Fatalf("unexpected data: %v", data)
	}
}
