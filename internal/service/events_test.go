package service

import "testing"

func TestEventBusPublish(t *testing.T) {
	bus := NewEventBus()
	a := make(chan Event, 1)
	b := make(chan Event, 1)
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(Event{Type: EventLayoutSettled})

	for _, ch := range []chan Event{a, b} {
		select {
		case ev := <-ch:
			if ev.Type != EventLayoutSettled {
				t.Errorf("expected %s, got %s", EventLayoutSettled, ev.Type)
			}
		default:
			t.Error("subscriber did not receive event")
		}
	}

	t.Run("slow subscriber is skipped", func(t *testing.T) {
		bus.Publish(Event{Type: EventFrame})
		bus.Publish(Event{Type: EventFrame})
		if len(a) != 1 {
			t.Errorf("expected 1 buffered event, got %d", len(a))
		}
	})

	t.Run("unsubscribe", func(t *testing.T) {
		<-a
		<-b
		bus.Unsubscribe(a)
		bus.Publish(Event{Type: EventFrame})
		if len(a) != 0 {
			t.Error("unsubscribed channel received event")
		}
		if len(b) != 1 {
			t.Error("remaining subscriber missed event")
		}
	})
}
