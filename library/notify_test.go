package library

import (
	"testing"

	"github.com/rs/zerolog"
)

// captureSink records broadcast messages for assertions. Shared by the
// lending and reservation tests.
type captureSink struct {
	msgs []string
}

func (c *captureSink) Render(message string) {
	c.msgs = append(c.msgs, message)
}

type panicSink struct{}

func (panicSink) Render(string) { panic("sink down") }

func TestBroadcastDeliversInAttachmentOrder(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	first := &captureSink{}
	second := &captureSink{}
	n.Attach(first)
	n.Attach(second)

	n.Broadcast("hello")

	if len(first.msgs) != 1 || len(second.msgs) != 1 {
		t.Fatalf("want 1 message each, got %d and %d", len(first.msgs), len(second.msgs))
	}
	if first.msgs[0] != "hello" {
		t.Fatalf("unexpected message: %q", first.msgs[0])
	}
}

func TestBroadcastAllowsDuplicateSinks(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	sink := &captureSink{}
	n.Attach(sink)
	n.Attach(sink)

	n.Broadcast("twice")

	if len(sink.msgs) != 2 {
		t.Fatalf("want duplicate delivery, got %d messages", len(sink.msgs))
	}
}

func TestDetachRemovesFirstMatch(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	sink := &captureSink{}
	n.Attach(sink)
	n.Attach(sink)
	n.Detach(sink)

	n.Broadcast("once")

	if len(sink.msgs) != 1 {
		t.Fatalf("want single delivery after detach, got %d", len(sink.msgs))
	}

	// Detaching a sink that was never attached is a no-op.
	n.Detach(&captureSink{})
}

func TestPanickingSinkDoesNotBlockDelivery(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	after := &captureSink{}
	n.Attach(panicSink{})
	n.Attach(after)

	n.Broadcast("still delivered")

	if len(after.msgs) != 1 {
		t.Fatalf("sink after the failing one did not receive the message")
	}
}
