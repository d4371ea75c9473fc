// internal/transport/hub_test.go
package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, c *Conn) Envelope {
	t.Helper()
	select {
	case env := <-c.Out:
		return env
	case <-time.After(time.Second):
		t.Fatalf("conn %s: timed out waiting for a message", c.ID)
		return Envelope{}
	}
}

func requireSilent(t *testing.T, c *Conn) {
	t.Helper()
	select {
	case env := <-c.Out:
		t.Fatalf("conn %s: unexpected message %q", c.ID, env.Event)
	default:
	}
}

func TestEmitToRoomScopes(t *testing.T) {
	h := NewHub()
	a, b, c := NewConn("a"), NewConn("b"), NewConn("c")
	for _, conn := range []*Conn{a, b, c} {
		h.Register(conn)
	}
	h.Join("ROOM1", a)
	h.Join("ROOM1", b)

	h.EmitToRoom("ROOM1", "ping", map[string]int{"n": 1})
	require.Equal(t, "ping", recv(t, a).Event)
	require.Equal(t, "ping", recv(t, b).Event)
	requireSilent(t, c)

	h.EmitToRoomExcept("ROOM1", "a", "pong", nil)
	require.Equal(t, "pong", recv(t, b).Event)
	requireSilent(t, a)
}

func TestEmitToSingleConn(t *testing.T) {
	h := NewHub()
	a := NewConn("a")
	h.Register(a)

	require.True(t, h.EmitTo("a", "hello", nil))
	assert.Equal(t, "hello", recv(t, a).Event)

	// Unknown ids (e.g. bots) are dropped without an observable failure.
	assert.False(t, h.EmitTo("bot-1", "hello", nil))
}

func TestLeaveAndEvict(t *testing.T) {
	h := NewHub()
	a, b := NewConn("a"), NewConn("b")
	h.Register(a)
	h.Register(b)
	h.Join("ROOM1", a)
	h.Join("ROOM1", b)

	h.Leave("ROOM1", "a")
	h.EmitToRoom("ROOM1", "ping", nil)
	requireSilent(t, a)
	require.Equal(t, "ping", recv(t, b).Event)

	h.EvictRoom("ROOM1")
	h.EmitToRoom("ROOM1", "ping", nil)
	requireSilent(t, b)
}

func TestUnregisterDropsRoomMembership(t *testing.T) {
	h := NewHub()
	a := NewConn("a")
	h.Register(a)
	h.Join("ROOM1", a)

	h.Unregister("a")
	require.False(t, h.EmitTo("a", "ping", nil))
	h.EmitToRoom("ROOM1", "ping", nil)
	requireSilent(t, a)
}

func TestSendDoesNotBlockWhenQueueIsFull(t *testing.T) {
	c := NewConn("a")
	for i := 0; i < cap(c.Out)+10; i++ {
		c.Send(Envelope{Event: "spam"})
	}
	assert.Len(t, c.Out, cap(c.Out), "overflow messages are dropped, not queued")
}
