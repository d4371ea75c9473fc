// internal/transport/hub.go
package transport

import (
	"encoding/json"
	"log"
	"sync"
)

// Envelope is the wire framing for every message in both directions.
// Ack is non-zero only for request/response pairs: a client sets it on a
// request, and the server echoes it on an "ack" envelope addressed to the
// caller, standing in for socket.io callback semantics.
type Envelope struct {
	Event string          `json:"event"`
	Ack   uint64          `json:"ack,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope builds an envelope with the payload marshaled in place.
func NewEnvelope(event string, data any) (Envelope, error) {
	env := Envelope{Event: event}
	if data == nil {
		return env, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return env, err
	}
	env.Data = raw
	return env, nil
}

// Conn is one participant's live connection handle. Out is drained by the
// websocket write pump; tests read it directly.
type Conn struct {
	ID  string
	Out chan Envelope
}

// NewConn allocates a connection handle with a buffered outgoing queue.
func NewConn(id string) *Conn {
	return &Conn{
		ID:  id,
		Out: make(chan Envelope, 32),
	}
}

// Send pushes an envelope onto the outgoing queue without blocking. Delivery
// is fire-and-forget: if the client has stopped draining, the message is
// dropped and logged.
func (c *Conn) Send(env Envelope) {
	select {
	case c.Out <- env:
	default:
		log.Printf("transport: out queue for conn %s full or closed, dropped %q", c.ID, env.Event)
	}
}

// Hub tracks live connections and the named rooms they belong to. One room
// corresponds to one lobby id. All emit operations are fire-and-forget.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Conn
	rooms map[string]map[string]*Conn
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*Conn),
		rooms: make(map[string]map[string]*Conn),
	}
}

// Register makes a connection addressable by EmitTo.
func (h *Hub) Register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.ID] = c
}

// Unregister removes a connection and drops it from every room.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
	for room, members := range h.rooms {
		delete(members, id)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Join adds a connection to a room, creating the room on first use.
func (h *Hub) Join(room string, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*Conn)
		h.rooms[room] = members
	}
	members[c.ID] = c
}

// Leave removes one connection from a room.
func (h *Hub) Leave(room, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[room]; ok {
		delete(members, id)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// EvictRoom removes every member and deletes the room. Used when a host
// departs and the lobby is torn down.
func (h *Hub) EvictRoom(room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, room)
}

// EmitToRoom delivers an event to every current room member.
func (h *Hub) EmitToRoom(room, event string, data any) {
	env, err := NewEnvelope(event, data)
	if err != nil {
		log.Printf("transport: marshal %q for room %s: %v", event, room, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.rooms[room] {
		c.Send(env)
	}
}

// EmitToRoomExcept delivers an event to every room member except one,
// typically the originating sender.
func (h *Hub) EmitToRoomExcept(room, exceptID, event string, data any) {
	env, err := NewEnvelope(event, data)
	if err != nil {
		log.Printf("transport: marshal %q for room %s: %v", event, room, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.rooms[room] {
		if id == exceptID {
			continue
		}
		c.Send(env)
	}
}

// EmitTo delivers an event to a single connection. Returns false if the id is
// not registered (bot ids, stale ids): the message is silently dropped, which
// matches the protocol's fire-and-forget delivery.
func (h *Hub) EmitTo(id, event string, data any) bool {
	env, err := NewEnvelope(event, data)
	if err != nil {
		log.Printf("transport: marshal %q for conn %s: %v", event, id, err)
		return false
	}
	h.mu.RLock()
	c, ok := h.conns[id]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	c.Send(env)
	return true
}
