// internal/lobby/lobby.go
package lobby

import (
	"errors"
	"slices"
	"sync"

	"github.com/szt2bukarm/uno-server/internal/game"
	"github.com/szt2bukarm/uno-server/internal/models"
)

// MaxPlayers caps the roster; bots and humans count against the same limit.
const MaxPlayers = 8

var (
	// ErrNotFound means the lobby id resolves to no live lobby.
	ErrNotFound = errors.New("lobby does not exist")
	// ErrGameStarted means the lobby no longer accepts joins.
	ErrGameStarted = errors.New("game has already started")
	// ErrLobbyFull means the roster is at MaxPlayers.
	ErrLobbyFull = errors.New("lobby is full")
)

// Lobby is an ephemeral group of participants preparing for or playing one
// game. The mutex is held across every check-and-mutate, so admission cannot
// race past the roster cap or into a started game. There is no host
// migration: the lobby dies with its host.
type Lobby struct {
	ID   string
	Host string

	mu      sync.Mutex
	players []models.Participant
	started bool
}

// New creates a lobby whose sole participant is its host.
func New(id, hostID, hostName string) *Lobby {
	return &Lobby{
		ID:   id,
		Host: hostID,
		players: []models.Participant{
			{ID: hostID, Name: hostName},
		},
	}
}

// Join appends a participant and returns the resulting roster. The joinable
// conditions are re-checked under the lock, so a stale CheckJoinable cannot
// admit a ninth player or a join into a running game.
func (l *Lobby) Join(p models.Participant) ([]models.Participant, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return nil, ErrGameStarted
	}
	if len(l.players) >= MaxPlayers {
		return nil, ErrLobbyFull
	}
	l.players = append(l.players, p)
	return slices.Clone(l.players), nil
}

// CheckJoinable reports whether a join would currently succeed. Advisory: the
// answer can go stale before a subsequent Join, which re-checks on its own.
func (l *Lobby) CheckJoinable() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return ErrGameStarted
	}
	if len(l.players) >= MaxPlayers {
		return ErrLobbyFull
	}
	return nil
}

// Remove deletes the participant with the given id and returns the resulting
// roster. The second return is false if no such participant existed.
func (l *Lobby) Remove(id string) ([]models.Participant, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	before := len(l.players)
	l.players = slices.DeleteFunc(l.players, func(p models.Participant) bool {
		return p.ID == id
	})
	return slices.Clone(l.players), len(l.players) != before
}

// Roster returns a copy of the current participant sequence.
func (l *Lobby) Roster() []models.Participant {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.players)
}

// HasParticipant reports whether id belongs to the roster.
func (l *Lobby) HasParticipant(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// IsHost reports whether id is the lobby creator.
func (l *Lobby) IsHost(id string) bool {
	return l.Host == id
}

// Started reports whether the game has begun.
func (l *Lobby) Started() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started
}

// Start marks the game as started, shuffles the roster into a uniform random
// turn order and returns the order with seat indices attached. Callers gate
// this on IsHost.
func (l *Lobby) Start() []models.RosterEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started = true
	l.players = game.TurnOrder(l.players)
	order := make([]models.RosterEntry, len(l.players))
	for i, p := range l.players {
		order[i] = models.RosterEntry{Participant: p, Idx: i}
	}
	return order
}
