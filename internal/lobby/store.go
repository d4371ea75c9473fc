// internal/lobby/store.go
package lobby

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// codeLen is the length of the human-shareable lobby code.
const codeLen = 5

// Store is the process-wide registry of live lobbies. Code generation and
// insertion happen under one lock, so no two live lobbies ever share an id.
type Store struct {
	logger *logrus.Logger

	mu      sync.Mutex
	lobbies map[string]*Lobby
}

// NewStore initializes an empty registry.
func NewStore(logger *logrus.Logger) *Store {
	return &Store{
		logger:  logger,
		lobbies: make(map[string]*Lobby),
	}
}

// Create allocates a fresh collision-free lobby code, registers a lobby with
// the caller as host and returns it.
func (s *Store) Create(hostID, hostName string) *Lobby {
	s.mu.Lock()
	defer s.mu.Unlock()

	var code string
	for {
		code = newCode()
		if _, taken := s.lobbies[code]; !taken {
			break
		}
	}

	l := New(code, hostID, hostName)
	s.lobbies[code] = l
	s.logger.Infof("Lobby %s created by %s", code, hostID)
	return l
}

// Get retrieves a lobby by id.
func (s *Store) Get(id string) (*Lobby, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lobbies[id]
	return l, ok
}

// Delete removes a lobby from the registry. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lobbies[id]; ok {
		delete(s.lobbies, id)
		s.logger.Infof("Lobby %s deleted", id)
	}
}

// Len reports the number of live lobbies.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lobbies)
}

// newCode derives a 5-character uppercase code from three crypto-random
// bytes. The caller collision-checks against the registry; at expected table
// sizes the retry loop terminates on the first attempt.
func newCode() string {
	buf := make([]byte, 3)
	rand.Read(buf)
	return strings.ToUpper(hex.EncodeToString(buf)[:codeLen])
}
