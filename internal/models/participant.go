// internal/models/participant.go
package models

// Participant is a single player slot in a lobby. For humans the ID is the
// websocket connection id; for bots it is a generated identifier with no live
// connection behind it. A Participant is immutable once created.
type Participant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IsBot bool   `json:"isBot"`
}

// RosterEntry annotates a Participant with its seat index in the shuffled
// turn order. Only produced at game start.
type RosterEntry struct {
	Participant
	Idx int `json:"idx"`
}
