// internal/models/events.go
package models

import "encoding/json"

// Inbound payloads, one closed struct per wire event. Fields the server never
// interprets (decks, hands, player descriptors) stay as json.RawMessage and
// are relayed byte-for-byte.

// CreateLobbyRequest is the payload for "createlobby".
type CreateLobbyRequest struct {
	PlayerName string `json:"playername"`
}

// LobbyRequest covers events that carry only a lobby id:
// "leavelobby", "checklobby", "addbot" and "playerdisconnected".
type LobbyRequest struct {
	LobbyID string `json:"lobbyId"`
}

// JoinLobbyRequest is the payload for "joinlobby".
type JoinLobbyRequest struct {
	LobbyID    string `json:"lobbyId"`
	PlayerName string `json:"playername"`
}

// DeleteBotRequest is the payload for "deletebot".
type DeleteBotRequest struct {
	LobbyID string `json:"lobbyId"`
	BotID   string `json:"botId"`
}

// CheckCardsBotRequest is the payload for "checkcardsbot". Cards and LastCard
// are interpreted (the one place the server looks inside card data); PlayerNo
// is echoed back untouched.
type CheckCardsBotRequest struct {
	LobbyID  string          `json:"lobbyId"`
	Cards    []CardRef       `json:"cards"`
	LastCard CardRef         `json:"lastCard"`
	PlayerNo json.RawMessage `json:"playerNo"`
}

// ReverseRequest is the payload for "reverse".
type ReverseRequest struct {
	LobbyID  string `json:"lobbyId"`
	Reversed bool   `json:"reversed"`
}

// StartGameRequest is the payload for "startgamehost". Deck and PlayersCards
// are authored entirely by the host client and relayed as-is.
type StartGameRequest struct {
	LobbyID      string          `json:"lobbyId"`
	Deck         json.RawMessage `json:"deck"`
	PlayersCards json.RawMessage `json:"playersCards"`
	InitialType  string          `json:"initialType"`
	InitialCard  any             `json:"initialCard"`
}

// DeckChangedRequest is the payload for "deckchanged".
type DeckChangedRequest struct {
	LobbyID string          `json:"lobbyId"`
	Deck    json.RawMessage `json:"deck"`
}

// CardPlayedRequest is the payload for "cardplayed".
type CardPlayedRequest struct {
	LobbyID      string          `json:"lobbyId"`
	PlayedType   string          `json:"playedType"`
	PlayedCard   json.RawMessage `json:"playedCard"`
	CardIndex    json.RawMessage `json:"cardIndex"`
	PlayersCards json.RawMessage `json:"playersCards"`
	Player       json.RawMessage `json:"player"`
}

// ChangePlayerRequest is the payload for "changeplayer".
type ChangePlayerRequest struct {
	LobbyID string          `json:"lobbyId"`
	Player  json.RawMessage `json:"player"`
}

// CardPulledRequest is the payload for "cardpulled" and "attackpulled".
type CardPulledRequest struct {
	LobbyID  string          `json:"lobbyId"`
	NewCards json.RawMessage `json:"newCards"`
	Player   json.RawMessage `json:"player"`
}

// AttackRequest is the payload for "attack".
type AttackRequest struct {
	LobbyID  string          `json:"lobbyId"`
	NewCards json.RawMessage `json:"newCards"`
	Player   json.RawMessage `json:"player"`
	Amount   json.RawMessage `json:"amount"`
}

// BlockRequest is the payload for "block".
type BlockRequest struct {
	LobbyID string          `json:"lobbyId"`
	Player  json.RawMessage `json:"player"`
}

// LastCardRequest is the payload for "lastcard".
type LastCardRequest struct {
	LobbyID string          `json:"lobbyId"`
	Name    json.RawMessage `json:"name"`
	Player  json.RawMessage `json:"player"`
}

// LastCardAttackRequest is the payload for "lastcardattack". The two player
// descriptors are compared for identity; everything else about them is opaque.
type LastCardAttackRequest struct {
	LobbyID        string `json:"lobbyId"`
	AttackedPlayer any    `json:"attackedPlayer"`
	Attacker       any    `json:"attacker"`
}

// Ack responses.

// StatusResponse is the ack shape for "checklobby" and error acks elsewhere.
// Status is "success" or "error"; Message is human-readable on error.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CreateLobbyResponse is the ack for "createlobby".
type CreateLobbyResponse struct {
	LobbyID string        `json:"lobbyId"`
	Host    string        `json:"host"`
	Player  Participant   `json:"player"`
	Players []Participant `json:"players"`
}

// JoinLobbyResponse is the success ack for "joinlobby".
type JoinLobbyResponse struct {
	Status  string        `json:"status"`
	LobbyID string        `json:"lobbyId"`
	Host    string        `json:"host"`
	Player  Participant   `json:"player"`
	Players []Participant `json:"players"`
}

// Outbound notifications.

// RosterNotification carries the full current roster. Used by "playerjoined",
// "playerleft", "botadded" and "botdeleted".
type RosterNotification struct {
	Players []Participant `json:"players"`
}

// StartGamePayload is unicast once to each connected participant on game start.
type StartGamePayload struct {
	Player       Participant     `json:"player"`
	Index        int             `json:"index"`
	Players      []RosterEntry   `json:"players"`
	FirstCard    CardRef         `json:"firstCard"`
	Deck         json.RawMessage `json:"deck"`
	PlayersCards json.RawMessage `json:"playersCards"`
}

// CardPlayedNotification mirrors CardPlayedRequest without the lobby id.
type CardPlayedNotification struct {
	PlayedType   string          `json:"playedType"`
	PlayedCard   json.RawMessage `json:"playedCard"`
	CardIndex    json.RawMessage `json:"cardIndex"`
	PlayersCards json.RawMessage `json:"playersCards"`
	Player       json.RawMessage `json:"player"`
}

// ChangePlayerNotification mirrors ChangePlayerRequest.
type ChangePlayerNotification struct {
	Player json.RawMessage `json:"player"`
}

// CardPulledNotification mirrors CardPulledRequest. Also used for
// "attackpullednotification".
type CardPulledNotification struct {
	NewCards json.RawMessage `json:"newCards"`
	Player   json.RawMessage `json:"player"`
}

// AttackNotification mirrors AttackRequest.
type AttackNotification struct {
	NewCards json.RawMessage `json:"newCards"`
	Player   json.RawMessage `json:"player"`
	Amount   json.RawMessage `json:"amount"`
}

// BlockNotification mirrors BlockRequest.
type BlockNotification struct {
	Player json.RawMessage `json:"player"`
}

// LastCardNotification mirrors LastCardRequest.
type LastCardNotification struct {
	Name   json.RawMessage `json:"name"`
	Player json.RawMessage `json:"player"`
}

// LastCardAttackNotification carries the server-computed penalty flag:
// Attack is false for a self-declaration, true otherwise.
type LastCardAttackNotification struct {
	Attack         bool `json:"attack"`
	AttackedPlayer any  `json:"attackedPlayer"`
	Attacker       any  `json:"attacker"`
}

// ReverseNotification carries the negated direction flag.
type ReverseNotification struct {
	Reversed bool `json:"reversed"`
}

// DeckChangedNotification mirrors DeckChangedRequest.
type DeckChangedNotification struct {
	Deck json.RawMessage `json:"deck"`
}

// CheckCardsBotNotification carries the index chosen for a bot (-1 when the
// bot must draw) alongside the untouched playerNo descriptor.
type CheckCardsBotNotification struct {
	CardIndex int             `json:"cardIndex"`
	PlayerNo  json.RawMessage `json:"playerNo"`
}

// ErrorNotification is sent to a single caller when a request is malformed or
// unauthorized.
type ErrorNotification struct {
	Message string `json:"message"`
}
