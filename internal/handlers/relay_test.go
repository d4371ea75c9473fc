// internal/handlers/relay_test.go
package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/szt2bukarm/uno-server/internal/models"
)

// relayRoom builds a three-member lobby with drained queues.
func relayRoom(t *testing.T) (*testEnv, string, *session, *session, *session) {
	t.Helper()
	e := newTestEnv()
	host := e.newSession("host")
	id := createLobby(t, host, "Host")
	g1 := e.newSession("g1")
	g2 := e.newSession("g2")
	joinLobby(t, g1, id, "Alice")
	joinLobby(t, g2, id, "Bob")
	for _, s := range []*session{host, g1, g2} {
		drain(s)
	}
	return e, id, host, g1, g2
}

func TestCardPlayedExcludesSender(t *testing.T) {
	_, id, host, g1, g2 := relayRoom(t)

	player := json.RawMessage(`{"idx":1}`)
	hands := json.RawMessage(`{"1":["red-7"]}`)
	send(t, g1, "cardplayed", 0, models.CardPlayedRequest{
		LobbyID:      id,
		PlayedType:   "red",
		PlayedCard:   json.RawMessage(`7`),
		CardIndex:    json.RawMessage(`0`),
		PlayersCards: hands,
		Player:       player,
	})

	for _, s := range []*session{host, g2} {
		note := recvAs[models.CardPlayedNotification](t, s, "cardplayednotification")
		assert.Equal(t, "red", note.PlayedType)
		assert.Equal(t, json.RawMessage(`7`), note.PlayedCard)
		assert.Equal(t, hands, note.PlayersCards)
		assert.Equal(t, player, note.Player)
	}
	requireSilent(t, g1)
}

func TestCardPulledExcludesSender(t *testing.T) {
	_, id, host, g1, g2 := relayRoom(t)

	send(t, g2, "cardpulled", 0, models.CardPulledRequest{
		LobbyID:  id,
		NewCards: json.RawMessage(`["blue-3"]`),
		Player:   json.RawMessage(`2`),
	})

	for _, s := range []*session{host, g1} {
		note := recvAs[models.CardPulledNotification](t, s, "cardpullednotification")
		assert.Equal(t, json.RawMessage(`["blue-3"]`), note.NewCards)
	}
	requireSilent(t, g2)
}

func TestDeckChangedExcludesSender(t *testing.T) {
	_, id, host, g1, g2 := relayRoom(t)

	deck := json.RawMessage(`[{"type":"green","card":2}]`)
	send(t, host, "deckchanged", 0, models.DeckChangedRequest{LobbyID: id, Deck: deck})

	for _, s := range []*session{g1, g2} {
		note := recvAs[models.DeckChangedNotification](t, s, "deckchangednotification")
		assert.Equal(t, deck, note.Deck)
	}
	requireSilent(t, host)
}

func TestAttackIncludesSender(t *testing.T) {
	_, id, host, g1, g2 := relayRoom(t)

	send(t, g1, "attack", 0, models.AttackRequest{
		LobbyID:  id,
		NewCards: json.RawMessage(`["red-2","red-2"]`),
		Player:   json.RawMessage(`1`),
		Amount:   json.RawMessage(`2`),
	})

	for _, s := range []*session{host, g1, g2} {
		note := recvAs[models.AttackNotification](t, s, "attacknotification")
		assert.Equal(t, json.RawMessage(`2`), note.Amount)
	}
}

func TestAttackPulledIncludesSender(t *testing.T) {
	_, id, host, g1, g2 := relayRoom(t)

	send(t, g2, "attackpulled", 0, models.CardPulledRequest{
		LobbyID:  id,
		NewCards: json.RawMessage(`["red-2"]`),
		Player:   json.RawMessage(`2`),
	})
	for _, s := range []*session{host, g1, g2} {
		recvAs[models.CardPulledNotification](t, s, "attackpullednotification")
	}
}

func TestBlockAndChangePlayerIncludeSender(t *testing.T) {
	_, id, host, g1, g2 := relayRoom(t)

	send(t, g1, "block", 0, models.BlockRequest{LobbyID: id, Player: json.RawMessage(`1`)})
	for _, s := range []*session{host, g1, g2} {
		note := recvAs[models.BlockNotification](t, s, "blocknotification")
		assert.Equal(t, json.RawMessage(`1`), note.Player)
	}

	send(t, g2, "changeplayer", 0, models.ChangePlayerRequest{LobbyID: id, Player: json.RawMessage(`0`)})
	for _, s := range []*session{host, g1, g2} {
		note := recvAs[models.ChangePlayerNotification](t, s, "changeplayernotification")
		assert.Equal(t, json.RawMessage(`0`), note.Player)
	}
}

func TestLastCardIncludesSender(t *testing.T) {
	_, id, host, g1, g2 := relayRoom(t)

	send(t, g1, "lastcard", 0, models.LastCardRequest{
		LobbyID: id,
		Name:    json.RawMessage(`"Alice"`),
		Player:  json.RawMessage(`1`),
	})
	for _, s := range []*session{host, g1, g2} {
		note := recvAs[models.LastCardNotification](t, s, "lastcardnotification")
		assert.Equal(t, json.RawMessage(`"Alice"`), note.Name)
	}
}

func TestPlayerDisconnectedIncludesSender(t *testing.T) {
	_, id, host, g1, g2 := relayRoom(t)

	send(t, g1, "playerdisconnected", 0, models.LobbyRequest{LobbyID: id})
	for _, s := range []*session{host, g1, g2} {
		env := recv(t, s)
		assert.Equal(t, "playerdisconnectednotification", env.Event)
	}
}

func TestRelayToUnknownLobbyAnswersError(t *testing.T) {
	e := newTestEnv()
	s := e.newSession("c1")

	send(t, s, "cardplayed", 0, models.CardPlayedRequest{LobbyID: "ZZZZZ"})
	errMsg := recvAs[models.ErrorNotification](t, s, "error")
	assert.Equal(t, "Lobby does not exist", errMsg.Message)
}

func TestRelayFromNonMemberAnswersError(t *testing.T) {
	e := newTestEnv()
	host := e.newSession("host")
	id := createLobby(t, host, "Host")

	outsider := e.newSession("outsider")
	send(t, outsider, "block", 0, models.BlockRequest{LobbyID: id, Player: json.RawMessage(`0`)})
	errMsg := recvAs[models.ErrorNotification](t, outsider, "error")
	assert.Contains(t, errMsg.Message, "not a member")
	requireSilent(t, host)
}

func TestSenderOrderingPreservedPerRecipient(t *testing.T) {
	_, id, host, g1, _ := relayRoom(t)

	for i := 0; i < 5; i++ {
		send(t, g1, "changeplayer", 0, models.ChangePlayerRequest{
			LobbyID: id,
			Player:  json.RawMessage{byte('0' + i)},
		})
	}
	for i := 0; i < 5; i++ {
		note := recvAs[models.ChangePlayerNotification](t, host, "changeplayernotification")
		require.Equal(t, json.RawMessage{byte('0' + i)}, note.Player, "delivery must preserve send order")
	}
}
