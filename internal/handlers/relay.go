// internal/handlers/relay.go
package handlers

import (
	"github.com/szt2bukarm/uno-server/internal/models"
	"github.com/szt2bukarm/uno-server/internal/transport"
)

// Pure pass-through relays. Each verifies the lobby and the sender's
// membership, strips the lobby id and re-emits the payload unchanged under
// the corresponding notification name. Delivery scope follows the original
// protocol: card plays, draws and deck changes go to everyone but the
// sender; the rest go to the whole room.

func (s *session) handleDeckChanged(env transport.Envelope) {
	var req models.DeckChangedRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	s.hub.EmitToRoomExcept(lob.ID, s.id, "deckchangednotification", models.DeckChangedNotification{
		Deck: req.Deck,
	})
}

func (s *session) handleCardPlayed(env transport.Envelope) {
	var req models.CardPlayedRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	s.hub.EmitToRoomExcept(lob.ID, s.id, "cardplayednotification", models.CardPlayedNotification{
		PlayedType:   req.PlayedType,
		PlayedCard:   req.PlayedCard,
		CardIndex:    req.CardIndex,
		PlayersCards: req.PlayersCards,
		Player:       req.Player,
	})
}

func (s *session) handleCardPulled(env transport.Envelope) {
	var req models.CardPulledRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	s.hub.EmitToRoomExcept(lob.ID, s.id, "cardpullednotification", models.CardPulledNotification{
		NewCards: req.NewCards,
		Player:   req.Player,
	})
}

func (s *session) handleChangePlayer(env transport.Envelope) {
	var req models.ChangePlayerRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	s.hub.EmitToRoom(lob.ID, "changeplayernotification", models.ChangePlayerNotification{
		Player: req.Player,
	})
}

func (s *session) handleAttack(env transport.Envelope) {
	var req models.AttackRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	s.hub.EmitToRoom(lob.ID, "attacknotification", models.AttackNotification{
		NewCards: req.NewCards,
		Player:   req.Player,
		Amount:   req.Amount,
	})
}

func (s *session) handleAttackPulled(env transport.Envelope) {
	var req models.CardPulledRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	s.hub.EmitToRoom(lob.ID, "attackpullednotification", models.CardPulledNotification{
		NewCards: req.NewCards,
		Player:   req.Player,
	})
}

func (s *session) handleBlock(env transport.Envelope) {
	var req models.BlockRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	s.hub.EmitToRoom(lob.ID, "blocknotification", models.BlockNotification{
		Player: req.Player,
	})
}

func (s *session) handleLastCard(env transport.Envelope) {
	var req models.LastCardRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	s.hub.EmitToRoom(lob.ID, "lastcardnotification", models.LastCardNotification{
		Name:   req.Name,
		Player: req.Player,
	})
}

func (s *session) handlePlayerDisconnected(env transport.Envelope) {
	var req models.LobbyRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	s.hub.EmitToRoom(lob.ID, "playerdisconnectednotification", nil)
}
