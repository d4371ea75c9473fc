// internal/handlers/session.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
	"github.com/szt2bukarm/uno-server/internal/game"
	"github.com/szt2bukarm/uno-server/internal/lobby"
	"github.com/szt2bukarm/uno-server/internal/models"
	"github.com/szt2bukarm/uno-server/internal/transport"
)

// session is one connected client's view of the coordinator. All handling for
// a session runs on its read pump goroutine, so lobbyID needs no lock.
type session struct {
	id     string
	conn   *transport.Conn
	hub    *transport.Hub
	store  *lobby.Store
	logger *logrus.Logger

	// lobbyID is the lobby this connection currently belongs to, "" if none.
	lobbyID string
}

func newSession(conn *transport.Conn, hub *transport.Hub, store *lobby.Store, logger *logrus.Logger) *session {
	return &session{
		id:     conn.ID,
		conn:   conn,
		hub:    hub,
		store:  store,
		logger: logger,
	}
}

// handle dispatches one inbound envelope. Event names are the wire contract
// and mirror the original protocol verbatim.
func (s *session) handle(env transport.Envelope) {
	switch env.Event {
	case "createlobby":
		s.handleCreateLobby(env)
	case "leavelobby":
		s.handleLeaveLobby(env)
	case "checklobby":
		s.handleCheckLobby(env)
	case "joinlobby":
		s.handleJoinLobby(env)
	case "addbot":
		s.handleAddBot(env)
	case "deletebot":
		s.handleDeleteBot(env)
	case "checkcardsbot":
		s.handleCheckCardsBot(env)
	case "reverse":
		s.handleReverse(env)
	case "startgamehost":
		s.handleStartGame(env)
	case "deckchanged":
		s.handleDeckChanged(env)
	case "cardplayed":
		s.handleCardPlayed(env)
	case "changeplayer":
		s.handleChangePlayer(env)
	case "cardpulled":
		s.handleCardPulled(env)
	case "attack":
		s.handleAttack(env)
	case "attackpulled":
		s.handleAttackPulled(env)
	case "block":
		s.handleBlock(env)
	case "lastcard":
		s.handleLastCard(env)
	case "lastcardattack":
		s.handleLastCardAttack(env)
	case "playerdisconnected":
		s.handlePlayerDisconnected(env)
	default:
		s.logger.Warnf("Conn %s: unknown event %q", s.id, env.Event)
		s.sendError(fmt.Sprintf("unknown event: %s", env.Event))
	}
}

// bind decodes the envelope payload into v. Malformed payloads are rejected
// with an error to the caller rather than propagated partially.
func (s *session) bind(env transport.Envelope, v any) bool {
	if err := json.Unmarshal(env.Data, v); err != nil {
		s.logger.Warnf("Conn %s: bad %q payload: %v", s.id, env.Event, err)
		if env.Ack != 0 {
			s.ack(env, models.StatusResponse{Status: "error", Message: "Bad request"})
		} else {
			s.sendError(fmt.Sprintf("bad %s payload", env.Event))
		}
		return false
	}
	return true
}

// ack answers a request that carries an acknowledgment id.
func (s *session) ack(env transport.Envelope, data any) {
	reply, err := transport.NewEnvelope("ack", data)
	if err != nil {
		s.logger.Warnf("Conn %s: marshal ack for %q: %v", s.id, env.Event, err)
		return
	}
	reply.Ack = env.Ack
	s.conn.Send(reply)
}

// sendError pushes an error notification to this caller only.
func (s *session) sendError(msg string) {
	env, err := transport.NewEnvelope("error", models.ErrorNotification{Message: msg})
	if err != nil {
		return
	}
	s.conn.Send(env)
}

// memberOf resolves a lobby and verifies the caller belongs to it. Every
// mutating or relaying operation goes through this check; the original
// protocol trusted the sender blindly and silently delivered to nobody on a
// stale id.
func (s *session) memberOf(lobbyID string) (*lobby.Lobby, bool) {
	lob, ok := s.store.Get(lobbyID)
	if !ok {
		s.sendError("Lobby does not exist")
		return nil, false
	}
	if !lob.HasParticipant(s.id) {
		s.sendError("not a member of this lobby")
		return nil, false
	}
	return lob, true
}

// statusFor maps lobby errors onto the ack messages of the original protocol.
func statusFor(err error) models.StatusResponse {
	switch {
	case err == nil:
		return models.StatusResponse{Status: "success"}
	case errors.Is(err, lobby.ErrGameStarted):
		return models.StatusResponse{Status: "error", Message: "Game has already started"}
	case errors.Is(err, lobby.ErrLobbyFull):
		return models.StatusResponse{Status: "error", Message: "Lobby is full"}
	default:
		return models.StatusResponse{Status: "error", Message: "Lobby does not exist"}
	}
}

func (s *session) handleCreateLobby(env transport.Envelope) {
	var req models.CreateLobbyRequest
	if !s.bind(env, &req) {
		return
	}
	lob := s.store.Create(s.id, req.PlayerName)
	s.hub.Join(lob.ID, s.conn)
	s.lobbyID = lob.ID

	s.ack(env, models.CreateLobbyResponse{
		LobbyID: lob.ID,
		Host:    lob.Host,
		Player:  models.Participant{ID: s.id, Name: req.PlayerName},
		Players: lob.Roster(),
	})
}

func (s *session) handleCheckLobby(env transport.Envelope) {
	var req models.LobbyRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.store.Get(req.LobbyID)
	if !ok {
		s.ack(env, statusFor(lobby.ErrNotFound))
		return
	}
	s.ack(env, statusFor(lob.CheckJoinable()))
}

func (s *session) handleJoinLobby(env transport.Envelope) {
	var req models.JoinLobbyRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.store.Get(req.LobbyID)
	if !ok {
		s.ack(env, statusFor(lobby.ErrNotFound))
		return
	}
	p := models.Participant{ID: s.id, Name: req.PlayerName}
	roster, err := lob.Join(p)
	if err != nil {
		s.ack(env, statusFor(err))
		return
	}
	s.hub.Join(lob.ID, s.conn)
	s.lobbyID = lob.ID

	s.hub.EmitToRoomExcept(lob.ID, s.id, "playerjoined", models.RosterNotification{Players: roster})
	s.ack(env, models.JoinLobbyResponse{
		Status:  "success",
		LobbyID: lob.ID,
		Host:    lob.Host,
		Player:  p,
		Players: roster,
	})
}

func (s *session) handleLeaveLobby(env transport.Envelope) {
	var req models.LobbyRequest
	if !s.bind(env, &req) {
		return
	}
	if _, ok := s.memberOf(req.LobbyID); !ok {
		return
	}
	s.leaveLobby(req.LobbyID)
}

// leaveLobby applies departure semantics: a departing host tears the lobby
// down and evicts the room; anyone else is removed and the rest notified.
// Also invoked on connection loss.
func (s *session) leaveLobby(lobbyID string) {
	lob, ok := s.store.Get(lobbyID)
	if !ok {
		return
	}
	if lob.IsHost(s.id) {
		s.hub.EmitToRoomExcept(lobbyID, s.id, "hostleft", nil)
		s.store.Delete(lobbyID)
		s.hub.EvictRoom(lobbyID)
		s.logger.Infof("Lobby %s destroyed, host %s left", lobbyID, s.id)
	} else {
		roster, _ := lob.Remove(s.id)
		s.hub.Leave(lobbyID, s.id)
		s.hub.EmitToRoom(lobbyID, "playerleft", models.RosterNotification{Players: roster})
	}
	s.lobbyID = ""
}

// cleanup runs when the connection drops without an explicit leavelobby.
// The original protocol left ghost roster entries behind; here the departure
// path is shared, so disconnect and leave behave identically.
func (s *session) cleanup() {
	if s.lobbyID != "" {
		s.leaveLobby(s.lobbyID)
	}
	s.hub.Unregister(s.id)
}

func (s *session) handleAddBot(env transport.Envelope) {
	var req models.LobbyRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	bot := game.NewBot()
	roster, err := lob.Join(bot)
	if err != nil {
		s.sendError(statusFor(err).Message)
		return
	}
	s.hub.EmitToRoom(lob.ID, "botadded", models.RosterNotification{Players: roster})
}

func (s *session) handleDeleteBot(env transport.Envelope) {
	var req models.DeleteBotRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	roster, removed := lob.Remove(req.BotID)
	if !removed {
		s.sendError("no such bot in lobby")
		return
	}
	s.hub.EmitToRoom(lob.ID, "botdeleted", models.RosterNotification{Players: roster})
}

func (s *session) handleCheckCardsBot(env transport.Envelope) {
	var req models.CheckCardsBotRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	idx := game.ChooseCardIndex(req.Cards, req.LastCard)
	s.hub.EmitToRoom(lob.ID, "checkcardsbotnotification", models.CheckCardsBotNotification{
		CardIndex: idx,
		PlayerNo:  req.PlayerNo,
	})
}

func (s *session) handleReverse(env transport.Envelope) {
	var req models.ReverseRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	// The server computes the new direction but stores nothing.
	s.hub.EmitToRoom(lob.ID, "reversenotification", models.ReverseNotification{
		Reversed: !req.Reversed,
	})
}

func (s *session) handleStartGame(env transport.Envelope) {
	var req models.StartGameRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	if !lob.IsHost(s.id) {
		s.sendError("only the host can start the game")
		return
	}

	order := lob.Start()
	for i, entry := range order {
		if entry.IsBot {
			continue
		}
		s.hub.EmitTo(entry.ID, "startgame", models.StartGamePayload{
			Player:       entry.Participant,
			Index:        i,
			Players:      order,
			FirstCard:    models.CardRef{Type: req.InitialType, Card: req.InitialCard},
			Deck:         req.Deck,
			PlayersCards: req.PlayersCards,
		})
	}
	s.logger.Infof("Lobby %s: game started with %d players", lob.ID, len(order))
}

func (s *session) handleLastCardAttack(env transport.Envelope) {
	var req models.LastCardAttackRequest
	if !s.bind(env, &req) {
		return
	}
	lob, ok := s.memberOf(req.LobbyID)
	if !ok {
		return
	}
	// A self-declaration carries no penalty; anyone else calling it out does.
	s.hub.EmitToRoom(lob.ID, "lastcardattacknotification", models.LastCardAttackNotification{
		Attack:         !reflect.DeepEqual(req.AttackedPlayer, req.Attacker),
		AttackedPlayer: req.AttackedPlayer,
		Attacker:       req.Attacker,
	})
}
