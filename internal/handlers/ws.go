// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/szt2bukarm/uno-server/internal/lobby"
	"github.com/szt2bukarm/uno-server/internal/middleware"
	"github.com/szt2bukarm/uno-server/internal/transport"
)

// WSHandler upgrades the connection, registers it with the hub and runs the
// session until the client goes away. There is no authentication: a client's
// identity is its connection id, generated here.
func WSHandler(logger *logrus.Logger, hub *transport.Hub, store *lobby.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"uno"},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "uno" {
			c.Close(BadSubprotocolError, "client must speak the uno subprotocol")
			return
		}

		connID := uuid.NewString()
		conn := transport.NewConn(connID)
		hub.Register(conn)
		sess := newSession(conn, hub, store, logger)

		middleware.LogWebSocketConnect(logger, r.RemoteAddr, connID)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go writePump(ctx, c, conn, logger)
		readErr := readPump(ctx, c, sess, logger)

		// Connection loss runs the same departure path as an explicit
		// leavelobby, so no ghost roster entries survive the socket.
		sess.cleanup()
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, connID, readErr)
	}
}

// readPump decodes inbound envelopes and feeds them to the session until the
// connection closes. It returns the error that ended the loop, nil for a
// normal closure.
func readPump(ctx context.Context, c *websocket.Conn, sess *session, logger *logrus.Logger) error {
	for {
		typ, msg, err := c.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway {
				return nil
			}
			if strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}
		if typ != websocket.MessageText {
			logger.Warnf("Conn %s: ignoring non-text message type %d", sess.id, typ)
			continue
		}

		var env transport.Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			logger.Warnf("Conn %s: invalid json: %v", sess.id, err)
			sess.sendError("invalid JSON format")
			continue
		}
		sess.handle(env)
	}
}

// writePump drains the connection's out queue onto the websocket and keeps
// the connection alive with periodic pings.
func writePump(ctx context.Context, c *websocket.Conn, conn *transport.Conn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-conn.Out:
			if !ok {
				return
			}
			data, err := json.Marshal(env)
			if err != nil {
				logger.Warnf("Conn %s: failed to marshal outgoing %q: %v", conn.ID, env.Event, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("Conn %s: websocket write failed: %v", conn.ID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("Conn %s: ping failed, assuming disconnect: %v", conn.ID, err)
				return
			}
		}
	}
}
