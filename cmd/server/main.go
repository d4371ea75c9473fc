// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/szt2bukarm/uno-server/internal/handlers"
	"github.com/szt2bukarm/uno-server/internal/lobby"
	"github.com/szt2bukarm/uno-server/internal/middleware"
	"github.com/szt2bukarm/uno-server/internal/transport"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	hub := transport.NewHub()
	store := lobby.NewStore(logger)

	mux := http.NewServeMux()
	mux.Handle("/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.WSHandler(logger, hub, store),
	)))

	addr := ":3000"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Server running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
