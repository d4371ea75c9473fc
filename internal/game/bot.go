// internal/game/bot.go
package game

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/szt2bukarm/uno-server/internal/models"
)

// botNames is the fixed pool bot display names are drawn from.
var botNames = []string{
	"Rico", "Maya", "Ollie", "Zara",
	"Finn", "Luna", "Dex", "Willow",
}

// NewBot synthesizes a participant with a generated id and a random pool name.
// Bots have no connection; the id only ever appears in rosters.
func NewBot() models.Participant {
	return models.Participant{
		ID:    uuid.NewString(),
		Name:  botNames[rand.IntN(len(botNames))] + " (bot)",
		IsBot: true,
	}
}

// ChooseCardIndex picks the index of the card a bot should play against the
// active discard constraint, or -1 if the bot must draw. Precedence is
// type match, then card-value match, then a "common" wild; each tier scans the
// hand left to right and the first hit wins.
func ChooseCardIndex(hand []models.CardRef, constraint models.CardRef) int {
	for i, c := range hand {
		if c.SameType(constraint) {
			return i
		}
	}
	for i, c := range hand {
		if c.SameValue(constraint) {
			return i
		}
	}
	for i, c := range hand {
		if c.Type == models.WildType {
			return i
		}
	}
	return -1
}
