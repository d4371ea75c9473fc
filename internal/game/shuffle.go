// internal/game/shuffle.go
package game

import (
	"math/rand/v2"
	"slices"

	"github.com/szt2bukarm/uno-server/internal/models"
)

// TurnOrder returns a uniform random permutation of the given participants.
// Fisher-Yates via rand.Shuffle; a comparator-based "sort by random key" is
// not uniform and must not be reintroduced here.
func TurnOrder(players []models.Participant) []models.Participant {
	order := slices.Clone(players)
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}
