// internal/game/bot_test.go
package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/szt2bukarm/uno-server/internal/models"
)

func TestChooseCardIndexTypeMatchWinsOverWild(t *testing.T) {
	// A wild sits at index 0, but the type match at index 2 has priority:
	// precedence is type > card value > common, not positional.
	hand := []models.CardRef{
		{Type: "common", Card: "X"},
		{Type: "red", Card: 7},
		{Type: "blue", Card: 5},
	}
	constraint := models.CardRef{Type: "blue", Card: 5}
	assert.Equal(t, 2, ChooseCardIndex(hand, constraint))
}

func TestChooseCardIndexValueMatchBeforeWild(t *testing.T) {
	hand := []models.CardRef{
		{Type: "common", Card: 9},
		{Type: "green", Card: 7},
	}
	constraint := models.CardRef{Type: "red", Card: 7}
	assert.Equal(t, 1, ChooseCardIndex(hand, constraint))
}

func TestChooseCardIndexWildFallback(t *testing.T) {
	hand := []models.CardRef{
		{Type: "green", Card: 3},
		{Type: "common", Card: "+4"},
	}
	constraint := models.CardRef{Type: "red", Card: 9}
	assert.Equal(t, 1, ChooseCardIndex(hand, constraint))
}

func TestChooseCardIndexFirstMatchWinsWithinTier(t *testing.T) {
	hand := []models.CardRef{
		{Type: "red", Card: 3},
		{Type: "red", Card: 9},
	}
	constraint := models.CardRef{Type: "red", Card: 9}
	assert.Equal(t, 0, ChooseCardIndex(hand, constraint), "left-to-right scan should return the first type match")
}

func TestChooseCardIndexNoPlayableCard(t *testing.T) {
	hand := []models.CardRef{{Type: "green", Card: 3}}
	constraint := models.CardRef{Type: "red", Card: 9}
	assert.Equal(t, -1, ChooseCardIndex(hand, constraint))
}

func TestChooseCardIndexEmptyHand(t *testing.T) {
	assert.Equal(t, -1, ChooseCardIndex(nil, models.CardRef{Type: "red", Card: 1}))
}

func TestNewBotIdentity(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		bot := NewBot()
		require.True(t, bot.IsBot)
		require.NotEmpty(t, bot.ID)
		assert.True(t, strings.HasSuffix(bot.Name, " (bot)"), "bot name %q should carry the bot suffix", bot.Name)
		assert.False(t, seen[bot.ID], "bot ids must be unique")
		seen[bot.ID] = true
	}
}
