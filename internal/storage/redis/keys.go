package redis

import (
	"fmt"

	"github.com/mcoot/minesweeper-go/internal/model"
)

// Key prefix for all minesweeper data
const keyPrefix = "mines"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// summariesKey returns the Redis key for the capped LIST of finished games
func summariesKey() string {
	return fmt.Sprintf("%s:summaries", keyPrefix)
}
