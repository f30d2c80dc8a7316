package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Session events
	EventGameStarted   EventType = "game_started"
	EventGameAbandoned EventType = "game_abandoned"

	// Board events
	EventTileUncovered  EventType = "tile_uncovered"
	EventTileMarked     EventType = "tile_marked"
	EventBoardCompleted EventType = "board_completed"
	EventMineExploded   EventType = "mine_exploded"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	Payload   any // Type-specific data
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	Width     uint16
	Height    uint16
	MineCount uint16
	SafeStart *Coordinate
}

// TileUncoveredPayload is sent once per revealed cell
type TileUncoveredPayload struct {
	Coordinate Coordinate
	Handle     TileHandle
	Kind       TileKind
	Count      uint8
}

// TileMarkedPayload contains data for mark toggle events
type TileMarkedPayload struct {
	Coordinate Coordinate
	Handle     TileHandle
	Marked     bool
}

// MineExplodedPayload names the mine that ended the game
type MineExplodedPayload struct {
	Coordinate Coordinate
}

// BoardCompletedPayload contains data for win events
type BoardCompletedPayload struct {
	Moves    int
	Duration time.Duration
}

// EventsForOutcome expands a trigger outcome into the events a presentation
// layer consumes: one tile_uncovered per cell, then the win or loss signal.
func EventsForOutcome(gameID GameID, at time.Time, trigger Coordinate, outcome TriggerOutcome) []Event {
	events := make([]Event, 0, len(outcome.Uncovered)+1)
	for _, r := range outcome.Uncovered {
		events = append(events, Event{
			Type:      EventTileUncovered,
			Timestamp: at,
			GameID:    gameID,
			Payload: TileUncoveredPayload{
				Coordinate: r.Coordinate,
				Handle:     r.Handle,
				Kind:       r.Tile.Kind,
				Count:      r.Tile.Count,
			},
		})
	}
	switch outcome.Kind {
	case OutcomeExplosion:
		events = append(events, Event{
			Type:      EventMineExploded,
			Timestamp: at,
			GameID:    gameID,
			Payload:   MineExplodedPayload{Coordinate: trigger},
		})
	case OutcomeUncoveredAndWon:
		events = append(events, Event{
			Type:      EventBoardCompleted,
			Timestamp: at,
			GameID:    gameID,
		})
	}
	return events
}
