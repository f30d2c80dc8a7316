package sse

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mcoot/minesweeper-go/internal/model"
)

// Broadcaster pushes game events to the SSE clients watching each game
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends each event to its game's hub. Games nobody watches are skipped.
func (b *Broadcaster) Publish(events ...model.Event) {
	for _, event := range events {
		hub := b.hubManager.GetHub(event.GameID)
		if hub == nil {
			continue
		}

		data, err := json.Marshal(NewEventMessage(event))
		if err != nil {
			b.logger.Error("sse failed to encode event",
				slog.String("game_id", string(event.GameID)),
				slog.String("type", string(event.Type)),
				slog.Any("error", err))
			continue
		}
		hub.BroadcastEvent(string(event.Type), string(data))
	}
}

// EventMessage is the JSON body of an SSE event
type EventMessage struct {
	Type      model.EventType `json:"type"`
	GameID    model.GameID    `json:"game_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   any             `json:"payload,omitempty"`
}

// CoordinateMessage is a grid position on the wire
type CoordinateMessage struct {
	X uint16 `json:"x"`
	Y uint16 `json:"y"`
}

type gameStartedMessage struct {
	Width     uint16             `json:"width"`
	Height    uint16             `json:"height"`
	MineCount uint16             `json:"mine_count"`
	SafeStart *CoordinateMessage `json:"safe_start,omitempty"`
}

type tileUncoveredMessage struct {
	CoordinateMessage
	Handle model.TileHandle `json:"handle"`
	Kind   model.TileKind   `json:"kind"`
	Count  uint8            `json:"count,omitempty"`
}

type tileMarkedMessage struct {
	CoordinateMessage
	Handle model.TileHandle `json:"handle"`
	Marked bool             `json:"marked"`
}

type boardCompletedMessage struct {
	Moves      int   `json:"moves"`
	DurationMs int64 `json:"duration_ms"`
}

func coordinateMessage(c model.Coordinate) CoordinateMessage {
	return CoordinateMessage{X: c.X, Y: c.Y}
}

// NewEventMessage converts a domain event into its wire form
func NewEventMessage(event model.Event) EventMessage {
	msg := EventMessage{
		Type:      event.Type,
		GameID:    event.GameID,
		Timestamp: event.Timestamp,
	}

	switch p := event.Payload.(type) {
	case model.GameStartedPayload:
		started := gameStartedMessage{Width: p.Width, Height: p.Height, MineCount: p.MineCount}
		if p.SafeStart != nil {
			c := coordinateMessage(*p.SafeStart)
			started.SafeStart = &c
		}
		msg.Payload = started
	case model.TileUncoveredPayload:
		msg.Payload = tileUncoveredMessage{
			CoordinateMessage: coordinateMessage(p.Coordinate),
			Handle:            p.Handle,
			Kind:              p.Kind,
			Count:             p.Count,
		}
	case model.TileMarkedPayload:
		msg.Payload = tileMarkedMessage{
			CoordinateMessage: coordinateMessage(p.Coordinate),
			Handle:            p.Handle,
			Marked:            p.Marked,
		}
	case model.MineExplodedPayload:
		msg.Payload = coordinateMessage(p.Coordinate)
	case model.BoardCompletedPayload:
		msg.Payload = boardCompletedMessage{Moves: p.Moves, DurationMs: p.Duration.Milliseconds()}
	}
	return msg
}
