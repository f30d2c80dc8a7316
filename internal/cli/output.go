package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mcoot/minesweeper-go/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		o.println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) println(args ...any) {
	_, _ = fmt.Fprintln(o.w, args...)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.Move:
		o.printMove(v)
	case response.Hint:
		o.printHint(v)
	case response.Autoplay:
		o.printAutoplay(v)
	case response.Summaries:
		o.printSummaries(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGame(g response.Game) {
	o.printf("Game: %s\n", g.ID)
	o.printf("State: %s\n", g.State)
	o.printf("Board: %dx%d, %d mines\n", g.Width, g.Height, g.MineCount)
	o.printf("Mines left: %d\n", g.RemainingMines)
	o.printf("Moves: %d\n", g.Moves)
	if g.SafeStart != nil {
		o.printf("Safe start: %d,%d\n", g.SafeStart.X, g.SafeStart.Y)
	}
	if g.FinishedAt != nil {
		o.printf("Duration: %s\n", time.Duration(g.DurationMs)*time.Millisecond)
	}
	o.println()
	o.printBoard(g.Rows)
}

// printBoard draws the rendered rows with column and row headers.
// Headers show the last digit of the index so wide boards stay aligned.
func (o *Output) printBoard(rows []string) {
	if len(rows) == 0 {
		return
	}
	width := len(rows[0])

	var header strings.Builder
	header.WriteString("    ")
	for x := range width {
		fmt.Fprintf(&header, "%d", x%10)
	}
	o.println(header.String())
	o.println("   +" + strings.Repeat("-", width) + "+")

	for y, row := range rows {
		o.printf("%2d |%s|\n", y, row)
	}

	o.println("   +" + strings.Repeat("-", width) + "+")
}

func (o *Output) printMove(m response.Move) {
	switch {
	case !m.Changed:
		o.println("Nothing changed")
	case m.Marked != nil && *m.Marked:
		o.println("Tile marked")
	case m.Marked != nil:
		o.println("Mark removed")
	case m.Outcome == "explosion":
		o.println("BOOM! You hit a mine")
	case m.Outcome == "uncovered_and_won":
		o.printf("Uncovered %d tiles. Board cleared!\n", len(m.Uncovered))
	default:
		o.printf("Uncovered %d tiles\n", len(m.Uncovered))
	}
	o.println()
	o.printGame(m.Game)
}

func (o *Output) printHint(h response.Hint) {
	certainty := "guess"
	if h.Certain {
		certainty = "certain"
	}
	o.printf("Hint: %s %d,%d (%s)\n", h.Action, h.X, h.Y, certainty)
}

func (o *Output) printAutoplay(a response.Autoplay) {
	o.printf("Bot made %d moves\n", len(a.Actions))
	for _, act := range a.Actions {
		detail := act.Outcome
		if act.Action == "mark" {
			detail = "marked"
		}
		o.printf("  %s %d,%d: %s\n", act.Action, act.X, act.Y, detail)
	}
	o.println()
	o.printGame(a.Game)
}

func (o *Output) printSummaries(s response.Summaries) {
	if len(s.Summaries) == 0 {
		o.println("No finished games")
		return
	}
	for _, sum := range s.Summaries {
		o.printf("%s  %-9s %dx%d/%d  %3d moves  %s  %s\n",
			sum.ID,
			sum.Result,
			sum.Width, sum.Height, sum.MineCount,
			sum.Moves,
			time.Duration(sum.DurationMs)*time.Millisecond,
			sum.FinishedAt.Format(time.DateTime),
		)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	o.printf("Status: %s\n", h.Status)
}
