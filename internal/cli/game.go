package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/minesweeper-go/internal/api/response"
)

func newGameCmds() []*cobra.Command {
	return []*cobra.Command{
		newNewCmd(),
		newShowCmd(),
		newUncoverCmd(),
		newMarkCmd(),
		newClickCmd(),
		newAbandonCmd(),
		newRestartCmd(),
	}
}

func newNewCmd() *cobra.Command {
	var (
		difficulty string
		width      uint16
		height     uint16
		mines      uint16
		safe       bool
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Long: `Start a new game. Without flags the classic 15x15 board with 30 mines is used.
Explicit --width, --height and --mines override the chosen difficulty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if difficulty != "" {
				req["difficulty"] = difficulty
			}
			if cmd.Flags().Changed("width") {
				req["width"] = width
			}
			if cmd.Flags().Changed("height") {
				req["height"] = height
			}
			if cmd.Flags().Changed("mines") {
				req["mine_count"] = mines
			}
			if cmd.Flags().Changed("seed") {
				req["seed"] = seed
			}
			if safe {
				req["safe_first_reveal"] = true
			}

			var result response.Game
			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "Preset: beginner, intermediate, expert, classic")
	cmd.Flags().Uint16Var(&width, "width", 0, "Board width")
	cmd.Flags().Uint16Var(&height, "height", 0, "Board height")
	cmd.Flags().Uint16Var(&mines, "mines", 0, "Number of mines")
	cmd.Flags().BoolVar(&safe, "safe", false, "Reveal a safe empty tile at the start")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible mine layout")

	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <game-id>",
		Short: "Show the current board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Get(gamePath(args[0], ""), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newUncoverCmd() *cobra.Command {
	return newCoordinateCmd("uncover", "Uncover the tile at x,y")
}

func newMarkCmd() *cobra.Command {
	return newCoordinateCmd("mark", "Toggle the mine mark on the tile at x,y")
}

// newCoordinateCmd builds a command posting a grid coordinate to the
// game endpoint of the same name
func newCoordinateCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <game-id> <x> <y>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}

			req := map[string]int{"x": x, "y": y}
			var result response.Move
			if err := client.Post(gamePath(args[0], action), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newClickCmd() *cobra.Command {
	var button string

	cmd := &cobra.Command{
		Use:   "click <game-id> <px> <py>",
		Short: "Click at a board-local pointer position",
		Long: `Click at a pointer position relative to the board origin. Each tile is one
unit wide, so 2.5,0.5 lands in tile 2,0. Clicks outside the board do nothing.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			px, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid px: %w", err)
			}
			py, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid py: %w", err)
			}

			req := map[string]any{"x": px, "y": py, "button": button}
			var result response.Move
			if err := client.Post(gamePath(args[0], "click"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&button, "button", "b", "left", "Pointer button: left, right")

	return cmd
}

func newAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <game-id>",
		Short: "Abandon a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Delete(gamePath(args[0], ""), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			if cfg.Output == "json" {
				out.Print(result)
				return nil
			}
			out.PrintMessage(fmt.Sprintf("Game %s %s", result.ID, result.State))
			return nil
		},
	}
}

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart <game-id>",
		Short: "Abandon a game and start a new one with the same settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Post(gamePath(args[0], "restart"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished games, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Summaries
			if err := client.Get(fmt.Sprintf("/api/v1/summaries?limit=%d", limit), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of games to list (0 for all)")

	return cmd
}

func gamePath(id, action string) string {
	if action == "" {
		return "/api/v1/games/" + id
	}
	return "/api/v1/games/" + id + "/" + action
}
