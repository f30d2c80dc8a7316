package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/minesweeper-go/internal/api/response"
)

func newHintCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "hint <game-id>",
		Short: "Ask the bot for the next move without playing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"strategy": strategy}
			var result response.Hint
			if err := client.Post(gamePath(args[0], "hint"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "logic", "Bot strategy: logic, random")

	return cmd
}

func newAutoplayCmd() *cobra.Command {
	var (
		strategy string
		maxMoves int
	)

	cmd := &cobra.Command{
		Use:   "autoplay <game-id>",
		Short: "Let the bot play moves until the game ends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"strategy": strategy, "max_moves": maxMoves}
			var result response.Autoplay
			if err := client.Post(gamePath(args[0], "autoplay"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "logic", "Bot strategy: logic, random")
	cmd.Flags().IntVarP(&maxMoves, "max-moves", "n", 0, "Stop after this many moves (0 for the server limit)")

	return cmd
}
