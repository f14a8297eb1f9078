package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

var (
	flagAskFile string
	flagNoSum   bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about one indexed document",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := newLocalWorkspace()
		if err := ws.ReloadFiles(cmd.Context()); err != nil {
			return err
		}
		if flagAskFile != "" {
			if err := ws.SelectFile(flagAskFile); err != nil {
				return err
			}
		}

		err := ws.Query(cmd.Context(), strings.Join(args, " "))
		view := ws.View()
		printStatus(view, domain.ChannelQuery)
		if errors.Is(err, domain.ErrNoMatches) {
			return nil
		}
		if err != nil {
			return err
		}

		for i, item := range view.Results {
			score := "-"
			if item.Score != nil {
				score = fmt.Sprintf("%.3f", *item.Score)
			}
			fmt.Printf("\n#%d (score %s)\n%s\n", i+1, score, item.Text)
		}

		if flagNoSum {
			return nil
		}
		ws.Wait()
		view = ws.View()
		fmt.Println()
		printStatus(view, domain.ChannelSummary)
		if view.Summary != "" {
			fmt.Println(view.Summary)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&flagAskFile, "file", "", "indexed document to ask about (required)")
	askCmd.Flags().BoolVar(&flagNoSum, "no-summary", false, "print results without waiting for the summary")
	_ = askCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(askCmd)
}
