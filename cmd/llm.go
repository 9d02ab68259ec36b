package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM usage for study notes",
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM calls and token usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		since := time.Now().AddDate(0, 0, -days)
		calls, in, out, err := s.LLMUsage(context.Background(), since)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Last %d days\n", days)
		fmt.Fprintf(w, "Calls:          %d\n", calls)
		fmt.Fprintf(w, "Input tokens:   %d\n", in)
		fmt.Fprintf(w, "Output tokens:  %d\n", out)
		return nil
	},
}

func init() {
	llmStatsCmd.Flags().Int("days", 30, "Number of days to include")
	llmCmd.AddCommand(llmStatsCmd)
}
