package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/studyplan/internal/coach"
	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/logger"
	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/render"
	"github.com/abhisek/studyplan/internal/slots"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and view weekly plans",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Plan a week from a request file",
	RunE: func(cmd *cobra.Command, args []string) error {
		requestPath, _ := cmd.Flags().GetString("request")
		save, _ := cmd.Flags().GetBool("save")
		asJSON, _ := cmd.Flags().GetBool("json")
		withNotes, _ := cmd.Flags().GetBool("ai-rationale")

		in, err := readRequest(requestPath)
		if err != nil {
			return err
		}
		in.TimePreferences = appConfig.Preferences(in.TimePreferences)
		if in.StudyBlockDuration == 0 {
			in.StudyBlockDuration = appConfig.BlockDurationHours
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p := planner.New(s)
		p.Location = appConfig.Location()
		p.AllowGapFallback = appConfig.AllowGapFallback
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			p.Rand = rand.New(rand.NewPCG(seed, seed))
		}

		ctx := context.Background()
		weekStart, err := p.ResolveWeekStart(in.TargetWeekStart)
		if err != nil {
			return err
		}
		week := weekStart.Format(slots.DateFormat)
		in.TargetWeekStart = week

		if in.OngoingTopics == nil {
			if in.OngoingTopics, err = s.OngoingTopics(ctx, week); err != nil {
				return fmt.Errorf("load ongoing topics: %w", err)
			}
		}

		blocks, err := p.Generate(ctx, in)
		if err != nil {
			return err
		}

		if withNotes {
			blocks = annotate(ctx, cmd, s, blocks)
		}

		if save {
			planID, err := s.SaveWeek(ctx, week, blocks)
			if err != nil {
				return fmt.Errorf("save plan: %w", err)
			}
			logger.Info("plan saved", "plan_id", planID, "week_start", week, "blocks", len(blocks))
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d sessions for the week of %s.\n", len(blocks), week)
		}
		return printBlocks(cmd, blocks, asJSON)
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a saved week",
	RunE: func(cmd *cobra.Command, args []string) error {
		week, _ := cmd.Flags().GetString("week")
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p := planner.New(nil)
		p.Location = appConfig.Location()
		weekStart, err := p.ResolveWeekStart(week)
		if err != nil {
			return err
		}

		blocks, err := s.WeekBlocks(context.Background(), weekStart.Format(slots.DateFormat))
		if err != nil {
			return fmt.Errorf("load week %s: %w", weekStart.Format(slots.DateFormat), err)
		}
		return printBlocks(cmd, blocks, asJSON)
	},
}

func init() {
	planGenerateCmd.Flags().String("request", "", "Plan request file (YAML or JSON)")
	planGenerateCmd.Flags().Bool("save", false, "Store the plan, replacing any plan for the same week")
	planGenerateCmd.Flags().Bool("json", false, "Print blocks as JSON")
	planGenerateCmd.Flags().Bool("ai-rationale", false, "Rewrite rationales with LLM study notes")
	planGenerateCmd.Flags().Uint64("seed", 0, "Seed for cluster spacing, for repeatable plans")
	planGenerateCmd.MarkFlagRequired("request")

	planShowCmd.Flags().String("week", "", "Week start date (YYYY-MM-DD); defaults to next week")
	planShowCmd.Flags().Bool("json", false, "Print blocks as JSON")

	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planShowCmd)
}

// readRequest decodes a plan request. Files ending in .json are read as
// JSON, anything else as YAML.
func readRequest(path string) (planner.Input, error) {
	var in planner.Input
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("read request: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &in)
	} else {
		err = yaml.Unmarshal(data, &in)
	}
	if err != nil {
		return in, fmt.Errorf("parse request %s: %w", filepath.Base(path), err)
	}
	return in, nil
}

// annotate swaps in LLM study notes. Failures keep the generated
// rationale and are reported as a warning.
func annotate(ctx context.Context, cmd *cobra.Command, s *store.Store, blocks []planner.ScheduledBlock) []planner.ScheduledBlock {
	provider, err := llm.New(ctx, llm.ConfigFromEnv(appConfig.LLM.Provider, appConfig.LLM.Model), s)
	if err == nil {
		var annotated []planner.ScheduledBlock
		annotated, err = coach.New(provider, coach.DefaultConfig()).Annotate(ctx, blocks)
		blocks = annotated
	}
	if err != nil {
		logger.Warn("study notes unavailable", "err", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Study notes unavailable: %v\n", err)
	}
	return blocks
}

func printBlocks(cmd *cobra.Command, blocks []planner.ScheduledBlock, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		if blocks == nil {
			blocks = []planner.ScheduledBlock{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(blocks)
	}
	fmt.Fprintln(out, render.Agenda(blocks, render.Options{Rationale: true}))
	return nil
}
