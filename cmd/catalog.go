package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/curriculum"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the topic catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import topics from a YAML catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := curriculum.LoadFile(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.UpsertTopics(context.Background(), topics); err != nil {
			return fmt.Errorf("import topics: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d topics.\n", len(topics))
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		topics, err := s.ListTopics(context.Background(), subject)
		if err != nil {
			return fmt.Errorf("list topics: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(topics) == 0 {
			fmt.Fprintln(out, "No topics found.")
			return nil
		}

		fmt.Fprintf(out, "%-24s  %-16s  %-8s  %-5s  %s\n", "ID", "Subject", "Board", "Level", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, t := range topics {
			fmt.Fprintf(out, "%-24s  %-16s  %-8s  %-5d  %s\n", t.ID, t.Subject, t.ExamBoard, t.Level, t.Title)
		}
		return nil
	},
}

func init() {
	catalogListCmd.Flags().String("subject", "", "Only list topics of this subject")

	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
}
