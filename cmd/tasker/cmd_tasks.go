package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasker/internal/session"
)

var (
	tasksPRDPath string
	tasksOut     string
)

// tasksCmd synthesizes the task list from a PRD
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Synthesize a phase-ordered task list from a PRD",
	Long: `Reads PRD markdown and synthesizes an ordered task list: planning and
setup first, feature and tool tasks from the PRD sections, then a testing and
deployment tail. The list is deduplicated and bounded at 25 tasks.

Example:
  tasker tasks --prd prd.md --out tasks.txt`,
	RunE: runTasks,
}

func init() {
	tasksCmd.Flags().StringVar(&tasksPRDPath, "prd", "", "PRD markdown file (required)")
	tasksCmd.Flags().StringVarP(&tasksOut, "out", "o", "", "Write the task list to this file, one task per line")
	_ = tasksCmd.MarkFlagRequired("prd")
}

func runTasks(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	prdText, err := os.ReadFile(tasksPRDPath)
	if err != nil {
		return fmt.Errorf("failed to read PRD: %w", err)
	}

	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	s := session.New()
	s.PRDText = string(prdText)
	if err := pipeline.GenerateTasks(ctx, s); err != nil {
		return err
	}

	logger.Info("Tasks synthesized", zap.Int("count", len(s.Tasks)))
	return writeOutput(tasksOut, strings.Join(s.Tasks, "\n"))
}
