package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasker/internal/assign"
	"tasker/internal/session"
)

var (
	runName        string
	runDescription string
	runTemplate    string
	runRosterPath  string
	runOutDir      string
)

// runCmd executes the whole pipeline in one shot
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full brief-to-email pipeline",
	Long: `Runs every stage in order: PRD synthesis, task synthesis, skill-based
assignment, and the status email draft. Artifacts are written to the output
directory as prd.md, tasks.txt, assignments.csv, and email.txt.

Example:
  tasker run --template "AI-Powered Customer Support Chatbot" --roster employees.csv --out-dir out/`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runName, "name", "", "Project name")
	runCmd.Flags().StringVar(&runDescription, "description", "", "Project description")
	runCmd.Flags().StringVar(&runTemplate, "template", "", "Built-in brief template (see 'tasker templates')")
	runCmd.Flags().StringVar(&runRosterPath, "roster", "", "Employee roster, CSV or YAML (required)")
	runCmd.Flags().StringVar(&runOutDir, "out-dir", ".", "Directory for the produced artifacts")
	_ = runCmd.MarkFlagRequired("roster")
}

// templatesCmd lists built-in briefs
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in brief templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range session.Templates() {
			fmt.Printf("%s\n    %s\n", t.Name, t.Description)
		}
		return nil
	},
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	brief, err := resolveBrief(runTemplate, runName, runDescription)
	if err != nil {
		return err
	}
	employees, err := assign.LoadRosterFile(runRosterPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(runOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	s := session.New()
	logger.Info("Pipeline started", zap.String("session", s.ID), zap.String("project", brief.Name))

	if err := pipeline.GeneratePRD(ctx, s, brief); err != nil {
		return err
	}
	if err := writeArtifact("prd.md", s.PRDText); err != nil {
		return err
	}

	if err := pipeline.GenerateTasks(ctx, s); err != nil {
		return err
	}
	if err := writeArtifact("tasks.txt", strings.Join(s.Tasks, "\n")); err != nil {
		return err
	}

	if err := pipeline.AssignTasks(ctx, s, employees); err != nil {
		return err
	}
	var csvOut strings.Builder
	if err := assign.WriteCSV(&csvOut, s.Assignments); err != nil {
		return err
	}
	if err := writeArtifact("assignments.csv", csvOut.String()); err != nil {
		return err
	}

	if err := pipeline.ComposeEmail(ctx, s); err != nil {
		return err
	}
	if err := writeArtifact("email.txt", s.EmailBody); err != nil {
		return err
	}

	logger.Info("Pipeline finished",
		zap.String("session", s.ID),
		zap.Int("tasks", len(s.Tasks)),
		zap.Int("assignments", len(s.Assignments)))
	fmt.Printf("Artifacts written to %s: prd.md, tasks.txt, assignments.csv, email.txt\n", runOutDir)
	return nil
}

func writeArtifact(name, content string) error {
	path := filepath.Join(runOutDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
