package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasker/internal/assign"
	"tasker/internal/email"
)

var (
	emailAssignmentsPath string
	emailPRDPath         string
	emailProject         string
	emailFrom            string
	emailTo              string
	emailSignature       string
	emailOut             string
)

// emailCmd drafts the assignment status email
var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Draft a status email from an assignment table",
	Long: `Drafts a concise status email anchored on real assignment data. When a
generation backend is configured its output is used only if it contains the
assignment recap verbatim; otherwise a deterministic template is emitted.

Example:
  tasker email --assignments assignments.csv --prd prd.md --project "Chatbot"`,
	RunE: runEmail,
}

func init() {
	emailCmd.Flags().StringVar(&emailAssignmentsPath, "assignments", "", "Assignment CSV produced by 'tasker assign' (required)")
	emailCmd.Flags().StringVar(&emailPRDPath, "prd", "", "PRD markdown file for scope context")
	emailCmd.Flags().StringVar(&emailProject, "project", "Project", "Project name for the email body")
	emailCmd.Flags().StringVar(&emailFrom, "from", "", "Sender address (default from config)")
	emailCmd.Flags().StringVar(&emailTo, "to", "", "Recipient address (default from config)")
	emailCmd.Flags().StringVar(&emailSignature, "signature", "", "Signature block (default from config)")
	emailCmd.Flags().StringVarP(&emailOut, "out", "o", "", "Write the email body to this file")
	_ = emailCmd.MarkFlagRequired("assignments")
}

func runEmail(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	f, err := os.Open(emailAssignmentsPath)
	if err != nil {
		return fmt.Errorf("failed to open assignments: %w", err)
	}
	assignments, err := assign.ReadCSV(f)
	f.Close()
	if err != nil {
		return err
	}

	var prdText string
	if emailPRDPath != "" {
		data, err := os.ReadFile(emailPRDPath)
		if err != nil {
			return fmt.Errorf("failed to read PRD: %w", err)
		}
		prdText = string(data)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	emailCfg := cfg.GetEmail()
	if emailFrom == "" {
		emailFrom = emailCfg.From
	}
	if emailTo == "" {
		emailTo = emailCfg.To
	}
	if emailSignature == "" {
		emailSignature = emailCfg.Signature
	}

	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	tasks := make([]string, 0, len(assignments))
	for _, a := range assignments {
		tasks = append(tasks, a.Task)
	}

	body := email.Compose(ctx, pipeline.Drafter(), email.Request{
		Assignments: assignments,
		From:        emailFrom,
		To:          emailTo,
		Signature:   emailSignature,
		ProjectName: emailProject,
		PRDText:     prdText,
		Tasks:       tasks,
	})

	logger.Info("Email drafted",
		zap.String("project", emailProject),
		zap.Int("assignments", len(assignments)))
	return writeOutput(emailOut, body)
}
