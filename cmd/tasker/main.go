package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tasker/internal/config"
	"tasker/internal/logging"
	"tasker/internal/session"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string
	timeout    time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tasker",
	Short: "Tasker - brief to PRD to tasks to assignments pipeline",
	Long: `Tasker turns a short project brief into a structured PRD, a phase-ordered
task list, per-task employee assignments, and a status email draft.

Draft generation (Gemini or a local Ollama server) enriches the output but is
never required: every stage has a deterministic fallback.

Typical flow:
  tasker prd --name "Chatbot" --description "..." --out prd.md
  tasker tasks --prd prd.md --out tasks.txt
  tasker assign --tasks tasks.txt --roster employees.csv --out assignments.csv
  tasker email --assignments assignments.csv --prd prd.md --project "Chatbot"

Or run the whole pipeline at once:
  tasker run --template "AI-Powered Customer Support Chatbot" --roster employees.csv`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ws := workspace
		if ws == "" {
			var err error
			ws, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve workspace: %w", err)
			}
		}
		if err := logging.Initialize(ws); err != nil {
			// Categorized logging is best-effort; the run proceeds without it.
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

// loadConfig loads the user config from --config or the default location.
func loadConfig() (*config.UserConfig, error) {
	path := configPath
	if path == "" {
		path = config.DefaultUserConfigPath()
	}
	cfg, err := config.LoadUserConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newPipeline builds the shared pipeline for a subcommand invocation.
func newPipeline() (*session.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return session.NewPipeline(cfg), nil
}

// writeOutput writes content to path, or stdout when path is empty.
func writeOutput(path, content string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("Wrote output", zap.String("path", path))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: .tasker/config.json)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	rootCmd.AddCommand(prdCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(emailCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(templatesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
