package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasker/internal/assign"
	"tasker/internal/session"
)

var (
	assignTasksPath  string
	assignRosterPath string
	assignOut        string
)

// assignCmd matches tasks to employees
var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign tasks to employees by skill similarity",
	Long: `Embeds every employee's skills and every task, then assigns each task to
the employee with the highest cosine similarity. Assignment is greedy and
per-task; no load balancing is attempted.

The roster is CSV (columns: name, skills) or YAML. Output columns are
Task, Assigned To, Skills, Confidence.

Example:
  tasker assign --tasks tasks.txt --roster employees.csv --out assignments.csv`,
	RunE: runAssign,
}

func init() {
	assignCmd.Flags().StringVar(&assignTasksPath, "tasks", "", "Task list file, one task per line (required)")
	assignCmd.Flags().StringVar(&assignRosterPath, "roster", "", "Employee roster, CSV or YAML (required)")
	assignCmd.Flags().StringVarP(&assignOut, "out", "o", "", "Write the assignment CSV to this file")
	_ = assignCmd.MarkFlagRequired("tasks")
	_ = assignCmd.MarkFlagRequired("roster")
}

// readTaskList reads one task per line, skipping blanks.
func readTaskList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	var tasks []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tasks = append(tasks, line)
		}
	}
	return tasks, nil
}

func runAssign(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	taskList, err := readTaskList(assignTasksPath)
	if err != nil {
		return err
	}
	employees, err := assign.LoadRosterFile(assignRosterPath)
	if err != nil {
		return err
	}

	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	s := session.New()
	s.Tasks = taskList
	if err := pipeline.AssignTasks(ctx, s, employees); err != nil {
		return err
	}

	logger.Info("Tasks assigned",
		zap.Int("tasks", len(taskList)),
		zap.Int("employees", len(employees)))

	var b strings.Builder
	if err := assign.WriteCSV(&b, s.Assignments); err != nil {
		return err
	}
	return writeOutput(assignOut, strings.TrimRight(b.String(), "\n"))
}
