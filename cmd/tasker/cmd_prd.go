package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasker/internal/prd"
	"tasker/internal/session"
)

var (
	prdName        string
	prdDescription string
	prdTemplate    string
	prdOut         string
)

// prdCmd synthesizes a PRD from a brief
var prdCmd = &cobra.Command{
	Use:   "prd",
	Short: "Synthesize a structured PRD from a project brief",
	Long: `Synthesizes a Product Requirements Document from a project name and
description. Features and tools are pulled from the brief, enriched by draft
generation when a backend is configured, and fall back to fixed catalogs
matched to the detected project domain.

Examples:
  tasker prd --name "Chatbot" --description "Develop a chatbot that can answer customer questions."
  tasker prd --template "E-commerce Website Redesign" --out prd.md`,
	RunE: runPRD,
}

func init() {
	prdCmd.Flags().StringVar(&prdName, "name", "", "Project name")
	prdCmd.Flags().StringVar(&prdDescription, "description", "", "Project description")
	prdCmd.Flags().StringVar(&prdTemplate, "template", "", "Built-in brief template (see 'tasker templates')")
	prdCmd.Flags().StringVarP(&prdOut, "out", "o", "", "Write the PRD markdown to this file")
}

// resolveBrief merges template and explicit flags; explicit values win.
func resolveBrief(templateName, name, description string) (prd.Brief, error) {
	brief := prd.Brief{Name: name, Description: description}
	if templateName != "" {
		tmpl, ok := session.FindTemplate(templateName)
		if !ok {
			return prd.Brief{}, fmt.Errorf("unknown template %q (see 'tasker templates')", templateName)
		}
		if brief.Name == "" {
			brief.Name = tmpl.Name
		}
		if brief.Description == "" {
			brief.Description = tmpl.Description
		}
	}
	return brief, nil
}

func runPRD(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	brief, err := resolveBrief(prdTemplate, prdName, prdDescription)
	if err != nil {
		return err
	}

	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	s := session.New()
	if err := pipeline.GeneratePRD(ctx, s, brief); err != nil {
		return err
	}

	logger.Info("PRD synthesized",
		zap.String("project", s.PRD.Name),
		zap.String("category", string(s.PRD.Category)),
		zap.Int("features", len(s.PRD.Features)),
		zap.Int("tools", len(s.PRD.Tools)))

	return writeOutput(prdOut, s.PRDText)
}
