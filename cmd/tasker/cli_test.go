package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveBriefTemplate(t *testing.T) {
	brief, err := resolveBrief("AI-Powered Customer Support Chatbot", "", "")
	if err != nil {
		t.Fatalf("resolveBrief failed: %v", err)
	}
	if brief.Name != "AI-Powered Customer Support Chatbot" || brief.Description == "" {
		t.Fatalf("template not applied: %+v", brief)
	}
}

func TestResolveBriefExplicitWins(t *testing.T) {
	brief, err := resolveBrief("AI-Powered Customer Support Chatbot", "Custom", "Custom description.")
	if err != nil {
		t.Fatalf("resolveBrief failed: %v", err)
	}
	if brief.Name != "Custom" || brief.Description != "Custom description." {
		t.Fatalf("explicit flags should win over template: %+v", brief)
	}
}

func TestResolveBriefUnknownTemplate(t *testing.T) {
	if _, err := resolveBrief("nope", "", ""); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestReadTaskList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	if err := os.WriteFile(path, []byte("First task\n\n  Second task  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := readTaskList(path)
	if err != nil {
		t.Fatalf("readTaskList failed: %v", err)
	}
	if len(got) != 2 || got[0] != "First task" || got[1] != "Second task" {
		t.Fatalf("readTaskList=%v", got)
	}
}
