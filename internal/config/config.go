// Package config loads and saves user configuration from .tasker/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig holds user-level settings persisted in .tasker/config.json.
type UserConfig struct {
	Generation *GenerationConfig `json:"generation,omitempty"`
	Embedding  *EmbeddingConfig  `json:"embedding,omitempty"`
	Logging    *LoggingConfig    `json:"logging,omitempty"`
	Email      *EmailConfig      `json:"email,omitempty"`
}

// GenerationConfig configures the text generation backend.
type GenerationConfig struct {
	// Provider: "gemini" or "ollama"
	Provider string `json:"provider,omitempty"`

	// Model name for the selected provider.
	Model string `json:"model,omitempty"`

	// Gemini configuration.
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`

	// Ollama configuration (local generation server).
	OllamaEndpoint string `json:"ollama_endpoint,omitempty"` // Default: "http://localhost:11434"

	// Request timeout in seconds.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`

	// MaxPromptChars caps prompt length sent to the generator; the tail of
	// longer prompts is kept.
	MaxPromptChars int `json:"max_prompt_chars,omitempty"`
}

// EmbeddingConfig configures the vector embedding engine.
// Supports Ollama (local) and GenAI (cloud) backends.
type EmbeddingConfig struct {
	// Provider: "ollama" or "genai"
	Provider string `json:"provider,omitempty"`

	// Ollama configuration (local embedding server).
	OllamaEndpoint string `json:"ollama_endpoint,omitempty"` // Default: "http://localhost:11434"
	OllamaModel    string `json:"ollama_model,omitempty"`    // Default: "embeddinggemma"

	// GenAI configuration (Google cloud embedding).
	GenAIAPIKey string `json:"genai_api_key,omitempty"`
	GenAIModel  string `json:"genai_model,omitempty"` // Default: "gemini-embedding-001"

	// TaskType for GenAI embeddings, e.g. SEMANTIC_SIMILARITY or CLUSTERING.
	TaskType string `json:"task_type,omitempty"` // Default: "SEMANTIC_SIMILARITY"
}

// LoggingConfig configures categorized file logging.
type LoggingConfig struct {
	Level      string          `json:"level,omitempty"`      // debug, info, warn, error
	DebugMode  bool            `json:"debug_mode,omitempty"` // Master toggle - false = no logging
	Categories map[string]bool `json:"categories,omitempty"` // Per-category toggles
}

// EmailConfig configures assignment email composition.
type EmailConfig struct {
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// GetGeneration returns generation settings with defaults applied.
// TASKER_PROVIDER and TASKER_OLLAMA_ENDPOINT environment variables
// override the corresponding config values.
func (c *UserConfig) GetGeneration() GenerationConfig {
	cfg := GenerationConfig{}
	if c.Generation != nil {
		cfg = *c.Generation
	}
	if v := os.Getenv("TASKER_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("TASKER_OLLAMA_ENDPOINT"); v != "" {
		cfg.OllamaEndpoint = v
	}
	if cfg.OllamaEndpoint == "" {
		cfg.OllamaEndpoint = "http://localhost:11434"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 120
	}
	if cfg.MaxPromptChars <= 0 {
		cfg.MaxPromptChars = 3400
	}
	return cfg
}

// GetEmbedding returns embedding settings with defaults applied.
func (c *UserConfig) GetEmbedding() EmbeddingConfig {
	cfg := EmbeddingConfig{}
	if c.Embedding != nil {
		cfg = *c.Embedding
	}
	if cfg.Provider == "" {
		cfg.Provider = "ollama"
	}
	if cfg.OllamaEndpoint == "" {
		cfg.OllamaEndpoint = "http://localhost:11434"
	}
	if cfg.OllamaModel == "" {
		cfg.OllamaModel = "embeddinggemma"
	}
	if cfg.GenAIModel == "" {
		cfg.GenAIModel = "gemini-embedding-001"
	}
	if cfg.TaskType == "" {
		cfg.TaskType = "SEMANTIC_SIMILARITY"
	}
	return cfg
}

// GetLogging returns logging settings with defaults applied.
// DebugMode defaults to false unless explicitly set.
func (c *UserConfig) GetLogging() LoggingConfig {
	cfg := LoggingConfig{}
	if c.Logging != nil {
		cfg = *c.Logging
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// GetEmail returns email settings with defaults applied.
func (c *UserConfig) GetEmail() EmailConfig {
	cfg := EmailConfig{}
	if c.Email != nil {
		cfg = *c.Email
	}
	if cfg.From == "" {
		cfg.From = "pm@example.com"
	}
	if cfg.To == "" {
		cfg.To = "team@example.com"
	}
	if cfg.Subject == "" {
		cfg.Subject = "Task Assignment Report"
	}
	if cfg.Signature == "" {
		cfg.Signature = "Best regards,\nTasker Team"
	}
	return cfg
}

// ResolveGeminiAPIKey returns the Gemini API key to use.
// Priority: explicit config value, then the GEMINI_API_KEY environment variable.
func (c *UserConfig) ResolveGeminiAPIKey() string {
	if c.Generation != nil && c.Generation.GeminiAPIKey != "" {
		return c.Generation.GeminiAPIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

// ResolveGenAIAPIKey returns the GenAI embedding API key to use.
// Priority: explicit config value, then GEMINI_API_KEY environment variable.
func (c *UserConfig) ResolveGenAIAPIKey() string {
	if c.Embedding != nil && c.Embedding.GenAIAPIKey != "" {
		return c.Embedding.GenAIAPIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

// SetGenerationProvider records the active generation provider.
func (c *UserConfig) SetGenerationProvider(provider string) {
	if c.Generation == nil {
		c.Generation = &GenerationConfig{}
	}
	c.Generation.Provider = provider
}

// LoadUserConfig loads configuration from the given path.
// A missing file is not an error; an empty config is returned.
func LoadUserConfig(path string) (*UserConfig, error) {
	cfg := &UserConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the given path, creating directories as needed.
func (c *UserConfig) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// DefaultUserConfig returns a UserConfig with sensible defaults.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Generation: &GenerationConfig{
			Provider: "ollama",
			Model:    "gemma3",
		},
		Embedding: &EmbeddingConfig{
			Provider:    "ollama",
			OllamaModel: "embeddinggemma",
		},
	}
}

// DefaultUserConfigPath returns the default path to .tasker/config.json.
func DefaultUserConfigPath() string {
	root, err := FindWorkspaceRoot()
	if err != nil {
		return filepath.Join(".tasker", "config.json")
	}
	return filepath.Join(root, ".tasker", "config.json")
}

// FindWorkspaceRoot walks up from the current directory looking for a
// .tasker directory or go.mod. Falls back to the current directory.
func FindWorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	originalDir := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, ".tasker")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return originalDir, nil
}
