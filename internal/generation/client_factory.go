package generation

import (
	"fmt"
	"time"

	"tasker/internal/config"
	"tasker/internal/logging"
)

// NewClientFromConfig creates a draft generator client from the user config.
func NewClientFromConfig(cfg *config.UserConfig) (Client, error) {
	gen := cfg.GetGeneration()

	switch gen.Provider {
	case "gemini":
		apiKey := cfg.ResolveGeminiAPIKey()
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider selected but no API key found; set gemini_api_key in config or GEMINI_API_KEY in the environment")
		}
		gcfg := DefaultGeminiConfig(apiKey)
		if gen.Model != "" {
			gcfg.Model = gen.Model
		}
		if gen.TimeoutSeconds > 0 {
			gcfg.Timeout = time.Duration(gen.TimeoutSeconds) * time.Second
		}
		logging.Generator("Creating Gemini draft client: model=%s", gcfg.Model)
		return NewGeminiClientWithConfig(gcfg), nil

	case "ollama", "":
		ocfg := DefaultOllamaConfig()
		if gen.OllamaEndpoint != "" {
			ocfg.Endpoint = gen.OllamaEndpoint
		}
		if gen.Model != "" {
			ocfg.Model = gen.Model
		}
		if gen.TimeoutSeconds > 0 {
			ocfg.Timeout = time.Duration(gen.TimeoutSeconds) * time.Second
		}
		logging.Generator("Creating Ollama draft client: endpoint=%s model=%s", ocfg.Endpoint, ocfg.Model)
		return NewOllamaClient(ocfg), nil

	default:
		return nil, fmt.Errorf("unsupported generation provider: %s (use 'gemini' or 'ollama')", gen.Provider)
	}
}

// NewClientFromEnv creates a client from config file or environment variables.
func NewClientFromEnv() (Client, error) {
	cfg, err := config.LoadUserConfig(config.DefaultUserConfigPath())
	if err != nil || cfg == nil {
		cfg = config.DefaultUserConfig()
	}
	// Without an API key anywhere, fall back to the local backend.
	if cfg.ResolveGeminiAPIKey() == "" && (cfg.Generation == nil || cfg.Generation.Provider == "") {
		cfg.SetGenerationProvider("ollama")
	}
	return NewClientFromConfig(cfg)
}
