// Package config loads application configuration from an optional YAML
// file merged over defaults. API keys come from the environment, never
// from the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/socratic/internal/llm"
)

// LLMConfig selects the completion provider and its models.
type LLMConfig struct {
	Provider       string `yaml:"provider"`
	OpenAIModel    string `yaml:"openai_model"`
	AnthropicModel string `yaml:"anthropic_model"`
	GeminiModel    string `yaml:"gemini_model"`
	EmbeddingModel string `yaml:"embedding_model"`
	TimeoutSecs    int    `yaml:"timeout_secs"`
}

// ChunkerConfig configures how documents are split into chunks.
// Overlap is a pointer so an explicit "overlap: 0" in the file is
// distinguishable from the field being absent.
type ChunkerConfig struct {
	TargetSize int  `yaml:"target_size"`
	Overlap    *int `yaml:"overlap"`
}

// StoreConfig locates the durable data directories.
type StoreConfig struct {
	// DataDir holds vector data, topic maps, and profiles.
	// Default: ~/.local/share/socratic
	DataDir string `yaml:"data_dir"`

	// SessionsDir holds saved session transcripts. Default: <data_dir>/sessions
	SessionsDir string `yaml:"sessions_dir"`
}

// TeachConfig tunes teaching sessions.
type TeachConfig struct {
	MaxTurns  int    `yaml:"max_turns"`
	StudentID string `yaml:"student_id"`
	TopK      int    `yaml:"top_k"`
}

// AppConfig is the root application configuration.
type AppConfig struct {
	LLM     LLMConfig     `yaml:"llm"`
	Chunker ChunkerConfig `yaml:"chunker"`
	Store   StoreConfig   `yaml:"store"`
	Teach   TeachConfig   `yaml:"teach"`
}

// Load reads a config from path. A missing file returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./socratic.yaml first, then
// ~/.config/socratic/config.yaml, then falls back to defaults.
func LoadDefault() (*AppConfig, error) {
	if _, err := os.Stat("socratic.yaml"); err == nil {
		return Load("socratic.yaml")
	}
	home, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(home, ".config", "socratic", "config.yaml")
		if _, err := os.Stat(userPath); err == nil {
			return Load(userPath)
		}
	}
	cfg := defaultConfig()
	applyDefaults(cfg)
	return cfg, nil
}

// LLMConfig translates the YAML settings into the llm package's config,
// with API keys pulled from the environment.
func (c *AppConfig) LLMConfig() (llm.Config, error) {
	cfg := llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	if c.LLM.OpenAIModel != "" {
		cfg.OpenAI.Model = c.LLM.OpenAIModel
	}
	if c.LLM.AnthropicModel != "" {
		cfg.Anthropic.Model = c.LLM.AnthropicModel
	}
	if c.LLM.GeminiModel != "" {
		cfg.Gemini.Model = c.LLM.GeminiModel
	}
	if c.LLM.EmbeddingModel != "" {
		cfg.Embedding.Model = c.LLM.EmbeddingModel
	}
	if c.LLM.TimeoutSecs > 0 {
		cfg.Timeout = time.Duration(c.LLM.TimeoutSecs) * time.Second
	}
	if err := cfg.FromEnv(); err != nil {
		return llm.Config{}, err
	}
	return cfg, nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		LLM: LLMConfig{Provider: "openai"},
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.Chunker.TargetSize == 0 {
		cfg.Chunker.TargetSize = 1500
	}
	if cfg.Chunker.Overlap == nil {
		overlap := 200
		cfg.Chunker.Overlap = &overlap
	}
	if cfg.Store.DataDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.Store.DataDir = filepath.Join(home, ".local", "share", "socratic")
		} else {
			cfg.Store.DataDir = "socratic-data"
		}
	}
	if cfg.Store.SessionsDir == "" {
		cfg.Store.SessionsDir = filepath.Join(cfg.Store.DataDir, "sessions")
	}
	if cfg.Teach.MaxTurns == 0 {
		cfg.Teach.MaxTurns = 5
	}
	if cfg.Teach.StudentID == "" {
		cfg.Teach.StudentID = "default"
	}
	if cfg.Teach.TopK == 0 {
		cfg.Teach.TopK = 3
	}
}
