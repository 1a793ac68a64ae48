// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for codex configuration.
	DefaultConfigDir = ".codex"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultArchiveFile is the per-world archive database file name.
	DefaultArchiveFile = "codex.db"
)

// Provider names accepted in llm.provider.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// DefaultOllamaURL is Ollama's OpenAI-compatible endpoint.
const DefaultOllamaURL = "http://localhost:11434/v1"

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds the codex configuration (read-only after load).
type Config struct {
	Source     SourceConfig     `yaml:"source,omitempty"`
	World      WorldConfig      `yaml:"world,omitempty"`
	LLM        LLMConfig        `yaml:"llm,omitempty"`
	Generation GenerationConfig `yaml:"generation,omitempty"`
	Embedder   EmbedderConfig   `yaml:"embedder,omitempty"`
	Qdrant     QdrantConfig     `yaml:"qdrant,omitempty"`
	SQLite     SQLiteConfig     `yaml:"sqlite,omitempty"`
	Log        LogConfig        `yaml:"log,omitempty"`
}

// SourceConfig describes the legends export to scan.
type SourceConfig struct {
	Path string `yaml:"path,omitempty"`
	// Encoding is "auto", "utf-8" or "cp437".
	Encoding string `yaml:"encoding,omitempty"`
}

// WorldConfig names the world and where its codex is written.
type WorldConfig struct {
	Name string `yaml:"name,omitempty"`
	// Output defaults to "Codex of <name>.txt".
	Output string `yaml:"output,omitempty"`
}

// LLMConfig holds configuration for the generation backend.
type LLMConfig struct {
	Provider    string   `yaml:"provider,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	APIKey      string   `yaml:"api_key,omitempty"`
	BaseURL     string   `yaml:"base_url,omitempty"`
	MaxTokens   int      `yaml:"max_tokens,omitempty"`
	// Temperature is nil when unset; an explicit 0 is kept.
	Temperature *float32 `yaml:"temperature,omitempty"`
}

// GenerationConfig controls how generation requests are issued.
type GenerationConfig struct {
	Concurrency int           `yaml:"concurrency,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant vector database.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite archive database.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	// When empty it is computed per world using SQLitePathForWorld.
	Path string `yaml:"path,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Path:     "legends.xml",
			Encoding: "auto",
		},
		World: WorldConfig{
			Name: "The Mountainous Prairie",
		},
		LLM: LLMConfig{
			Provider:    ProviderOllama,
			Model:       "phi3",
			MaxTokens:   300,
			Temperature: Float32(0.7),
		},
		Generation: GenerationConfig{
			Concurrency: 1,
		},
		Embedder: EmbedderConfig{
			Provider: ProviderOpenAI,
			Model:    "text-embedding-3-small",
		},
		Qdrant: QdrantConfig{
			Host: "localhost",
			Port: 6334,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the .codex directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'codex init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// LoadOrDefault loads the config file when one exists and otherwise
// returns the defaults, so the pipeline can run without 'codex init'.
func LoadOrDefault(basePath string) (*Config, error) {
	if !Exists(basePath) {
		cfg := Default()
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	return Load(basePath)
}

// applyEnvOverrides fills unset secrets and endpoints from the environment.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if c.LLM.APIKey == "" {
			c.LLM.APIKey = key
		}
		if c.Embedder.APIKey == "" {
			c.Embedder.APIKey = key
		}
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" {
		if c.Qdrant.APIKey == "" {
			c.Qdrant.APIKey = key
		}
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		if c.LLM.BaseURL == "" && c.LLM.Provider == ProviderOllama {
			c.LLM.BaseURL = OllamaBaseURL(host)
		}
	}
}

// OllamaBaseURL turns an OLLAMA_HOST value into the OpenAI-compatible
// endpoint. Ollama accepts bare host:port values, which get an http scheme.
func OllamaBaseURL(host string) string {
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	return strings.TrimSuffix(host, "/") + "/v1"
}

// Float32 returns a pointer to v, for optional config values.
func Float32(v float32) *float32 {
	return &v
}

// OutputPath returns the codex file path for the configured world.
func (c *Config) OutputPath() string {
	if c.World.Output != "" {
		return c.World.Output
	}
	return OutputFileName(c.World.Name)
}

// OutputFileName returns the default codex file name for a world.
func OutputFileName(worldName string) string {
	return fmt.Sprintf("Codex of %s.txt", worldName)
}

// ArchivePath returns the archive database path for the configured world.
func (c *Config) ArchivePath(basePath string) string {
	if c.SQLite.Path != "" {
		return c.SQLite.Path
	}
	return SQLitePathForWorld(basePath, c.World.Name)
}

// FormCollection returns the Qdrant collection for the configured world.
func (c *Config) FormCollection() string {
	if c.Qdrant.Collection != "" {
		return c.Qdrant.Collection
	}
	return GenerateCollectionName(c.World.Name)
}

// ConfigDir returns the path to the .codex config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// SanitizeWorldName converts a world name to a valid collection suffix.
func SanitizeWorldName(name string) string {
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	name = reNonAlphanumeric.ReplaceAllString(name, "")
	name = reMultipleUnderscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}

// GenerateCollectionName creates a form index collection name for a world.
func GenerateCollectionName(worldName string) string {
	return "codex_" + SanitizeWorldName(worldName)
}

// SQLitePathForWorld returns the archive database path for a given world.
func SQLitePathForWorld(basePath, worldName string) string {
	return filepath.Join(WorldDir(basePath, worldName), DefaultArchiveFile)
}

// WorldDir returns the directory path for a given world.
func WorldDir(basePath, worldName string) string {
	return filepath.Join(basePath, DefaultConfigDir, "worlds", SanitizeWorldName(worldName))
}
