package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "KNOWLEDGE_EXTRACTOR_CONFIG"
	sqlitePathEnv    = "SQLITE_PATH"
	httpAddrEnv      = "HTTP_ADDR"
	logLevelEnv      = "LOG_LEVEL"
	openAIAPIKeyEnv  = "OPENAI_API_KEY"
	openAIModelEnv   = "OPENAI_MODEL"
	openAIBaseURLEnv = "OPENAI_BASE_URL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig describes where the sqlite file lives. An empty path
// selects the in-memory store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig defines the HTTP listener and template location.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	TemplateGlob string `yaml:"templateGlob"`
}

// OpenAIConfig defines how to contact the chat-completions API. An
// empty API key selects the canned generator.
type OpenAIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(sqlitePathEnv); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv(httpAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(openAIBaseURLEnv); v != "" {
		c.OpenAI.Endpoint = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.TemplateGlob != "" {
		base.Server.TemplateGlob = override.Server.TemplateGlob
	}

	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database: DatabaseConfig{Path: "text_analysis.db"},
		Server: ServerConfig{
			Addr:         ":8080",
			TemplateGlob: "web/templates/*.html",
		},
		OpenAI: OpenAIConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-3.5-turbo",
			APIKey:   "",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
