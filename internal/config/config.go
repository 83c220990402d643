package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the service reads from its environment.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	LLM           LLMConfig           `yaml:"llm"`
	JobSearch     JobSearchConfig     `yaml:"job_search"`
	Database      DatabaseConfig      `yaml:"database"`

	// MockMode replaces both providers with canned answers.
	MockMode   bool   `yaml:"mock_mode"`
	MockLocale string `yaml:"mock_locale"` // "en" or "nl"
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	APIURL      string `yaml:"api_url"` // internal gateway base URL, informational only
	UploadDir   string `yaml:"upload_dir"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

type TranscriptionConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type LLMConfig struct {
	Provider     string        `yaml:"provider"` // "openai" or "googleai"
	Model        string        `yaml:"model"`
	GeminiAPIKey string        `yaml:"gemini_api_key"`
	Timeout      time.Duration `yaml:"timeout"`
}

type JobSearchConfig struct {
	URL     string        `yaml:"url"`
	Mock    bool          `yaml:"mock"`
	Timeout time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // empty disables the run audit log
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:        8080,
			APIURL:      "http://localhost:8080/api",
			UploadDir:   "uploads",
			MaxUploadMB: 25,
		},
		Transcription: TranscriptionConfig{
			Model:   "whisper-1",
			Timeout: 2 * time.Minute,
		},
		LLM: LLMConfig{
			Provider: "openai",
			Timeout:  30 * time.Second,
		},
		JobSearch: JobSearchConfig{
			URL:     "https://accentjobs.be/api/accj/job/search",
			Timeout: 30 * time.Second,
		},
		MockLocale: "en",
	}
}

// Load reads .env files, an optional YAML file named by CONFIG_FILE and
// finally the process environment, later sources winning.
func Load() (*Config, error) {
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err == nil {
			log.Printf("Loaded environment from %s", f)
		}
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// Without a key there is nothing to call.
	if cfg.Transcription.APIKey == "" {
		cfg.MockMode = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.APIURL, "API_URL")
	setString(&c.Server.UploadDir, "UPLOAD_DIR")
	setString(&c.Transcription.APIKey, "OPENAI_API_KEY")
	setString(&c.Transcription.Model, "TRANSCRIPTION_MODEL")
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.JobSearch.URL, "JOB_SEARCH_URL")
	setString(&c.Database.DSN, "DATABASE_URL")
	setString(&c.MockLocale, "MOCK_LOCALE")

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_MB: %w", err)
		}
		c.Server.MaxUploadMB = mb
	}

	bools := map[string]*bool{
		"MOCK_MODE":       &c.MockMode,
		"MOCK_JOB_SEARCH": &c.JobSearch.Mock,
	}
	for name, dst := range bools {
		if v := os.Getenv(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = b
		}
	}

	durations := map[string]*time.Duration{
		"TRANSCRIBE_TIMEOUT": &c.Transcription.Timeout,
		"EXTRACT_TIMEOUT":    &c.LLM.Timeout,
		"SEARCH_TIMEOUT":     &c.JobSearch.Timeout,
	}
	for name, dst := range durations {
		if v := os.Getenv(name); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = d
		}
	}
	return nil
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.UploadDir == "" {
		return fmt.Errorf("upload dir cannot be empty")
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Transcription.Timeout <= 0 || c.LLM.Timeout <= 0 || c.JobSearch.Timeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	switch c.LLM.Provider {
	case "openai", "googleai":
	default:
		return fmt.Errorf("llm provider must be openai or googleai, got %q", c.LLM.Provider)
	}
	if c.LLM.Provider == "googleai" && !c.MockMode && c.LLM.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for the googleai provider")
	}
	switch c.MockLocale {
	case "en", "nl":
	default:
		return fmt.Errorf("mock locale must be en or nl, got %q", c.MockLocale)
	}
	if c.JobSearch.URL == "" && !c.JobSearch.Mock {
		return fmt.Errorf("job search url cannot be empty")
	}
	return nil
}
