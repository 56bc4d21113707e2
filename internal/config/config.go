// Package config provides configuration loading and validation for the CLI.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults
const (
	DefaultProfile     = "data/user_profile_resume_format.yaml"
	DefaultStyle       = "default"
	DefaultOutputDir   = "outputs/tailored_resumes"
	DefaultFormat      = "pdf"
	DefaultProvider    = "gemini"
	DefaultIdleTimeout = 10
)

// API key environment variables per provider
var apiKeyEnv = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	JobURL  string `json:"job_url,omitempty"` // URL or local file of the job posting
	Profile string `json:"profile,omitempty"` // Path to the base profile YAML
	Style   string `json:"style,omitempty"`   // Résumé style name

	// Output
	OutputDir string `json:"output_dir,omitempty"`
	Format    string `json:"format,omitempty" validate:"omitempty,oneof=pdf html"`
	StylesDir string `json:"styles_dir,omitempty"` // Directory overriding embedded styles and template

	// LLM
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=gemini anthropic"`
	Model    string `json:"model,omitempty"`   // Overrides the model for every tier
	APIKey   string `json:"api_key,omitempty"` // Falls back to the provider's environment variable

	// Behavior
	UseBrowser         bool `json:"use_browser,omitempty"` // Use headless browser for SPA sites
	Verbose            bool `json:"verbose,omitempty"`     // Print detailed debug information
	StepTimeoutSeconds int  `json:"step_timeout_seconds,omitempty" validate:"gte=0"`
	IdleTimeoutSeconds int  `json:"idle_timeout_seconds,omitempty" validate:"gte=0"`

	// ForbiddenPhrases replaces the built-in list checked after tailoring; an empty list disables the check
	ForbiddenPhrases []string `json:"forbidden_phrases,omitempty"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Profile:            DefaultProfile,
		Style:              DefaultStyle,
		OutputDir:          DefaultOutputDir,
		Format:             DefaultFormat,
		Provider:           DefaultProvider,
		IdleTimeoutSeconds: DefaultIdleTimeout,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by the CLI after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config error: %w", err)
		}
		fe := verrs[0]
		switch fe.Tag() {
		case "oneof":
			return fmt.Errorf("config error: '%s' must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
		case "gte":
			return fmt.Errorf("config error: '%s' must be non-negative", fe.Field())
		default:
			return fmt.Errorf("config error: '%s' failed %s validation", fe.Field(), fe.Tag())
		}
	}

	if c.StylesDir != "" {
		info, err := os.Stat(c.StylesDir)
		if err != nil {
			return fmt.Errorf("config error: styles directory not found: %s", c.StylesDir)
		}
		if !info.IsDir() {
			return fmt.Errorf("config error: styles_dir is not a directory: %s", c.StylesDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.JobURL, defaults.JobURL)
	fill(&result.Profile, defaults.Profile)
	fill(&result.Style, defaults.Style)
	fill(&result.OutputDir, defaults.OutputDir)
	fill(&result.Format, defaults.Format)
	fill(&result.StylesDir, defaults.StylesDir)
	fill(&result.Provider, defaults.Provider)
	fill(&result.Model, defaults.Model)
	fill(&result.APIKey, defaults.APIKey)

	// Int fields: use default if zero
	if result.StepTimeoutSeconds == 0 {
		result.StepTimeoutSeconds = defaults.StepTimeoutSeconds
	}
	if result.IdleTimeoutSeconds == 0 {
		result.IdleTimeoutSeconds = defaults.IdleTimeoutSeconds
	}

	if result.ForbiddenPhrases == nil {
		result.ForbiddenPhrases = defaults.ForbiddenPhrases
	}

	// Bool fields: cannot distinguish unset from false, so true wins
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// ResolveAPIKey returns the configured key or the provider's environment variable
func (c *Config) ResolveAPIKey() (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	provider := c.Provider
	if provider == "" {
		provider = DefaultProvider
	}
	env, ok := apiKeyEnv[provider]
	if !ok {
		return "", fmt.Errorf("unknown provider: %s", provider)
	}
	if key := os.Getenv(env); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("API key is required (set --api-key or %s)", env)
}

// StepTimeout returns the per-step timeout, zero when unlimited
func (c *Config) StepTimeout() time.Duration {
	return time.Duration(c.StepTimeoutSeconds) * time.Second
}

// IdleTimeout returns the PDF renderer's network-idle wait
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}
