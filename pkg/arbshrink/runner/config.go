package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/tailscale/hujson"
)

// Config holds all runner options.
type Config struct {
	// Cases is the number of random cases [Check] runs.
	Cases int `json:"cases"`

	// MaxLocalRejects bounds generation attempts discarded because the
	// constructor reported malformed input.
	MaxLocalRejects int `json:"max_local_rejects"` //nolint:tagliatelle // snake_case for config file

	// MaxGlobalRejects bounds inputs discarded by the property via [ErrReject].
	MaxGlobalRejects int `json:"max_global_rejects"` //nolint:tagliatelle // snake_case for config file

	// MaxShrinkIters bounds property evaluations during shrinking.
	MaxShrinkIters int `json:"max_shrink_iters"` //nolint:tagliatelle // snake_case for config file

	// Seed seeds the random source. 0 picks a time-based seed.
	Seed int64 `json:"seed"`

	// Regressions is the path of the regression file. Empty disables
	// persistence.
	Regressions string `json:"regressions,omitempty"`

	// LogLevel is a logrus level name.
	LogLevel string `json:"log_level,omitempty"` //nolint:tagliatelle // snake_case for config file
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Cases:            256,
		MaxLocalRejects:  65536,
		MaxGlobalRejects: 1024,
		MaxShrinkIters:   4096,
		LogLevel:         "warn",
	}
}

// Environment variables read by [LoadConfig].
const (
	EnvConfig           = "ARBSHRINK_CONFIG"
	EnvCases            = "ARBSHRINK_CASES"
	EnvMaxLocalRejects  = "ARBSHRINK_MAX_LOCAL_REJECTS"
	EnvMaxGlobalRejects = "ARBSHRINK_MAX_GLOBAL_REJECTS"
	EnvMaxShrinkIters   = "ARBSHRINK_MAX_SHRINK_ITERS"
	EnvSeed             = "ARBSHRINK_SEED"
	EnvRegressions      = "ARBSHRINK_REGRESSIONS"
	EnvLogLevel         = "ARBSHRINK_LOG_LEVEL"
)

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	ConfigPath string            // explicit config file; falls back to $ARBSHRINK_CONFIG
	Env        map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Config file (ConfigPath, else $ARBSHRINK_CONFIG; HuJSON, comments allowed)
// 3. ARBSHRINK_* environment variables.
func LoadConfig(input LoadConfigInput) (Config, error) {
	cfg := DefaultConfig()

	path := input.ConfigPath
	if path == "" {
		path = input.Env[EnvConfig]
	}

	if path != "" {
		_, statErr := os.Stat(path)
		if statErr != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		overlay, err := parseConfig(data)
		if err != nil {
			return Config{}, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
		}

		cfg = mergeConfig(cfg, overlay)
	}

	cfg, err := applyEnv(cfg, input.Env)
	if err != nil {
		return Config{}, err
	}

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	return cfg, nil
}

// fileConfig mirrors Config with optional fields so explicit zeros in a file
// are distinguishable from absent keys.
type fileConfig struct {
	Cases            *int    `json:"cases"`
	MaxLocalRejects  *int    `json:"max_local_rejects"`  //nolint:tagliatelle // snake_case for config file
	MaxGlobalRejects *int    `json:"max_global_rejects"` //nolint:tagliatelle // snake_case for config file
	MaxShrinkIters   *int    `json:"max_shrink_iters"`   //nolint:tagliatelle // snake_case for config file
	Seed             *int64  `json:"seed"`
	Regressions      *string `json:"regressions"`
	LogLevel         *string `json:"log_level"` //nolint:tagliatelle // snake_case for config file
}

func parseConfig(data []byte) (fileConfig, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg fileConfig

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return cfg, nil
}

func mergeConfig(base Config, overlay fileConfig) Config {
	if overlay.Cases != nil {
		base.Cases = *overlay.Cases
	}

	if overlay.MaxLocalRejects != nil {
		base.MaxLocalRejects = *overlay.MaxLocalRejects
	}

	if overlay.MaxGlobalRejects != nil {
		base.MaxGlobalRejects = *overlay.MaxGlobalRejects
	}

	if overlay.MaxShrinkIters != nil {
		base.MaxShrinkIters = *overlay.MaxShrinkIters
	}

	if overlay.Seed != nil {
		base.Seed = *overlay.Seed
	}

	if overlay.Regressions != nil {
		base.Regressions = *overlay.Regressions
	}

	if overlay.LogLevel != nil {
		base.LogLevel = *overlay.LogLevel
	}

	return base
}

func applyEnv(cfg Config, env map[string]string) (Config, error) {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvCases, &cfg.Cases},
		{EnvMaxLocalRejects, &cfg.MaxLocalRejects},
		{EnvMaxGlobalRejects, &cfg.MaxGlobalRejects},
		{EnvMaxShrinkIters, &cfg.MaxShrinkIters},
	}

	for _, field := range ints {
		raw, ok := env[field.key]
		if !ok || raw == "" {
			continue
		}

		v, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %w", ErrConfigInvalid, field.key, raw, err)
		}

		*field.dst = v
	}

	if raw := env[EnvSeed]; raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %w", ErrConfigInvalid, EnvSeed, raw, err)
		}

		cfg.Seed = seed
	}

	if raw, ok := env[EnvRegressions]; ok {
		cfg.Regressions = raw
	}

	if raw := env[EnvLogLevel]; raw != "" {
		cfg.LogLevel = raw
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	if cfg.Cases <= 0 {
		return fmt.Errorf("%w: cases must be > 0, got %d", ErrConfigInvalid, cfg.Cases)
	}

	if cfg.MaxLocalRejects < 0 {
		return fmt.Errorf("%w: max_local_rejects must be >= 0, got %d", ErrConfigInvalid, cfg.MaxLocalRejects)
	}

	if cfg.MaxGlobalRejects < 0 {
		return fmt.Errorf("%w: max_global_rejects must be >= 0, got %d", ErrConfigInvalid, cfg.MaxGlobalRejects)
	}

	if cfg.MaxShrinkIters < 0 {
		return fmt.Errorf("%w: max_shrink_iters must be >= 0, got %d", ErrConfigInvalid, cfg.MaxShrinkIters)
	}

	if cfg.LogLevel != "" {
		_, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
		}
	}

	return nil
}
