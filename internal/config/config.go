package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"aim-chat/account-sdk/internal/platform/privacylog"

	"gopkg.in/yaml.v3"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	LogLevel        string
	LogFormat       string
	Output          string
	MnemonicBits    int
	MetricsTextfile string
}

type FileConfig struct {
	Keygen FileKeygenConfig `yaml:"keygen"`
}

type FileKeygenConfig struct {
	LogLevel        string `yaml:"logLevel"`
	LogFormat       string `yaml:"logFormat"`
	Output          string `yaml:"output"`
	MnemonicBits    int    `yaml:"mnemonicBits"`
	MetricsTextfile string `yaml:"metricsTextfile"`
}

func Default() Config {
	return Config{
		LogLevel:     "info",
		LogFormat:    OutputText,
		Output:       OutputText,
		MnemonicBits: 256,
	}
}

// LoadFromPath reads configPath, or the first default location that parses
// when configPath is empty, then applies env overrides. Only an explicit
// path that cannot be read or parsed is an error.
func LoadFromPath(configPath string) (Config, error) {
	cfg := Default()

	candidates := []string{configPath}
	if configPath == "" {
		candidates = []string{"configs/keygen.yaml", "keygen.yaml"}
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if configPath != "" {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
			continue
		}
		var parsed FileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			if configPath != "" {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
			continue
		}
		Merge(&cfg, parsed.Keygen)
		break
	}

	ApplyEnvOverrides(&cfg)
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	return cfg, cfg.Validate()
}

func Merge(dst *Config, src FileKeygenConfig) {
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFormat != "" {
		dst.LogFormat = src.LogFormat
	}
	if src.Output != "" {
		dst.Output = src.Output
	}
	if src.MnemonicBits != 0 {
		dst.MnemonicBits = src.MnemonicBits
	}
	if src.MetricsTextfile != "" {
		dst.MetricsTextfile = src.MetricsTextfile
	}
}

func ApplyEnvOverrides(cfg *Config) {
	if v := envString("ACCOUNT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := envString("ACCOUNT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := envString("ACCOUNT_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := envString("ACCOUNT_METRICS_TEXTFILE"); v != "" {
		cfg.MetricsTextfile = v
	}
	cfg.MnemonicBits = envIntWithFallback("ACCOUNT_MNEMONIC_BITS", cfg.MnemonicBits)
}

func (c Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unsupported output %q", c.Output)
	}
	switch c.LogFormat {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	if c.MnemonicBits != 128 && c.MnemonicBits != 256 {
		return fmt.Errorf("mnemonic bits must be 128 or 256, got %d", c.MnemonicBits)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Logger builds a sanitizing slog logger writing to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var base slog.Handler
	if c.LogFormat == OutputJSON {
		base = slog.NewJSONHandler(w, opts)
	} else {
		base = slog.NewTextHandler(w, opts)
	}
	return slog.New(privacylog.WrapHandler(base))
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envIntWithFallback(key string, fallback int) int {
	raw := envString(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
