package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const (
	DefaultConfigDir  = ".eventsync"
	DefaultConfigFile = "config.json"
	EnvPrefix         = "EVENTSYNC"
)

// Load reads the config file, applies EVENTSYNC_* environment overrides and
// resolves the mentions file. A missing config file is not an error: inside a
// GitHub Actions run everything usually comes from the environment.
func Load(configPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(home, DefaultConfigDir))
	}

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Lark.MentionsFile = expandHome(cfg.Lark.MentionsFile, home)
	if cfg.Lark.MentionsFile != "" {
		fromFile, err := LoadMentions(cfg.Lark.MentionsFile)
		if err != nil {
			return nil, err
		}
		cfg.Lark.fileMentions = fromFile
	}
	cfg.Lark.Mentions = MergeMentions(cfg.Lark.fileMentions, cfg.Lark.Mentions)
	return &cfg, nil
}

// LoadMentions reads a YAML mapping of GitHub login to Lark open ID.
func LoadMentions(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's config
	if err != nil {
		return nil, fmt.Errorf("reading mentions file: %w", err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing mentions file %s: %w", path, err)
	}
	return MergeMentions(nil, m), nil
}

// MergeMentions returns base overlaid with override, keyed by lowercased
// GitHub login. Neither input is modified.
func MergeMentions(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[strings.ToLower(k)] = v
	}
	for k, v := range override {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Save writes the config to disk as JSON.
func Save(cfg *Config, configPath string) error {
	if configPath == "" {
		p, err := ConfigPath("")
		if err != nil {
			return err
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialising config: %w", err)
	}

	return os.WriteFile(configPath, data, 0o600)
}

// ConfigPath returns the effective config file path.
func ConfigPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("lark.webhook_url", "")
	v.SetDefault("lark.secret", "")
	v.SetDefault("lark.mentions_file", "")
	v.SetDefault("lark.timeout_seconds", 10)

	v.SetDefault("github.token", "")
	v.SetDefault("github.host", "github.com")

	v.SetDefault("gateway.addr", ":8080")
	v.SetDefault("gateway.webhook_secret", "")
}

// bindEnv wires keys viper would otherwise not look up during Unmarshal.
// GITHUB_TOKEN is honoured so the Actions-provided token works without renaming.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("audit.essential_files")
	_ = v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || strings.Contains(err.Error(), "no such file")
}
