package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the Facet configuration
type Config struct {
	Icon            string   `json:"icon,omitempty"`
	Sections        []string `json:"sections,omitempty"`
	UsageURL        string   `json:"usage_url,omitempty"`
	CachePath       string   `json:"cache_path,omitempty"`
	CredentialsPath string   `json:"credentials_path,omitempty"`
	CacheTTLSeconds int      `json:"cache_ttl_seconds,omitempty"`
}

// DefaultSections returns the default segment order
func DefaultSections() []string {
	return []string{"session", "dir", "context", "quota", "duration"}
}

// Load reads and merges configuration from all config files, then applies
// environment overrides. Precedence, lowest to highest: global config,
// project config, local overrides, ~/.claude/facet.env, process env.
func Load(projectDir string) Config {
	cfg := Config{}

	if globalCfg, err := loadFile(globalConfigPath()); err == nil {
		cfg = mergeCfg(cfg, globalCfg)
	}

	if projectDir != "" {
		projectCfgPath := filepath.Join(projectDir, ".claude", "facet.json")
		if projectCfg, err := loadFile(projectCfgPath); err == nil {
			cfg = mergeCfg(cfg, projectCfg)
		}

		localCfgPath := filepath.Join(projectDir, ".claude", "facet.local.json")
		if localCfg, err := loadFile(localCfgPath); err == nil {
			cfg = mergeCfg(cfg, localCfg)
		}
	}

	// godotenv does not override variables already set in the process
	godotenv.Load(envFilePath())
	applyEnv(&cfg)

	return cfg
}

func globalConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".claude", "facet-config.json")
}

func envFilePath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".claude", "facet.env")
}

// SegmentsDir returns the path to the external segment scripts directory
func SegmentsDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".claude", "facet-segments")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FACET_USAGE_URL"); v != "" {
		cfg.UsageURL = v
	}
	if v := os.Getenv("FACET_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("FACET_CREDENTIALS_PATH"); v != "" {
		cfg.CredentialsPath = v
	}
	if v := os.Getenv("FACET_CACHE_TTL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.CacheTTLSeconds = secs
		}
	}
}

func loadFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = json.Unmarshal(data, &cfg)
	return cfg, err
}

func mergeCfg(base, overlay Config) Config {
	if overlay.Icon != "" {
		base.Icon = overlay.Icon
	}
	if overlay.Sections != nil {
		base.Sections = overlay.Sections
	}
	if overlay.UsageURL != "" {
		base.UsageURL = overlay.UsageURL
	}
	if overlay.CachePath != "" {
		base.CachePath = overlay.CachePath
	}
	if overlay.CredentialsPath != "" {
		base.CredentialsPath = overlay.CredentialsPath
	}
	if overlay.CacheTTLSeconds != 0 {
		base.CacheTTLSeconds = overlay.CacheTTLSeconds
	}
	return base
}

// GetSections returns the configured segment order
func (c Config) GetSections() []string {
	if len(c.Sections) == 0 {
		return DefaultSections()
	}
	return c.Sections
}

// CacheTTL returns the quota cache freshness window
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds > 0 {
		return time.Duration(c.CacheTTLSeconds) * time.Second
	}
	return 30 * time.Second
}

// Init creates a new project config file
func Init(dir string) error {
	configDir := filepath.Join(dir, ".claude")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "facet.json")
	if _, err := os.Stat(configPath); err == nil {
		return os.ErrExist
	}

	cfg := Config{
		Sections: DefaultSections(),
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// InitGlobal creates a new global config file
func InitGlobal() error {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".claude")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "facet-config.json")
	if _, err := os.Stat(configPath); err == nil {
		return os.ErrExist
	}

	cfg := Config{
		Sections: DefaultSections(),
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
