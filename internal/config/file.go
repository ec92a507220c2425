package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML overlay. Unset fields keep the built-in
// defaults.
type fileConfig struct {
	DatabaseURL       string   `yaml:"database_url"`
	APIHost           string   `yaml:"api_host"`
	APIPort           int      `yaml:"api_port"`
	CORSAllowOrigins  []string `yaml:"cors_allow_origins"`
	MLBAPIBaseURL     string   `yaml:"mlb_api_base_url"`
	ScraperUserAgent  string   `yaml:"scraper_user_agent"`
	PagePrefixes      []string `yaml:"page_prefixes"`
	ContextTTLSeconds int      `yaml:"context_ttl_seconds"`
	OutputDir         string   `yaml:"output_dir"`
}

// loadFile parses path when non-empty. A missing path is an error because the
// operator asked for it explicitly.
func loadFile(path string) (*fileConfig, error) {
	fc := &fileConfig{}
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func (fc *fileConfig) text(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func (fc *fileConfig) num(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}

func (fc *fileConfig) strs(v, fallback []string) []string {
	if len(v) > 0 {
		return v
	}
	return fallback
}
