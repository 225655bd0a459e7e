package calq

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
)

// Config carries engine-wide settings. The zero value is not usable; start
// from DefaultConfig or LoadConfig.
type Config struct {
	// DefaultPrecision applies when neither the caller nor the target unit
	// specifies display precision.
	DefaultPrecision int `yaml:"default_precision"`
	// EssentialCategories is the first-paint set warmed by Initialize.
	EssentialCategories []string `yaml:"essential_categories"`
	// SearchLimit caps search results when the caller passes no limit.
	SearchLimit int `yaml:"search_limit"`
	// SyncBatch disables the background batch worker entirely.
	SyncBatch bool `yaml:"sync_batch"`
	// DashboardPort is used by the playground server, 0 disables it.
	DashboardPort int `yaml:"dashboard_port"`
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		DefaultPrecision:    2,
		EssentialCategories: []string{"length", "mass", "temperature"},
		SearchLimit:         20,
		DashboardPort:       9090,
	}
}

// LoadConfig reads a YAML config file, layering it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) essentialIDs() []catalog.CategoryID {
	ids := make([]catalog.CategoryID, len(c.EssentialCategories))
	for i, s := range c.EssentialCategories {
		ids[i] = catalog.CategoryID(s)
	}
	return ids
}
