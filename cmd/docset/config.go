package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/docset/docset/stores"
	"gopkg.in/yaml.v3"
)

// storeConfig is the YAML shape of the --config file. backend selects the
// driver; the remaining fields apply to the backend they name.
type storeConfig struct {
	Backend string `yaml:"backend"` // memory, file, or s3

	// file backend
	Dir string `yaml:"dir"`

	// s3 backend
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Prefix          string `yaml:"prefix"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
}

func loadConfig(path string) (*storeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg storeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Backend == "" {
		cfg.Backend = string(stores.DriverFile)
	}
	return &cfg, nil
}

func (c *storeConfig) open(ctx context.Context) (stores.Store, error) {
	switch stores.Driver(c.Backend) {
	case stores.DriverMemory:
		return stores.NewMemory(), nil
	case stores.DriverFile:
		return stores.NewFile(c.Dir)
	case stores.DriverS3:
		return stores.NewS3(ctx, stores.S3Config{
			Region:          c.Region,
			Bucket:          c.Bucket,
			Prefix:          c.Prefix,
			Endpoint:        c.Endpoint,
			AccessKeyID:     c.AccessKeyID,
			SecretAccessKey: c.SecretAccessKey,
			PathStyle:       c.PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}
