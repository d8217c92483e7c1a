package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// StorageClass names the object-storage tier a bucket lives in.
type StorageClass string

const (
	ClassStandard StorageClass = "standard"
	ClassGlacier  StorageClass = "glacier"
)

// Config is the TOML document of spec.md §6.2: everything snapvault
// needs to reach a repository's bucket, short of the passphrase.
type Config struct {
	Class       StorageClass `toml:"class"`
	AccessKeyID string       `toml:"access_key_id"`
	SecretKey   string       `toml:"secret_key"`
	Region      string       `toml:"region"`
	BucketName  string       `toml:"bucket_name"`
}

// Load reads and decodes the TOML document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate rejects a Config that is missing a field the rest of
// snapvault cannot operate without.
func (c *Config) Validate() error {
	switch c.Class {
	case ClassStandard, ClassGlacier:
	case "":
		return fmt.Errorf("config: class is required")
	default:
		return fmt.Errorf("config: unrecognized class %q", c.Class)
	}
	if c.BucketName == "" {
		return fmt.Errorf("config: bucket_name is required")
	}
	if c.Region == "" {
		return fmt.Errorf("config: region is required")
	}
	return nil
}
