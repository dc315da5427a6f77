// Package config provides configuration management for schemaforge using
// Viper, loading from a .schemaforge.yml file with SCHEMAFORGE_-prefixed
// environment overrides.
//
// Reserved module names, special manifest entries, and the ecosystem table
// are all configuration data with sensible defaults, never hidden globals,
// so every invocation can override them.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/schemaforge/schemaforge/internal/manifest"
)

type Config struct {
	// SchemaRoot is the canonical schema tree: one subdirectory per module.
	SchemaRoot string `yaml:"schema_root" mapstructure:"schema_root"`
	// TemplateDir overrides the builtin scaffold template set when non-empty.
	TemplateDir string `yaml:"template_dir" mapstructure:"template_dir"`
	// ReservedNames are directory names that are never modules: excluded from
	// discovery and refused by the scaffolder.
	ReservedNames []string `yaml:"reserved_names" mapstructure:"reserved_names"`
	// Ecosystems is the full per-ecosystem table: manifests, member path
	// templates, special entries, client roots, and orphan allow-lists.
	Ecosystems []manifest.Ecosystem `yaml:"ecosystems" mapstructure:"ecosystems"`
	Log        LogConfig            `yaml:"log" mapstructure:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultReservedNames lists schema-root directories that are infrastructure,
// not modules.
func DefaultReservedNames() []string {
	return []string{"clients", "docs", "scripts", "templates", "tools"}
}

// DefaultEcosystems returns the five ecosystem definitions at their
// conventional repository paths.
func DefaultEcosystems() []manifest.Ecosystem {
	return []manifest.Ecosystem{
		{
			Name:           "go",
			Format:         manifest.FormatGoWork,
			Manifest:       "go.work",
			MemberTemplate: "./clients/go/{module}",
			ClientRoot:     "clients/go",
			MetadataFile:   "go.mod",
			AllowList:      []string{"vendor"},
		},
		{
			Name:           "rust",
			Format:         manifest.FormatCargo,
			Manifest:       "Cargo.toml",
			MemberTemplate: "clients/rust/{module}",
			ClientRoot:     "clients/rust",
			MetadataFile:   "Cargo.toml",
			AllowList:      []string{"target"},
		},
		{
			Name:           "python",
			Format:         manifest.FormatUV,
			Manifest:       "pyproject.toml",
			MemberTemplate: "clients/python/{module}",
			ClientRoot:     "clients/python",
			MetadataFile:   "pyproject.toml",
			AllowList:      []string{"__pycache__"},
		},
		{
			Name:           "typescript",
			Format:         manifest.FormatPackageJSON,
			Manifest:       "package.json",
			MemberTemplate: "clients/typescript/{module}",
			ClientRoot:     "clients/typescript",
			MetadataFile:   "package.json",
			AllowList:      []string{"node_modules"},
		},
		{
			Name:           "java",
			Format:         manifest.FormatPOM,
			Manifest:       "pom.xml",
			MemberTemplate: "clients/java/{module}",
			ClientRoot:     "clients/java",
			MetadataFile:   "pom.xml",
			AllowList:      []string{"target"},
		},
	}
}

// Load builds the configuration from viper's current state, applies defaults,
// and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SchemaRoot == "" {
		c.SchemaRoot = "schemas"
	}
	if len(c.ReservedNames) == 0 {
		c.ReservedNames = DefaultReservedNames()
	}
	if len(c.Ecosystems) == 0 {
		c.Ecosystems = DefaultEcosystems()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks the ecosystem table for completeness and consistency.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Ecosystems))
	for _, eco := range c.Ecosystems {
		if eco.Name == "" {
			return fmt.Errorf("ecosystem with empty name")
		}
		if _, dup := seen[eco.Name]; dup {
			return fmt.Errorf("duplicate ecosystem %q", eco.Name)
		}
		seen[eco.Name] = struct{}{}

		if _, err := manifest.AdapterFor(eco.Format); err != nil {
			return fmt.Errorf("ecosystem %q: %w", eco.Name, err)
		}
		if eco.Manifest == "" {
			return fmt.Errorf("ecosystem %q: manifest path is required", eco.Name)
		}
		if !strings.Contains(eco.MemberTemplate, "{module}") {
			return fmt.Errorf("ecosystem %q: member_template must contain {module}", eco.Name)
		}
		if eco.ClientRoot == "" {
			return fmt.Errorf("ecosystem %q: client_root is required", eco.Name)
		}
		if eco.MetadataFile == "" {
			return fmt.Errorf("ecosystem %q: metadata_file is required", eco.Name)
		}
	}
	return nil
}

// Ecosystem returns the named ecosystem, if configured.
func (c *Config) Ecosystem(name string) (manifest.Ecosystem, bool) {
	for _, eco := range c.Ecosystems {
		if eco.Name == name {
			return eco, true
		}
	}
	return manifest.Ecosystem{}, false
}
