package world

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"worldgen/pkg/core"
)

//go:embed config.schema.json
var configSchemaSource string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func configSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("config.schema.json", configSchemaSource)
	})
	return schema, schemaErr
}

// LoadConfig reads a YAML world configuration on top of DefaultConfig. An
// empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultConfig(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), err
	}
	cfg, err := ParseConfig(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over DefaultConfig. The document is checked
// against the embedded JSON schema first, which rejects unknown keys, and
// the merged result is then validated.
func ParseConfig(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return cfg, fmt.Errorf("%w: %w", core.ErrConfiguration, err)
	}
	if doc != nil {
		if err := validateDocument(doc); err != nil {
			return cfg, err
		}
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", core.ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validateDocument round-trips the YAML tree through JSON so the schema
// sees plain JSON values.
func validateDocument(doc any) error {
	s, err := configSchema()
	if err != nil {
		return err
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrConfiguration, err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %w", core.ErrConfiguration, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", core.ErrConfiguration, err)
	}
	return nil
}

// MarshalYAML renders cfg as a YAML document accepted by ParseConfig.
func MarshalYAML(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
