package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads one config file, dispatching on the extension. An empty path
// yields an empty layer.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &cfg); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &cfg); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &cfg); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err := validate(&cfg, path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg *Config, path string) error {
	for i, g := range cfg.Grammars {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("%s: grammar #%d: name is required", path, i+1)
		}
		if strings.TrimSpace(g.Keyword) == "" {
			return fmt.Errorf("%s: grammar %s: keyword is required", path, g.Name)
		}
		switch g.Scope {
		case "current-line", "next-line", "rest-of-file":
		default:
			return fmt.Errorf("%s: grammar %s: scope must be current-line, next-line or rest-of-file", path, g.Name)
		}
	}
	return nil
}
