package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format identifies a serialization format for guild configs
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a user supplied format name
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", name)
	}
}

// EncodeGuildConfig serializes a guild config in the requested format
func EncodeGuildConfig(cfg *GuildConfig, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatJSON:
		return json.MarshalIndent(cfg, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// DecodeGuildConfig parses a guild config in the requested format
func DecodeGuildConfig(data []byte, format Format) (*GuildConfig, error) {
	cfg := NewGuildConfig()

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, cfg)
	case FormatJSON:
		err = json.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode guild config: %w", err)
	}

	if cfg.AdminRoles == nil {
		cfg.AdminRoles = make(map[Action][]string)
	}
	if cfg.StaffRanks == nil {
		cfg.StaffRanks = []string{}
	}
	return cfg, nil
}
