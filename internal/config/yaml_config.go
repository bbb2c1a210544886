package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Lists that are awkward to express as env vars live here.
type YAMLConfig struct {
	Agent      AgentConfig      `yaml:"agent"`
	Indicators IndicatorsConfig `yaml:"indicators"`
	Keywords   []string         `yaml:"keywords"` // Appended to the built-in relevance keywords
}

// AgentConfig describes how the service registers itself with the agent directory.
type AgentConfig struct {
	Identifier string   `yaml:"identifier"`
	Purpose    []string `yaml:"purpose"`
	AgentType  string   `yaml:"agent_type"`
}

// IndicatorsConfig extends the built-in fallback indicator fragments.
type IndicatorsConfig struct {
	RealTime []string `yaml:"real_time"`
	Generic  []string `yaml:"generic"`
}

// LoadYAMLConfig loads the YAML configuration file at path.
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// AgentIdentifier returns the configured identifier or fallback.
func (c *YAMLConfig) AgentIdentifier(fallback string) string {
	if c == nil || c.Agent.Identifier == "" {
		return fallback
	}
	return c.Agent.Identifier
}

// AgentPurpose returns the configured purpose list or fallback.
func (c *YAMLConfig) AgentPurpose(fallback []string) []string {
	if c == nil || len(c.Agent.Purpose) == 0 {
		return fallback
	}
	return c.Agent.Purpose
}

// AgentType returns the configured agent category or fallback.
func (c *YAMLConfig) AgentType(fallback string) string {
	if c == nil || c.Agent.AgentType == "" {
		return fallback
	}
	return c.Agent.AgentType
}

// ExtraRealTimeIndicators returns additional real-time-unavailable fragments.
func (c *YAMLConfig) ExtraRealTimeIndicators() []string {
	if c == nil {
		return nil
	}
	return c.Indicators.RealTime
}

// ExtraGenericIndicators returns additional generic-response fragments.
func (c *YAMLConfig) ExtraGenericIndicators() []string {
	if c == nil {
		return nil
	}
	return c.Indicators.Generic
}

// ExtraKeywords returns additional relevance keywords.
func (c *YAMLConfig) ExtraKeywords() []string {
	if c == nil {
		return nil
	}
	return c.Keywords
}
