package config

import (
	"codesync/internal/engine"
)

// EngineConfig is one configuration layer. Nil fields mean "not set in
// this layer" so later layers can distinguish absence from zero values.
type EngineConfig struct {
	Tag            *string   `yaml:"tag" toml:"tag" json:"tag"`
	Paths          *[]string `yaml:"path" toml:"path" json:"path"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	ExcludeTypical *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	MaxFileBytes   *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	Jobs           *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	Repo           *string   `yaml:"repo" toml:"repo" json:"repo"`
	Output         *string   `yaml:"output" toml:"output" json:"output"`
	Color          *string   `yaml:"color" toml:"color" json:"color"`
}

// Config is the decoded content of one config source (file or env).
type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
}

// EngineSettings is the fully resolved configuration after all layers
// are merged over the defaults.
type EngineSettings struct {
	Tag            string
	Paths          []string
	Excludes       []string
	ExcludeTypical bool
	MaxFileBytes   int
	Jobs           int
	Repo           string
	Output         string
	Color          string
}

// ToOptions converts resolved settings into engine options. Progress is
// decided at the CLI boundary, not by configuration.
func (s EngineSettings) ToOptions() engine.Options {
	return engine.Options{
		Tag:            s.Tag,
		RepoDir:        s.Repo,
		Paths:          cloneStrings(s.Paths),
		Excludes:       cloneStrings(s.Excludes),
		ExcludeTypical: s.ExcludeTypical,
		MaxFileBytes:   s.MaxFileBytes,
		Jobs:           s.Jobs,
	}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
