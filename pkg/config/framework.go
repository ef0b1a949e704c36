package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FrameworkConfig carries the ambient logging/reporting defaults the
// teacher's own config.go exposes, trimmed to what this repo's CLI
// actually has — no Kurtosis/Docker/Prometheus sections survive since
// nothing in this domain discovers those services (see DESIGN.md).
type FrameworkConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Reporting ReportingConfig `yaml:"reporting"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ReportingConfig struct {
	SeedDir string `yaml:"seed_dir"`
	LogDir  string `yaml:"log_dir"`
}

// DefaultFrameworkConfig matches the defaults spec.md's CLI grammar
// implies: text logging at info level, saved-seed/ and log/ directories.
func DefaultFrameworkConfig() *FrameworkConfig {
	return &FrameworkConfig{
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Reporting: ReportingConfig{SeedDir: "saved-seed", LogDir: "log"},
	}
}

// LoadFramework loads an optional YAML framework config, falling back to
// defaults when path does not exist — same shape as the teacher's own
// config.Load, which treats a missing file as "use defaults" rather than
// an error.
func LoadFramework(path string) (*FrameworkConfig, error) {
	cfg := DefaultFrameworkConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read framework config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse framework config: %w", err)
	}
	return cfg, nil
}
