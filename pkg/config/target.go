// Package config loads the two ambient configuration sources: the
// server-under-test description (INI, pinned by spec.md §6) and an
// optional framework-level YAML config carried over from the teacher's own
// config layer for logging/reporting defaults.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
)

// TargetConfig mirrors server-config.ini's [Target] section.
type TargetConfig struct {
	Cmd           []string
	Path          string
	Root          string
	Host          string
	Port          int
	Clean         []string
	CoverageCmd   []string
	AcceptedCodes []int
}

// LoadTarget parses path (an INI file) via github.com/go-ini/ini — a real
// dependency carried by the retrieved example pack's DataDog-datadog-agent
// module, used here because spec.md §6 pins this one format; every other
// ambient config concern keeps the teacher's YAML/zerolog/cobra stack.
func LoadTarget(path string) (*TargetConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: load server config: %w", err)
	}

	section := cfg.Section("Target")
	tc := &TargetConfig{
		Cmd:         splitArgv(section.Key("cmd").String()),
		Path:        section.Key("path").MustString("."),
		Root:        section.Key("root").String(),
		Host:        section.Key("host").MustString("127.0.0.1"),
		Port:        section.Key("port").MustInt(0),
		Clean:       splitArgv(section.Key("clean").String()),
		CoverageCmd: splitArgv(section.Key("coverage_cmd").String()),
	}

	accepted := section.Key("accepted_codes").MustString("0")
	for _, part := range strings.Split(accepted, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("config: invalid accepted_codes entry %q: %w", part, err)
		}
		tc.AcceptedCodes = append(tc.AcceptedCodes, n)
	}
	if len(tc.AcceptedCodes) == 0 {
		tc.AcceptedCodes = []int{0}
	}

	if len(tc.Cmd) == 0 {
		return nil, fmt.Errorf("config: [Target] cmd is required")
	}
	return tc, nil
}

// splitArgv splits a shell-free, space-separated argv string. Arguments
// containing spaces are not supported — cmd/clean/coverage_cmd are
// expected to be plain argv, matching spec.md §6's "shell-free argv".
func splitArgv(s string) []string {
	fields := strings.Fields(s)
	if fields == nil {
		return nil
	}
	return fields
}
