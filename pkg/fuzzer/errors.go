package fuzzer

import "errors"

// Sentinel errors for the fuzz loop's fatal paths. The CLI maps these to
// non-zero exit codes per spec.md §6.
var (
	ErrSeedDryRunTimeout    = errors.New("fuzzer: dry run of the initial seed timed out")
	ErrServerConfigNotFound = errors.New("fuzzer: server configuration not found")
)
