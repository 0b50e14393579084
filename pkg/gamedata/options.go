// Package gamedata exports game-balance workbooks into validated JSON documents.
package gamedata

import (
	"runtime"

	"github.com/charmbracelet/log"
)

// Options configures a run.
type Options struct {
	// Pretty indents the JSON output.
	Pretty bool
	// ValidateOnly runs every stage except writing the output.
	ValidateOnly bool
	// Workers bounds concurrent sheet reads. Zero means one per CPU.
	Workers int
	// IncludeTables specifies whether to include the generic per-sheet tables.
	// If nil, defaults to true.
	IncludeTables *bool
	// Logger receives progress and issue logs. If nil, the default logger is used.
	Logger *log.Logger
}

// DefaultOptions returns default export options.
func DefaultOptions() Options {
	return Options{
		Workers: runtime.NumCPU(),
	}
}

// ShouldIncludeTables returns whether to include the generic tables section.
func (o Options) ShouldIncludeTables() bool {
	if o.IncludeTables != nil {
		return *o.IncludeTables
	}
	return true
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}
