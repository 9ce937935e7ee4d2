package settings

import (
	"github.com/philipp01105/plog/core"
	"github.com/philipp01105/plog/filter"
)

// DefaultPattern is the filter used when nothing else is configured.
const DefaultPattern = "*"

// Filter is the resolved filter. Patterns is never empty.
type Filter struct {
	// Input is the filter string as configured, even when some or all
	// of it was invalid.
	Input    string
	Defaults filter.Defaults
	Patterns []filter.Pattern
}

// Pretty controls human readable output.
type Pretty struct {
	Enabled    bool
	Color      bool
	LevelLabel bool
	TimeDiff   bool
}

// Include selects the process data attached to each record.
type Include struct {
	Time     bool
	PID      bool
	Hostname bool
}

// Data is one resolved settings value. It must not be modified once
// published.
type Data struct {
	Filter  Filter
	Pretty  Pretty
	Include Include
}

// Allows reports whether the filter lets a record through.
func (d *Data) Allows(level core.Level, path []string) bool {
	return filter.Test(d.Filter.Patterns, filter.Record{Level: level, Path: path})
}
