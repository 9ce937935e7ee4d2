// Package core defines the shared types used across plog.
//
// It provides the Level type with its fixed six-step scale (trace=1
// through fatal=6), the Entry type that represents a single accepted
// log event, and the Field type for structured key-value pairs.
//
// Levels have two spellings. String returns the upper-case label used
// by text output ("INFO"); Name returns the lower-case name used by
// the filter language ("info"). LevelFromName and LevelFromNumber
// convert back, exactly, in both directions.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and return it with PutEntry once the handler has consumed
// it. The pool pre-allocates the Fields slice with capacity 8.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any field exists as a fallback for
// arbitrary types but will cause an allocation.
package core
