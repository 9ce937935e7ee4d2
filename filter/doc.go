// Package filter implements the plog filter language: a small pattern
// DSL that selects log records by logger path and severity level.
//
// A filter string is a comma separated list of patterns:
//
//	[!](<path>|*)[@(<level>[+|-]|*)]
//
// Paths are colon separated segment names relative to an implicit root
// ".". A trailing ":*" selects a logger and all of its descendants,
// "::*" selects descendants only. A level clause restricts the match to
// one level ("@info"), a level and above ("@info+") or a level and below
// ("@3-"); patterns without a level clause use the caller's Defaults.
//
// Parsing is pure and never panics. ParseAll returns one Result per
// piece so callers can apply the valid pieces and report the rest;
// Parse and MustParse are thin conveniences on top of it.
//
// Test folds a pattern list left to right. Non-negated patterns can only
// turn the verdict on; a negated pattern sets the verdict to the inverse
// of its own match, overriding what came before:
//
//	*,!noisy       everything except the noisy logger
//	*@warn+,app    warnings everywhere, plus all of app at the default level
//
// Pattern slices are never mutated after parsing, so a single list can
// be shared by any number of goroutines without locking.
package filter
