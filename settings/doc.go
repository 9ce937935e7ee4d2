// Package settings holds the resolved configuration of a plog logger
// tree: the active filter, pretty printing options and which process
// data gets attached to records.
//
// Settings are immutable values. Reduce computes a new value from the
// previous one, a partial Input and the environment; a Manager
// publishes the result atomically so loggers read it without locking.
//
// Environment variables:
//
//	LOG_LEVEL   default level for patterns without a level clause
//	LOG_FILTER  filter used when none is configured
//	LOG_PRETTY  "true" or "false", forces pretty output on or off
//	APP_ENV     "production" switches the defaults to machine output
package settings
