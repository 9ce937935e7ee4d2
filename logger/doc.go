// Package logger is the public API of plog. Most users only need to
// import this package.
//
// Loggers form a tree: every logger has a path of name segments and
// Child adds one. Whether an event is written is decided by the filter
// in the logger's settings, a comma separated list of patterns such as
//
//	*@info,app:db:*@debug,!app:db:pool
//
// (see the filter package for the syntax). The filter runs before
// anything else, so rejected events cost no allocation.
//
// A Logger is immutable after construction. Its handler, path and
// pinned fields never change; the settings it reads are swapped
// atomically by settings.Manager.Update, so a running program can
// change its filter without rebuilding loggers.
//
// The package initializes a default Logger from the environment
// (LOG_LEVEL, LOG_FILTER, LOG_PRETTY, APP_ENV) in init(). The
// package-level functions Info, Error, Debugf, etc. delegate to it:
//
//	logger.Info("ready", logger.Int("port", 8080))
//
// For custom configuration, use the Builder:
//
//	log, err := logger.NewBuilder().
//	    WithName("app").
//	    WithHandler(myHandler).
//	    WithCaller(true).
//	    Build()
//
// Child loggers and loggers with pinned fields share the parent's
// handler and settings:
//
//	dbLog := log.Child("db").With(logger.String("shard", "eu1"))
package logger
