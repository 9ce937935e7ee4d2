// Package handler provides the Handler interface that receives log
// entries once the filter has accepted them, plus the pieces shared by
// the concrete handlers in its subpackages.
//
// Asynchronous handlers send entries to a bounded channel processed by
// a background goroutine, which keeps the caller's hot path fast even
// under slow I/O. When the queue is full a per-level OverflowPolicy
// applies: DropNewest (default for trace through warn), DropOldest, or
// Block with a timeout (default for error and fatal). Low-priority logs
// never stall the application while critical errors are not silently
// dropped. Drops, blocks and processed entries are counted in Stats.
//
// Built-in handlers:
//
//   - consolehandler writes formatted entries to any io.Writer.
//   - filehandler appends them to a rotating file.
//   - zaphandler forwards entries into a zapcore.Core.
//   - zerologhandler and logrushandler do the same for zerolog and
//     logrus loggers.
//   - MultiHandler fans out a single entry to multiple child handlers.
//   - SlogHandler adapts the Handler interface to log/slog.Handler and
//     applies the plog filter in Enabled, so the standard library
//     logger obeys LOG_FILTER too.
package handler
