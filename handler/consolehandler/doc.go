// Package consolehandler provides handlers that write formatted log
// entries to any io.Writer (default: os.Stdout).
//
// Handlers are split into specialized sync and async variants:
//
//   - SyncConsoleHandler writes on the caller's goroutine. Uses TryLock
//     to format into a handler-owned buffer when uncontended.
//   - AsyncConsoleHandler provides a bounded queue with per-level
//     OverflowPolicy and a dedicated background goroutine that drains
//     the queue on Close.
//
// The factory function NewConsoleHandler chooses the variant based on
// the Async field in ConsoleConfig.
package consolehandler
