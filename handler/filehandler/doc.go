// Package filehandler writes formatted log entries to a file, rotating
// it by size or on an interval and pruning old backups.
//
// A FileHandler writes on the caller's goroutine through a buffered
// writer; entries reach the disk on rotation, on Sync and on Close.
// Rotated files are renamed to <name>.<timestamp>, which sorts oldest
// first.
package filehandler
