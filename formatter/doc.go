// Package formatter defines how accepted log entries are serialized
// into bytes.
//
// It exposes two interfaces: Formatter, which returns a []byte, and
// WriterFormatter, which writes directly to an io.Writer. Handlers
// check for WriterFormatter at construction time and prefer it when
// available, eliminating the intermediate byte slice allocation on
// the write path.
//
// Three formatters are provided. JSONFormatter writes one object per
// line for machines. PrettyFormatter renders a glyph per level, the
// logger path and the fields for people at a terminal, with colours
// from lipgloss. TextFormatter is a plain single line format for files
// and simple pipes.
//
// The JSON and text formatters use a pooled bytes.Buffer and Go's
// Append-style functions (time.AppendFormat, strconv.AppendInt) to
// avoid per-call allocations. Buffers larger than 64 KiB are not
// returned to the pool.
package formatter
