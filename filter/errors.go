package filter

import (
	"fmt"
	"strings"
)

// ParseError describes one sub-pattern that could not be parsed. The
// message is meant for people; callers should not match on it.
type ParseError struct {
	// Pattern is the verbatim sub-pattern, or the whole input when the
	// input held no pattern at all.
	Pattern string
	// Hint is an optional clue about what went wrong.
	Hint string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid filter pattern %q", e.Pattern)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// Render builds one diagnostic message for the failed results, followed
// by the manual. It returns "" when every result succeeded. source
// describes where the filter came from and may be empty.
func Render(results []Result, source string) string {
	var failed []*ParseError
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Err)
		}
	}
	if len(failed) == 0 {
		return ""
	}

	from := ""
	if source != "" {
		from = " from " + source
	}

	var b strings.Builder
	total := len(results)
	switch {
	case total == 1:
		fmt.Fprintf(&b, "The filter pattern%s is invalid and was ignored:\n\n", from)
	case len(failed) == total:
		fmt.Fprintf(&b, "All %d filter patterns%s are invalid and were ignored:\n\n", total, from)
	case len(failed) == 1:
		fmt.Fprintf(&b, "One of the %d filter patterns%s is invalid and was ignored:\n\n", total, from)
	default:
		fmt.Fprintf(&b, "%d of the %d filter patterns%s are invalid and were ignored:\n\n", len(failed), total, from)
	}
	for _, err := range failed {
		b.WriteString("  ")
		b.WriteString(err.Error())
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(Manual())
	return b.String()
}
