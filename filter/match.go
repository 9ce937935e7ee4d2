package filter

// Test reports whether a record passes a pattern list. Patterns are
// folded left to right starting from a false verdict: a matching
// pattern sets the verdict, a negated pattern sets it to the inverse of
// its own match. An empty list rejects everything.
func Test(patterns []Pattern, rec Record) bool {
	verdict := false
	path := ""
	rendered := false
	for i := range patterns {
		p := &patterns[i]
		// A plain pattern cannot lower a true verdict.
		if verdict && !p.Negate {
			continue
		}
		match := p.Level.Match(rec.Level)
		if match {
			if !rendered {
				path = rec.PathString()
				rendered = true
			}
			match = p.Path.Match(path)
		}
		if p.Negate {
			verdict = !match
		} else if match {
			verdict = true
		}
	}
	return verdict
}

// IsMatch reports whether a single pattern selects the record, ignoring
// negation.
func IsMatch(p Pattern, rec Record) bool {
	return p.Level.Match(rec.Level) && p.Path.Match(rec.PathString())
}
