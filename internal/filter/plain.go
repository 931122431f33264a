package filter

import "quietcheck/internal/store"

// Line treats every raw output line as its own fingerprint. Exact
// string identity only, no partial matches.
type Line struct {
	seen      *store.Store
	writeMode bool
}

// NewLine builds a plain line filter over seen. In write mode every
// processed line is recorded; in read mode lines present in seen are
// suppressed.
func NewLine(seen *store.Store, writeMode bool) *Line {
	return &Line{seen: seen, writeMode: writeMode}
}

func (f *Line) Active() bool {
	return f.writeMode || f.seen.Len() > 0
}

func (f *Line) Process(line string) Decision {
	if f.writeMode {
		f.seen.Add(line)
		return Decision{Verdict: Emit}
	}
	if f.seen.Contains(line) {
		return Decision{Verdict: Suppress}
	}
	return Decision{Verdict: Emit}
}
