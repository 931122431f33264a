// Package filter decides, line by line, what of cppcheck's diagnostic
// stream reaches the user. In write mode a filter records fingerprints
// into a store without suppressing anything; in read mode it suppresses
// diagnostics whose fingerprint is already recorded.
package filter

// Verdict classifies one processed line.
type Verdict uint8

const (
	// Emit passes the current line through unchanged.
	Emit Verdict = iota
	// Withhold absorbs the line into an in-progress record; nothing is
	// printed yet.
	Withhold
	// Suppress drops the line: it belongs to an already-seen diagnostic.
	Suppress
	// FlushRecord prints Decision.Text, the full accumulated record of a
	// diagnostic that turned out to be novel.
	FlushRecord
)

func (v Verdict) String() string {
	switch v {
	case Emit:
		return "emit"
	case Withhold:
		return "withhold"
	case Suppress:
		return "suppress"
	case FlushRecord:
		return "flush"
	}
	return "unknown"
}

// Decision is the outcome of processing one line. Text is only set for
// FlushRecord.
type Decision struct {
	Verdict Verdict
	Text    string
}

// Filter is the minimal contract between the relay loop and a
// suppression strategy.
type Filter interface {
	// Active reports whether the filter can do useful work. A read-mode
	// filter over an empty store has nothing to suppress and reports
	// false; callers then relay the stream unfiltered.
	Active() bool
	// Process accepts one raw line, trailing newline included, and
	// returns the relay decision for it.
	Process(line string) Decision
}
