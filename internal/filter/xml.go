package filter

import (
	"regexp"

	"quietcheck/internal/store"
)

// The XML filter only understands the three line shapes cppcheck's
// --xml output uses per finding: the <error> open tag (possibly
// self-closing), the nested <location> tag, and the </error> close tag.
// It is deliberately not an XML parser.
var (
	startRe    = regexp.MustCompile(`^ {8}<error id="([^"]+)" severity="([^"]+)" msg="([^"]+)" verbose="[^"]+"(/?)>\n$`)
	locationRe = regexp.MustCompile(`^ {12}<location file="([^"]+)" line="([^"]+)"/>\n$`)
	endRe      = regexp.MustCompile(`^ {8}</error>\n$`)
)

type xmlState uint8

const (
	// stateIdle: no diagnostic record is open.
	stateIdle xmlState = iota
	// stateOpen: between an <error> open tag and its close tag,
	// accumulating lines.
	stateOpen
)

type parseKind uint8

const (
	// parsedLine is a standalone line outside any record.
	parsedLine parseKind = iota
	// parsedPartial was absorbed into the current record.
	parsedPartial
	// parsedRecord closed a record; a fingerprint may be available.
	parsedRecord
)

// XML reconstructs per-finding fingerprints from cppcheck's streamed,
// line-delimited XML fragments.
type XML struct {
	seen      *store.Store
	writeMode bool

	state xmlState
	rec   record
}

// NewXML builds an XML diagnostic filter over seen.
func NewXML(seen *store.Store, writeMode bool) *XML {
	return &XML{seen: seen, writeMode: writeMode}
}

func (f *XML) Active() bool {
	return f.writeMode || f.seen.Len() > 0
}

func (f *XML) Process(line string) Decision {
	kind, fp := f.parse(line)

	if f.writeMode {
		if kind == parsedRecord {
			// Add ignores the empty fingerprint of an invalid record.
			f.seen.Add(fp)
		}
		return Decision{Verdict: Emit}
	}

	switch kind {
	case parsedLine:
		return Decision{Verdict: Emit}
	case parsedPartial:
		return Decision{Verdict: Withhold}
	default: // parsedRecord
		if fp != "" && f.seen.Contains(fp) {
			return Decision{Verdict: Suppress}
		}
		// Novel (or invalid, which can never match): flush the whole
		// accumulated block as one unit.
		return Decision{Verdict: FlushRecord, Text: f.rec.text()}
	}
}

// parse advances the state machine by one line. Unrecognized structure
// never fails: a stray location or close tag is applied to whatever the
// accumulator holds, and any other line inside an open record is kept
// as record text.
func (f *XML) parse(line string) (parseKind, string) {
	if m := startRe.FindStringSubmatch(line); m != nil {
		f.rec.reset()
		f.rec.append(line)
		f.rec.ID = m[1]
		f.rec.Severity = m[2]
		f.rec.Message = m[3]
		if m[4] != "" {
			// Self-closing: the record is already complete.
			f.state = stateIdle
			return parsedRecord, f.rec.fingerprint()
		}
		f.state = stateOpen
		return parsedPartial, ""
	}

	if m := locationRe.FindStringSubmatch(line); m != nil {
		f.rec.append(line)
		f.rec.File = m[1]
		f.rec.setLine(m[2])
		return parsedPartial, ""
	}

	if endRe.MatchString(line) {
		f.rec.append(line)
		f.state = stateIdle
		return parsedRecord, f.rec.fingerprint()
	}

	if f.state == stateOpen {
		f.rec.append(line)
		return parsedPartial, ""
	}
	return parsedLine, ""
}
