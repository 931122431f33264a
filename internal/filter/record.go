package filter

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// record accumulates one streamed diagnostic between its open and close
// tags: the parsed fields plus the raw multi-line text block.
type record struct {
	ID       string
	Severity string
	Message  string
	File     string
	Line     uint32

	node strings.Builder
}

func (r *record) reset() {
	r.ID = ""
	r.Severity = ""
	r.Message = ""
	r.File = ""
	r.Line = 0
	r.node.Reset()
}

func (r *record) append(line string) {
	r.node.WriteString(line)
}

func (r *record) text() string {
	return r.node.String()
}

func (r *record) valid() bool {
	return r.ID != ""
}

// setLine parses a captured line number. Anything that does not fit a
// uint32 leaves the field at 0, which degrades the fingerprint the same
// way as an absent location.
func (r *record) setLine(s string) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return
	}
	r.Line = v
}

// fingerprint derives the stable cross-run identity of the record:
// [id]:[file]:[line], degrading to [id]:[file] and [id] as fields are
// absent. A record without an id has no fingerprint.
func (r *record) fingerprint() string {
	if !r.valid() {
		return ""
	}
	if r.File != "" {
		if r.Line != 0 {
			return fmt.Sprintf("[%s]:[%s]:[%d]", r.ID, r.File, r.Line)
		}
		return fmt.Sprintf("[%s]:[%s]", r.ID, r.File)
	}
	return fmt.Sprintf("[%s]", r.ID)
}
