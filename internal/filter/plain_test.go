package filter_test

import (
	"testing"

	"quietcheck/internal/filter"
	"quietcheck/internal/store"
)

func TestLineWriteModeRecordsAndEmits(t *testing.T) {
	seen := store.New()
	f := filter.NewLine(seen, true)

	line := "foo.cpp:10: warning: unused variable\n"
	d := f.Process(line)
	if d.Verdict != filter.Emit {
		t.Fatalf("write mode must emit, got %v", d.Verdict)
	}
	if !seen.Contains(line) {
		t.Fatal("line was not recorded")
	}
	if seen.Len() != 1 {
		t.Fatalf("store should hold exactly the processed line, len=%d", seen.Len())
	}
}

func TestLineReadModeSuppressesSeen(t *testing.T) {
	seen := store.New()
	line := "foo.cpp:10: warning: unused variable\n"
	seen.Add(line)

	f := filter.NewLine(seen, false)
	if d := f.Process(line); d.Verdict != filter.Suppress {
		t.Fatalf("seen line must be suppressed, got %v", d.Verdict)
	}
	if d := f.Process("bar.cpp:3: error: null pointer\n"); d.Verdict != filter.Emit {
		t.Fatalf("novel line must be emitted, got %v", d.Verdict)
	}
}

func TestLineExactIdentityOnly(t *testing.T) {
	seen := store.New()
	seen.Add("foo.cpp:10: warning: unused variable\n")

	f := filter.NewLine(seen, false)
	// Same text without the newline is a different fingerprint.
	if d := f.Process("foo.cpp:10: warning: unused variable"); d.Verdict != filter.Emit {
		t.Fatalf("partial match must not suppress, got %v", d.Verdict)
	}
}

func TestLineActive(t *testing.T) {
	empty := store.New()
	if filter.NewLine(empty, false).Active() {
		t.Fatal("read mode over an empty store has nothing to do")
	}
	if !filter.NewLine(empty, true).Active() {
		t.Fatal("write mode is always active")
	}

	loaded := store.New()
	loaded.Add("x\n")
	if !filter.NewLine(loaded, false).Active() {
		t.Fatal("read mode over a non-empty store must be active")
	}
}
