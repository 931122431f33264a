package relay_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"quietcheck/internal/filter"
	"quietcheck/internal/relay"
	"quietcheck/internal/store"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests drive a POSIX shell as the child process")
	}
}

func TestRunRelaysStderrVerbatim(t *testing.T) {
	requireShell(t)

	var stdout, stderr bytes.Buffer
	code, err := relay.Run(context.Background(), relay.Options{
		Path:   "sh",
		Args:   []string{"-c", `printf 'one\ntwo\nthree\n' >&2; printf 'out\n'`},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}
	if got := stderr.String(); got != "one\ntwo\nthree\n" {
		t.Fatalf("stderr not relayed verbatim: %q", got)
	}
	if got := stdout.String(); got != "out\n" {
		t.Fatalf("stdout must pass through untouched: %q", got)
	}
}

func TestRunAppliesFilter(t *testing.T) {
	requireShell(t)

	seen := store.New()
	seen.Add("suppressed\n")

	var stderr bytes.Buffer
	_, err := relay.Run(context.Background(), relay.Options{
		Path:   "sh",
		Args:   []string{"-c", `printf 'suppressed\nnovel\n' >&2`},
		Filter: filter.NewLine(seen, false),
		Stdout: &bytes.Buffer{},
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := stderr.String(); got != "novel\n" {
		t.Fatalf("want only the novel line, got %q", got)
	}
}

func TestRunPropagatesExitCode(t *testing.T) {
	requireShell(t)

	code, err := relay.Run(context.Background(), relay.Options{
		Path:   "sh",
		Args:   []string{"-c", "exit 7"},
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if code != 7 {
		t.Fatalf("want exit code 7, got %d", code)
	}
}

func TestRunHandlesUnterminatedLastLine(t *testing.T) {
	requireShell(t)

	var stderr bytes.Buffer
	_, err := relay.Run(context.Background(), relay.Options{
		Path:   "sh",
		Args:   []string{"-c", `printf 'no newline' >&2`},
		Stdout: &bytes.Buffer{},
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := stderr.String(); got != "no newline" {
		t.Fatalf("final unterminated line lost: %q", got)
	}
}

func TestRunReportsSpawnFailure(t *testing.T) {
	_, err := relay.Run(context.Background(), relay.Options{
		Path:   "definitely-not-a-real-binary-xyz",
		Args:   []string{"--version"},
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
	var spawnErr *relay.SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("expected *SpawnError, got %v", err)
	}
	if spawnErr.Command[0] != "definitely-not-a-real-binary-xyz" {
		t.Fatalf("spawn error must name the attempted command, got %v", spawnErr.Command)
	}
}

// Write-mode run records a diagnostic; a later read-mode run over the
// same store must suppress it entirely.
func TestWriteThenReadSuppresses(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "cppcheck.fingerprints")
	emit := `printf 'foo.cpp:10: warning: unused variable\n' >&2`

	recording := store.New()
	var first bytes.Buffer
	_, err := relay.Run(context.Background(), relay.Options{
		Path:   "sh",
		Args:   []string{"-c", emit},
		Filter: filter.NewLine(recording, true),
		Stdout: &bytes.Buffer{},
		Stderr: &first,
	})
	if err != nil {
		t.Fatalf("write-mode run failed: %v", err)
	}
	if first.String() != "foo.cpp:10: warning: unused variable\n" {
		t.Fatalf("write mode must not suppress: %q", first.String())
	}
	if err := recording.Save(path, false); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	seen, err := store.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	var second bytes.Buffer
	_, err = relay.Run(context.Background(), relay.Options{
		Path:   "sh",
		Args:   []string{"-c", emit},
		Filter: filter.NewLine(seen, false),
		Stdout: &bytes.Buffer{},
		Stderr: &second,
	})
	if err != nil {
		t.Fatalf("read-mode run failed: %v", err)
	}
	if second.Len() != 0 {
		t.Fatalf("recorded diagnostic must be suppressed, got %q", second.String())
	}
}
