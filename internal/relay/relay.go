// Package relay runs the underlying cppcheck process and mirrors its
// diagnostic stream, routing every line through the active filter.
package relay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"quietcheck/internal/filter"
)

// SpawnError reports a failure to launch the underlying tool.
type SpawnError struct {
	Command []string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("fail to run: %s\nbecause: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Options configures one relay run.
type Options struct {
	// Path is the cppcheck binary to invoke.
	Path string
	// Args is the argument list forwarded verbatim.
	Args []string
	// Filter routes stderr lines; nil relays the stream unfiltered.
	Filter filter.Filter
	// Stdout receives the child's standard output untouched.
	Stdout io.Writer
	// Stderr receives the (possibly filtered) diagnostic stream.
	Stderr io.Writer
}

// Run spawns the tool and processes its stderr line by line until the
// stream closes, blocking throughout; there is no concurrent line
// handling. It returns the child's exit code. A launch failure comes
// back as a *SpawnError; stream errors after a successful launch end
// the relay loop and are otherwise ignored.
func Run(ctx context.Context, opts Options) (int, error) {
	cmd := exec.CommandContext(ctx, opts.Path, opts.Args...)
	cmd.Stdout = opts.Stdout

	pipe, err := cmd.StderrPipe()
	if err != nil {
		return 1, err
	}
	if err := cmd.Start(); err != nil {
		return 1, &SpawnError{Command: append([]string{opts.Path}, opts.Args...), Err: err}
	}

	br := bufio.NewReader(pipe)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			relayLine(opts, line)
		}
		if err != nil {
			// io.EOF is the normal end of stream; anything else means
			// the pipe broke, which Wait will surface as an exit code.
			break
		}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, err
	}
	return 0, nil
}

func relayLine(opts Options, line string) {
	if opts.Filter == nil {
		fmt.Fprint(opts.Stderr, line)
		return
	}
	d := opts.Filter.Process(line)
	switch d.Verdict {
	case filter.Emit:
		fmt.Fprint(opts.Stderr, line)
	case filter.FlushRecord:
		fmt.Fprint(opts.Stderr, d.Text)
	case filter.Withhold, filter.Suppress:
		// Nothing reaches the user for this line.
	}
}
