package media

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os/exec"
	"time"
)

const maxStderrBytes = 8 * 1024

// RunResult carries what the pipeline needs to know about one external
// command invocation: how it exited and what it printed.
type RunResult struct {
	ExitCode   int
	Stdout     string
	StderrTail string
	Duration   time.Duration
}

func (r RunResult) IsSuccess() bool {
	return r.ExitCode == 0
}

// CommandRunner abstracts external process execution so the extraction
// logic can be tested with a fake runner.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) RunResult
}

// ExecRunner runs commands via os/exec with a bounded per-call timeout,
// so a hung decoder process cannot stall a pipeline run indefinitely.
type ExecRunner struct {
	timeout time.Duration
	logger  *slog.Logger
}

func NewExecRunner(timeout time.Duration, logger *slog.Logger) *ExecRunner {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &ExecRunner{timeout: timeout, logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) RunResult {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	var stdoutBuf bytes.Buffer
	var stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = io.Writer(&tailWriter{buf: &stderrBuf, limit: maxStderrBytes})

	err := cmd.Run()
	elapsed := time.Since(start)

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	if exitCode != 0 {
		r.logger.Warn("external command failed",
			"command", name,
			"exit_code", exitCode,
			"duration_ms", elapsed.Milliseconds(),
			"stderr_tail", truncate(stderrBuf.String(), 512),
		)
	} else {
		r.logger.Debug("external command succeeded",
			"command", name,
			"duration_ms", elapsed.Milliseconds(),
		)
	}

	return RunResult{
		ExitCode:   exitCode,
		Stdout:     stdoutBuf.String(),
		StderrTail: stderrBuf.String(),
		Duration:   elapsed,
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return "..." + s[len(s)-maxLen:]
}

// tailWriter keeps only the last `limit` bytes written.
type tailWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (tw *tailWriter) Write(p []byte) (int, error) {
	n := len(p)
	tw.buf.Write(p)
	if tw.buf.Len() > tw.limit {
		b := tw.buf.Bytes()
		tw.buf.Reset()
		tw.buf.Write(b[len(b)-tw.limit:])
	}
	return n, nil
}
