package media

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

type fakeRunner struct {
	handler func(name string, args []string) RunResult
	calls   int
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) RunResult {
	f.calls++
	return f.handler(name, args)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProberDuration(t *testing.T) {
	tests := []struct {
		name   string
		result RunResult
		want   float64
	}{
		{
			name:   "parses probe output",
			result: RunResult{ExitCode: 0, Stdout: "93.4\n"},
			want:   93.4,
		},
		{
			name:   "non-zero exit falls back",
			result: RunResult{ExitCode: 1, StderrTail: "no such file"},
			want:   FallbackDurationSeconds,
		},
		{
			name:   "non-numeric output falls back",
			result: RunResult{ExitCode: 0, Stdout: "N/A"},
			want:   FallbackDurationSeconds,
		},
		{
			name:   "zero duration falls back",
			result: RunResult{ExitCode: 0, Stdout: "0.0"},
			want:   FallbackDurationSeconds,
		},
		{
			name:   "spawn failure falls back",
			result: RunResult{ExitCode: -1},
			want:   FallbackDurationSeconds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{handler: func(string, []string) RunResult {
				return tt.result
			}}
			prober := NewProber(runner, "ffprobe", discardLogger())

			got := prober.Duration(context.Background(), "/tmp/input.mp4")
			if got != tt.want {
				t.Errorf("Duration = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestProberCommandShape(t *testing.T) {
	var gotName string
	var gotArgs []string
	runner := &fakeRunner{handler: func(name string, args []string) RunResult {
		gotName = name
		gotArgs = args
		return RunResult{ExitCode: 0, Stdout: "10"}
	}}

	NewProber(runner, "/opt/ffprobe", discardLogger()).Duration(context.Background(), "/tmp/in.mp4")

	if gotName != "/opt/ffprobe" {
		t.Errorf("command = %q, want configured ffprobe path", gotName)
	}
	if gotArgs[len(gotArgs)-1] != "/tmp/in.mp4" {
		t.Errorf("last arg = %q, want input path", gotArgs[len(gotArgs)-1])
	}
}
