// Package ffmpeg runs ffmpeg processes with context-aware cancellation and
// stderr capture. Argument lists come from the encoder backends and the
// VMAF analyzer; this package only executes them.
package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute runs bin with args. When tee is true, stderr is mirrored to
// os.Stderr in real time (progress display); otherwise it is captured
// silently. Cancelling ctx kills the process.
func Execute(ctx context.Context, bin string, args []string, tee bool) ExecResult {
	cmd := exec.CommandContext(ctx, bin, args...)

	var stderrBuf bytes.Buffer
	if tee {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
