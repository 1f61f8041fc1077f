package scrape

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// toolName is the scraper command. Build-time constant; no credentials
// are ever passed to it.
const toolName = "yt-dlp"

// Runner executes the external scraper and returns its stdout. The
// production runner shells out; tests substitute a canned one.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner invokes the scraper binary as a subprocess. The caller's
// context carries the wall-clock budget; on expiry the process is killed.
type ExecRunner struct {
	Binary string
}

// NewExecRunner returns a runner for the given binary, defaulting to the
// standard tool name.
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = toolName
	}
	return &ExecRunner{Binary: binary}
}

// Run executes the scraper and returns its stdout bytes.
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.Binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Warn().Str("binary", r.Binary).Msg("scraper killed on deadline")
			return nil, ErrTimeout
		}
		return nil, &ToolError{Stderr: excerpt(stderr.String())}
	}
	return stdout.Bytes(), nil
}
