package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sort"
	"strings"
	"syscall"
)

// Runner starts launchers as child processes.
type Runner struct {
	LookPath func(file string) (string, error)
	Environ  func() []string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// NewRunner returns a Runner wired to the current process.
func NewRunner() *Runner {
	return &Runner{
		LookPath: exec.LookPath,
		Environ:  os.Environ,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Run prepares req for l, prints the banner, and runs the tool until it
// exits. A non-zero exit is returned as *ExitError.
func (r *Runner) Run(ctx context.Context, l Launcher, req Request) error {
	path, err := r.LookPath(l.Binary())
	if err != nil {
		return fmt.Errorf("%s %w (%s)", l.DisplayName(), ErrNotInstalled, l.InstallHint())
	}

	inv, err := l.Prepare(req)
	if err != nil {
		return fmt.Errorf("preparing %s: %w", l.Name(), err)
	}

	WriteBanner(r.Stderr, l, inv)

	cmd := exec.CommandContext(ctx, path, inv.Args...)
	cmd.Env = MergeEnv(r.Environ(), inv.Env)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	// The tool shares the terminal and gets Ctrl+C itself; the launcher
	// waits for it instead of dying first.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			code := ee.ExitCode()
			if code < 0 {
				code = signalExitCode(ee)
			}
			return &ExitError{Tool: l.Binary(), Code: code}
		}
		return fmt.Errorf("running %s: %w", l.Binary(), err)
	}
	return nil
}

// signalExitCode follows the shell convention of 128+signal for a child
// killed by a signal.
func signalExitCode(ee *exec.ExitError) int {
	if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return 1
}

// MergeEnv returns base with extra applied. Keys in extra replace existing
// entries, including with empty values.
func MergeEnv(base []string, extra map[string]string) []string {
	out := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if _, ok := extra[k]; ok {
			continue
		}
		out = append(out, kv)
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+extra[k])
	}
	return out
}
