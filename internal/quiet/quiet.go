// Package quiet runs a child process whose output must not be read as workflow
// commands, for example a tool that prints untrusted text.
package quiet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"actionstoolkit/pkg/core"
	"actionstoolkit/pkg/env"
)

// Options configures Run.
type Options struct {
	Dir    string    // Working directory. Empty means the current directory.
	Stdin  io.Reader // nil means no input
	Stderr io.Writer // nil discards stderr
}

// ExitError reports a child which exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// Run runs argv with command processing stopped. The child's stdout goes to the sink of
// c, its environment is c.Env(). The executable is searched in the PATH of c.Env(), so
// directories added with Core.AddPath are found.
func Run(ctx context.Context, c *core.Core, argv []string, opts Options) error {
	if len(argv) < 1 {
		return fmt.Errorf("not enough arguments")
	}

	path, err := lookPath(c.Env(), argv[0])
	if err != nil {
		return err
	}

	return c.StopCommands(func() error {
		stdout := &lineWriter{w: c.Writer()}

		cmd := exec.CommandContext(ctx, path, argv[1:]...)
		cmd.Args[0] = argv[0]
		cmd.Dir = opts.Dir
		cmd.Env = c.Env().Environ()
		cmd.Stdin = opts.Stdin
		cmd.Stdout = stdout
		cmd.Stderr = opts.Stderr

		runErr := cmd.Run()

		// The resume line must start on a line of its own
		if err := stdout.finish(); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) && exitErr.ExitCode() > 0 {
			return &ExitError{Command: argv[0], Code: exitErr.ExitCode()}
		}
		if runErr != nil {
			return fmt.Errorf("failed to run %s: %w", argv[0], runErr)
		}
		return nil
	})
}

// lookPath searches file in the PATH of e. Names containing a path separator are used
// as they are.
func lookPath(e env.Env, file string) (string, error) {
	if strings.ContainsRune(file, '/') || strings.ContainsRune(file, filepath.Separator) {
		return exec.LookPath(file)
	}
	path, _ := e.LookupEnv(env.PathVar)
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			continue
		}
		if found, err := exec.LookPath(filepath.Join(dir, file)); err == nil {
			return found, nil
		}
	}
	return "", fmt.Errorf("executable %q not found in %s", file, env.PathVar)
}

// lineWriter remembers whether the last byte written was a newline.
type lineWriter struct {
	mu      sync.Mutex
	w       io.Writer
	pending bool // true if the last write did not end with \n
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n, err := lw.w.Write(p)
	if n > 0 {
		lw.pending = p[n-1] != '\n'
	}
	return n, err
}

// finish terminates an unfinished last line.
func (lw *lineWriter) finish() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if !lw.pending {
		return nil
	}
	lw.pending = false
	_, err := io.WriteString(lw.w, "\n")
	return err
}
