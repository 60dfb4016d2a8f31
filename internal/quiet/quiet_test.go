package quiet

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"actionstoolkit/pkg/command"
	"actionstoolkit/pkg/core"
	"actionstoolkit/pkg/env"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
}

func newTestCore(t *testing.T) (*core.Core, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	e := env.NewMap(map[string]string{env.PathVar: os.Getenv(env.PathVar)})
	return core.New(&buf, e, core.WithTokenSource(func() string { return "tok" })), &buf
}

func TestRun_OutputIsNotProcessed(t *testing.T) {
	skipOnWindows(t)
	c, buf := newTestCore(t)

	err := Run(context.Background(), c, []string{"sh", "-c", `echo "::set-output name=x::y"; echo done`}, Options{})
	require.NoError(t, err)

	require.Equal(t, "::stop-commands::tok\n::set-output name=x::y\ndone\n::tok::\n", buf.String())

	cmds, err := command.NewReader(buf).Commands()
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	require.Equal(t, command.StopCommands, cmds[0].Name)
	require.Equal(t, "tok", cmds[1].Name)
}

func TestRun_UnfinishedLine(t *testing.T) {
	skipOnWindows(t)
	c, buf := newTestCore(t)

	err := Run(context.Background(), c, []string{"sh", "-c", `printf partial`}, Options{})
	require.NoError(t, err)
	require.Equal(t, "::stop-commands::tok\npartial\n::tok::\n", buf.String())
}

func TestRun_ExitCode(t *testing.T) {
	skipOnWindows(t)
	c, buf := newTestCore(t)

	err := Run(context.Background(), c, []string{"sh", "-c", "exit 3"}, Options{})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 3, exitErr.Code)
	require.Equal(t, "sh exited with status 3", exitErr.Error())
	require.Equal(t, "::stop-commands::tok\n::tok::\n", buf.String())
}

func TestRun_UsesCoreEnv(t *testing.T) {
	skipOnWindows(t)
	c, buf := newTestCore(t)
	require.NoError(t, c.ExportVariable("QUIET_TEST_VAR", "from core"))
	buf.Reset()

	var stderr bytes.Buffer
	err := Run(context.Background(), c, []string{"sh", "-c", `echo "$QUIET_TEST_VAR" >&2`}, Options{Stderr: &stderr})
	require.NoError(t, err)
	require.Equal(t, "from core\n", stderr.String())
	require.Equal(t, "::stop-commands::tok\n::tok::\n", buf.String())
}

func TestRun_FindsAddedPath(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	script := filepath.Join(dir, "quiet-test-hello")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho hello\n"), 0o755))

	c, buf := newTestCore(t)
	require.NoError(t, c.AddPath(dir))
	buf.Reset()

	err := Run(context.Background(), c, []string{"quiet-test-hello"}, Options{})
	require.NoError(t, err)
	require.Equal(t, "::stop-commands::tok\nhello\n::tok::\n", buf.String())
}

func TestRun_NotFound(t *testing.T) {
	c, buf := newTestCore(t)
	err := Run(context.Background(), c, []string{"quiet-test-does-not-exist"}, Options{})
	require.ErrorContains(t, err, "not found")
	require.Empty(t, buf.String())
}

func TestRun_NoArgs(t *testing.T) {
	c, _ := newTestCore(t)
	require.Error(t, Run(context.Background(), c, nil, Options{}))
}

func TestRun_WorkingDirectory(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), nil, 0o644))

	c, buf := newTestCore(t)
	err := Run(context.Background(), c, []string{"ls"}, Options{Dir: dir})
	require.NoError(t, err)
	require.Equal(t, "::stop-commands::tok\nmarker\n::tok::\n", buf.String())
}

func TestLineWriter(t *testing.T) {
	var buf bytes.Buffer
	lw := &lineWriter{w: &buf}

	require.NoError(t, lw.finish())
	_, err := lw.Write([]byte("a\n"))
	require.NoError(t, err)
	require.NoError(t, lw.finish())
	_, err = lw.Write([]byte("b"))
	require.NoError(t, err)
	require.NoError(t, lw.finish())
	require.NoError(t, lw.finish())

	require.Equal(t, "a\nb\n", buf.String())
}
