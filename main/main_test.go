package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.rei")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRun_FileModeSuccessExitsZero(t *testing.T) {
	path := writeScript(t, `print 1 + 2;`)
	var stdout, stderr bytes.Buffer
	code := run([]string{path}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Equal(t, "3\n", stdout.String())
	require.Empty(t, stderr.String())
}

func TestRun_MissingFileIsHostErrorExitOne(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"/no/such/file.rei"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 1, code)
	require.NotEmpty(t, stderr.String())
}

func TestRun_TooManyArgumentsPrintsUsageAndExitsOne(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"a", "b"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "usage")
}

func TestRun_ParseErrorStillExitsZero(t *testing.T) {
	path := writeScript(t, `var = ;`)
	var stdout, stderr bytes.Buffer
	code := run([]string{path}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code)
	require.NotEmpty(t, stderr.String())
}

func TestRun_RuntimeErrorStillExitsZero(t *testing.T) {
	path := writeScript(t, `print 1 / 0;`)
	var stdout, stderr bytes.Buffer
	code := run([]string{path}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code)
	require.NotEmpty(t, stderr.String())
}

func TestRun_ConfigFlagIsStrippedBeforeFileArgCheck(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "reirc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("prompt: \"> \"\n"), 0o644))

	path := writeScript(t, `print "ok";`)
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgPath, path}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Equal(t, "ok\n", stdout.String())
}

func TestRun_FileModeWithInputBuiltin(t *testing.T) {
	path := writeScript(t, `print input();`)
	var stdout, stderr bytes.Buffer
	code := run([]string{path}, strings.NewReader("hello"), &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Equal(t, "hello\n", stdout.String())
	require.Empty(t, stderr.String())
}
