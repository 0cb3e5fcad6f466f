package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.tg")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

const incrementSource = `
name: Increment.
inputs: 1.
init: scan.

scan:
  1 -> right, scan.
  blank -> 1, halt.
`

func TestRun_Headless_Success(t *testing.T) {
	path := writeProgram(t, incrementSource)
	log, _ := testLogger()

	code := run(log, []string{path, "3"})
	assert.Equal(t, 0, code)
}

func TestRun_MissingProgramPath(t *testing.T) {
	log, _ := testLogger()
	code := run(log, nil)
	assert.Equal(t, exitIOError, code)
}

func TestRun_NonExistentFile(t *testing.T) {
	log, _ := testLogger()
	code := run(log, []string{"/nonexistent/path.tg", "1"})
	assert.Equal(t, exitIOError, code)
}

func TestRun_ArityMismatch(t *testing.T) {
	path := writeProgram(t, incrementSource)
	log, _ := testLogger()

	code := run(log, []string{path, "1", "2"})
	assert.Equal(t, exitArityMismatch, code)
}

func TestRun_NonNumericArgument(t *testing.T) {
	path := writeProgram(t, incrementSource)
	log, _ := testLogger()

	code := run(log, []string{path, "abc"})
	assert.Equal(t, exitBadArgument, code)
}

func TestRun_NegativeArgument_Rejected(t *testing.T) {
	path := writeProgram(t, incrementSource)
	log, _ := testLogger()

	code := run(log, []string{path, "-1"})
	assert.Equal(t, exitBadArgument, code)
}

func TestRun_InvalidProgramSource(t *testing.T) {
	path := writeProgram(t, "name: Broken.\ninputs: 0.\n")
	log, _ := testLogger()

	code := run(log, []string{path})
	assert.Equal(t, exitProgramInvalid, code)
}
