package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/musher-dev/dcpps/internal/output"
	"github.com/musher-dev/dcpps/internal/status"
	"github.com/musher-dev/dcpps/internal/terminal"
)

func testWriter() (*output.Writer, *bytes.Buffer) {
	var buf bytes.Buffer

	term := &terminal.Info{IsTTY: false, NoColor: true, Width: 80, Height: 24}

	return output.NewWriter(&buf, &buf, term), &buf
}

// isolateConfig points the config and state directories at a temp dir.
func isolateConfig(t *testing.T) {
	t.Helper()

	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
}

// chdirProject writes a docker-compose.yml into a fresh directory and makes
// it the working directory.
func chdirProject(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "docker-compose.yml")

	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	return path
}

// providerStub replaces the docker compose provider for the duration of t.
type providerStub struct {
	calls int
	file  string
}

func stubProvider(t *testing.T, records []status.Record, err error) *providerStub {
	t.Helper()

	stub := &providerStub{}
	orig := newProvider

	newProvider = func(file string) status.Provider {
		stub.file = file

		return status.ProviderFunc(func(context.Context) ([]status.Record, error) {
			stub.calls++
			return records, err
		})
	}

	t.Cleanup(func() { newProvider = orig })

	return stub
}

// executeRoot runs the root command with logging sent to a temp file.
func executeRoot(t *testing.T, out *output.Writer, args ...string) error {
	t.Helper()

	logFile := filepath.Join(t.TempDir(), "dcpps.log")

	root := newRootCmdWithOutput(out)
	root.SetArgs(append([]string{"--log-stderr", "off", "--log-file", logFile}, args...))
	root.SetContext(t.Context())

	return root.Execute()
}

const sampleCompose = `
services:
  web:
    image: nginx
  db:
    image: postgres
  tools:
    image: busybox
    labels:
      - hide-from-dcpps
`
