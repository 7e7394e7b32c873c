package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	clierrors "github.com/musher-dev/dcpps/internal/errors"
	"github.com/musher-dev/dcpps/internal/terminal"
)

func TestWatch_InvalidInterval(t *testing.T) {
	for _, value := range []string{"0", "-1", "NaN", "+Inf"} {
		t.Run(value, func(t *testing.T) {
			isolateConfig(t)
			chdirProject(t, sampleCompose)

			stub := stubProvider(t, nil, nil)
			out, _ := testWriter()

			err := executeRoot(t, out, "watch", "--interval="+value)

			var cliErr *clierrors.CLIError
			if !clierrors.As(err, &cliErr) {
				t.Fatalf("error = %v, want CLIError", err)
			}

			if cliErr.Code != clierrors.ExitUsage {
				t.Errorf("exit code = %d, want %d", cliErr.Code, clierrors.ExitUsage)
			}

			if stub.calls != 0 {
				t.Errorf("provider called %d times before the interval was validated", stub.calls)
			}
		})
	}
}

func TestWatch_ProviderFailureStopsLoop(t *testing.T) {
	isolateConfig(t)
	chdirProject(t, sampleCompose)

	stub := stubProvider(t, nil, errors.New("Cannot connect to the Docker daemon at unix:///var/run/docker.sock"))
	out, buf := testWriter()

	err := executeRoot(t, out, "watch", "-n", "0.01")

	var cliErr *clierrors.CLIError
	if !clierrors.As(err, &cliErr) {
		t.Fatalf("error = %v, want CLIError", err)
	}

	if cliErr.Code != clierrors.ExitProvider {
		t.Errorf("exit code = %d, want %d", cliErr.Code, clierrors.ExitProvider)
	}

	if cliErr.Message != "Docker daemon is not reachable" {
		t.Errorf("message = %q", cliErr.Message)
	}

	if stub.calls != 1 {
		t.Errorf("provider calls = %d, want 1", stub.calls)
	}

	if got := buf.String(); got != terminal.ClearScreen+terminal.CursorHome {
		t.Errorf("screen output = %q, want a single clear", got)
	}
}

func TestWatch_IntervalFromConfig(t *testing.T) {
	isolateConfig(t)
	chdirProject(t, sampleCompose)
	t.Setenv("DCPPS_WATCH_INTERVAL", "0")

	stubProvider(t, nil, nil)
	out, _ := testWriter()

	err := executeRoot(t, out, "watch")

	var cliErr *clierrors.CLIError
	if !clierrors.As(err, &cliErr) || cliErr.Code != clierrors.ExitUsage {
		t.Fatalf("error = %v, want InvalidInterval from DCPPS_WATCH_INTERVAL", err)
	}
}

func TestTitleHeader(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	plain := titleHeader(1500*time.Millisecond, "/srv/app/docker-compose.yml", false)(now)

	want := "Every 1.5s: docker compose ps (docker-compose.yml)    15:04:05"
	if plain != want {
		t.Errorf("header = %q, want %q", plain, want)
	}

	styled := titleHeader(1500*time.Millisecond, "/srv/app/docker-compose.yml", true)(now)
	if !strings.Contains(ansi.Strip(styled), want) {
		t.Errorf("styled header %q does not contain %q", styled, want)
	}
}
