package compose

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/musher-dev/dcpps/internal/observability"
	"github.com/musher-dev/dcpps/internal/status"
)

// DefaultBinary is the docker CLI executable.
const DefaultBinary = "docker"

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// CLI queries a compose project through "docker compose".
type CLI struct {
	// Binary is the docker executable; DefaultBinary when empty.
	Binary string
	// File is passed as "-f" when set. Otherwise docker compose looks up the
	// project from the working directory.
	File string

	run Runner
}

// NewCLI creates a CLI for the compose file at file. An empty file lets
// docker compose pick the project from the working directory.
func NewCLI(file string) *CLI {
	return &CLI{Binary: DefaultBinary, File: file, run: execRunner}
}

// WithRunner replaces the command runner. Used by tests.
func (c *CLI) WithRunner(run Runner) *CLI {
	c.run = run
	return c
}

func (c *CLI) binary() string {
	if c.Binary == "" {
		return DefaultBinary
	}

	return c.Binary
}

func (c *CLI) composeArgs(args ...string) []string {
	base := []string{"compose"}
	if c.File != "" {
		base = append(base, "-f", c.File)
	}

	return append(base, args...)
}

// PSArgs returns the docker arguments used to query container status.
func (c *CLI) PSArgs() []string {
	return c.composeArgs("ps", "--all", "--format", "json")
}

// PS runs "docker compose ps" and returns one record per container.
func (c *CLI) PS(ctx context.Context) ([]status.Record, error) {
	ctx, span := observability.Tracer("dcpps.compose").Start(ctx, "compose.ps",
		trace.WithAttributes(
			attribute.String("compose.file", c.File),
		),
	)
	defer span.End()

	out, err := c.run(ctx, c.binary(), c.PSArgs()...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "docker compose ps failed")

		return nil, fmt.Errorf("docker compose ps: %w", err)
	}

	records, err := ParsePS(out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparsable docker compose ps output")

		return nil, err
	}

	span.SetAttributes(attribute.Int("compose.containers", len(records)))
	span.SetStatus(codes.Ok, "")

	return records, nil
}

// ParsePS decodes "docker compose ps --format json" output. Docker compose
// before 2.21 prints a single JSON array; later versions print one JSON
// object per line. Empty output means no containers.
func ParsePS(data []byte) ([]status.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var records []status.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("parse docker compose ps output: %w", err)
		}

		return records, nil
	}

	var records []status.Record

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	for {
		var r status.Record

		err := dec.Decode(&r)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("parse docker compose ps output: %w", err)
		}

		records = append(records, r)
	}

	return records, nil
}

// execRunner runs name with args and returns stdout. A non-zero exit is
// reported with the command's stderr.
func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // G204: arguments are built from fixed compose subcommands

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}

		return nil, err
	}

	return out, nil
}
