package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinVersion is the oldest docker compose release with "ps --format json".
var MinVersion = semver.MustParse("2.0.0")

// Version returns the docker compose plugin version.
func (c *CLI) Version(ctx context.Context) (*semver.Version, error) {
	out, err := c.run(ctx, c.binary(), "compose", "version", "--short")
	if err != nil {
		return nil, fmt.Errorf("docker compose version: %w", err)
	}

	return ParseVersion(string(out))
}

// ParseVersion parses the output of "docker compose version --short",
// e.g. "2.29.1" or "v2.29.1-desktop.1".
func ParseVersion(raw string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse docker compose version %q: %w", strings.TrimSpace(raw), err)
	}

	return v, nil
}

// Supported reports whether v is at least MinVersion.
func Supported(v *semver.Version) bool {
	return !v.LessThan(MinVersion)
}
