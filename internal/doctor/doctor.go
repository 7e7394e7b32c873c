// Package doctor runs diagnostic checks for a dcpps setup:
//   - a compose file is found and declares services
//   - the docker CLI is on PATH
//   - the docker compose plugin is recent enough for "ps --format json"
//   - the dcpps build version
package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/musher-dev/dcpps/internal/buildinfo"
	"github.com/musher-dev/dcpps/internal/compose"
)

// Status represents the result of a diagnostic check.
type Status int

const (
	// StatusPass indicates the check passed.
	StatusPass Status = iota
	// StatusWarn indicates a non-critical issue.
	StatusWarn
	// StatusFail indicates a critical failure.
	StatusFail
)

// Result holds the outcome of a single check.
type Result struct {
	Name    string `json:"name"`
	Status  Status `json:"-"`
	State   string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Check is a diagnostic check function.
type Check func(ctx context.Context) Result

// Options selects the project and the docker CLI to diagnose.
type Options struct {
	// Dir is searched for a compose file when File is empty.
	Dir string
	// File is an explicit compose file.
	File string
	// Compose queries docker compose. Defaults to compose.NewCLI(File).
	Compose *compose.CLI
	// LookPath resolves executables. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// Runner executes diagnostic checks.
type Runner struct {
	opts   Options
	checks []namedCheck
}

type namedCheck struct {
	name  string
	check Check
}

// New creates a runner with the default checks registered.
func New(opts Options) *Runner {
	if opts.Compose == nil {
		opts.Compose = compose.NewCLI(opts.File)
	}

	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}

	r := &Runner{opts: opts}

	r.AddCheck("Compose File", r.checkComposeFile)
	r.AddCheck("Docker CLI", r.checkDockerCLI)
	r.AddCheck("Compose Version", r.checkComposeVersion)
	r.AddCheck("dcpps Version", checkBuildVersion)

	return r
}

// AddCheck registers a diagnostic check.
func (r *Runner) AddCheck(name string, check Check) {
	r.checks = append(r.checks, namedCheck{name: name, check: check})
}

// Run executes all registered checks and returns the results.
func (r *Runner) Run(ctx context.Context) []Result {
	results := make([]Result, 0, len(r.checks))

	for _, nc := range r.checks {
		result := nc.check(ctx)
		result.Name = nc.name
		result.State = result.Status.String()
		results = append(results, result)
	}

	return results
}

// Summary returns counts of passed, failed, and warning checks.
func Summary(results []Result) (passed, failed, warnings int) {
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			passed++
		case StatusFail:
			failed++
		case StatusWarn:
			warnings++
		}
	}

	return passed, failed, warnings
}

func (r *Runner) checkComposeFile(_ context.Context) Result {
	path := r.opts.File
	if path == "" {
		found, err := compose.FindFile(r.opts.Dir)
		if err != nil {
			return Result{
				Status:  StatusFail,
				Message: "Not found",
				Detail:  fmt.Sprintf("Looked for %v in %s", compose.FileNames, r.opts.Dir),
			}
		}

		path = found
	}

	project, err := compose.LoadProject(path)
	if err != nil {
		return Result{
			Status:  StatusFail,
			Message: filepath.Base(path),
			Detail:  err.Error(),
		}
	}

	services, hidden := len(project.Services()), len(project.Hidden())
	msg := fmt.Sprintf("%s (%d services", filepath.Base(path), services)

	if hidden > 0 {
		msg += fmt.Sprintf(", %d hidden", hidden)
	}

	msg += ")"

	if services == 0 {
		return Result{
			Status:  StatusWarn,
			Message: msg,
			Detail:  fmt.Sprintf("Every service carries the %q label", compose.HideLabel),
		}
	}

	return Result{Status: StatusPass, Message: msg}
}

func (r *Runner) checkDockerCLI(_ context.Context) Result {
	binary := r.opts.Compose.Binary
	if binary == "" {
		binary = compose.DefaultBinary
	}

	path, err := r.opts.LookPath(binary)
	if err != nil {
		return Result{
			Status:  StatusFail,
			Message: "Not found in PATH",
			Detail:  "Install Docker from https://docs.docker.com/get-docker/",
		}
	}

	return Result{Status: StatusPass, Message: path}
}

func (r *Runner) checkComposeVersion(ctx context.Context) Result {
	v, err := r.opts.Compose.Version(ctx)
	if err != nil {
		return Result{
			Status:  StatusFail,
			Message: "docker compose unavailable",
			Detail:  err.Error(),
		}
	}

	if !compose.Supported(v) {
		return Result{
			Status:  StatusWarn,
			Message: fmt.Sprintf("v%s is older than v%s", v, compose.MinVersion),
			Detail:  "Upgrade to the docker compose v2 plugin",
		}
	}

	return Result{Status: StatusPass, Message: "v" + v.String()}
}

func checkBuildVersion(_ context.Context) Result {
	if buildinfo.Version == "dev" {
		return Result{
			Status:  StatusWarn,
			Message: "Development build",
		}
	}

	return Result{
		Status:  StatusPass,
		Message: fmt.Sprintf("v%s (%s)", buildinfo.Version, buildinfo.Commit),
	}
}

// RenderResults formats diagnostic results to the given output functions.
func RenderResults(results []Result, printFn, successFn, warningFn, failureFn, mutedFn func(format string, args ...any)) {
	maxNameLen := 0
	for _, r := range results {
		if len(r.Name) > maxNameLen {
			maxNameLen = len(r.Name)
		}
	}

	for _, r := range results {
		width := maxNameLen + 4

		switch r.Status {
		case StatusPass:
			successFn("%-*s%s", width, r.Name, r.Message)
		case StatusWarn:
			warningFn("%-*s%s", width, r.Name, r.Message)
		case StatusFail:
			failureFn("%-*s%s", width, r.Name, r.Message)
		default:
			printFn("%s %-*s%s\n", r.Status.Symbol(), width, r.Name, r.Message)
		}

		if r.Detail != "" {
			mutedFn("    %s", r.Detail)
		}
	}
}

// Symbol returns the status symbol for display.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return checkMark
	case StatusWarn:
		return warningMark
	case StatusFail:
		return xMark
	default:
		return "?"
	}
}

// String returns the status name used in JSON output.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

const (
	checkMark   = "\u2713" // ✓
	xMark       = "\u2717" // ✗
	warningMark = "\u26A0" // ⚠
)
