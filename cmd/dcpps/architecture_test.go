package main

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const moduleRoot = "github.com/musher-dev/dcpps"

// Package ranks, lowest first. A package may import packages of its own
// rank or below, never above. New packages under internal/ must be ranked
// here before TestInternalPackagesRanked passes.
const (
	rankFoundation = iota // no internal imports beyond its own rank
	rankPlatform          // logging, config, output
	rankDomain            // status model and the compose provider
	rankFeature           // watch loop and doctor checks
)

var packageRanks = map[string]int{
	"buildinfo":     rankFoundation,
	"errors":        rankFoundation,
	"paths":         rankFoundation,
	"terminal":      rankFoundation,
	"testutil":      rankFoundation,
	"observability": rankPlatform,
	"config":        rankPlatform,
	"output":        rankPlatform,
	"status":        rankDomain,
	"compose":       rankDomain,
	"watch":         rankFeature,
	"doctor":        rankFeature,
}

// internalName returns the first path element below internal/, or "" for
// packages outside internal/. Test variant suffixes are dropped.
func internalName(path string) string {
	rest, ok := strings.CutPrefix(path, moduleRoot+"/internal/")
	if !ok {
		return ""
	}

	name, _, _ := strings.Cut(rest, "/")
	name = strings.TrimSuffix(name, ".test")

	return strings.TrimSuffix(name, "_test")
}

func isTestVariant(pkg *packages.Package) bool {
	return strings.HasSuffix(pkg.ID, ".test") || strings.Contains(pkg.ID, " [")
}

// productionImports loads the module and returns, per non-test package
// path, the sorted list of its imports.
func productionImports(t *testing.T) map[string][]string {
	t.Helper()

	cfg := &packages.Config{
		Mode:  packages.NeedName | packages.NeedImports,
		Tests: true,
	}

	pkgs, err := packages.Load(cfg, moduleRoot+"/...")
	if err != nil {
		t.Fatalf("loading packages: %v", err)
	}

	imports := map[string][]string{}

	for _, pkg := range pkgs {
		if isTestVariant(pkg) {
			continue
		}

		list := make([]string, 0, len(pkg.Imports))
		for imp := range pkg.Imports {
			list = append(list, imp)
		}

		sort.Strings(list)
		imports[pkg.PkgPath] = list
	}

	if len(imports) == 0 {
		t.Fatal("no packages loaded")
	}

	return imports
}

func TestInternalPackagesRanked(t *testing.T) {
	for path := range productionImports(t) {
		name := internalName(path)
		if name == "" {
			continue
		}

		if _, ok := packageRanks[name]; !ok {
			t.Errorf("internal/%s has no rank; add it to packageRanks in architecture_test.go", name)
		}
	}
}

func TestInternalImportsPointDownward(t *testing.T) {
	for path, imports := range productionImports(t) {
		from := internalName(path)
		if from == "" {
			continue
		}

		for _, imp := range imports {
			to := internalName(imp)
			if to == "" || to == from {
				continue
			}

			if packageRanks[to] > packageRanks[from] {
				t.Errorf("internal/%s imports higher-ranked internal/%s", from, to)
			}

			if packageRanks[from] == rankFeature && packageRanks[to] == rankFeature {
				t.Errorf("internal/%s imports sibling feature internal/%s", from, to)
			}
		}
	}
}

// The classifier, renderer and watch loop only see status.Provider; running
// docker is the compose package's job.
func TestStatusPipelineIsProviderAgnostic(t *testing.T) {
	forbidden := map[string]bool{
		"os/exec":                         true,
		moduleRoot + "/internal/compose": true,
	}

	imports := productionImports(t)

	for _, path := range []string{moduleRoot + "/internal/status", moduleRoot + "/internal/watch"} {
		for _, imp := range imports[path] {
			if forbidden[imp] {
				t.Errorf("%s imports %s", path, imp)
			}
		}
	}
}

// Only cmd/dcpps writes user-facing output; internal packages return values.
func TestOutputUsedOnlyByCommands(t *testing.T) {
	outputPkg := moduleRoot + "/internal/output"

	for path, imports := range productionImports(t) {
		if internalName(path) == "" {
			continue
		}

		for _, imp := range imports {
			if imp == outputPkg && path != outputPkg {
				t.Errorf("%s imports internal/output", path)
			}
		}
	}
}

func TestInternalPackagesDoNotImportCmd(t *testing.T) {
	for path, imports := range productionImports(t) {
		if internalName(path) == "" {
			continue
		}

		for _, imp := range imports {
			if strings.HasPrefix(imp, moduleRoot+"/cmd/") {
				t.Errorf("%s imports %s", path, imp)
			}
		}
	}
}

func TestTestutilOnlyInTests(t *testing.T) {
	testutilPkg := moduleRoot + "/internal/testutil"

	for path, imports := range productionImports(t) {
		for _, imp := range imports {
			if imp == testutilPkg {
				t.Errorf("%s imports internal/testutil outside tests", path)
			}
		}
	}
}
