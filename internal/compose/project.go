// Package compose reads docker compose projects and queries their status
// through the docker CLI.
package compose

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// HideLabel marks a service that should not be listed.
const HideLabel = "hide-from-dcpps"

// FileNames are the compose file names searched for, in order.
var FileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yaml",
	"compose.yml",
}

var (
	// ErrNoComposeFile is returned when no compose file exists in a directory.
	ErrNoComposeFile = errors.New("no compose file found")
	// ErrNoServices is returned when a compose file defines no services.
	ErrNoServices = errors.New("compose file defines no services")
)

// FindFile returns the path of the first compose file found in dir.
func FindFile(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w in %s", ErrNoComposeFile, dir)
}

// Project is the subset of a compose file needed to list its services.
type Project struct {
	Path     string
	services map[string]serviceDef
}

type projectFile struct {
	Services map[string]serviceDef `yaml:"services"`
}

type serviceDef struct {
	Labels labels `yaml:"labels"`
}

// labels accepts both the mapping form and the "key=value" list form.
type labels map[string]any

func (l *labels) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		m := map[string]any{}
		if err := node.Decode(&m); err != nil {
			return err
		}

		*l = m
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}

		m := make(map[string]any, len(items))
		for _, item := range items {
			key, value, found := strings.Cut(item, "=")
			if !found {
				m[key] = true
				continue
			}

			m[key] = value
		}

		*l = m
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("line %d: labels must be a mapping or a list", node.Line)
		}
	default:
		return fmt.Errorf("line %d: labels must be a mapping or a list", node.Line)
	}

	return nil
}

// LoadProject parses the compose file at path.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read compose file: %w", err)
	}

	return ParseProject(path, data)
}

// ParseProject parses compose file contents. path is recorded for
// reference only.
func ParseProject(path string, data []byte) (*Project, error) {
	var f projectFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse compose file %s: %w", path, err)
	}

	if len(f.Services) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoServices, path)
	}

	return &Project{Path: path, services: f.Services}, nil
}

// Services returns the names of all services not marked with HideLabel,
// sorted.
func (p *Project) Services() []string {
	names := make([]string, 0, len(p.services))
	for name, def := range p.services {
		if truthy(def.Labels[HideLabel]) {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Hidden returns the names of services marked with HideLabel, sorted.
func (p *Project) Hidden() []string {
	var names []string
	for name, def := range p.services {
		if truthy(def.Labels[HideLabel]) {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// truthy reports whether a label value enables a flag. Empty strings, false
// and zero are false; any other value is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
