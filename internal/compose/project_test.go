package compose

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseProject_Services(t *testing.T) {
	data := []byte(`
services:
  web:
    image: nginx
  db:
    image: postgres
    labels:
      hide-from-dcpps: "true"
  cache:
    image: redis
    labels:
      - "com.example.team=core"
      - "hide-from-dcpps"
  api:
    image: api
    labels:
      hide-from-dcpps: false
  worker:
    image: worker
    labels:
      - "hide-from-dcpps="
  adminer:
`)

	p, err := ParseProject("docker-compose.yml", data)
	if err != nil {
		t.Fatalf("ParseProject() error = %v", err)
	}

	if got, want := p.Services(), []string{"adminer", "api", "web", "worker"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Services() = %v, want %v", got, want)
	}

	if got, want := p.Hidden(), []string{"cache", "db"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Hidden() = %v, want %v", got, want)
	}
}

func TestParseProject_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "no services key", data: "version: '3'\n", wantErr: ErrNoServices},
		{name: "empty services", data: "services: {}\n", wantErr: ErrNoServices},
		{name: "empty file", data: "", wantErr: ErrNoServices},
		{name: "invalid yaml", data: "services: [\n"},
		{name: "labels scalar", data: "services:\n  web:\n    labels: nope\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProject("compose.yaml", []byte(tt.data))
			if err == nil {
				t.Fatal("ParseProject() error = nil, want error")
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseProject() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFindFile(t *testing.T) {
	t.Run("prefers docker-compose.yml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "docker-compose.yaml"))
		writeFile(t, filepath.Join(dir, "docker-compose.yml"))
		writeFile(t, filepath.Join(dir, "compose.yaml"))

		got, err := FindFile(dir)
		if err != nil {
			t.Fatalf("FindFile() error = %v", err)
		}

		if want := filepath.Join(dir, "docker-compose.yml"); got != want {
			t.Errorf("FindFile() = %q, want %q", got, want)
		}
	})

	t.Run("falls back to compose.yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "compose.yaml"))

		got, err := FindFile(dir)
		if err != nil {
			t.Fatalf("FindFile() error = %v", err)
		}

		if want := filepath.Join(dir, "compose.yaml"); got != want {
			t.Errorf("FindFile() = %q, want %q", got, want)
		}
	})

	t.Run("ignores directories", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, "docker-compose.yml"), 0o755); err != nil {
			t.Fatal(err)
		}

		if _, err := FindFile(dir); !errors.Is(err, ErrNoComposeFile) {
			t.Errorf("FindFile() error = %v, want ErrNoComposeFile", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := FindFile(t.TempDir()); !errors.Is(err, ErrNoComposeFile) {
			t.Errorf("FindFile() error = %v, want ErrNoComposeFile", err)
		}
	})
}

func TestLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docker-compose.yml")
	if err := os.WriteFile(path, []byte("services:\n  web: {}\n  db: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}

	if p.Path != path {
		t.Errorf("Path = %q, want %q", p.Path, path)
	}

	if got, want := p.Services(), []string{"db", "web"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Services() = %v, want %v", got, want)
	}

	if _, err := LoadProject(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("LoadProject(missing) error = nil, want error")
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()

	if err := os.WriteFile(path, []byte("services:\n  web: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
}
