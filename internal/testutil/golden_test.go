package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// recordingTB captures failures instead of failing the enclosing test.
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...any) { r.failed = true }

func (r *recordingTB) Fatalf(string, ...any) { r.failed = true }

func writeGolden(t *testing.T, name, content string) {
	t.Helper()

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join("testdata", name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAssertGolden(t *testing.T) {
	t.Chdir(t.TempDir())
	writeGolden(t, "report.golden", " ✅ web running\n")

	t.Run("matching content passes", func(t *testing.T) {
		rec := &recordingTB{TB: t}
		AssertGolden(rec, " ✅ web running\n", "report.golden")

		if rec.failed {
			t.Error("AssertGolden failed on matching content")
		}
	})

	t.Run("mismatched content fails", func(t *testing.T) {
		rec := &recordingTB{TB: t}
		AssertGolden(rec, " ❌ web exited\n", "report.golden")

		if !rec.failed {
			t.Error("AssertGolden passed on mismatched content")
		}
	})
}

func TestReadGolden(t *testing.T) {
	t.Chdir(t.TempDir())
	writeGolden(t, "read.golden", "test content")

	if got := ReadGolden(t, "read.golden"); got != "test content" {
		t.Errorf("ReadGolden() = %q, want %q", got, "test content")
	}

	if got := ReadGolden(t, "nonexistent.golden"); got != "" {
		t.Errorf("ReadGolden() for missing file = %q, want empty", got)
	}
}

func TestGoldenPath(t *testing.T) {
	if got, want := GoldenPath("test.golden"), filepath.Join("testdata", "test.golden"); got != want {
		t.Errorf("GoldenPath() = %q, want %q", got, want)
	}
}
