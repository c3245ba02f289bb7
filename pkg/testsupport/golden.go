// Package testsupport holds helpers shared by the markup snapshot tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Renderer is anything that can stream its markup, such as a component or a
// templ group.
type Renderer interface {
	Render(ctx context.Context, w io.Writer) error
}

// Updating reports whether golden files should be rewritten.
func Updating() bool {
	return os.Getenv("UPDATE_GOLDENS") != ""
}

// Render streams r into a buffer and returns the markup.
func Render(t *testing.T, r Renderer) string {
	t.Helper()

	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

// AssertGolden compares got with the golden file at path. With UPDATE_GOLDENS
// set the file is rewritten instead. A single trailing newline in the file is
// ignored so goldens stay editor friendly.
func AssertGolden(t *testing.T, path, got string) {
	t.Helper()

	if Updating() {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got+"\n"), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	want := strings.TrimSuffix(string(data), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden mismatch %s (-want +got):\n%s", filepath.Base(path), diff)
	}
}
