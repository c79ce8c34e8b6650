package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zoobzio/tweak"
	"github.com/zoobzio/tweak/plugins"
)

func newRegistry(t *testing.T) *tweak.Registry {
	t.Helper()
	r, err := plugins.NewRegistry(tweak.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	return r
}

func writeDocument(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
	return path
}
