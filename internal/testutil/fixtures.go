package testutil

import (
	"embed"
	"path"
	"testing"
)

// fixtures holds JSON bodies captured from ASA REST agents.
//
//go:embed testdata
var fixtures embed.FS

// LoadFixture reads and returns fixture content as string.
// The path is relative to the testdata directory (e.g. "networkobjects/mixed.json").
func LoadFixture(t *testing.T, name string) string {
	t.Helper()

	data, err := fixtures.ReadFile(path.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}

	return string(data)
}
