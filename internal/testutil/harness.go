// Package testutil provides helpers shared by the planner test suites.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/botplan/internal/config"
	"github.com/vk/botplan/internal/hcl"
)

// LoadDocument writes the given template to a temp file, loads it, and
// fails the test on any parse error.
func LoadDocument(t *testing.T, templateHCL string) *config.Document {
	t.Helper()

	doc, err := TryLoadDocument(t, templateHCL)
	require.NoError(t, err, "template was expected to parse cleanly")
	return doc
}

// TryLoadDocument writes the given template to a temp file and loads it,
// returning the loader's result untouched so error paths can be asserted.
func TryLoadDocument(t *testing.T, templateHCL string) (*config.Document, error) {
	t.Helper()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(templateHCL), 0600))

	return hcl.NewLoader().Load(context.Background(), path)
}

// LoadDocumentFiles writes several named template files into one temp
// directory and loads the directory as a single document.
func LoadDocumentFiles(t *testing.T, files map[string]string) (*config.Document, error) {
	t.Helper()

	tempDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tempDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}

	return hcl.NewLoader().Load(context.Background(), tempDir)
}
