package backup

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func TestArchiveDocumentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "demo_20260824_1200.md")
	content := []byte("# 项目名称：demo\n\nbody with some repetition repetition repetition\n")
	require.NoError(t, os.WriteFile(docPath, content, 0o644))

	zipPath, err := ArchiveDocument(docPath, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "demo_20260824_1200.zip"), zipPath)

	// The original document is untouched.
	original, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Equal(t, content, original)

	// The archive holds exactly one entry, named after the document,
	// decompressing to the same bytes.
	r, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 1)
	assert.Equal(t, "demo_20260824_1200.md", r.File[0].Name)

	rc, err := r.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	extracted, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, extracted)
}

func TestArchiveDocumentMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := ArchiveDocument(filepath.Join(dir, "absent.md"), zap.NewNop())
	assert.Error(t, err)

	// No partial archive is left behind.
	_, statErr := os.Stat(filepath.Join(dir, "absent.zip"))
	assert.True(t, os.IsNotExist(statErr))
}
