package lune

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip builds a zip archive at path with the given name/content entries
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		hdr := &zip.FileHeader{Name: name, Method: zip.Deflate}
		hdr.SetMode(0644)
		fw, err := w.CreateHeader(hdr)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "lune.zip")
	writeZip(t, archive, map[string]string{
		"lune":           "#!/bin/sh\necho lune 0.8.9\n",
		"docs/README.md": "readme",
	})

	dest := filepath.Join(dir, "out")
	files, err := ExtractZip(archive, dest)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	data, err := os.ReadFile(filepath.Join(dest, "lune"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "lune 0.8.9")

	data, err = os.ReadFile(filepath.Join(dest, "docs", "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "readme", string(data))
}

func TestExtractZip_RejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeZip(t, archive, map[string]string{
		"../escaped": "nope",
	})

	dest := filepath.Join(dir, "out")
	_, err := ExtractZip(archive, dest)
	assert.True(t, errors.Is(err, errors.NotValid), "unexpected error %v", err)

	_, statErr := os.Stat(filepath.Join(dir, "escaped"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractZip_NotAnArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "lune.zip")
	require.NoError(t, os.WriteFile(archive, []byte("<html>rate limited</html>"), 0644))

	_, err := ExtractZip(archive, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening archive")
}
