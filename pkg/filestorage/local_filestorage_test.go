package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStorage_Save(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalFileStorage(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	storage.(*LocalFileStorage).now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }

	first, err := storage.Save(strings.NewReader("pdf"), "cert.PDF", "documents")
	require.NoError(t, err)
	second, err := storage.Save(strings.NewReader("pdf"), "cert.PDF", "documents")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "documents/2026/03/15/"))
	assert.True(t, strings.HasSuffix(first, ".PDF"))
	assert.NotEqual(t, first, second, "имена уникальны")

	data, err := os.ReadFile(filepath.Join(dir, "uploads", filepath.FromSlash(first)))
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(data))
}
