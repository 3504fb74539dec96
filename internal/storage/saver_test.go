package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a multipart.FileHeader the way an HTTP upload would.
func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("upload", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["upload"][0]
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "photo.jpg", SanitizeFilename("photo.jpg"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "my_plate_1_.jpg", SanitizeFilename("my plate (1).jpg"))
	assert.Equal(t, "upload", SanitizeFilename(""))
	assert.Equal(t, "upload", SanitizeFilename(".."))
}

func TestSaveWritesUnderCategoryDir(t *testing.T) {
	root := t.TempDir()
	s := NewSaver(root)

	rel, err := s.Save("ocr", "crop", fileHeader(t, "plate.jpg", "image-bytes"))
	require.NoError(t, err)

	assert.True(t, filepath.IsLocal(rel))
	assert.Contains(t, rel, "uploads/ocr/crop/")
	assert.Contains(t, rel, "plate.jpg")

	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestSaveIdenticalNamesDoNotCollide(t *testing.T) {
	root := t.TempDir()
	s := NewSaver(root)

	first, err := s.Save("omc", "entry", fileHeader(t, "car.png", "first"))
	require.NoError(t, err)
	second, err := s.Save("omc", "entry", fileHeader(t, "car.png", "second"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same original name must land on distinct paths")

	a, err := os.ReadFile(filepath.Join(root, first))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(root, second))
	require.NoError(t, err)
	assert.Equal(t, "first", string(a))
	assert.Equal(t, "second", string(b))
}
