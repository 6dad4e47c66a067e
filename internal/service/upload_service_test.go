package service

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/config"
)

func newUploadService(t *testing.T) *UploadService {
	t.Helper()

	return NewUploadService(config.UploadConfig{
		Dir:          t.TempDir(),
		MaxSizeBytes: 1 << 20,
		AllowedExts:  []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
	}, "http://localhost:8080/")
}

// multipartHeader builds a real FileHeader by writing and re-parsing a
// multipart form, the same shape fiber hands to the handlers.
func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(4 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	headers := form.File["image"]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestUploadServiceSave(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := newUploadService(t)
		header := multipartHeader(t, "ring.JPG", []byte("jpeg-bytes"))

		stored, err := svc.Save(header)
		require.NoError(t, err)
		assert.Equal(t, "ring.JPG", stored.OriginalName)
		assert.Equal(t, ".jpg", filepath.Ext(stored.Filename))
		assert.Contains(t, stored.URL, "http://localhost:8080/uploads/")
		assert.Equal(t, int64(len("jpeg-bytes")), stored.Size)

		written, err := os.ReadFile(stored.Path)
		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg-bytes"), written)
	})

	t.Run("DisallowedExtension", func(t *testing.T) {
		svc := newUploadService(t)
		header := multipartHeader(t, "payload.exe", []byte("nope"))

		_, err := svc.Save(header)
		requireAppError(t, err, 400, `File type ".exe" is not allowed`)
	})

	t.Run("NoExtension", func(t *testing.T) {
		svc := newUploadService(t)
		header := multipartHeader(t, "ring", []byte("nope"))

		_, err := svc.Save(header)
		requireAppError(t, err, 400, `File type "" is not allowed`)
	})

	t.Run("TooLarge", func(t *testing.T) {
		svc := NewUploadService(config.UploadConfig{
			Dir:          t.TempDir(),
			MaxSizeBytes: 4,
			AllowedExts:  []string{".png"},
		}, "http://localhost:8080")
		header := multipartHeader(t, "big.png", []byte("more than four bytes"))

		_, err := svc.Save(header)
		requireAppError(t, err, 400, "File too large")
	})

	t.Run("UniqueNames", func(t *testing.T) {
		svc := newUploadService(t)
		first, err := svc.Save(multipartHeader(t, "ring.png", []byte("a")))
		require.NoError(t, err)
		second, err := svc.Save(multipartHeader(t, "ring.png", []byte("b")))
		require.NoError(t, err)
		assert.NotEqual(t, first.Filename, second.Filename)
	})
}

func TestUploadServiceSaveAll(t *testing.T) {
	svc := newUploadService(t)
	headers := []*multipart.FileHeader{
		multipartHeader(t, "one.png", []byte("one")),
		multipartHeader(t, "two.webp", []byte("two")),
	}

	stored, err := svc.SaveAll(headers)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	// A bad file anywhere in the batch fails the whole call.
	headers = append(headers, multipartHeader(t, "three.exe", []byte("three")))
	_, err = svc.SaveAll(headers)
	assert.Error(t, err)
}

func TestUploadServiceDelete(t *testing.T) {
	t.Run("ByPublicURL", func(t *testing.T) {
		svc := newUploadService(t)
		stored, err := svc.Save(multipartHeader(t, "ring.png", []byte("bytes")))
		require.NoError(t, err)

		require.NoError(t, svc.Delete(stored.URL))
		_, err = os.Stat(stored.Path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("ByUploadsPath", func(t *testing.T) {
		svc := newUploadService(t)
		stored, err := svc.Save(multipartHeader(t, "ring.png", []byte("bytes")))
		require.NoError(t, err)

		require.NoError(t, svc.Delete("uploads/"+stored.Filename))
	})

	t.Run("Missing", func(t *testing.T) {
		svc := newUploadService(t)
		err := svc.Delete("uploads/does-not-exist.png")
		requireAppError(t, err, 404, "File not found")
	})

	t.Run("TraversalRejected", func(t *testing.T) {
		svc := newUploadService(t)
		err := svc.Delete("uploads/../../etc/passwd")
		requireAppError(t, err, 400, "Invalid file path")
	})

	t.Run("ForeignPathStaysInsideDir", func(t *testing.T) {
		svc := newUploadService(t)
		err := svc.Delete("/etc/passwd")
		requireAppError(t, err, 404, "File not found")
	})
}
