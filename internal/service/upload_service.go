package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/pkg/util"
)

// StoredFile describes a persisted upload.
type StoredFile struct {
	URL          string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Path         string
}

// UploadService persists multipart uploads on local disk and resolves their
// public URLs.
type UploadService struct {
	dir         string
	baseURL     string
	maxSize     int64
	allowedExts map[string]struct{}
}

// NewUploadService builds the service.
func NewUploadService(cfg config.UploadConfig, baseURL string) *UploadService {
	allowed := make(map[string]struct{}, len(cfg.AllowedExts))
	for _, ext := range cfg.AllowedExts {
		allowed[ext] = struct{}{}
	}
	return &UploadService{
		dir:         cfg.Dir,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxSize:     cfg.MaxSizeBytes,
		allowedExts: allowed,
	}
}

// Save stores one uploaded file under a generated name.
func (s *UploadService) Save(header *multipart.FileHeader) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := s.allowedExts[ext]; !ok {
		return nil, util.NewBadRequest(fmt.Sprintf("File type %q is not allowed", ext))
	}
	if s.maxSize > 0 && header.Size > s.maxSize {
		return nil, util.NewBadRequest("File too large")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	filename := uuid.NewString() + ext
	dst := filepath.Join(s.dir, filename)

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return nil, err
	}

	return &StoredFile{
		URL:          s.baseURL + "/uploads/" + filename,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Path:         dst,
	}, nil
}

// SaveAll stores several uploaded files, failing on the first bad one.
func (s *UploadService) SaveAll(headers []*multipart.FileHeader) ([]*StoredFile, error) {
	stored := make([]*StoredFile, 0, len(headers))
	for _, header := range headers {
		file, err := s.Save(header)
		if err != nil {
			return nil, err
		}
		stored = append(stored, file)
	}
	return stored, nil
}

// Delete removes a stored file addressed by its public URL or uploads path.
// Paths resolving outside the uploads directory are rejected.
func (s *UploadService) Delete(filepathOrURL string) error {
	name := strings.TrimPrefix(filepathOrURL, s.baseURL)
	name = strings.TrimPrefix(name, "/")
	name = strings.TrimPrefix(name, "uploads/")

	clean := filepath.Clean(name)
	if clean == "." || clean == ".." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return util.NewBadRequest("Invalid file path")
	}

	full := filepath.Join(s.dir, clean)
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return util.NewNotFound("File not found")
		}
		return err
	}
	return os.Remove(full)
}
