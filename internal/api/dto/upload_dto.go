package dto

import "github.com/spec-kit/catalog-service/internal/service"

// FileResponse describes one stored upload.
type FileResponse struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
}

// DeleteFileRequest payload for removing a stored upload.
type DeleteFileRequest struct {
	Filepath string `json:"filepath"`
}

// NewFileResponse maps a stored file to its API shape.
func NewFileResponse(file *service.StoredFile) FileResponse {
	return FileResponse{
		URL:          file.URL,
		Filename:     file.Filename,
		OriginalName: file.OriginalName,
		MimeType:     file.MimeType,
		Size:         file.Size,
		Path:         file.Path,
	}
}

// NewFileResponses maps a stored file list.
func NewFileResponses(files []*service.StoredFile) []FileResponse {
	out := make([]FileResponse, 0, len(files))
	for _, file := range files {
		out = append(out, NewFileResponse(file))
	}
	return out
}
