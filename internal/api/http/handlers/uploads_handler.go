package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/service"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// UploadsHandler manages admin file upload endpoints.
type UploadsHandler struct {
	uploads *service.UploadService
}

// NewUploadsHandler constructs handler.
func NewUploadsHandler(uploads *service.UploadService) *UploadsHandler {
	return &UploadsHandler{uploads: uploads}
}

// Single POST /api/upload/single.
func (h *UploadsHandler) Single(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewBadRequest("Please upload a file")
	}

	stored, err := h.uploads.Save(header)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "File uploaded successfully",
		"data":    dto.NewFileResponse(stored),
	})
}

// Multiple POST /api/upload/multiple.
func (h *UploadsHandler) Multiple(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		return apperrors.NewBadRequest("Please upload files")
	}

	stored, err := h.uploads.SaveAll(form.File["files"])
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Files uploaded successfully",
		"data":    dto.NewFileResponses(stored),
	})
}

// Delete DELETE /api/upload.
func (h *UploadsHandler) Delete(c *fiber.Ctx) error {
	var req dto.DeleteFileRequest
	if err := c.BodyParser(&req); err != nil || req.Filepath == "" {
		return apperrors.NewBadRequest("Please provide file path")
	}

	if err := h.uploads.Delete(req.Filepath); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "File deleted successfully",
	})
}
