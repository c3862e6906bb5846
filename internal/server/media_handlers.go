package server

import (
	"io"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadMedia handles POST /api/media. Accepts a multipart form with a
// single "file" field and returns the stored paths.
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	stored, err := s.media.Save(fileHeader.Filename, content)
	if err != nil {
		return respondError(c, err)
	}

	resp := fiber.Map{
		"path": stored.Path,
		"url":  s.media.URL(stored.Path),
		"size": stored.SizeBytes,
	}
	if stored.ThumbnailPath != "" {
		resp["thumbnail_url"] = s.media.URL(stored.ThumbnailPath)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ServeMedia handles GET /media/:name.
func (s *Server) ServeMedia(c *fiber.Ctx) error {
	full, err := s.media.Resolve(c.Params("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.SendFile(full)
}
