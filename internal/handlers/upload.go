package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sentra/internal/services/ingest"
	"sentra/internal/utils/response"
)

type UploadHandler struct {
	ingestService *ingest.Service
}

func NewUploadHandler(ingestService *ingest.Service) *UploadHandler {
	return &UploadHandler{ingestService: ingestService}
}

// Upload accepts a CSV or JSON transaction file as multipart form data
// under the "file" field.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.ServerError(c, "failed to open upload")
	}
	defer file.Close()

	summary, err := h.ingestService.IngestFile(c.UserContext(), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrUnsupportedFormat):
			return response.BadRequest(c, "unsupported file format, expected .csv or .json")
		case errors.Is(err, ingest.ErrEmptyFile):
			return response.BadRequest(c, "file contains no records")
		default:
			return response.ServerError(c, "ingestion failed")
		}
	}

	return c.JSON(fiber.Map{"summary": summary})
}
