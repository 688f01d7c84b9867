package v1

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var dataURLRe = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// ExtractRequest is the upload payload for text extraction. FileBase64 may be
// a plain base64 string or a full data URL, in which case the MIME type is
// inferred when MimeType is empty.
type ExtractRequest struct {
	FileBase64 string `json:"fileBase64"`
	MimeType   string `json:"mimeType"`
}

// ExtractResponse carries the raw text the vision model produced.
type ExtractResponse struct {
	Text string `json:"text"`
}

// extractRateKey buckets extract requests by extension ID when one resolves
// and by client IP otherwise. Minting a fresh identity per anonymous request
// would hand every such request its own token bucket.
func (s *APIV1Service) extractRateKey(c echo.Context) string {
	if id, ok := s.Identity.Resolve(c); ok {
		return id
	}
	return "ip:" + c.RealIP()
}

// parseUpload validates the upload fields and decodes the document bytes.
// A data URL supplies the MIME type when the explicit field is empty; an
// explicit field always wins.
func parseUpload(req ExtractRequest) ([]byte, string, error) {
	if req.FileBase64 == "" {
		return nil, "", errors.New("Missing fileBase64")
	}

	payload := req.FileBase64
	mimeType := req.MimeType
	if match := dataURLRe.FindStringSubmatch(req.FileBase64); match != nil {
		if mimeType == "" {
			mimeType = match[1]
		}
		payload = match[2]
	}
	if mimeType == "" {
		return nil, "", errors.New("Missing mimeType")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.New("invalid base64 payload")
	}
	return data, mimeType, nil
}

// ExtractText sends an uploaded timetable document to the vision model.
// POST /api/v1/extract
func (s *APIV1Service) ExtractText(c echo.Context) error {
	if s.Vision == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "text extraction is not configured"})
	}

	var req ExtractRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	data, mimeType, err := parseUpload(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	text, err := s.Vision.ExtractTimetable(c.Request().Context(), data, mimeType, s.Parser.DayOrder())
	if err != nil {
		slog.Error("text extraction failed", "mime_type", mimeType, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":   "Failed to extract text",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, ExtractResponse{Text: text})
}
