package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"billscan/internal/service"
)

// ExtractHandler handles bill extraction endpoints.
type ExtractHandler struct {
	extractionService service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractionService service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{extractionService: extractionService}
}

// ExtractBillRequest is the request body for bill extraction.
type ExtractBillRequest struct {
	Document string `json:"document" binding:"required"`
}

// Extract handles POST /extract-bill-data
// @Summary Extract bill data from a document URL
// @Description Downloads the document, rasterizes its pages, and extracts line items page by page
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body ExtractBillRequest true "Document URL"
// @Success 200 {object} ExtractionResult "Extraction result, possibly partial"
// @Failure 400 {object} ErrorResponse "Missing or invalid document URL"
// @Failure 403 {object} ErrorResponse "Document host not allowed"
// @Failure 413 {object} ErrorResponse "Document too large"
// @Failure 415 {object} ErrorResponse "Not a PDF or supported image"
// @Failure 422 {object} ErrorResponse "Document could not be rasterized"
// @Failure 429 {object} ErrorResponse "Extraction provider rate limited"
// @Failure 502 {object} ErrorResponse "Document download failed"
// @Router /extract-bill-data [post]
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req ExtractBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document is required")
		return
	}
	if strings.TrimSpace(req.Document) == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_URL", "document is not a valid http(s) URL")
		return
	}

	resp, err := h.extractionService.ExtractBillData(c.Request.Context(), req.Document)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
