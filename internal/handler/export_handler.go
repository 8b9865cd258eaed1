package handler

import (
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"billscan/internal/csvexport"
	"billscan/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles extraction export endpoints.
type ExportHandler struct {
	extractionService service.ExtractionService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(extractionService service.ExtractionService) *ExportHandler {
	return &ExportHandler{extractionService: extractionService}
}

// Export handles POST /extract-bill-data/export
// @Summary      Extract bill data and download as CSV or XLSX
// @Description  Runs the extraction pipeline and streams the line items as a spreadsheet
// @Tags         extraction
// @Accept       json
// @Produce      text/csv
// @Param        format query string false "Export format: csv or xlsx" default(csv)
// @Param        request body ExtractBillRequest true "Document URL"
// @Success      200 {string} string "Spreadsheet attachment"
// @Failure      400 {object} ErrorResponse "Missing document URL or unknown format"
// @Failure      403 {object} ErrorResponse "Document host not allowed"
// @Failure      422 {object} ErrorResponse "Document could not be rasterized"
// @Failure      502 {object} ErrorResponse "Document download failed"
// @Router       /extract-bill-data/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format must be 'csv' or 'xlsx'")
		return
	}

	var req ExtractBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document is required")
		return
	}

	resp, err := h.extractionService.ExtractBillData(c.Request.Context(), req.Document)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(documentBaseName(req.Document), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if format == "xlsx" {
		c.Header("Content-Type", xlsxContentType)
		c.Status(http.StatusOK)
		// Headers are committed; a write failure here can only be logged.
		if err := csvexport.WriteWorkbook(c.Writer, resp); err != nil {
			log.Printf("ExportHandler.Export: writing workbook: %v", err)
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	// BOM first so Excel opens the file as UTF-8.
	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WritePages(resp.Data.PagewiseLineItems); err != nil {
		return
	}
	w.Flush()
}

// documentBaseName derives an export filename stem from the document URL,
// falling back to the raw string when it does not parse.
func documentBaseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return rawURL
	}
	base := path.Base(u.Path)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
