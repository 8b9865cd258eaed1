package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"billscan/internal/domain"
	"billscan/internal/parser"
)

// ErrorResponse is the envelope for all error responses. Success responses
// carry the extraction payload directly, with its own is_success flag.
type ErrorResponse struct {
	IsSuccess bool   `json:"is_success"`
	Error     string `json:"error"`
	Code      string `json:"code"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorResponse{
		IsSuccess: false,
		Error:     msg,
		Code:      code,
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return http.StatusBadRequest, "INVALID_URL", "document is not a valid http(s) URL"
	case errors.Is(err, domain.ErrForbiddenHost):
		return http.StatusForbidden, "FORBIDDEN_HOST", "document host is not allowed"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "unsupported document format; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "document exceeds maximum allowed size"
	case errors.Is(err, domain.ErrDownloadFailed):
		return http.StatusBadGateway, "DOWNLOAD_FAILED", "document could not be downloaded"
	case errors.Is(err, domain.ErrTooManyPages):
		return http.StatusUnprocessableEntity, "TOO_MANY_PAGES", "document has more pages than the allowed maximum"
	case errors.Is(err, domain.ErrRasterization):
		return http.StatusUnprocessableEntity, "RASTERIZATION_FAILED", "document could not be rendered; it may be corrupt or encrypted"
	case parser.IsRateLimited(err):
		return http.StatusTooManyRequests, "RATE_LIMITED", "extraction provider is rate limited; retry later"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] %s: %v", requestID, code, err)
	}
	RespondError(c, status, code, msg)
}
