package domain

import "errors"

var (
	ErrInvalidURL           = errors.New("invalid document URL")
	ErrForbiddenHost        = errors.New("document host is not allowed")
	ErrUnsupportedFormat    = errors.New("unsupported document format")
	ErrDownloadFailed       = errors.New("document download failed")
	ErrFileTooLarge         = errors.New("document exceeds maximum allowed size")
	ErrRasterization        = errors.New("document could not be rasterized")
	ErrTooManyPages         = errors.New("document exceeds maximum page count")
	ErrMalformedModelOutput = errors.New("model output is not valid structured data")
	ErrModelInvocation      = errors.New("model invocation failed")
)
