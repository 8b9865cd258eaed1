package raster

import (
	"net/http"

	"billscan/internal/domain"
)

// DetectFormat classifies document bytes by magic-byte sniffing. The URL
// suffix and the server's Content-Type header are never consulted; only the
// content signature decides. Zero-byte or unrecognized input fails here,
// before any rasterization or model call happens.
func DetectFormat(data []byte) (domain.FileType, error) {
	if len(data) == 0 {
		return "", domain.ErrUnsupportedFormat
	}

	// http.DetectContentType sniffs at most the first 512 bytes.
	sniff := data
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	detected := http.DetectContentType(sniff)

	fileType, ok := domain.AllowedContentTypes[detected]
	if !ok {
		return "", domain.ErrUnsupportedFormat
	}
	return fileType, nil
}
