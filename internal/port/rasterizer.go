package port

import (
	"context"

	"billscan/internal/domain"
)

// PageRasterizer abstracts converting a document into per-page images.
type PageRasterizer interface {
	Rasterize(ctx context.Context, data []byte, fileType domain.FileType) ([]domain.PageImage, error)
}
