package raster

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"log"

	"github.com/gen2brain/go-fitz"

	"billscan/internal/config"
	"billscan/internal/domain"
)

// Rasterizer turns a fetched document into per-page images ready for model
// input. PDFs are rendered page by page through MuPDF; raster images pass
// through untouched as a single page.
type Rasterizer struct {
	cfg *config.RasterConfig
}

// New creates a Rasterizer with the given rendering configuration.
func New(cfg *config.RasterConfig) *Rasterizer {
	return &Rasterizer{cfg: cfg}
}

// Rasterize converts document bytes into an ordered, 1-indexed slice of page
// images. Image input is returned as-is as page 1 without re-encoding.
func (r *Rasterizer) Rasterize(ctx context.Context, data []byte, fileType domain.FileType) ([]domain.PageImage, error) {
	if !fileType.IsPDF() {
		contentType, ok := domain.AllowedFileTypes[fileType]
		if !ok {
			return nil, domain.ErrUnsupportedFormat
		}
		return []domain.PageImage{
			{
				PageNumber:  1,
				Data:        data,
				ContentType: contentType,
			},
		}, nil
	}

	return r.rasterizePDF(ctx, data)
}

func (r *Rasterizer) rasterizePDF(ctx context.Context, data []byte) ([]domain.PageImage, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		// Corrupt or encrypted documents fail to open.
		return nil, fmt.Errorf("%w: %v", domain.ErrRasterization, err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, fmt.Errorf("%w: document has no pages", domain.ErrRasterization)
	}
	if pageCount > r.cfg.MaxPages {
		return nil, fmt.Errorf("%w: document has %d pages, limit is %d", domain.ErrTooManyPages, pageCount, r.cfg.MaxPages)
	}

	log.Printf("raster.Rasterize: rendering %d pages at %d DPI", pageCount, r.cfg.DPI)

	pages := make([]domain.PageImage, 0, pageCount)
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(pageNum, float64(r.cfg.DPI))
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrRasterization, pageNum+1, err)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: r.cfg.JPEGQuality}); err != nil {
			return nil, fmt.Errorf("%w: encoding page %d: %v", domain.ErrRasterization, pageNum+1, err)
		}

		pages = append(pages, domain.PageImage{
			PageNumber:  pageNum + 1,
			Data:        buf.Bytes(),
			ContentType: "image/jpeg",
		})
	}

	return pages, nil
}
