package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/port"
	"billscan/internal/raster"
	"billscan/internal/validator"
)

// ExtractionService defines the bill extraction contract.
type ExtractionService interface {
	ExtractBillData(ctx context.Context, documentURL string) (*domain.ExtractionResponse, error)
}

type extractionService struct {
	fetcher    port.DocumentFetcher
	rasterizer port.PageRasterizer
	extractor  port.PageExtractor
	validator  *validator.Validator
	cfg        *config.PipelineConfig
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(
	fetcher port.DocumentFetcher,
	rasterizer port.PageRasterizer,
	extractor port.PageExtractor,
	validator *validator.Validator,
	cfg *config.PipelineConfig,
) ExtractionService {
	return &extractionService{
		fetcher:    fetcher,
		rasterizer: rasterizer,
		extractor:  extractor,
		validator:  validator,
		cfg:        cfg,
	}
}

// pageOutcome is the per-page result of one extraction attempt. Usage is
// populated whenever the model was invoked, including attempts whose output
// failed to parse.
type pageOutcome struct {
	pageNo int
	result *domain.PageResult
	usage  domain.TokenUsage
	err    error
}

// ExtractBillData runs the full pipeline: download, format detection,
// rasterization, per-page model extraction, aggregation. Pipeline-level
// failures (bad URL, forbidden host, unsupported format, rasterization)
// return an error; per-page extraction failures do not, they are reported
// inside the response with IsSuccess=false.
func (s *extractionService) ExtractBillData(ctx context.Context, documentURL string) (*domain.ExtractionResponse, error) {
	doc, err := s.fetcher.Fetch(ctx, documentURL)
	if err != nil {
		return nil, err
	}

	fileType, err := raster.DetectFormat(doc.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: content does not look like a PDF or image", err)
	}

	pages, err := s.rasterizer.Rasterize(ctx, doc.Bytes, fileType)
	if err != nil {
		return nil, err
	}

	outcomes := s.extractPages(ctx, pages)
	resp := aggregate(outcomes)

	if s.validator != nil {
		for _, issue := range s.validator.Check(resp.Data.PagewiseLineItems) {
			log.Printf("extractionService.ExtractBillData: check %s on page %s: %s", issue.Rule, issue.PageNo, issue.Detail)
		}
	}

	log.Printf("extractionService.ExtractBillData: %d pages, %d failed, %d items, total %.2f, tokens %d",
		len(pages), len(resp.PageErrors), resp.Data.TotalItemCount, resp.Data.TotalBillAmount, resp.TokenUsage.TotalTokens)

	return resp, nil
}

// extractPages fans page extraction out across a bounded pool. Each goroutine
// writes only its own slot, so outcomes come back in page order without
// further sorting.
func (s *extractionService) extractPages(ctx context.Context, pages []domain.PageImage) []pageOutcome {
	concurrency := s.cfg.PageConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	outcomes := make([]pageOutcome, len(pages))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i := range pages {
		page := pages[i] // copy for goroutine
		idx := i

		sem <- struct{}{} // acquire
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }() // release

			outcomes[idx] = s.extractPage(ctx, page)
		}()
	}
	wg.Wait()

	return outcomes
}

func (s *extractionService) extractPage(ctx context.Context, page domain.PageImage) pageOutcome {
	outcome := pageOutcome{pageNo: page.PageNumber}

	out, err := s.extractor.Extract(ctx, port.PageInput{
		ImageBytes:  page.Data,
		ContentType: page.ContentType,
	})
	if out != nil {
		// Tokens were spent even if the output was unusable.
		outcome.usage = out.Usage
	}
	if err != nil {
		log.Printf("extractionService.extractPage: page %d failed: %v", page.PageNumber, err)
		outcome.err = err
		return outcome
	}
	if out == nil || out.Result == nil {
		outcome.err = fmt.Errorf("%w: extractor returned no result", domain.ErrMalformedModelOutput)
		return outcome
	}

	// The rasterizer's numbering is authoritative over whatever the model
	// printed in page_no.
	result := *out.Result
	result.PageNo = strconv.Itoa(page.PageNumber)
	outcome.result = &result
	return outcome
}
