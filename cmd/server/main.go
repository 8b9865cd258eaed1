package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	_ "billscan/docs"
	"billscan/internal/config"
	"billscan/internal/fetcher"
	"billscan/internal/handler"
	"billscan/internal/parser"
	"billscan/internal/parser/claude"
	"billscan/internal/parser/gemini"
	"billscan/internal/parser/openai"
	"billscan/internal/port"
	"billscan/internal/raster"
	"billscan/internal/router"
	"billscan/internal/service"
	"billscan/internal/validator"
)

// @title           billscan API
// @version         1.0
// @description     Extracts itemized line items from hospital bill documents using vision models.
// @BasePath        /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Register extraction providers
	parser.RegisterProvider("gemini", func(pc *config.ParserProviderConfig) (port.PageExtractor, error) {
		return gemini.NewExtractor(pc), nil
	})
	parser.RegisterProvider("openai", func(pc *config.ParserProviderConfig) (port.PageExtractor, error) {
		return openai.NewExtractor(pc), nil
	})
	parser.RegisterProvider("claude", func(pc *config.ParserProviderConfig) (port.PageExtractor, error) {
		return claude.NewExtractor(pc), nil
	})

	extractor, err := buildExtractor(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to build extractor: %w", err)
	}

	// Initialize pipeline components
	docFetcher := fetcher.New(&cfg.Fetch)
	rasterizer := raster.New(&cfg.Raster)
	checks := validator.New()

	// Initialize services
	extractionSvc := service.NewExtractionService(docFetcher, rasterizer, extractor, checks, &cfg.Pipeline)

	// Initialize handlers
	extractH := handler.NewExtractHandler(extractionSvc)
	exportH := handler.NewExportHandler(extractionSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, extractH, exportH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildExtractor assembles the provider chain: primary alone, or a fallback
// chain when secondary/tertiary providers are configured.
func buildExtractor(cfg *config.ParserConfig) (port.PageExtractor, error) {
	primary, err := parser.NewPageExtractor(&cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("primary provider: %w", err)
	}

	extractors := []port.PageExtractor{primary}
	names := []string{cfg.Primary.Provider}

	if sc := cfg.SecondaryConfig(); sc != nil {
		secondary, err := parser.NewPageExtractor(sc)
		if err != nil {
			return nil, fmt.Errorf("secondary provider: %w", err)
		}
		extractors = append(extractors, secondary)
		names = append(names, sc.Provider)
	}
	if tc := cfg.TertiaryConfig(); tc != nil {
		tertiary, err := parser.NewPageExtractor(tc)
		if err != nil {
			return nil, fmt.Errorf("tertiary provider: %w", err)
		}
		extractors = append(extractors, tertiary)
		names = append(names, tc.Provider)
	}

	if len(extractors) == 1 {
		return primary, nil
	}
	log.Printf("extraction fallback chain: %v", names)
	return parser.NewFallbackExtractor(extractors, names), nil
}
