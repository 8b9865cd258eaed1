package parser

import (
	"fmt"

	"billscan/internal/config"
	"billscan/internal/port"
)

// ProviderFactory is a function that creates a PageExtractor from a provider config.
type ProviderFactory func(cfg *config.ParserProviderConfig) (port.PageExtractor, error)

// registry of extraction provider factories, populated explicitly via
// RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extraction provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewPageExtractor creates a PageExtractor from a provider config using the
// registered factory.
func NewPageExtractor(cfg *config.ParserProviderConfig) (port.PageExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extraction provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
