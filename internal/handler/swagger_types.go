package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// ExtractionResult represents the full extraction response.
type ExtractionResult struct {
	IsSuccess  bool            `json:"is_success" example:"true"`
	TokenUsage ExtractionUsage `json:"token_usage"`
	Data       ExtractedData   `json:"data"`
	PageErrors []PageFailure   `json:"page_errors,omitempty"`
}

// ExtractionUsage represents model token consumption across all pages.
type ExtractionUsage struct {
	InputTokens  int `json:"input_tokens" example:"2048"`
	OutputTokens int `json:"output_tokens" example:"512"`
	TotalTokens  int `json:"total_tokens" example:"2560"`
}

// ExtractedData represents the aggregated line items across pages.
type ExtractedData struct {
	PagewiseLineItems []ExtractedPage `json:"pagewise_line_items"`
	TotalItemCount    int             `json:"total_item_count" example:"14"`
	TotalBillAmount   float64         `json:"total_bill_amount" example:"18425.50"`
}

// ExtractedPage represents one page's extraction.
type ExtractedPage struct {
	PageNo    string              `json:"page_no" example:"1"`
	PageType  string              `json:"page_type" example:"Bill Detail"`
	BillItems []ExtractedLineItem `json:"bill_items"`
}

// ExtractedLineItem represents a single extracted charge line.
type ExtractedLineItem struct {
	ItemName     string  `json:"item_name" example:"Room Rent (Deluxe)"`
	ItemAmount   float64 `json:"item_amount" example:"9000.00"`
	ItemRate     float64 `json:"item_rate" example:"4500.00"`
	ItemQuantity float64 `json:"item_quantity" example:"2"`
}

// PageFailure represents a page whose extraction failed.
type PageFailure struct {
	PageNo int    `json:"page_no" example:"3"`
	Code   string `json:"code" example:"MALFORMED_MODEL_OUTPUT"`
	Error  string `json:"error" example:"model returned prose instead of JSON"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}
