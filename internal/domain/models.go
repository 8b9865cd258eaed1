package domain

// BillItem is a single charge line extracted from a bill page. Subtotal and
// grand-total rows are never represented as items; the extraction prompt
// excludes them so they cannot inflate the aggregated bill amount.
type BillItem struct {
	ItemName     string  `json:"item_name"`
	ItemAmount   float64 `json:"item_amount"`
	ItemRate     float64 `json:"item_rate"`
	ItemQuantity float64 `json:"item_quantity"`
}

// PageResult is the structured extraction of one page. Produced once per
// page and immutable afterwards.
type PageResult struct {
	PageNo    string     `json:"page_no"`
	PageType  PageType   `json:"page_type"`
	BillItems []BillItem `json:"bill_items"`
}

// TokenUsage accounts the model tokens consumed by one or more invocations.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add accumulates another usage record into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}

// PageError records a page whose extraction failed. Other pages still
// aggregate; the failed page is reported here by number.
type PageError struct {
	PageNo int    `json:"page_no"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

// ExtractionData is the aggregated payload across all successfully
// extracted pages, in ascending page order.
type ExtractionData struct {
	PagewiseLineItems []PageResult `json:"pagewise_line_items"`
	TotalItemCount    int          `json:"total_item_count"`
	TotalBillAmount   float64      `json:"total_bill_amount"`
}

// ExtractionResponse is the single externally visible artifact of one
// extraction request. IsSuccess is true only when every page extracted
// cleanly; on partial failure the recoverable data is still carried.
type ExtractionResponse struct {
	IsSuccess  bool           `json:"is_success"`
	TokenUsage TokenUsage     `json:"token_usage"`
	Data       ExtractionData `json:"data"`
	PageErrors []PageError    `json:"page_errors,omitempty"`
}

// FetchedDocument is the raw downloaded document plus what the server
// declared about it. Consumed by format detection and discarded after
// rasterization.
type FetchedDocument struct {
	Bytes       []byte
	ContentType string
	FinalURL    string
}

// PageImage is one rasterized page, 1-indexed in document order. Consumed
// by exactly one extraction call.
type PageImage struct {
	PageNumber  int
	Data        []byte
	ContentType string
}
