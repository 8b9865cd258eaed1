package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"billscan/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row, one row per extracted line item.
var columns = []string{
	"Page No",
	"Page Type",
	"Item Name",
	"Item Amount",
	"Item Rate",
	"Item Quantity",
}

// Writer wraps csv.Writer for exporting extracted line items as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WritePages flattens page results into CSV rows, one per line item, in page
// order. Pages without items produce no rows.
func (w *Writer) WritePages(pages []domain.PageResult) error {
	for i := range pages {
		page := &pages[i]
		for j := range page.BillItems {
			if err := w.csv.Write(itemToRow(page, &page.BillItems[j])); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func itemToRow(page *domain.PageResult, item *domain.BillItem) []string {
	return []string{
		page.PageNo,
		string(page.PageType),
		item.ItemName,
		formatMoney(item.ItemAmount),
		formatMoney(item.ItemRate),
		formatQuantity(item.ItemQuantity),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatQuantity drops trailing zeros so whole quantities print as integers.
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a document name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "bill_export"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
