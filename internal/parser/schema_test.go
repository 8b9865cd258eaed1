package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
	"billscan/internal/parser"
)

const validPageJSON = `{
	"page_no": "1",
	"page_type": "Bill Detail",
	"bill_items": [
		{"item_name": "Room Rent", "item_amount": 3000, "item_rate": 1500, "item_quantity": 2},
		{"item_name": "Consultation", "item_amount": 800, "item_rate": 800, "item_quantity": 1}
	]
}`

func TestParsePageResult_ValidJSON(t *testing.T) {
	result, err := parser.ParsePageResult(validPageJSON)

	require.NoError(t, err)
	assert.Equal(t, "1", result.PageNo)
	assert.Equal(t, domain.PageTypeBillDetail, result.PageType)
	require.Len(t, result.BillItems, 2)
	assert.Equal(t, "Room Rent", result.BillItems[0].ItemName)
	assert.Equal(t, 3000.0, result.BillItems[0].ItemAmount)
	assert.Equal(t, 2.0, result.BillItems[0].ItemQuantity)
}

func TestParsePageResult_CodeFencedJSON(t *testing.T) {
	fenced := "```json\n" + validPageJSON + "\n```"

	result, err := parser.ParsePageResult(fenced)

	require.NoError(t, err)
	assert.Equal(t, domain.PageTypeBillDetail, result.PageType)
	assert.Len(t, result.BillItems, 2)
}

func TestParsePageResult_JSONEmbeddedInProse(t *testing.T) {
	wrapped := "Here is the extracted data you asked for:\n" + validPageJSON + "\nLet me know if you need anything else."

	result, err := parser.ParsePageResult(wrapped)

	require.NoError(t, err)
	assert.Len(t, result.BillItems, 2)
}

func TestParsePageResult_EmptyBillItems(t *testing.T) {
	// Cover pages legitimately have no line items.
	result, err := parser.ParsePageResult(`{"page_type": "Final Bill", "bill_items": []}`)

	require.NoError(t, err)
	assert.Equal(t, domain.PageTypeFinalBill, result.PageType)
	assert.Empty(t, result.BillItems)
}

func TestParsePageResult_MissingPageNoAllowed(t *testing.T) {
	// The pipeline overwrites page_no with the rasterizer index anyway.
	result, err := parser.ParsePageResult(`{"page_type": "Pharmacy", "bill_items": [{"item_name": "Syrup", "item_amount": 85, "item_rate": 85, "item_quantity": 1}]}`)

	require.NoError(t, err)
	assert.Equal(t, domain.PageTypePharmacy, result.PageType)
}

func TestParsePageResult_Malformed(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"prose only", "I could not find any line items on this page."},
		{"truncated json", `{"page_type": "Bill Detail", "bill_items": [{"item_name": "Roo`},
		{"unknown page type", `{"page_type": "Discharge Summary", "bill_items": []}`},
		{"missing page type", `{"bill_items": []}`},
		{"missing bill items", `{"page_type": "Bill Detail"}`},
		{"item missing amount", `{"page_type": "Bill Detail", "bill_items": [{"item_name": "X", "item_rate": 1, "item_quantity": 1}]}`},
		{"string amount", `{"page_type": "Bill Detail", "bill_items": [{"item_name": "X", "item_amount": "3000", "item_rate": 1500, "item_quantity": 2}]}`},
		{"array not object", `[{"page_type": "Bill Detail"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := parser.ParsePageResult(tc.text)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, domain.ErrMalformedModelOutput)
		})
	}
}
