package csvexport

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"billscan/internal/domain"
)

func samplePages() []domain.PageResult {
	return []domain.PageResult{
		{
			PageNo:   "1",
			PageType: domain.PageTypeBillDetail,
			BillItems: []domain.BillItem{
				{ItemName: "Room Rent", ItemAmount: 3000, ItemRate: 1500, ItemQuantity: 2},
				{ItemName: "Nursing Charges", ItemAmount: 750.50, ItemRate: 750.50, ItemQuantity: 1},
			},
		},
		{
			PageNo:    "2",
			PageType:  domain.PageTypeFinalBill,
			BillItems: []domain.BillItem{},
		},
		{
			PageNo:   "3",
			PageType: domain.PageTypePharmacy,
			BillItems: []domain.BillItem{
				{ItemName: "Cough Syrup, 100ml", ItemAmount: 240, ItemRate: 120, ItemQuantity: 2},
			},
		},
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 6)
	assert.Equal(t, "Page No", row[0])
	assert.Equal(t, "Item Quantity", row[5])
}

func TestWritePages(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WritePages(samplePages()))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)

	// Header plus three item rows; the empty final-bill page produces none.
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"1", "Bill Detail", "Room Rent", "3000.00", "1500.00", "2"}, rows[1])
	assert.Equal(t, []string{"1", "Bill Detail", "Nursing Charges", "750.50", "750.50", "1"}, rows[2])
	assert.Equal(t, []string{"3", "Pharmacy", "Cough Syrup, 100ml", "240.00", "120.00", "2"}, rows[3])
}

func TestWritePages_CommaInNameIsQuoted(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WritePages(samplePages()))
	w.Flush()

	assert.Contains(t, buf.String(), `"Cough Syrup, 100ml"`)
}

func TestWriteWorkbook(t *testing.T) {
	resp := &domain.ExtractionResponse{
		IsSuccess: true,
		TokenUsage: domain.TokenUsage{
			InputTokens:  100,
			OutputTokens: 40,
			TotalTokens:  140,
		},
		Data: domain.ExtractionData{
			PagewiseLineItems: samplePages(),
			TotalItemCount:    3,
			TotalBillAmount:   3990.50,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, resp))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(itemsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Room Rent", rows[1][2])

	total, err := f.GetCellValue(summarySheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "3990.5", total)

	tokens, err := f.GetCellValue(summarySheet, "B7")
	require.NoError(t, err)
	assert.Equal(t, "140", tokens)
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"visit-1042", "visit-1042"},
		{"Apollo Hospital / Final Bill!", "Apollo_Hospital_Final_Bill"},
		{"___trimmed___", "trimmed"},
		{strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in))
	}
}

func TestBuildFilename(t *testing.T) {
	date := time.Now().Format("2006-01-02")

	assert.Equal(t, "visit-1042_"+date+".csv", BuildFilename("visit-1042", "csv"))
	assert.Equal(t, "bill_export_"+date+".xlsx", BuildFilename("///", "xlsx"))
}
