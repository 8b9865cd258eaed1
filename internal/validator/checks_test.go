package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"billscan/internal/domain"
	"billscan/internal/validator"
)

func TestCheck_CleanPageHasNoIssues(t *testing.T) {
	v := validator.New()
	pages := []domain.PageResult{
		{
			PageNo:   "1",
			PageType: domain.PageTypeBillDetail,
			BillItems: []domain.BillItem{
				{ItemName: "Room Rent", ItemAmount: 3000, ItemRate: 1500, ItemQuantity: 2},
				{ItemName: "Consultation", ItemAmount: 800, ItemRate: 800, ItemQuantity: 1},
			},
		},
	}

	issues := v.Check(pages)

	assert.Empty(t, issues)
}

func TestCheck_AmountMismatch(t *testing.T) {
	v := validator.New()
	pages := []domain.PageResult{
		{
			PageNo:   "2",
			PageType: domain.PageTypePharmacy,
			BillItems: []domain.BillItem{
				// 12.50 * 10 = 125.00 but the amount says 200, off by 75
				{ItemName: "Paracetamol", ItemAmount: 200, ItemRate: 12.5, ItemQuantity: 10},
			},
		},
	}

	issues := v.Check(pages)

	assert.Len(t, issues, 1)
	assert.Equal(t, "2", issues[0].PageNo)
	assert.Equal(t, "item.amount_consistency", issues[0].Rule)
	assert.Contains(t, issues[0].Detail, "Paracetamol")
}

func TestCheck_AmountWithinTolerancePasses(t *testing.T) {
	v := validator.New()
	pages := []domain.PageResult{
		{
			PageNo:   "1",
			PageType: domain.PageTypeBillDetail,
			BillItems: []domain.BillItem{
				// 33.33 * 3 = 99.99, printed amount 100.00: rounding, not an error
				{ItemName: "Dressing", ItemAmount: 100.00, ItemRate: 33.33, ItemQuantity: 3},
			},
		},
	}

	issues := v.Check(pages)

	assert.Empty(t, issues)
}

func TestCheck_MissingRateAndQuantitySkipped(t *testing.T) {
	v := validator.New()
	pages := []domain.PageResult{
		{
			PageNo:   "1",
			PageType: domain.PageTypeBillDetail,
			BillItems: []domain.BillItem{
				// Rate and quantity absent from the bill; consistency rule must not fire.
				{ItemName: "Package Charge", ItemAmount: 5000, ItemRate: 0, ItemQuantity: 0},
			},
		},
	}

	issues := v.Check(pages)

	assert.Empty(t, issues)
}

func TestCheck_EmptyNameAndNegativeAmount(t *testing.T) {
	v := validator.New()
	pages := []domain.PageResult{
		{
			PageNo:   "3",
			PageType: domain.PageTypeBillDetail,
			BillItems: []domain.BillItem{
				{ItemName: "", ItemAmount: -50},
			},
		},
	}

	issues := v.Check(pages)

	rules := make([]string, 0, len(issues))
	for _, issue := range issues {
		rules = append(rules, issue.Rule)
	}
	assert.Contains(t, rules, "item.name_present")
	assert.Contains(t, rules, "item.non_negative_amount")
}

func TestCheck_UnknownPageType(t *testing.T) {
	v := validator.New()
	pages := []domain.PageResult{
		{PageNo: "1", PageType: domain.PageType("Discharge Summary")},
	}

	issues := v.Check(pages)

	assert.Len(t, issues, 1)
	assert.Equal(t, "page.known_type", issues[0].Rule)
}
