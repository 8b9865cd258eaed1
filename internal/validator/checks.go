package validator

import (
	"fmt"
	"math"

	"billscan/internal/domain"
)

// amountTolerance absorbs rounding differences between a printed line amount
// and rate times quantity.
const amountTolerance = 1.00

// Issue is one advisory finding about extracted data. Issues never fail an
// extraction; they are logged so suspect bills can be reviewed.
type Issue struct {
	PageNo string
	Rule   string
	Detail string
}

type rule struct {
	name  string
	check func(page *domain.PageResult) []string
}

// Validator runs sanity checks over extracted page results.
type Validator struct {
	rules []rule
}

// New creates a Validator with the built-in rule set.
func New() *Validator {
	return &Validator{rules: defaultRules()}
}

// Check applies every rule to every page and returns the findings.
func (v *Validator) Check(pages []domain.PageResult) []Issue {
	var issues []Issue
	for i := range pages {
		page := &pages[i]
		for _, r := range v.rules {
			for _, detail := range r.check(page) {
				issues = append(issues, Issue{
					PageNo: page.PageNo,
					Rule:   r.name,
					Detail: detail,
				})
			}
		}
	}
	return issues
}

func defaultRules() []rule {
	return []rule{
		{
			name: "item.amount_consistency",
			check: func(page *domain.PageResult) []string {
				var out []string
				for i := range page.BillItems {
					item := &page.BillItems[i]
					if item.ItemRate <= 0 || item.ItemQuantity <= 0 {
						continue
					}
					expected := item.ItemRate * item.ItemQuantity
					if !approxEqual(item.ItemAmount, expected) {
						out = append(out, fmt.Sprintf("bill_items[%d] %q: amount %s does not match rate*quantity %s",
							i, item.ItemName, fmtf(item.ItemAmount), fmtf(expected)))
					}
				}
				return out
			},
		},
		{
			name: "item.name_present",
			check: func(page *domain.PageResult) []string {
				var out []string
				for i := range page.BillItems {
					if page.BillItems[i].ItemName == "" {
						out = append(out, fmt.Sprintf("bill_items[%d]: empty item name", i))
					}
				}
				return out
			},
		},
		{
			name: "item.non_negative_amount",
			check: func(page *domain.PageResult) []string {
				var out []string
				for i := range page.BillItems {
					item := &page.BillItems[i]
					if item.ItemAmount < 0 {
						out = append(out, fmt.Sprintf("bill_items[%d] %q: negative amount %s",
							i, item.ItemName, fmtf(item.ItemAmount)))
					}
				}
				return out
			},
		},
		{
			name: "page.known_type",
			check: func(page *domain.PageResult) []string {
				if !domain.KnownPageTypes[page.PageType] {
					return []string{fmt.Sprintf("unknown page type %q", page.PageType)}
				}
				return nil
			},
		},
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= amountTolerance
}

func fmtf(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
