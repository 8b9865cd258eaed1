package service

import (
	"errors"
	"math"

	"billscan/internal/domain"
	"billscan/internal/parser"
)

// Page error codes reported in the response body.
const (
	pageErrMalformedOutput = "MALFORMED_MODEL_OUTPUT"
	pageErrRateLimited     = "RATE_LIMITED"
	pageErrModelInvocation = "MODEL_INVOCATION_FAILED"
)

// aggregate folds per-page outcomes into the response. Token usage sums over
// every invocation, failed pages included. The bill total sums item amounts
// from Bill Detail and Pharmacy pages only; Final Bill pages restate those
// amounts and would double-count them.
func aggregate(outcomes []pageOutcome) *domain.ExtractionResponse {
	resp := &domain.ExtractionResponse{
		IsSuccess: true,
		Data: domain.ExtractionData{
			PagewiseLineItems: make([]domain.PageResult, 0, len(outcomes)),
		},
	}

	var total float64
	for i := range outcomes {
		o := &outcomes[i]
		resp.TokenUsage.Add(o.usage)

		if o.err != nil {
			resp.IsSuccess = false
			resp.PageErrors = append(resp.PageErrors, domain.PageError{
				PageNo: o.pageNo,
				Code:   pageErrorCode(o.err),
				Error:  o.err.Error(),
			})
			continue
		}

		resp.Data.PagewiseLineItems = append(resp.Data.PagewiseLineItems, *o.result)
		resp.Data.TotalItemCount += len(o.result.BillItems)
		if o.result.PageType.CountsTowardTotal() {
			for _, item := range o.result.BillItems {
				total += item.ItemAmount
			}
		}
	}
	resp.Data.TotalBillAmount = roundCents(total)

	return resp
}

func pageErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedModelOutput):
		return pageErrMalformedOutput
	case parser.IsRateLimited(err):
		return pageErrRateLimited
	default:
		return pageErrModelInvocation
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
