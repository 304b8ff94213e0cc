package echoapi

import (
	"github.com/trezcool/opsdesk/core/review"
)

const (
	purchaseTotal = "total"
	purchaseNone  = "none"
)

type (
	// PurchaseRequest is the inventory shortcut for the two purchase decisions.
	PurchaseRequest struct {
		Decision  string  `json:"decision" validate:"required,oneof=total none"`
		Suggested float64 `json:"suggested" validate:"gte=0"`
		Balance   float64 `json:"balance"`
	}

	QueueListResponse struct {
		Queues []string `json:"queues"`
	}
)

func (req PurchaseRequest) toDecision() review.Decision {
	if req.Decision == purchaseTotal {
		return review.FullPurchase(req.Suggested, req.Balance)
	}
	return review.NoPurchase(req.Balance)
}
