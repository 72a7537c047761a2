package model

import (
	"github.com/shopspring/decimal"
)

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusExpired   QuoteStatus = "expired"
	QuoteStatusConverted QuoteStatus = "converted"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted,
		QuoteStatusRejected, QuoteStatusExpired, QuoteStatusConverted:
		return true
	}
	return false
}

// Editable reports whether quote items may still be mutated.
func (s QuoteStatus) Editable() bool {
	return s == QuoteStatusDraft || s == QuoteStatusSent
}

// QuoteTransitionAllowed implements the quote lifecycle:
// draft -> sent -> {accepted, rejected, expired}; accepted -> converted.
// Terminal states have no outgoing transitions.
func QuoteTransitionAllowed(from, to QuoteStatus) bool {
	switch from {
	case QuoteStatusDraft:
		return to == QuoteStatusSent || to == QuoteStatusRejected || to == QuoteStatusExpired
	case QuoteStatusSent:
		return to == QuoteStatusAccepted || to == QuoteStatusRejected || to == QuoteStatusExpired
	case QuoteStatusAccepted:
		return to == QuoteStatusConverted
	default:
		return false
	}
}

type Quote struct {
	BaseModel
	TenantID           string          `db:"tenant_id"`
	DistributorID      string          `db:"distributor_id"`
	QuoteNumber        string          `db:"quote_number"`
	Status             QuoteStatus     `db:"status"`
	Total              decimal.Decimal `db:"total"`
	Notes              *string         `db:"notes"`
	ConvertedToOrderID *string         `db:"converted_to_order_id"`
	Items              []QuoteItem     `db:"-"`
}

type QuoteItem struct {
	BaseModel
	QuoteID    string          `db:"quote_id"`
	ProductID  string          `db:"product_id"`
	Quantity   int64           `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	TotalPrice decimal.Decimal `db:"total_price"`
}
