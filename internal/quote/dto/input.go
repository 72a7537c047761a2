package dto

import "github.com/shopspring/decimal"

type CreateQuoteInput struct {
	TenantID      string
	DistributorID string
	Notes         string
	Items         []CreateQuoteItem
}

type CreateQuoteItem struct {
	ProductID string
	Quantity  int64
	// UnitPrice overrides the product's current price when set.
	UnitPrice *decimal.Decimal
}

type QuoteItemInput struct {
	TenantID  string
	QuoteID   string
	ProductID string
	Quantity  int64
	UnitPrice *decimal.Decimal
}

type UpdateQuoteItemInput struct {
	TenantID  string
	QuoteID   string
	ItemID    string
	Quantity  int64
	UnitPrice *decimal.Decimal
}

type QuoteFilters struct {
	TenantID      string
	DistributorID string
	Status        string
	Page          int
	PageSize      int
}
