package model

import "github.com/shopspring/decimal"

// Product is owned by catalog management; this service only reads it for
// price lookups and tenant checks.
type Product struct {
	BaseModel
	TenantID    string          `db:"tenant_id" json:"tenant_id"`
	SKU         string          `db:"sku" json:"sku"`
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	CostPrice   decimal.Decimal `db:"cost_price" json:"cost_price"`
	IsActive    bool            `db:"is_active" json:"is_active"`
}
