package model

import "time"

type StockStatus string

const (
	StockStatusInStock    StockStatus = "in-stock"
	StockStatusLowStock   StockStatus = "low-stock"
	StockStatusOutOfStock StockStatus = "out-of-stock"
)

type MovementType string

const (
	MovementPurchase   MovementType = "purchase"
	MovementSale       MovementType = "sale"
	MovementAdjustment MovementType = "adjustment"
	MovementTransfer   MovementType = "transfer"
)

// Inventory holds one row per (tenant, product).
type Inventory struct {
	ID               string    `db:"id"`
	TenantID         string    `db:"tenant_id"`
	ProductID        string    `db:"product_id"`
	QuantityOnHand   int64     `db:"quantity_on_hand"`
	QuantityReserved int64     `db:"quantity_reserved"`
	ReorderPoint     int64     `db:"reorder_point"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (i *Inventory) Available() int64 {
	return i.QuantityOnHand - i.QuantityReserved
}

// DeriveStockStatus is never stored; it is recomputed from the quantities on
// every read.
func DeriveStockStatus(onHand, reserved, reorderPoint int64) StockStatus {
	available := onHand - reserved
	switch {
	case available <= 0:
		return StockStatusOutOfStock
	case available <= reorderPoint:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// InventoryMovement is an append-only ledger entry. Rows are never updated or
// deleted; the sum of deltas for a product reconciles against its on-hand
// quantity.
type InventoryMovement struct {
	ID             string       `db:"id" json:"id"`
	TenantID       string       `db:"tenant_id" json:"tenant_id"`
	ProductID      string       `db:"product_id" json:"product_id"`
	MovementType   MovementType `db:"movement_type" json:"movement_type"`
	QuantityChange int64        `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int64        `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int64        `db:"quantity_after" json:"quantity_after"`
	Reason         string       `db:"reason" json:"reason"`
	ReferenceID    *string      `db:"reference_id" json:"reference_id,omitempty"`
	CreatedBy      *string      `db:"created_by" json:"created_by,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}
