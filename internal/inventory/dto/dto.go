package dto

import (
	"time"

	"github.com/vantora/vantora-order-service/internal/model"
)

type AvailabilityDTO struct {
	ProductID    string            `json:"product_id"`
	OnHand       int64             `json:"on_hand"`
	Reserved     int64             `json:"reserved"`
	Available    int64             `json:"available"`
	ReorderPoint int64             `json:"reorder_point"`
	Status       model.StockStatus `json:"status"`
}

type InventoryFilters struct {
	TenantID  string
	ProductID string
	LowStock  bool
	Page      int
	PageSize  int
}

type MovementFilters struct {
	TenantID     string
	ProductID    string
	MovementType string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PageSize     int
}
