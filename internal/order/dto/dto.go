package dto

import (
	"time"

	"github.com/vantora/vantora-order-service/internal/model"
)

type OrderDTO struct {
	ID            string         `json:"id"`
	OrderNumber   string         `json:"order_number"`
	DistributorID string         `json:"distributor_id"`
	Status        string         `json:"status"`
	Total         string         `json:"total"`
	Notes         string         `json:"notes,omitempty"`
	Items         []OrderItemDTO `json:"items,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type OrderItemDTO struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Quantity   int64  `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	TotalPrice string `json:"total_price"`
}

func FromOrder(o *model.Order) *OrderDTO {
	out := &OrderDTO{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		DistributorID: o.DistributorID,
		Status:        string(o.Status),
		Total:         o.Total.StringFixed(2),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if o.Notes != nil {
		out.Notes = *o.Notes
	}
	out.Items = make([]OrderItemDTO, len(o.Items))
	for i, item := range o.Items {
		out.Items[i] = OrderItemDTO{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.StringFixed(2),
			TotalPrice: item.TotalPrice.StringFixed(2),
		}
	}
	return out
}
