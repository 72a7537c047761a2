package dto

import (
	"time"

	"github.com/vantora/vantora-order-service/internal/model"
)

type QuoteDTO struct {
	ID                 string         `json:"id"`
	QuoteNumber        string         `json:"quote_number"`
	DistributorID      string         `json:"distributor_id"`
	Status             string         `json:"status"`
	Total              string         `json:"total"`
	Notes              string         `json:"notes,omitempty"`
	ConvertedToOrderID string         `json:"converted_to_order_id,omitempty"`
	Items              []QuoteItemDTO `json:"items,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type QuoteItemDTO struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Quantity   int64  `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	TotalPrice string `json:"total_price"`
}

type ConversionResultDTO struct {
	Quote       QuoteDTO `json:"quote"`
	OrderID     string   `json:"order_id"`
	OrderNumber string   `json:"order_number"`
	OrderTotal  string   `json:"order_total"`
}

func FromQuote(q *model.Quote) *QuoteDTO {
	out := &QuoteDTO{
		ID:            q.ID,
		QuoteNumber:   q.QuoteNumber,
		DistributorID: q.DistributorID,
		Status:        string(q.Status),
		Total:         q.Total.StringFixed(2),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
	if q.Notes != nil {
		out.Notes = *q.Notes
	}
	if q.ConvertedToOrderID != nil {
		out.ConvertedToOrderID = *q.ConvertedToOrderID
	}
	out.Items = make([]QuoteItemDTO, len(q.Items))
	for i, item := range q.Items {
		out.Items[i] = QuoteItemDTO{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.StringFixed(2),
			TotalPrice: item.TotalPrice.StringFixed(2),
		}
	}
	return out
}
