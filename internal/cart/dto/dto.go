package dto

type CartItemDTO struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Quantity    int64  `json:"quantity"`
	// UnitPrice is the product's live price, not a frozen snapshot.
	UnitPrice string `json:"unit_price,omitempty"`
	LineTotal string `json:"line_total,omitempty"`
}

type CartSnapshotDTO struct {
	Items []CartItemDTO `json:"items"`
	// EstimatedTotal can drift if a price changes before checkout.
	EstimatedTotal string `json:"estimated_total"`
}
