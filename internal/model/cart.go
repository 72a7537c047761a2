package model

import "time"

// CartItem is a user's working line for a prospective order. One row per
// (user, product); destroyed on checkout or explicit removal.
type CartItem struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ProductID string    `db:"product_id"`
	Quantity  int64     `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
