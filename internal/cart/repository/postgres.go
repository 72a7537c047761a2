package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/vantora/vantora-order-service/internal/database"
	"github.com/vantora/vantora-order-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByUserAndProduct(ctx context.Context, userID, productID string) (*model.CartItem, error) {
	var item model.CartItem
	query := `SELECT * FROM cart_items WHERE user_id = $1 AND product_id = $2`

	err := sqlx.GetContext(ctx, database.Ext(ctx, r.DB), &item, query, userID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) GetByID(ctx context.Context, itemID string) (*model.CartItem, error) {
	var item model.CartItem
	query := `SELECT * FROM cart_items WHERE id = $1`

	err := sqlx.GetContext(ctx, database.Ext(ctx, r.DB), &item, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindByUser(ctx context.Context, userID string) ([]model.CartItem, error) {
	var items []model.CartItem
	query := `SELECT * FROM cart_items WHERE user_id = $1 ORDER BY created_at`

	err := sqlx.SelectContext(ctx, database.Ext(ctx, r.DB), &items, query, userID)
	return items, err
}

func (r *PGRepository) Insert(ctx context.Context, item *model.CartItem) error {
	query := `
        INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
        VALUES (:id, :user_id, :product_id, :quantity, :created_at, :updated_at)
    `
	_, err := sqlx.NamedExecContext(ctx, database.Ext(ctx, r.DB), query, item)
	return err
}

func (r *PGRepository) UpdateQuantity(ctx context.Context, itemID string, quantity int64) error {
	query := `UPDATE cart_items SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := database.Ext(ctx, r.DB).ExecContext(ctx, query, itemID, quantity)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, itemID string) error {
	query := `DELETE FROM cart_items WHERE id = $1`
	_, err := database.Ext(ctx, r.DB).ExecContext(ctx, query, itemID)
	return err
}

func (r *PGRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`
	_, err := database.Ext(ctx, r.DB).ExecContext(ctx, query, userID)
	return err
}
