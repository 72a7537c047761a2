package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/vantora/vantora-order-service/internal/database"
	"github.com/vantora/vantora-order-service/internal/model"
	"github.com/vantora/vantora-order-service/internal/order/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByID(ctx context.Context, tenantID, orderID string) (*model.Order, error) {
	var o model.Order
	query := `SELECT * FROM orders WHERE tenant_id = $1 AND id = $2`

	err := sqlx.GetContext(ctx, database.Ext(ctx, r.DB), &o, query, tenantID, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	var items []model.Order
	var count int

	conditions := []string{"tenant_id = :tenant_id"}
	args := map[string]interface{}{"tenant_id": f.TenantID}

	if f.DistributorID != "" {
		conditions = append(conditions, "distributor_id = :distributor_id")
		args["distributor_id"] = f.DistributorID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM orders" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) GetItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	query := `SELECT * FROM order_items WHERE order_id = $1 ORDER BY created_at`

	err := sqlx.SelectContext(ctx, database.Ext(ctx, r.DB), &items, query, orderID)
	return items, err
}

func (r *PGRepository) InsertOrder(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (
            id, tenant_id, distributor_id, order_number, status, total,
            notes, created_at, updated_at
        )
        VALUES (
            :id, :tenant_id, :distributor_id, :order_number, :status, :total,
            :notes, :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, database.Ext(ctx, r.DB), query, o)
	return err
}

func (r *PGRepository) InsertOrderItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
        INSERT INTO order_items (
            id, order_id, product_id, quantity, unit_price, total_price,
            created_at, updated_at
        )
        VALUES (
            :id, :order_id, :product_id, :quantity, :unit_price, :total_price,
            :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, database.Ext(ctx, r.DB), query, items)
	return err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`
	_, err := database.Ext(ctx, r.DB).ExecContext(ctx, query, orderID, status)
	return err
}
