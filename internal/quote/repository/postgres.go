package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/vantora/vantora-order-service/internal/database"
	"github.com/vantora/vantora-order-service/internal/model"
	"github.com/vantora/vantora-order-service/internal/quote/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByID(ctx context.Context, tenantID, quoteID string) (*model.Quote, error) {
	var q model.Quote
	query := `SELECT * FROM quotes WHERE tenant_id = $1 AND id = $2`

	err := sqlx.GetContext(ctx, database.Ext(ctx, r.DB), &q, query, tenantID, quoteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.QuoteFilters) ([]model.Quote, int, error) {
	var items []model.Quote
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

	countQuery := "SELECT count(*) FROM quotes" + whereClause
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

	query := "SELECT * FROM quotes" + whereClause + " ORDER BY created_at DESC"
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

func (r *PGRepository) GetItems(ctx context.Context, quoteID string) ([]model.QuoteItem, error) {
	var items []model.QuoteItem
	query := `SELECT * FROM quote_items WHERE quote_id = $1 ORDER BY created_at`

	err := sqlx.SelectContext(ctx, database.Ext(ctx, r.DB), &items, query, quoteID)
	return items, err
}

func (r *PGRepository) GetItem(ctx context.Context, quoteID, itemID string) (*model.QuoteItem, error) {
	var item model.QuoteItem
	query := `SELECT * FROM quote_items WHERE quote_id = $1 AND id = $2`

	err := sqlx.GetContext(ctx, database.Ext(ctx, r.DB), &item, query, quoteID, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) InsertQuote(ctx context.Context, q *model.Quote) error {
	query := `
        INSERT INTO quotes (
            id, tenant_id, distributor_id, quote_number, status, total,
            notes, converted_to_order_id, created_at, updated_at
        )
        VALUES (
            :id, :tenant_id, :distributor_id, :quote_number, :status, :total,
            :notes, :converted_to_order_id, :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, database.Ext(ctx, r.DB), query, q)
	return err
}

func (r *PGRepository) InsertItems(ctx context.Context, items []model.QuoteItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
        INSERT INTO quote_items (
            id, quote_id, product_id, quantity, unit_price, total_price,
            created_at, updated_at
        )
        VALUES (
            :id, :quote_id, :product_id, :quantity, :unit_price, :total_price,
            :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, database.Ext(ctx, r.DB), query, items)
	return err
}

func (r *PGRepository) UpdateItem(ctx context.Context, item *model.QuoteItem) error {
	query := `
        UPDATE quote_items
        SET quantity = :quantity, unit_price = :unit_price,
            total_price = :total_price, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, database.Ext(ctx, r.DB), query, item)
	return err
}

func (r *PGRepository) DeleteItem(ctx context.Context, itemID string) error {
	query := `DELETE FROM quote_items WHERE id = $1`
	_, err := database.Ext(ctx, r.DB).ExecContext(ctx, query, itemID)
	return err
}

func (r *PGRepository) UpdateTotal(ctx context.Context, quoteID string, total decimal.Decimal) error {
	query := `UPDATE quotes SET total = $2, updated_at = now() WHERE id = $1`
	_, err := database.Ext(ctx, r.DB).ExecContext(ctx, query, quoteID, total)
	return err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, quoteID string, status model.QuoteStatus) error {
	query := `UPDATE quotes SET status = $2, updated_at = now() WHERE id = $1`
	_, err := database.Ext(ctx, r.DB).ExecContext(ctx, query, quoteID, status)
	return err
}

func (r *PGRepository) MarkConverted(ctx context.Context, quoteID, orderID string) error {
	query := `
        UPDATE quotes
        SET status = $2, converted_to_order_id = $3, updated_at = now()
        WHERE id = $1 AND converted_to_order_id IS NULL
    `
	result, err := database.Ext(ctx, r.DB).ExecContext(ctx, query, quoteID, model.QuoteStatusConverted, orderID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("quote %s already converted", quoteID)
	}
	return nil
}
