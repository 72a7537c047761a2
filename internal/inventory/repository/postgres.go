package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/vantora/vantora-order-service/internal/database"
	"github.com/vantora/vantora-order-service/internal/inventory/dto"
	"github.com/vantora/vantora-order-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByProduct(ctx context.Context, tenantID, productID string) (*model.Inventory, error) {
	return r.getByProduct(ctx, tenantID, productID, false)
}

func (r *PGRepository) GetByProductForUpdate(ctx context.Context, tenantID, productID string) (*model.Inventory, error) {
	return r.getByProduct(ctx, tenantID, productID, true)
}

func (r *PGRepository) getByProduct(ctx context.Context, tenantID, productID string, forUpdate bool) (*model.Inventory, error) {
	var inv model.Inventory
	query := `SELECT * FROM inventory WHERE tenant_id = $1 AND product_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}

	err := sqlx.GetContext(ctx, database.Ext(ctx, r.DB), &inv, query, tenantID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, int, error) {
	var items []model.Inventory
	var count int

	conditions := []string{"tenant_id = :tenant_id"}
	args := map[string]interface{}{"tenant_id": f.TenantID}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.LowStock {
		conditions = append(conditions, "quantity_on_hand - quantity_reserved <= reorder_point AND reorder_point > 0")
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM inventory" + whereClause
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

	query := "SELECT * FROM inventory" + whereClause + " ORDER BY updated_at DESC"
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

func (r *PGRepository) SaveWithMovement(ctx context.Context, inv *model.Inventory, movement *model.InventoryMovement) error {
	ext := database.Ext(ctx, r.DB)

	// The conflict arm adds the delta to the stored quantity instead of
	// writing the caller's absolute value. A writer that lost a row-creation
	// race therefore lands on top of the committed quantity, and the ledger
	// entry is rewritten below from the returned value so deltas still sum
	// to the on-hand quantity.
	upsertQuery := `
        INSERT INTO inventory (
            id, tenant_id, product_id,
            quantity_on_hand, quantity_reserved, reorder_point, updated_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (tenant_id, product_id)
        DO UPDATE SET
            quantity_on_hand = inventory.quantity_on_hand + $8,
            updated_at = EXCLUDED.updated_at
        RETURNING quantity_on_hand
    `
	var onHand int64
	err := ext.QueryRowxContext(ctx, upsertQuery,
		inv.ID, inv.TenantID, inv.ProductID,
		movement.QuantityChange, inv.QuantityReserved, inv.ReorderPoint, inv.UpdatedAt,
		movement.QuantityChange,
	).Scan(&onHand)
	if err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	inv.QuantityOnHand = onHand
	movement.QuantityAfter = onHand
	movement.QuantityBefore = onHand - movement.QuantityChange

	insertLogQuery := `
        INSERT INTO inventory_movements (
            id, tenant_id, product_id,
            movement_type, quantity_change, quantity_before, quantity_after,
            reason, reference_id, created_by, created_at
        )
        VALUES (
            :id, :tenant_id, :product_id,
            :movement_type, :quantity_change, :quantity_before, :quantity_after,
            :reason, :reference_id, :created_by, :created_at
        )
    `
	if _, err := sqlx.NamedExecContext(ctx, ext, insertLogQuery, movement); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}

	return nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	var items []model.InventoryMovement
	var count int

	conditions := []string{"tenant_id = :tenant_id"}
	args := map[string]interface{}{"tenant_id": f.TenantID}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM inventory_movements" + whereClause
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

	query := "SELECT * FROM inventory_movements" + whereClause + " ORDER BY created_at DESC"
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
