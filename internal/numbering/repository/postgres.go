package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vantora/vantora-order-service/internal/database"
	"github.com/vantora/vantora-order-service/internal/numbering"
)

type PGAllocator struct {
	DB *sqlx.DB
}

func NewPGAllocator(db *sqlx.DB) *PGAllocator {
	return &PGAllocator{DB: db}
}

// Next bumps the (prefix, year) sequence row atomically. The upsert takes a
// row lock, so two concurrent allocations serialize instead of both reading
// the same count. Joins the ambient transaction when one is open.
func (a *PGAllocator) Next(ctx context.Context, prefix string) (string, error) {
	year := time.Now().Year()

	query := `
        INSERT INTO document_sequences (prefix, year, value)
        VALUES ($1, $2, 1)
        ON CONFLICT (prefix, year)
        DO UPDATE SET value = document_sequences.value + 1
        RETURNING value
    `

	var seq int64
	if err := database.Ext(ctx, a.DB).QueryRowxContext(ctx, query, prefix, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to allocate document number: %w", err)
	}

	return numbering.Format(prefix, year, seq), nil
}
