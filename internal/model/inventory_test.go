package model

import "testing"

func TestDeriveStockStatus(t *testing.T) {
	cases := []struct {
		name         string
		onHand       int64
		reserved     int64
		reorderPoint int64
		want         StockStatus
	}{
		{"healthy", 100, 10, 20, StockStatusInStock},
		{"at reorder point", 5, 2, 3, StockStatusLowStock},
		{"below reorder point", 4, 2, 3, StockStatusLowStock},
		{"zero on hand", 0, 0, 3, StockStatusOutOfStock},
		{"fully reserved", 10, 10, 3, StockStatusOutOfStock},
		{"over reserved", 5, 8, 3, StockStatusOutOfStock},
		{"no reorder point", 1, 0, 0, StockStatusInStock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStockStatus(tc.onHand, tc.reserved, tc.reorderPoint)
			if got != tc.want {
				t.Fatalf("DeriveStockStatus(%d, %d, %d) = %s, want %s",
					tc.onHand, tc.reserved, tc.reorderPoint, got, tc.want)
			}
		})
	}
}

func TestInventoryAvailable(t *testing.T) {
	inv := &Inventory{QuantityOnHand: 12, QuantityReserved: 5}
	if got := inv.Available(); got != 7 {
		t.Fatalf("Available() = %d, want 7", got)
	}

	inv = &Inventory{QuantityOnHand: 3, QuantityReserved: 5}
	if got := inv.Available(); got != -2 {
		t.Fatalf("Available() = %d, want -2", got)
	}
}
