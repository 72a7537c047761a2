package model

import "testing"

func TestOrderStatusCanCancel(t *testing.T) {
	cancellable := []OrderStatus{
		OrderStatusDraft, OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
	}
	for _, s := range cancellable {
		if !s.CanCancel() {
			t.Fatalf("expected %s to be cancellable", s)
		}
	}

	final := []OrderStatus{OrderStatusShipped, OrderStatusDelivered}
	for _, s := range final {
		if s.CanCancel() {
			t.Fatalf("expected %s to be past cancellation", s)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	if OrderStatus("unknown").Valid() {
		t.Fatal("unknown is not an order status")
	}
	if !OrderStatusDelivered.Valid() {
		t.Fatal("delivered should be valid")
	}
}
