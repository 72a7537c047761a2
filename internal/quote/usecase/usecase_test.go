package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vantora/vantora-order-service/internal/apperr"
	"github.com/vantora/vantora-order-service/internal/model"
	"github.com/vantora/vantora-order-service/internal/numbering"
	"github.com/vantora/vantora-order-service/internal/quote/dto"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAllocator struct {
	counters map[string]int64
}

func newFakeAllocator() *fakeAllocator {
	return &fakeAllocator{counters: make(map[string]int64)}
}

func (a *fakeAllocator) Next(_ context.Context, prefix string) (string, error) {
	a.counters[prefix]++
	return numbering.Format(prefix, 2025, a.counters[prefix]), nil
}

type fakeProductRepo struct {
	products map[string]model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]model.Product)}
}

func (r *fakeProductRepo) add(tenantID, id, price string) {
	r.products[tenantID+"/"+id] = model.Product{
		BaseModel: model.BaseModel{ID: id},
		TenantID:  tenantID,
		Name:      "Product " + id,
		Price:     decimal.RequireFromString(price),
		IsActive:  true,
	}
}

func (r *fakeProductRepo) FindByID(_ context.Context, tenantID, id string) (*model.Product, error) {
	p, ok := r.products[tenantID+"/"+id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, tenantID string, ids []string) (map[string]model.Product, error) {
	out := make(map[string]model.Product)
	for _, id := range ids {
		if p, ok := r.products[tenantID+"/"+id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeQuoteRepo struct {
	quotes map[string]*model.Quote
	items  map[string][]model.QuoteItem
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes: make(map[string]*model.Quote),
		items:  make(map[string][]model.QuoteItem),
	}
}

func (r *fakeQuoteRepo) GetByID(_ context.Context, tenantID, quoteID string) (*model.Quote, error) {
	q, ok := r.quotes[quoteID]
	if !ok || q.TenantID != tenantID {
		return nil, nil
	}
	cp := *q
	cp.Items = nil
	return &cp, nil
}

func (r *fakeQuoteRepo) FindAll(_ context.Context, filters *dto.QuoteFilters) ([]model.Quote, int, error) {
	var out []model.Quote
	for _, q := range r.quotes {
		if q.TenantID != filters.TenantID {
			continue
		}
		if filters.Status != "" && string(q.Status) != filters.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, len(out), nil
}

func (r *fakeQuoteRepo) GetItems(_ context.Context, quoteID string) ([]model.QuoteItem, error) {
	return append([]model.QuoteItem(nil), r.items[quoteID]...), nil
}

func (r *fakeQuoteRepo) GetItem(_ context.Context, quoteID, itemID string) (*model.QuoteItem, error) {
	for _, item := range r.items[quoteID] {
		if item.ID == itemID {
			cp := item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeQuoteRepo) InsertQuote(_ context.Context, q *model.Quote) error {
	cp := *q
	cp.Items = nil
	r.quotes[q.ID] = &cp
	return nil
}

func (r *fakeQuoteRepo) InsertItems(_ context.Context, items []model.QuoteItem) error {
	for _, item := range items {
		r.items[item.QuoteID] = append(r.items[item.QuoteID], item)
	}
	return nil
}

func (r *fakeQuoteRepo) UpdateItem(_ context.Context, item *model.QuoteItem) error {
	list := r.items[item.QuoteID]
	for i := range list {
		if list[i].ID == item.ID {
			list[i] = *item
			return nil
		}
	}
	return fmt.Errorf("item %s not found", item.ID)
}

func (r *fakeQuoteRepo) DeleteItem(_ context.Context, itemID string) error {
	for quoteID, list := range r.items {
		for i := range list {
			if list[i].ID == itemID {
				r.items[quoteID] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (r *fakeQuoteRepo) UpdateTotal(_ context.Context, quoteID string, total decimal.Decimal) error {
	r.quotes[quoteID].Total = total
	return nil
}

func (r *fakeQuoteRepo) UpdateStatus(_ context.Context, quoteID string, status model.QuoteStatus) error {
	r.quotes[quoteID].Status = status
	return nil
}

func (r *fakeQuoteRepo) MarkConverted(_ context.Context, quoteID, orderID string) error {
	q := r.quotes[quoteID]
	if q.ConvertedToOrderID != nil {
		return fmt.Errorf("quote %s already converted", quoteID)
	}
	q.Status = model.QuoteStatusConverted
	q.ConvertedToOrderID = &orderID
	return nil
}

type fakeOrderWriter struct {
	orders []model.Order
	items  []model.OrderItem
}

func (w *fakeOrderWriter) InsertOrder(_ context.Context, o *model.Order) error {
	cp := *o
	cp.Items = nil
	w.orders = append(w.orders, cp)
	return nil
}

func (w *fakeOrderWriter) InsertOrderItems(_ context.Context, items []model.OrderItem) error {
	w.items = append(w.items, items...)
	return nil
}

func newTestQuoteUseCase(repo *fakeQuoteRepo, orders *fakeOrderWriter, products *fakeProductRepo, enforce bool) *quoteUseCase {
	return &quoteUseCase{
		repo:               repo,
		orders:             orders,
		products:           products,
		numbers:            newFakeAllocator(),
		txm:                fakeTxRunner{},
		logger:             zap.NewNop(),
		enforceTransitions: enforce,
	}
}

func createTestQuote(t *testing.T, uc *quoteUseCase) *dto.QuoteDTO {
	t.Helper()
	q, err := uc.Create(context.Background(), &dto.CreateQuoteInput{
		TenantID:      "t1",
		DistributorID: "d1",
		Items: []dto.CreateQuoteItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return q
}

func standardProducts() *fakeProductRepo {
	products := newFakeProductRepo()
	products.add("t1", "p1", "12.34")
	products.add("t1", "p2", "5.00")
	return products
}

func TestCreateQuote(t *testing.T) {
	uc := newTestQuoteUseCase(newFakeQuoteRepo(), &fakeOrderWriter{}, standardProducts(), false)
	q := createTestQuote(t, uc)

	if q.Status != "draft" {
		t.Fatalf("status = %s, want draft", q.Status)
	}
	if q.QuoteNumber != "QUO-2025-00001" {
		t.Fatalf("quote number = %s", q.QuoteNumber)
	}
	// 12.34*2 + 5.00*3
	if q.Total != "39.68" {
		t.Fatalf("total = %s, want 39.68", q.Total)
	}
	if len(q.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(q.Items))
	}
}

func TestCreateQuoteWithPriceOverride(t *testing.T) {
	uc := newTestQuoteUseCase(newFakeQuoteRepo(), &fakeOrderWriter{}, standardProducts(), false)

	override := decimal.RequireFromString("9.99")
	q, err := uc.Create(context.Background(), &dto.CreateQuoteInput{
		TenantID:      "t1",
		DistributorID: "d1",
		Items:         []dto.CreateQuoteItem{{ProductID: "p1", Quantity: 2, UnitPrice: &override}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if q.Items[0].UnitPrice != "9.99" || q.Total != "19.98" {
		t.Fatalf("override not applied: %+v", q.Items[0])
	}
}

func TestPriceOverrideStillVerifiesProduct(t *testing.T) {
	products := newFakeProductRepo()
	products.add("t2", "foreign", "1.00")
	uc := newTestQuoteUseCase(newFakeQuoteRepo(), &fakeOrderWriter{}, products, false)

	// An override must not bypass the tenant check on the referenced product.
	override := decimal.RequireFromString("9.99")
	_, err := uc.Create(context.Background(), &dto.CreateQuoteInput{
		TenantID:      "t1",
		DistributorID: "d1",
		Items:         []dto.CreateQuoteItem{{ProductID: "foreign", Quantity: 1, UnitPrice: &override}},
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for another tenant's product, got %v", err)
	}

	_, err = uc.Create(context.Background(), &dto.CreateQuoteInput{
		TenantID:      "t1",
		DistributorID: "d1",
		Items:         []dto.CreateQuoteItem{{ProductID: "ghost", Quantity: 1, UnitPrice: &override}},
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}
}

func TestCreateQuoteValidation(t *testing.T) {
	uc := newTestQuoteUseCase(newFakeQuoteRepo(), &fakeOrderWriter{}, standardProducts(), false)

	_, err := uc.Create(context.Background(), &dto.CreateQuoteInput{TenantID: "t1"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for missing distributor, got %v", err)
	}

	_, err = uc.Create(context.Background(), &dto.CreateQuoteInput{
		TenantID:      "t1",
		DistributorID: "d1",
		Items:         []dto.CreateQuoteItem{{ProductID: "p1", Quantity: 0}},
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestAddItemRecomputesTotal(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newTestQuoteUseCase(repo, &fakeOrderWriter{}, standardProducts(), false)
	q := createTestQuote(t, uc)

	got, err := uc.AddItem(context.Background(), &dto.QuoteItemInput{
		TenantID: "t1", QuoteID: q.ID, ProductID: "p2", Quantity: 1,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(got.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got.Items))
	}
	// 39.68 + 5.00
	if got.Total != "44.68" {
		t.Fatalf("total = %s, want 44.68", got.Total)
	}
}

func TestUpdateItemRecomputesTotal(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newTestQuoteUseCase(repo, &fakeOrderWriter{}, standardProducts(), false)
	q := createTestQuote(t, uc)

	got, err := uc.UpdateItem(context.Background(), &dto.UpdateQuoteItemInput{
		TenantID: "t1", QuoteID: q.ID, ItemID: q.Items[0].ID, Quantity: 5,
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	// 12.34*5 + 5.00*3
	if got.Total != "76.70" {
		t.Fatalf("total = %s, want 76.70", got.Total)
	}
}

func TestRemoveItemRecomputesTotal(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newTestQuoteUseCase(repo, &fakeOrderWriter{}, standardProducts(), false)
	q := createTestQuote(t, uc)

	got, err := uc.RemoveItem(context.Background(), "t1", q.ID, q.Items[0].ID)
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	if got.Total != "15.00" {
		t.Fatalf("total = %s, want 15.00", got.Total)
	}
}

func TestItemMutationRejectedAfterAcceptance(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newTestQuoteUseCase(repo, &fakeOrderWriter{}, standardProducts(), false)
	q := createTestQuote(t, uc)
	repo.quotes[q.ID].Status = model.QuoteStatusAccepted

	_, err := uc.AddItem(context.Background(), &dto.QuoteItemInput{
		TenantID: "t1", QuoteID: q.ID, ProductID: "p1", Quantity: 1,
	})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict for accepted quote, got %v", err)
	}
}

func TestUpdateStatusFreeForm(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newTestQuoteUseCase(repo, &fakeOrderWriter{}, standardProducts(), false)
	q := createTestQuote(t, uc)

	// Enforcement off: draft may jump straight to accepted.
	got, err := uc.UpdateStatus(context.Background(), "t1", q.ID, "accepted")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != "accepted" {
		t.Fatalf("status = %s, want accepted", got.Status)
	}

	_, err = uc.UpdateStatus(context.Background(), "t1", q.ID, "bogus")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestUpdateStatusEnforced(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newTestQuoteUseCase(repo, &fakeOrderWriter{}, standardProducts(), true)
	q := createTestQuote(t, uc)

	_, err := uc.UpdateStatus(context.Background(), "t1", q.ID, "accepted")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict for draft -> accepted, got %v", err)
	}

	if _, err := uc.UpdateStatus(context.Background(), "t1", q.ID, "sent"); err != nil {
		t.Fatalf("draft -> sent should pass: %v", err)
	}
	if _, err := uc.UpdateStatus(context.Background(), "t1", q.ID, "accepted"); err != nil {
		t.Fatalf("sent -> accepted should pass: %v", err)
	}
}

func TestConvertRequiresAcceptedQuote(t *testing.T) {
	repo := newFakeQuoteRepo()
	writer := &fakeOrderWriter{}
	uc := newTestQuoteUseCase(repo, writer, standardProducts(), false)
	q := createTestQuote(t, uc)

	_, err := uc.ConvertToOrder(context.Background(), "t1", q.ID)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict for draft quote, got %v", err)
	}
	if len(writer.orders) != 0 {
		t.Fatal("no order must be written for a failed conversion")
	}
}

func TestConvertToOrder(t *testing.T) {
	repo := newFakeQuoteRepo()
	writer := &fakeOrderWriter{}
	uc := newTestQuoteUseCase(repo, writer, standardProducts(), false)
	q := createTestQuote(t, uc)
	repo.quotes[q.ID].Status = model.QuoteStatusAccepted

	result, err := uc.ConvertToOrder(context.Background(), "t1", q.ID)
	if err != nil {
		t.Fatalf("ConvertToOrder: %v", err)
	}

	if result.Quote.Status != "converted" {
		t.Fatalf("quote status = %s, want converted", result.Quote.Status)
	}
	if result.Quote.ConvertedToOrderID != result.OrderID {
		t.Fatal("quote must link to the created order")
	}
	if result.OrderTotal != q.Total {
		t.Fatalf("order total = %s, want %s", result.OrderTotal, q.Total)
	}

	if len(writer.orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(writer.orders))
	}
	o := writer.orders[0]
	if o.Status != model.OrderStatusPending {
		t.Fatalf("order status = %s, want pending", o.Status)
	}
	if len(writer.items) != len(q.Items) {
		t.Fatalf("expected %d order items, got %d", len(q.Items), len(writer.items))
	}
	for i, item := range writer.items {
		src := q.Items[i]
		if item.ID == src.ID {
			t.Fatal("order items must get fresh IDs")
		}
		if item.ProductID != src.ProductID || item.Quantity != src.Quantity ||
			item.UnitPrice.StringFixed(2) != src.UnitPrice || item.TotalPrice.StringFixed(2) != src.TotalPrice {
			t.Fatalf("order item %d does not mirror quote item: %+v vs %+v", i, item, src)
		}
	}
}

func TestConvertTwiceFails(t *testing.T) {
	repo := newFakeQuoteRepo()
	writer := &fakeOrderWriter{}
	uc := newTestQuoteUseCase(repo, writer, standardProducts(), false)
	q := createTestQuote(t, uc)
	repo.quotes[q.ID].Status = model.QuoteStatusAccepted

	if _, err := uc.ConvertToOrder(context.Background(), "t1", q.ID); err != nil {
		t.Fatalf("first conversion: %v", err)
	}
	_, err := uc.ConvertToOrder(context.Background(), "t1", q.ID)
	if err == nil {
		t.Fatal("second conversion must fail")
	}
	if len(writer.orders) != 1 {
		t.Fatalf("expected exactly 1 order, got %d", len(writer.orders))
	}
}

func TestDuplicateQuote(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newTestQuoteUseCase(repo, &fakeOrderWriter{}, standardProducts(), false)
	q := createTestQuote(t, uc)
	repo.quotes[q.ID].Status = model.QuoteStatusRejected

	dup, err := uc.Duplicate(context.Background(), "t1", q.ID)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if dup.ID == q.ID {
		t.Fatal("duplicate must be a new quote")
	}
	if dup.QuoteNumber == q.QuoteNumber {
		t.Fatal("duplicate must get a fresh number")
	}
	if dup.Status != "draft" {
		t.Fatalf("duplicate status = %s, want draft", dup.Status)
	}
	if dup.Total != q.Total || len(dup.Items) != len(q.Items) {
		t.Fatal("duplicate must carry the source items and total")
	}
	for i, item := range dup.Items {
		if item.ID == q.Items[i].ID {
			t.Fatal("duplicated items must get fresh IDs")
		}
	}
}

func TestQuoteIsTenantScoped(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newTestQuoteUseCase(repo, &fakeOrderWriter{}, standardProducts(), false)
	q := createTestQuote(t, uc)

	_, err := uc.Get(context.Background(), "t2", q.ID)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for foreign tenant, got %v", err)
	}
}
