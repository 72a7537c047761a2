package dto

type AddItemInput struct {
	TenantID  string
	UserID    string
	ProductID string
	Quantity  int64
}
