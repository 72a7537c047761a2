package dto

type CreateFromCartInput struct {
	TenantID      string
	UserID        string
	DistributorID string
	Notes         string
}

type OrderFilters struct {
	TenantID      string
	DistributorID string
	Status        string
	Page          int
	PageSize      int
}
