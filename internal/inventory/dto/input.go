package dto

type AdjustMode string

const (
	ModeAdd    AdjustMode = "add"
	ModeRemove AdjustMode = "remove"
	ModeSet    AdjustMode = "set"
)

type AdjustStockInput struct {
	TenantID  string
	ProductID string
	Quantity  int64
	Mode      AdjustMode
	Reason    string
	UserID    string
}
