package domain

import "github.com/shopspring/decimal"

// PriceEntry is the catalog price for a (type, size) pair. At most one entry
// exists per pair; the unique index in the schema backs that up.
type PriceEntry struct {
	ID    int32           `json:"id"`
	Type  EquipmentType   `json:"type"`
	Size  Size            `json:"size"`
	Price decimal.Decimal `json:"price"`
	Note  string          `json:"note,omitempty"`
}
