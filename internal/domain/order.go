package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusIssued   OrderStatus = "ISSUED"
	OrderStatusReturned OrderStatus = "RETURNED"
)

// Order is one rental transaction. The lifecycle state is derived from
// DueDate and Returned rather than stored: no due date means the order was
// placed but not yet issued, a due date means a worker handed the equipment
// out, and Returned is terminal. Cancellation deletes the row outright.
type Order struct {
	ID          int32           `json:"id"`
	UserID      int32           `json:"user_id"`
	RentedItems string          `json:"rented_items"`
	OrderDate   time.Time       `json:"order_date"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Days        int32           `json:"days"`
	ItemsCount  int32           `json:"items_count"`
	Price       decimal.Decimal `json:"price"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Returned    bool            `json:"returned"`
}

func (o *Order) Status() OrderStatus {
	switch {
	case o.Returned:
		return OrderStatusReturned
	case o.DueDate != nil:
		return OrderStatusIssued
	default:
		return OrderStatusPending
	}
}

// Accepted reports whether a worker already issued the order.
func (o *Order) Accepted() bool {
	return o.DueDate != nil
}

// OrderLine binds one equipment unit to an order. PriceWhenOrdered is a
// snapshot taken at assignment time and is never updated afterwards, so the
// historical charge survives later catalog price changes.
type OrderLine struct {
	OrderID          int32           `json:"order_id"`
	EquipmentID      int32           `json:"equipment_id"`
	Quantity         int32           `json:"quantity"`
	PriceWhenOrdered decimal.Decimal `json:"price_when_ordered"`
}
