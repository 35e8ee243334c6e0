package domain

import "time"

// AuditEntry is one append-only log line for an order lifecycle event.
// OrderID is 0 when the event happened before an order id existed.
type AuditEntry struct {
	ID      int64     `json:"id"`
	OrderID int32     `json:"order_id"`
	Message string    `json:"message"`
	LogDate time.Time `json:"log_date"`
}

// AuditQuery filters the audit log for the admin reporting surface.
type AuditQuery struct {
	OrderID  *int32
	DateFrom *time.Time
	DateTo   *time.Time
	Text     string
	Limit    int32
}
