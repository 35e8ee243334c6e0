package jobs

import (
	"context"
	"fmt"
	"time"

	"skirent-backend/internal/logger"
)

// MarkOverdueOrders records an audit entry for every issued order whose due
// date has passed. Order status itself is derived from the due date, so the
// nightly pass only has to leave a trail for staff to follow up on.
func (jr *JobRunner) MarkOverdueOrders() {
	jr.runWithRecovery("MarkOverdueOrders", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		overdue, err := jr.store.Orders.ListOverdue(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue orders", "error", err)
			return
		}

		for _, order := range overdue {
			due := "unknown"
			if order.DueDate != nil {
				due = order.DueDate.Format("2006-01-02")
			}
			jr.services.Audit.TryLog(ctx, order.ID,
				fmt.Sprintf("order %d overdue, was due %s", order.ID, due))
			logger.Debug("Marked order as overdue",
				"order_id", order.ID,
				"user_id", order.UserID,
				"due_date", due)
		}

		logger.Info("Marked orders as overdue", "count", len(overdue))
	})
}

// SendOverdueReminders emails every customer holding an overdue order.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		if jr.services.Email == nil {
			logger.Info("Email is not configured, skipping overdue reminders")
			return
		}

		ctx := context.Background()
		now := time.Now().UTC()

		overdue, err := jr.store.Orders.ListOverdue(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue orders", "error", err)
			return
		}

		sent := 0
		for _, order := range overdue {
			if order.DueDate == nil {
				continue
			}
			user, err := jr.store.Users.GetByID(ctx, order.UserID)
			if err != nil {
				logger.Error("Failed to load user for overdue reminder",
					"order_id", order.ID, "user_id", order.UserID, "error", err)
				continue
			}
			if err := jr.services.Email.SendOverdueReminder(ctx, user.Email, user.DisplayName(), order.ID, *order.DueDate); err != nil {
				logger.Error("Failed to send overdue reminder",
					"order_id", order.ID, "email", user.Email, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue reminders", "count", sent, "overdue", len(overdue))
	})
}
