package service

import (
	"context"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/logger"
	"skirent-backend/internal/repository"
)

type auditService struct {
	repos repository.Repositories
}

func NewAuditService(repos repository.Repositories) AuditService {
	return &auditService{repos: repos}
}

// TryLog swallows failures: the audit trail is advisory and must never undo
// a transition that already committed.
func (s *auditService) TryLog(ctx context.Context, orderID int32, message string) {
	entry := &domain.AuditEntry{OrderID: orderID, Message: message}
	if err := s.repos.Audit.Create(ctx, entry); err != nil {
		logger.DebugContext(ctx, "audit entry dropped", "order_id", orderID, "message", message, "error", err)
	}
}

func (s *auditService) Query(ctx context.Context, q domain.AuditQuery) ([]domain.AuditEntry, error) {
	return s.repos.Audit.Query(ctx, q)
}
