package service

import (
	"context"
	"log"

	"gorm.io/gorm"

	"ewastemap/internal/model"
)

// Audit actions.
const (
	AuditLogin  = "login"
	AuditLogout = "logout"
)

// AuditService records login attempts and marker mutations
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// RecordLogin writes a login/logout audit entry. Failures are logged and
// swallowed; auditing must not break the request.
func (s *AuditService) RecordLogin(ctx context.Context, entry *model.LoginLog) {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		log.Printf("[Audit] Failed to record login log: %v", err)
	}
}

// RecordOperation writes a marker mutation audit entry.
func (s *AuditService) RecordOperation(ctx context.Context, entry *model.OperationLog) {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		log.Printf("[Audit] Failed to record operation log: %v", err)
	}
}

// ListLogins returns login audit entries, newest first, optionally
// filtered by username.
func (s *AuditService) ListLogins(ctx context.Context, username string, limit int) ([]model.LoginLog, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if username != "" {
		query = query.Where("username = ?", username)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var logs []model.LoginLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListOperations returns marker mutation entries, newest first.
func (s *AuditService) ListOperations(ctx context.Context, limit int) ([]model.OperationLog, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var logs []model.OperationLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
