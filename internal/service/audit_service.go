package service

import (
	"encoding/json"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

type AuditService struct {
	AuditRepo *repository.AuditRepository
}

func NewAuditService(auditRepo *repository.AuditRepository) *AuditService {
	return &AuditService{AuditRepo: auditRepo}
}

// Log 写一条审计记录。审计失败只打日志，绝不让业务操作跟着失败
func (s *AuditService) Log(actor *util.Claims, tenantID string, action model.AuditAction, entityType, entityID string, metadata map[string]interface{}) {
	entry := &model.AuditLog{
		TenantID:   tenantID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}

	if actor != nil {
		entry.ActorID = actor.UserID
		entry.ActorEmail = actor.Email
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err == nil {
			entry.Metadata = string(raw)
		}
	}

	if err := s.AuditRepo.Create(entry); err != nil {
		logger.Log.Error("audit log write failed",
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

func (s *AuditService) List(tenantID string, page, limit int) (*util.PageResponse, error) {
	logs, total, err := s.AuditRepo.ListByTenant(tenantID, page, limit)
	if err != nil {
		return nil, err
	}
	return &util.PageResponse{
		List:  logs,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}
