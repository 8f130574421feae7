package service

import (
	"context"

	"fundihub/internal/domain/entity"
	"fundihub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records admin moderation actions
type AuditService interface {
	RecordAction(ctx context.Context, tx *gorm.DB, adminID uuid.UUID, actionType entity.AdminActionType, targetID uuid.UUID, details entity.JSON) error
}

type auditService struct {
	db         *gorm.DB
	log        *logrus.Logger
	actionRepo repository.AdminActionRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, actionRepo repository.AdminActionRepository) AuditService {
	return &auditService{
		db:         db,
		log:        log,
		actionRepo: actionRepo,
	}
}

// RecordAction writes an AdminAction row. Callers may pass their own
// transaction handle; when tx is nil the service's own connection is used.
func (s *auditService) RecordAction(ctx context.Context, tx *gorm.DB, adminID uuid.UUID, actionType entity.AdminActionType, targetID uuid.UUID, details entity.JSON) error {
	if tx == nil {
		tx = s.db.WithContext(ctx)
	}

	action := &entity.AdminAction{
		AdminID:    adminID,
		ActionType: actionType,
		TargetID:   targetID,
		Details:    details,
	}

	if err := s.actionRepo.Create(tx, action); err != nil {
		s.log.Warnf("Failed to record admin action %s on %s: %+v", actionType, targetID, err)
		return err
	}

	return nil
}
