package implementation

import (
	"context"

	"ordermypdf-be/internal/model"
	"ordermypdf-be/internal/repository/contract"

	"gorm.io/gorm"
)

type ResolutionLogRepositoryImpl struct {
	db *gorm.DB
}

func NewResolutionLogRepository(db *gorm.DB) contract.ResolutionLogRepository {
	return &ResolutionLogRepositoryImpl{db: db}
}

func (r *ResolutionLogRepositoryImpl) Create(ctx context.Context, log *model.ResolutionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *ResolutionLogRepositoryImpl) FindRecentBySession(ctx context.Context, sessionId string, limit int) ([]*model.ResolutionLog, error) {
	var logs []*model.ResolutionLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
