package contract

import (
	"context"

	"ordermypdf-be/internal/model"
)

type ResolutionLogRepository interface {
	Create(ctx context.Context, log *model.ResolutionLog) error
	FindRecentBySession(ctx context.Context, sessionId string, limit int) ([]*model.ResolutionLog, error)
}
