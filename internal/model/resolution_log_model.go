package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ResolutionLog struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   string         `gorm:"type:varchar(64);index"`
	InputText   string         `gorm:"type:text;not null"`
	OutcomeType string         `gorm:"type:varchar(20);not null;index"`
	Stage       int            `gorm:"not null"`
	Confidence  float64        `gorm:"not null"`
	Plan        datatypes.JSON `gorm:"type:jsonb"`
	Question    *string        `gorm:"type:text"`
	Message     *string        `gorm:"type:text"`
	LatencyMs   int64          `gorm:"not null;default:0"`
	CreatedAt   time.Time      `gorm:"default:now();not null;index"`
}

func (ResolutionLog) TableName() string {
	return "resolution_logs"
}
