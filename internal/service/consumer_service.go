// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"ordermypdf-be/internal/dto"
	"ordermypdf-be/internal/model"
	"ordermypdf-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/datatypes"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the audit topic and persists one resolution_logs
// row per turn. Persistence is off the request path on purpose.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logRepo   contract.ResolutionLogRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	logRepo contract.ResolutionLogRepository,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logRepo:   logRepo,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ResolutionLogMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.logRepo == nil {
		msg.Ack()
		return
	}

	row := &model.ResolutionLog{
		SessionId:   payload.SessionId,
		InputText:   payload.InputText,
		OutcomeType: payload.OutcomeType,
		Stage:       payload.Stage,
		Confidence:  payload.Confidence,
		LatencyMs:   payload.LatencyMs,
	}
	if len(payload.Plan) > 0 {
		row.Plan = datatypes.JSON(payload.Plan)
	}
	if payload.Question != "" {
		q := payload.Question
		row.Question = &q
	}
	if payload.Message != "" {
		m := payload.Message
		row.Message = &m
	}

	if err := cs.logRepo.Create(ctx, row); err != nil {
		log.Printf("[ERROR] Failed to persist resolution log: %v", err)
		msg.Nack() // Nack for retriable errors
		return
	}
	msg.Ack()
}
