// FILE: internal/service/resolve_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ordermypdf-be/internal/dto"
	"ordermypdf-be/internal/pkg/logger"
	"ordermypdf-be/pkg/events"
	"ordermypdf-be/pkg/intent"
	pktNats "ordermypdf-be/pkg/nats"
	"ordermypdf-be/pkg/resolve"
	"ordermypdf-be/pkg/resolve/order"
	"ordermypdf-be/pkg/session"
)

type IResolveService interface {
	Resolve(ctx context.Context, req *dto.ResolveRequest) (*dto.ResolveResponse, error)
	ResetSession(ctx context.Context, sessionId string) error
}

type resolveService struct {
	resolver         *resolve.Resolver
	sessionStore     session.Store
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	sysLogger        logger.ILogger
}

func NewResolveService(
	resolver *resolve.Resolver,
	sessionStore session.Store,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IResolveService {
	return &resolveService{
		resolver:         resolver,
		sessionStore:     sessionStore,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		sysLogger:        sysLogger,
	}
}

func (s *resolveService) Resolve(ctx context.Context, req *dto.ResolveRequest) (*dto.ResolveResponse, error) {
	started := time.Now()
	outcome := s.resolver.Resolve(ctx, resolve.Request{
		SessionID:    req.SessionId,
		Text:         req.Text,
		Files:        req.Files,
		LastQuestion: req.LastQuestion,
	})

	res := &dto.ResolveResponse{
		Type:       string(outcome.Type),
		Message:    outcome.Message,
		Blocked:    outcome.Blocked,
		Stage:      outcome.Stage,
		Confidence: outcome.Confidence,
	}

	if outcome.Plan != nil {
		raw, err := intent.MarshalPlan(*outcome.Plan)
		if err != nil {
			s.sysLogger.Error("resolve_service", "failed to marshal plan", map[string]interface{}{
				"error": err.Error(),
			})
			return nil, err
		}
		res.Plan = raw
	}
	if outcome.Clarification != nil {
		res.Clarification = &dto.ClarificationPayload{
			Question: outcome.Clarification.Question,
			Options:  outcome.Clarification.Options,
		}
	}

	s.publishAudit(ctx, req, outcome, res.Plan, time.Since(started))
	s.mirrorEvent(ctx, req, outcome)

	return res, nil
}

func (s *resolveService) ResetSession(ctx context.Context, sessionId string) error {
	s.sessionStore.Delete(sessionId)
	return nil
}

func (s *resolveService) publishAudit(ctx context.Context, req *dto.ResolveRequest, outcome resolve.Outcome, plan json.RawMessage, elapsed time.Duration) {
	if s.publisherService == nil {
		return
	}

	msg := dto.ResolutionLogMessage{
		SessionId:   req.SessionId,
		InputText:   req.Text,
		OutcomeType: string(outcome.Type),
		Stage:       outcome.Stage,
		Confidence:  outcome.Confidence,
		Plan:        plan,
		Message:     outcome.Message,
		LatencyMs:   elapsed.Milliseconds(),
	}
	if outcome.Clarification != nil {
		msg.Question = outcome.Clarification.Question
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal resolution audit message: %v", err)
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		log.Printf("[ERROR] Failed to publish resolution audit message: %v", err)
	}
}

// mirrorEvent forwards the outcome to NATS when a bus is configured. The
// mirror is best effort and never affects the response.
func (s *resolveService) mirrorEvent(ctx context.Context, req *dto.ResolveRequest, outcome resolve.Outcome) {
	if s.eventPublisher == nil {
		return
	}

	var evt events.Event
	switch outcome.Type {
	case resolve.OutcomePlan:
		summary := ""
		if outcome.Plan != nil {
			summary = order.DescribeSequence(outcome.Plan.Steps)
		}
		evt = events.NewResolutionCompleted(req.SessionId, summary, outcome.Stage, outcome.Confidence)
	case resolve.OutcomeQuestion:
		question := ""
		if outcome.Clarification != nil {
			question = outcome.Clarification.Question
		}
		evt = events.NewClarificationAsked(req.SessionId, question)
	case resolve.OutcomeUnsupported:
		evt = events.NewRequestUnsupported(req.SessionId, req.Text)
	case resolve.OutcomeSkip:
		if !outcome.Blocked {
			return
		}
		evt = events.NewRequestBlocked(req.SessionId, outcome.Message)
	default:
		return
	}

	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to mirror resolution event to NATS: %v", err)
	}
}
