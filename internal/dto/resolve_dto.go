package dto

import "encoding/json"

type ResolveRequest struct {
	SessionId    string   `json:"session_id"`
	Text         string   `json:"text" validate:"required"`
	Files        []string `json:"files"`
	LastQuestion string   `json:"last_question"`
}

type ClarificationPayload struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// ResolveResponse is the single reply shape for every resolution outcome.
// Exactly one of Plan, Clarification, or Message carries the payload,
// discriminated by Type.
type ResolveResponse struct {
	Type          string                `json:"type"` // plan | question | skip | unsupported
	Plan          json.RawMessage       `json:"plan,omitempty"`
	Clarification *ClarificationPayload `json:"clarification,omitempty"`
	Message       string                `json:"message,omitempty"`
	Blocked       bool                  `json:"blocked,omitempty"`
	Stage         int                   `json:"stage"`
	Confidence    float64               `json:"confidence"`
}

// ResolutionLogMessage is the audit event published on the internal bus
// after every resolution turn.
type ResolutionLogMessage struct {
	SessionId   string          `json:"session_id"`
	InputText   string          `json:"input_text"`
	OutcomeType string          `json:"outcome_type"`
	Stage       int             `json:"stage"`
	Confidence  float64         `json:"confidence"`
	Plan        json.RawMessage `json:"plan,omitempty"`
	Question    string          `json:"question,omitempty"`
	Message     string          `json:"message,omitempty"`
	LatencyMs   int64           `json:"latency_ms"`
}

type ResetSessionResponse struct {
	SessionId string `json:"session_id"`
	Reset     bool   `json:"reset"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
