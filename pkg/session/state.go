// Package session holds the multi-turn clarification state machine and
// its pluggable TTL store. One State exists per session id; the resolver
// borrows it for a single request and writes it back before returning.
package session

import "time"

// Status is the intent lock state.
type Status string

const (
	// StatusUnresolved is the default: no action is locked and short
	// replies are interpreted against the pending question.
	StatusUnresolved Status = "unresolved"
	// StatusResolved is a one-shot lock: the next request executes
	// LockedAction verbatim and the status resets.
	StatusResolved Status = "resolved"
)

// State is everything remembered between turns of one session.
type State struct {
	ID                     string    `json:"id"`
	Status                 Status    `json:"status"`
	PendingQuestion        string    `json:"pending_question"`
	PendingOptions         []string  `json:"pending_options"`
	PendingBaseInstruction string    `json:"pending_base_instruction"`
	LockedAction           string    `json:"locked_action"`
	LastSuccessPlan        string    `json:"last_success_plan"`
	ClarificationStreak    int       `json:"clarification_streak"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// New returns a fresh unresolved state for a session id.
func New(id string) *State {
	return &State{ID: id, Status: StatusUnresolved, UpdatedAt: time.Now()}
}

// HasPendingQuestion reports whether a clarification is outstanding.
func (s *State) HasPendingQuestion() bool {
	return s.Status == StatusUnresolved && s.PendingQuestion != ""
}

// AskQuestion records an outstanding clarification and bumps the streak
// that drives the loop guard.
func (s *State) AskQuestion(question string, options []string, base string) {
	s.PendingQuestion = question
	s.PendingOptions = options
	s.PendingBaseInstruction = base
	s.ClarificationStreak++
	s.UpdatedAt = time.Now()
}

// Lock moves the session to Resolved with a canonical instruction to run.
func (s *State) Lock(action string) {
	s.Status = StatusResolved
	s.LockedAction = action
	s.PendingQuestion = ""
	s.PendingOptions = nil
	s.PendingBaseInstruction = ""
	s.UpdatedAt = time.Now()
}

// Unlock consumes the one-shot lock, regardless of how execution went.
func (s *State) Unlock() {
	s.Status = StatusUnresolved
	s.LockedAction = ""
	s.UpdatedAt = time.Now()
}

// ClearQuestion wipes pending clarification state after a successful
// resolution.
func (s *State) ClearQuestion() {
	s.PendingQuestion = ""
	s.PendingOptions = nil
	s.PendingBaseInstruction = ""
	s.ClarificationStreak = 0
	s.UpdatedAt = time.Now()
}

// Store is the pluggable session repository. Implementations own TTL
// eviction; a lost session only degrades a follow-up short reply into a
// fresh full parse.
type Store interface {
	Get(id string) (*State, bool)
	Save(state *State)
	Delete(id string)
}

// LoadOrCreate fetches a session or lazily makes one.
func LoadOrCreate(store Store, id string) *State {
	if s, ok := store.Get(id); ok {
		return s
	}
	return New(id)
}
