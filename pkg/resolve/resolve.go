// Package resolve turns free-text instructions into validated operation
// plans through three escalating stages: a deterministic parse, an
// LLM-assisted rewrite, and finally a clarification question. Every path
// terminates in exactly one of four outcome shapes.
package resolve

import (
	"context"
	"encoding/json"
	"strings"

	"ordermypdf-be/internal/pkg/logger"
	"ordermypdf-be/pkg/intent"
	"ordermypdf-be/pkg/resolve/extract"
	"ordermypdf-be/pkg/resolve/guard"
	"ordermypdf-be/pkg/resolve/normalize"
	"ordermypdf-be/pkg/resolve/order"
	"ordermypdf-be/pkg/resolve/score"
	"ordermypdf-be/pkg/session"
)

// OutcomeType discriminates the four resolver results.
type OutcomeType string

const (
	OutcomePlan        OutcomeType = "plan"
	OutcomeQuestion    OutcomeType = "question"
	OutcomeSkip        OutcomeType = "skip"
	OutcomeUnsupported OutcomeType = "unsupported"
)

// Outcome is the single result of one resolution request.
type Outcome struct {
	Type          OutcomeType
	Plan          *intent.Plan
	Clarification *Clarification
	Message       string
	Blocked       bool
	Stage         int
	Confidence    float64
}

// Request is one inbound resolution turn.
type Request struct {
	SessionID    string
	Text         string
	Files        []string
	LastQuestion string
}

// Resolver runs the three-stage pipeline. It is safe for concurrent use
// across sessions; all rule tables are immutable after construction and
// the session store is internally synchronized.
type Resolver struct {
	store    session.Store
	rewriter Rewriter
	log      logger.ILogger
}

func New(store session.Store, rewriter Rewriter, log logger.ILogger) *Resolver {
	if rewriter == nil {
		rewriter = NoRewrite{}
	}
	return &Resolver{store: store, rewriter: rewriter, log: log}
}

// Resolve handles one turn. The session state is borrowed for the duration
// of this call and written back before returning; it is never retained.
func (r *Resolver) Resolve(ctx context.Context, req Request) Outcome {
	st := r.loadState(req.SessionID)
	instruction := req.Text
	locked := false

	if st.HasPendingQuestion() {
		if opt, ok := session.MatchOption(req.Text, st.PendingOptions); ok {
			instruction = r.canonicalizeSelection(st, opt)
			st.Lock(instruction)
			// The lock is one-shot: consume it right away and run the
			// chosen action in this same turn.
			st.Unlock()
			locked = true
		} else if session.IsShortReply(req.Text) {
			kind := session.InferQuestionKind(st.PendingQuestion)
			instruction = session.BindSlot(kind, req.Text, st.PendingBaseInstruction)
		}
	}

	if isUnsupportedRequest(instruction) {
		r.logInfo("resolver", "unsupported capability requested", map[string]interface{}{
			"session": req.SessionID,
		})
		out := Outcome{Type: OutcomeUnsupported, Message: UnsupportedReply, Stage: 1}
		r.saveState(req.SessionID, st)
		return out
	}

	lastQuestion := req.LastQuestion
	if lastQuestion == "" {
		lastQuestion = st.PendingQuestion
	}

	// Stage 1: deterministic parse.
	normalized := normalize.Normalize(instruction, lastQuestion)
	res := extract.Extract(normalized, req.Files)
	verdict := score.Evaluate(res)

	if (verdict.Confident() || locked) && res.Complete() {
		out := r.assemble(res, req.Files, st, 1, verdict.Confidence)
		r.saveState(req.SessionID, st)
		return out
	}

	// Stage 2: assisted rewrite of the untouched original text. This is
	// the only blocking call; no session lock is held across it.
	if rewritten, ok := r.rewriter.Rewrite(ctx, req.Text, req.Files); ok {
		if out, handled := r.collaboratorPayload(rewritten, req.Files, st, req.SessionID); handled {
			return out
		}
		renormalized := normalize.Normalize(rewritten, lastQuestion)
		res2 := extract.Extract(renormalized, req.Files)
		verdict2 := score.Evaluate(res2)
		if verdict2.Confident() && res2.Complete() {
			out := r.assemble(res2, req.Files, st, 2, verdict2.Confidence)
			r.saveState(req.SessionID, st)
			return out
		}
		if len(res2.Matches) > len(res.Matches) {
			res = res2
		}
	}

	// Stage 3: ask.
	out := r.clarify(st, res, normalized, verdict.Confidence)
	r.saveState(req.SessionID, st)
	return out
}

func (r *Resolver) loadState(id string) *session.State {
	if id == "" || r.store == nil {
		return session.New("")
	}
	return session.LoadOrCreate(r.store, id)
}

func (r *Resolver) saveState(id string, st *session.State) {
	if id == "" || r.store == nil {
		return
	}
	r.store.Save(st)
}

// canonicalizeSelection turns a picked option into a complete instruction.
// Options that already name an operation are locked verbatim; bare values
// like "90" or "all pages" are bound into the pending slot first.
func (r *Resolver) canonicalizeSelection(st *session.State, opt string) string {
	// The option must parse on its own, without the pending question as
	// context; a bare value like "90" still needs the slot binder.
	normalized := normalize.Normalize(opt, "")
	if len(extract.Extract(normalized, nil).Matches) > 0 {
		return opt
	}
	kind := session.InferQuestionKind(st.PendingQuestion)
	return session.BindSlot(kind, opt, st.PendingBaseInstruction)
}

// assemble orders a fully-extracted request, runs the guards, chains the
// file references and validates the final plan.
func (r *Resolver) assemble(res extract.Result, files []string, st *session.State, stage int, confidence float64) Outcome {
	if m, incomplete := res.FirstIncomplete(); incomplete {
		c := clarificationFor(m)
		st.AskQuestion(c.Question, c.Options, order.DescribeSequence(completedOps(res)))
		return Outcome{Type: OutcomeQuestion, Clarification: &c, Stage: stage, Confidence: confidence}
	}

	// Explicit sequencing words make the user's own order authoritative.
	// "A after B" puts the later step first in the text, so flip it back.
	ops := completedOps(res)
	if res.ExplicitSequence && res.SequenceInverted {
		for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
			ops[i], ops[j] = ops[j], ops[i]
		}
	}
	ordered, refusal := order.Order(ops, res.ExplicitSequence)
	if refusal != nil {
		c := Clarification{
			Question: "That asks for two different final outputs. Which one do you want?",
			Options:  refusal.Options,
		}
		st.AskQuestion(c.Question, c.Options, "")
		return Outcome{Type: OutcomeQuestion, Clarification: &c, Stage: stage, Confidence: confidence}
	}

	outcome := guard.Apply(ordered, files)
	if outcome.Blocked() {
		return Outcome{Type: OutcomeSkip, Message: outcome.Block.Message, Blocked: true, Stage: stage, Confidence: confidence}
	}
	if len(outcome.Steps) == 0 {
		msg := ""
		if len(outcome.Skips) > 0 {
			msg = outcome.Skips[0].Message
		}
		return Outcome{Type: OutcomeSkip, Message: msg, Stage: stage, Confidence: confidence}
	}

	plan := intent.Plan{Steps: chainSteps(outcome.Steps)}
	if err := plan.Validate(); err != nil {
		r.logWarn("resolver", "assembled plan failed validation", map[string]interface{}{
			"error": err.Error(),
		})
		c := genericClarification()
		st.AskQuestion(c.Question, c.Options, "")
		return Outcome{Type: OutcomeQuestion, Clarification: &c, Stage: stage, Confidence: confidence}
	}

	st.ClearQuestion()
	st.LastSuccessPlan = order.DescribeSequence(plan.Steps)
	out := Outcome{Type: OutcomePlan, Plan: &plan, Stage: stage, Confidence: confidence}
	if len(outcome.Skips) > 0 {
		out.Message = outcome.Skips[0].Message
	}
	return out
}

func completedOps(res extract.Result) []intent.Operation {
	ops := make([]intent.Operation, 0, len(res.Matches))
	for _, m := range res.Matches {
		if m.Status == extract.StatusComplete && m.Op != nil {
			ops = append(ops, m.Op)
		}
	}
	return ops
}

// chainSteps rewires single-file steps after the first to consume the
// previous step's output.
func chainSteps(steps []intent.Operation) []intent.Operation {
	out := make([]intent.Operation, len(steps))
	copy(out, steps)
	for i := 1; i < len(out); i++ {
		out[i] = withFile(out[i], intent.PreviousOutput)
	}
	return out
}

func withFile(op intent.Operation, file string) intent.Operation {
	switch o := op.(type) {
	case intent.Split:
		o.File = file
		return o
	case intent.Delete:
		o.File = file
		return o
	case intent.Compress:
		o.File = file
		return o
	case intent.CompressToTarget:
		o.File = file
		return o
	case intent.Rotate:
		o.File = file
		return o
	case intent.Reorder:
		o.File = file
		return o
	case intent.Watermark:
		o.File = file
		return o
	case intent.PageNumbers:
		o.File = file
		return o
	case intent.ExtractText:
		o.File = file
		return o
	case intent.PdfToImages:
		o.File = file
		return o
	case intent.SplitToFiles:
		o.File = file
		return o
	case intent.Ocr:
		o.File = file
		return o
	case intent.PdfToDocx:
		o.File = file
		return o
	case intent.DocxToPdf:
		o.File = file
		return o
	case intent.RemoveBlankPages:
		o.File = file
		return o
	case intent.RemoveDuplicatePages:
		o.File = file
		return o
	case intent.EnhanceScan:
		o.File = file
		return o
	case intent.Flatten:
		o.File = file
		return o
	}
	return op
}

// clarify emits the Stage-3 question, honoring the loop guard: a second
// consecutive clarification never opens a new question, it forces a choice
// among the options already on the table.
func (r *Resolver) clarify(st *session.State, res extract.Result, base string, confidence float64) Outcome {
	if st.ClarificationStreak >= 1 && len(st.PendingOptions) > 0 {
		c := Clarification{Question: forcedChoiceQuestion, Options: st.PendingOptions}
		st.AskQuestion(c.Question, c.Options, st.PendingBaseInstruction)
		return Outcome{Type: OutcomeQuestion, Clarification: &c, Stage: 3, Confidence: confidence}
	}

	var c Clarification
	if m, ok := res.FirstIncomplete(); ok {
		c = clarificationFor(m)
	} else if len(res.Matches) > 0 {
		c = clarificationFor(res.Matches[0])
	} else {
		c = genericClarification()
	}
	st.AskQuestion(c.Question, c.Options, base)
	return Outcome{Type: OutcomeQuestion, Clarification: &c, Stage: 3, Confidence: confidence}
}

// collaboratorPayload handles a Stage-2 reply that came back as JSON
// instead of prose. The payload is validated against the same schema as
// deterministic parses; an unknown operation kind maps to the unsupported
// sentinel, and anything else malformed is ignored so the pipeline can
// fall through to Stage 3.
func (r *Resolver) collaboratorPayload(raw string, files []string, st *session.State, sessionID string) (Outcome, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return Outcome{}, false
	}

	var probe struct {
		NeedsClarification bool              `json:"needs_clarification"`
		Question           string            `json:"question"`
		Options            []string          `json:"options"`
		IsMultiOperation   bool              `json:"is_multi_operation"`
		Operations         []json.RawMessage `json:"operations"`
		OperationType      string            `json:"operation_type"`
	}
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return Outcome{}, false
	}

	if probe.NeedsClarification {
		if len(probe.Options) > 5 {
			probe.Options = probe.Options[:5]
		}
		c := Clarification{Question: probe.Question, Options: probe.Options}
		if c.Question == "" {
			c = genericClarification()
		}
		st.AskQuestion(c.Question, c.Options, "")
		out := Outcome{Type: OutcomeQuestion, Clarification: &c, Stage: 2}
		r.saveState(sessionID, st)
		return out, true
	}

	var rawOps []json.RawMessage
	switch {
	case probe.IsMultiOperation && len(probe.Operations) > 0:
		rawOps = probe.Operations
	case probe.OperationType != "":
		rawOps = []json.RawMessage{json.RawMessage(trimmed)}
	default:
		return Outcome{}, false
	}

	steps := make([]intent.Operation, 0, len(rawOps))
	for _, rawOp := range rawOps {
		op, err := intent.DecodeOperation(rawOp)
		if err != nil {
			if isUnsupportedValidation(err) {
				out := Outcome{Type: OutcomeUnsupported, Message: UnsupportedReply, Stage: 2}
				r.saveState(sessionID, st)
				return out, true
			}
			r.logWarn("resolver", "collaborator payload rejected", map[string]interface{}{
				"error": err.Error(),
			})
			return Outcome{}, false
		}
		steps = append(steps, op)
	}

	ordered, refusal := order.Order(steps, false)
	if refusal != nil {
		c := Clarification{
			Question: "That asks for two different final outputs. Which one do you want?",
			Options:  refusal.Options,
		}
		st.AskQuestion(c.Question, c.Options, "")
		out := Outcome{Type: OutcomeQuestion, Clarification: &c, Stage: 2}
		r.saveState(sessionID, st)
		return out, true
	}

	guarded := guard.Apply(ordered, files)
	if guarded.Blocked() {
		out := Outcome{Type: OutcomeSkip, Message: guarded.Block.Message, Blocked: true, Stage: 2}
		r.saveState(sessionID, st)
		return out, true
	}
	if len(guarded.Steps) == 0 {
		msg := ""
		if len(guarded.Skips) > 0 {
			msg = guarded.Skips[0].Message
		}
		out := Outcome{Type: OutcomeSkip, Message: msg, Stage: 2}
		r.saveState(sessionID, st)
		return out, true
	}

	plan := intent.Plan{Steps: chainSteps(guarded.Steps)}
	if err := plan.Validate(); err != nil {
		return Outcome{}, false
	}
	st.ClearQuestion()
	st.LastSuccessPlan = order.DescribeSequence(plan.Steps)
	out := Outcome{Type: OutcomePlan, Plan: &plan, Stage: 2}
	r.saveState(sessionID, st)
	return out, true
}

func (r *Resolver) logInfo(module, msg string, details map[string]interface{}) {
	if r.log != nil {
		r.log.Info(module, msg, details)
	}
}

func (r *Resolver) logWarn(module, msg string, details map[string]interface{}) {
	if r.log != nil {
		r.log.Warn(module, msg, details)
	}
}
