package resolve

import (
	"context"
	"strings"
	"time"

	"ordermypdf-be/pkg/llm"
)

// Rewriter is the injected Stage-2 capability: given the original text and
// the uploaded file names, it may return a clearer phrasing of the same
// request. false means no rewrite is available; a Rewriter never errors.
type Rewriter interface {
	Rewrite(ctx context.Context, text string, files []string) (string, bool)
}

// rewriteTimeout bounds the only blocking call in the resolver.
const rewriteTimeout = 12 * time.Second

const rewriteSystemPrompt = `You rewrite messy document-processing requests into one clear instruction.
Rules:
- Preserve the user's intent exactly. Never add operations they did not ask for.
- Name the operation explicitly (merge, split, compress, rotate, convert, ocr, watermark...).
- Keep every number, page range, size and format from the original.
- Output ONLY the rewritten instruction, nothing else.`

// LLMRewriter adapts an llm.Provider into the Rewriter capability, with
// the guardrails the resolver depends on: a hard timeout, and rejection of
// outputs that ballooned past any plausible rephrasing.
type LLMRewriter struct {
	provider    llm.Provider
	temperature float64
}

// NewLLMRewriter builds a rewriter around provider. temperature controls
// the sampling temperature of the rewrite call; values at or below zero
// fall back to a near-deterministic 0.1.
func NewLLMRewriter(provider llm.Provider, temperature float64) *LLMRewriter {
	if temperature <= 0 {
		temperature = 0.1
	}
	return &LLMRewriter{provider: provider, temperature: temperature}
}

func (r *LLMRewriter) Rewrite(ctx context.Context, text string, files []string) (string, bool) {
	if r.provider == nil || strings.TrimSpace(text) == "" {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, rewriteTimeout)
	defer cancel()

	prompt := "Files: " + strings.Join(files, ", ") + "\nRequest: " + text
	out, err := r.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: rewriteSystemPrompt},
		{Role: "user", Content: prompt},
	}, llm.WithTemperature(r.temperature), llm.WithMaxTokens(200))
	if err != nil {
		return "", false
	}

	out = strings.TrimSpace(strings.Trim(strings.TrimSpace(out), `"`))
	if out == "" {
		return "", false
	}
	// A rephrasing should not be dramatically longer than the original.
	if len(out) > 200 || len(out) > 4*len(text) {
		return "", false
	}
	return out, true
}

// NoRewrite is the null Rewriter; deterministic tests and offline
// deployments use it so Stage 2 always falls through.
type NoRewrite struct{}

func (NoRewrite) Rewrite(context.Context, string, []string) (string, bool) { return "", false }
