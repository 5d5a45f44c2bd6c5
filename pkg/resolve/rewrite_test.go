package resolve

import (
	"context"
	"testing"

	"ordermypdf-be/pkg/llm"
)

// optionRecordingProvider echoes the request back and captures the
// resolved generation options of the last Chat call.
type optionRecordingProvider struct {
	reply string
	last  llm.Options
}

func (p *optionRecordingProvider) Chat(_ context.Context, _ []llm.Message, options ...llm.Option) (string, error) {
	for _, opt := range options {
		opt(&p.last)
	}
	return p.reply, nil
}

func (p *optionRecordingProvider) Generate(_ context.Context, _ string, options ...llm.Option) (string, error) {
	for _, opt := range options {
		opt(&p.last)
	}
	return p.reply, nil
}

func TestLLMRewriterUsesConfiguredTemperature(t *testing.T) {
	provider := &optionRecordingProvider{reply: "compress to 2 mb"}
	rw := NewLLMRewriter(provider, 0.4)

	out, ok := rw.Rewrite(context.Background(), "make it smaller somehow", []string{"a.pdf"})
	if !ok || out != "compress to 2 mb" {
		t.Fatalf("Rewrite = %q, %v", out, ok)
	}
	if provider.last.Temperature != 0.4 {
		t.Errorf("Temperature = %v, want 0.4", provider.last.Temperature)
	}
}

func TestLLMRewriterTemperatureDefault(t *testing.T) {
	provider := &optionRecordingProvider{reply: "merge these"}
	rw := NewLLMRewriter(provider, 0)

	if _, ok := rw.Rewrite(context.Background(), "put them together", nil); !ok {
		t.Fatal("rewrite failed")
	}
	if provider.last.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want 0.1 default", provider.last.Temperature)
	}
}
