package score

import (
	"math"
	"testing"

	"ordermypdf-be/pkg/resolve/extract"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		files         []string
		wantConfident bool
	}{
		{
			name:          "explicit size target",
			text:          "compress to 2mb",
			files:         []string{"a.pdf"},
			wantConfident: true,
		},
		{
			name:          "bare compress uses defaults",
			text:          "compress this",
			files:         []string{"a.pdf"},
			wantConfident: true,
		},
		{
			name:          "split with no pages asks",
			text:          "split this",
			files:         []string{"a.pdf"},
			wantConfident: false,
		},
		{
			name:          "sequenced multi step clears the bar",
			text:          "merge these and then compress to 2mb",
			files:         []string{"a.pdf", "b.pdf"},
			wantConfident: true,
		},
		{
			name:          "no match at all",
			text:          "hello there",
			files:         []string{"a.pdf"},
			wantConfident: false,
		},
		{
			name:          "vague request",
			text:          "fix this somehow",
			files:         []string{"a.pdf"},
			wantConfident: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := extract.Extract(tt.text, tt.files)
			v := Evaluate(res)
			if v.Confident() != tt.wantConfident {
				t.Errorf("Confident() = %v (confidence %.3f), want %v", v.Confident(), v.Confidence, tt.wantConfident)
			}
		})
	}
}

func TestEvaluateComponents(t *testing.T) {
	// One complete family, explicit number plus format word on the size
	// unit, quality absent.
	res := extract.Extract("compress to 2mb", []string{"a.pdf"})
	v := Evaluate(res)

	if v.IntentClarity != 0.3 {
		t.Errorf("IntentClarity = %v, want 0.3", v.IntentClarity)
	}
	if v.ParameterCompleteness != 0.4 {
		t.Errorf("ParameterCompleteness = %v, want 0.4", v.ParameterCompleteness)
	}
	if v.Confidence < Threshold {
		t.Errorf("Confidence = %v, want >= %v", v.Confidence, Threshold)
	}
	if v.Confidence > 1 || v.Confidence < 0 {
		t.Errorf("Confidence out of range: %v", v.Confidence)
	}
}

func TestSequencedPairSitsAtThreshold(t *testing.T) {
	res := extract.Extract("merge these and then compress to 2mb", []string{"a.pdf", "b.pdf"})
	v := Evaluate(res)
	if math.Abs(v.Confidence-Threshold) > 1e-9 && v.Confidence < Threshold {
		t.Errorf("Confidence = %v, want >= %v", v.Confidence, Threshold)
	}
	if !v.Confident() {
		t.Error("threshold is inclusive; a sequenced complete pair resolves directly")
	}
}
