package intent

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeOperation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Operation
		wantErr bool
	}{
		{
			name: "nested payload",
			raw:  `{"operation_type":"compress_to_target","compress_to_target":{"file":"a.pdf","target_mb":2}}`,
			want: CompressToTarget{File: "a.pdf", TargetMB: 2},
		},
		{
			name: "flattened payload",
			raw:  `{"operation_type":"rotate","file":"a.pdf","degrees":90}`,
			want: Rotate{File: "a.pdf", Degrees: 90},
		},
		{
			name: "rotate snaps odd degrees",
			raw:  `{"operation_type":"rotate","file":"a.pdf","degrees":-90}`,
			want: Rotate{File: "a.pdf", Degrees: 270},
		},
		{
			name: "compress default preset",
			raw:  `{"operation_type":"compress","compress":{"file":"a.pdf"}}`,
			want: Compress{File: "a.pdf", Preset: PresetEbook},
		},
		{
			name: "reorder reverse literal",
			raw:  `{"operation_type":"reorder","reorder":{"file":"a.pdf","new_order":"reverse"}}`,
			want: Reorder{File: "a.pdf", Reverse: true},
		},
		{
			name: "ocr defaults",
			raw:  `{"operation_type":"ocr","ocr":{"file":"scan.pdf"}}`,
			want: Ocr{File: "scan.pdf", Language: "eng", Deskew: true},
		},
		{
			name: "watermark default opacity",
			raw:  `{"operation_type":"watermark","watermark":{"file":"a.pdf","text":"DRAFT"}}`,
			want: Watermark{File: "a.pdf", Text: "DRAFT", Opacity: 0.12},
		},
		{
			name:    "validation failure surfaces",
			raw:     `{"operation_type":"split","split":{"file":"a.pdf","pages":[]}}`,
			wantErr: true,
		},
		{
			name:    "malformed envelope",
			raw:     `"just a string"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeOperation(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeOperation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			gotJSON, _ := json.Marshal(got)
			wantJSON, _ := json.Marshal(tt.want)
			if string(gotJSON) != string(wantJSON) {
				t.Errorf("DecodeOperation() = %s, want %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestDecodeOperationUnknownKind(t *testing.T) {
	_, err := DecodeOperation(json.RawMessage(`{"operation_type":"add_password","add_password":{"file":"a.pdf"}}`))
	var unknown *UnknownKindError
	if !errors.As(err, &unknown) {
		t.Fatalf("want UnknownKindError, got %v", err)
	}
	if unknown.Kind != "add_password" {
		t.Errorf("Kind = %q, want add_password", unknown.Kind)
	}
}

func TestSnapDegrees(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{90, 90},
		{180, 180},
		{270, 270},
		{-90, 270},
		{360, 90},
		{450, 90},
		{100, 90},
		{200, 180},
	}
	for _, tt := range tests {
		if got := SnapDegrees(tt.in); got != tt.want {
			t.Errorf("SnapDegrees(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	ops := []Operation{
		Merge{Files: []string{"a.pdf", "b.pdf"}},
		CompressToTarget{File: PreviousOutput, TargetMB: 2},
	}
	raw, err := MarshalPlan(Plan{Steps: ops})
	if err != nil {
		t.Fatalf("MarshalPlan: %v", err)
	}

	var envelopes []json.RawMessage
	if err := json.Unmarshal(raw, &envelopes); err != nil {
		t.Fatalf("unmarshal plan array: %v", err)
	}
	if len(envelopes) != 2 {
		t.Fatalf("got %d envelopes, want 2", len(envelopes))
	}
	for i, env := range envelopes {
		got, err := DecodeOperation(env)
		if err != nil {
			t.Fatalf("decode step %d: %v", i, err)
		}
		if got.Kind() != ops[i].Kind() {
			t.Errorf("step %d kind = %s, want %s", i, got.Kind(), ops[i].Kind())
		}
	}
}
