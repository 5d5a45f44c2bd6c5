package session

import (
	"testing"
)

func TestInferQuestionKind(t *testing.T) {
	tests := []struct {
		question string
		want     QuestionKind
	}{
		{"How many degrees should I rotate it?", KindRotateDegrees},
		{"What size should the result be?", KindCompressSize},
		{"Which pages should I delete?", KindDeletePages},
		{"What order do you want the pages in?", KindOrder},
		{"Which pages do you want to extract?", KindKeepPages},
		{"Which format should I convert to?", KindConvertFormat},
		{"What would you like to do?", KindFreeform},
	}
	for _, tt := range tests {
		if got := InferQuestionKind(tt.question); got != tt.want {
			t.Errorf("InferQuestionKind(%q) = %s, want %s", tt.question, got, tt.want)
		}
	}
}

func TestIsShortReply(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"90", true},
		{"2mb", true},
		{"1-3", true},
		{"2,4-6", true},
		{"reverse", true},
		{"keep the first three pages please", true},
		{"", false},
		{"merge all of these pdfs together and then compress them down", false},
	}
	for _, tt := range tests {
		if got := IsShortReply(tt.text); got != tt.want {
			t.Errorf("IsShortReply(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestBindSlot(t *testing.T) {
	tests := []struct {
		name  string
		kind  QuestionKind
		reply string
		base  string
		want  string
	}{
		{
			name:  "bare number into rotate",
			kind:  KindRotateDegrees,
			reply: "90",
			base:  "rotate this",
			want:  "rotate this 90 degrees",
		},
		{
			name:  "bare number into rotate without base",
			kind:  KindRotateDegrees,
			reply: "180",
			want:  "rotate 180 degrees",
		},
		{
			name:  "bare number into compress",
			kind:  KindCompressSize,
			reply: "2",
			base:  "compress this",
			want:  "compress this to 2 mb",
		},
		{
			name:  "sized reply into compress",
			kind:  KindCompressSize,
			reply: "500kb",
			base:  "compress this",
			want:  "compress this to 500kb",
		},
		{
			name:  "range into keep pages",
			kind:  KindKeepPages,
			reply: "2,4-6",
			want:  "keep pages 2,4-6",
		},
		{
			name:  "range into delete pages",
			kind:  KindDeletePages,
			reply: "1,3",
			want:  "delete pages 1,3",
		},
		{
			name:  "reverse into order",
			kind:  KindOrder,
			reply: "reverse",
			want:  "reverse the pages",
		},
		{
			name:  "format reply",
			kind:  KindConvertFormat,
			reply: "docx",
			want:  "convert to docx",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BindSlot(tt.kind, tt.reply, tt.base); got != tt.want {
				t.Errorf("BindSlot() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchOption(t *testing.T) {
	options := []string{"keep pages 1", "keep pages 1-2", "keep pages 1-3", "all pages"}

	if got, ok := MatchOption("Keep Pages 1-2", options); !ok || got != "keep pages 1-2" {
		t.Errorf("case-insensitive match failed: %q %v", got, ok)
	}
	if got, ok := MatchOption("4", options); !ok || got != "all pages" {
		t.Errorf("index selection failed: %q %v", got, ok)
	}
	if _, ok := MatchOption("5", options); ok {
		t.Error("out-of-range index must not match")
	}
	if _, ok := MatchOption("something else entirely", options); ok {
		t.Error("free text must not match")
	}
	if _, ok := MatchOption("1", nil); ok {
		t.Error("no options means no match")
	}
}
