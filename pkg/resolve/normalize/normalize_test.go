package normalize

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		lastQuestion string
		want         string
	}{
		{
			name: "lowercase and whitespace collapse",
			text: "  Rotate   THIS  ",
			want: "rotate this",
		},
		{
			name: "typo corrections",
			text: "rotet the pfd 90 degres",
			want: "rotate the pdf 90 degrees",
		},
		{
			name: "typos stay inside word boundaries",
			text: "compression settings",
			want: "compression settings",
		},
		{
			name: "connector typo",
			text: "merge adn compress",
			want: "merge and compress",
		},
		{
			name:         "bare number answers degree question",
			text:         "90",
			lastQuestion: "How many degrees should I rotate it?",
			want:         "rotate 90 degrees",
		},
		{
			name:         "bare size answers size question",
			text:         "2mb",
			lastQuestion: "What size should the result be?",
			want:         "compress to 2mb",
		},
		{
			name:         "bare number answers size question in mb",
			text:         "5",
			lastQuestion: "What size should the result be?",
			want:         "compress to 5 mb",
		},
		{
			name: "bare number without question stays bare",
			text: "90",
			want: "90",
		},
		{
			name: "png shorthand",
			text: "png please",
			want: "export as png images please",
		},
		{
			name: "png left alone with export context",
			text: "export as png images",
			want: "export as png images",
		},
		{
			name: "txt shorthand",
			text: "txt",
			want: "extract text",
		},
		{
			name: "word shorthand",
			text: "make it word",
			want: "make it convert to word",
		},
		{
			name: "docx untouched after convert",
			text: "convert to docx",
			want: "convert to docx",
		},
		{
			name: "right becomes 90",
			text: "rotate it right",
			want: "rotate it 90 degrees",
		},
		{
			name:         "left answers rotate question with implied rotate",
			text:         "left",
			lastQuestion: "How many degrees should I rotate it?",
			want:         "rotate 270 degrees",
		},
		{
			name: "bare right without rotate context stays put",
			text: "delete the right pages",
			want: "delete the right pages",
		},
		{
			name: "bare left without rotate context stays put",
			text: "keep the left half",
			want: "keep the left half",
		},
		{
			name: "flip becomes 180",
			text: "flip it",
			want: "rotate 180 degrees it",
		},
		{
			name: "turn becomes rotate",
			text: "turn it right",
			want: "rotate it 90 degrees",
		},
		{
			name: "tiny expands",
			text: "make it tiny",
			want: "make it smallest possible size",
		},
		{
			name: "a little expands",
			text: "compress a little",
			want: "compress slightly",
		},
		{
			name: "best quality expands",
			text: "compress best quality",
			want: "compress prepress quality",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.text, tt.lastQuestion)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"rotet it right adn make it tiny",
		"png",
		"turn left then compress a bit",
		"merge these and then compress to 2mb",
	}
	for _, in := range inputs {
		once := Normalize(in, "")
		twice := Normalize(once, "")
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
