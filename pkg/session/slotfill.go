package session

import (
	"regexp"
	"strings"
)

// QuestionKind classifies what slot a pending question was asking for, so
// a short reply can be bound into the right place.
type QuestionKind string

const (
	KindOrder         QuestionKind = "order"
	KindRotateDegrees QuestionKind = "rotate_degrees"
	KindCompressSize  QuestionKind = "compress_size"
	KindKeepPages     QuestionKind = "keep_pages"
	KindDeletePages   QuestionKind = "delete_pages"
	KindConvertFormat QuestionKind = "convert_format"
	KindFreeform      QuestionKind = "freeform"
)

var (
	numericReplyRe = regexp.MustCompile(`^\d+(\s*(mb|kb|%|degrees?))?$`)
	rangeReplyRe   = regexp.MustCompile(`^\d+(\s*-\s*\d+)?(\s*,\s*\d+(\s*-\s*\d+)?)*$`)
	bareNumberRe   = regexp.MustCompile(`^\d+$`)
)

// InferQuestionKind reads the pending question text and decides which slot
// its answer should fill.
func InferQuestionKind(question string) QuestionKind {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "degree") || strings.Contains(q, "rotate"):
		return KindRotateDegrees
	case strings.Contains(q, "size") || strings.Contains(q, "mb") || strings.Contains(q, "how small"):
		return KindCompressSize
	case strings.Contains(q, "delete") || strings.Contains(q, "remove"):
		return KindDeletePages
	case strings.Contains(q, "order") || strings.Contains(q, "arrange"):
		return KindOrder
	case strings.Contains(q, "page"):
		return KindKeepPages
	case strings.Contains(q, "format") || strings.Contains(q, "convert"):
		return KindConvertFormat
	}
	return KindFreeform
}

// IsShortReply reports whether the text is a slot-fill candidate rather
// than a fresh instruction: at most 6 tokens, or purely numeric/range.
func IsShortReply(text string) bool {
	t := strings.TrimSpace(strings.ToLower(text))
	if t == "" {
		return false
	}
	if numericReplyRe.MatchString(t) || rangeReplyRe.MatchString(t) {
		return true
	}
	return len(strings.Fields(t)) <= 6
}

// BindSlot merges a short reply into the pending base instruction,
// producing a full instruction ready for a fresh deterministic parse.
func BindSlot(kind QuestionKind, reply, base string) string {
	reply = strings.TrimSpace(strings.ToLower(reply))
	if base == "" {
		base = defaultBase(kind)
	}

	switch kind {
	case KindRotateDegrees:
		if bareNumberRe.MatchString(reply) {
			return base + " " + reply + " degrees"
		}
		return base + " " + reply
	case KindCompressSize:
		if bareNumberRe.MatchString(reply) {
			return base + " to " + reply + " mb"
		}
		if numericReplyRe.MatchString(reply) {
			return base + " to " + reply
		}
		return base + " " + reply
	case KindKeepPages:
		if rangeReplyRe.MatchString(reply) {
			return "keep pages " + reply
		}
		return base + " " + reply
	case KindDeletePages:
		if rangeReplyRe.MatchString(reply) {
			return "delete pages " + reply
		}
		return base + " " + reply
	case KindOrder:
		if reply == "reverse" {
			return "reverse the pages"
		}
		return base + " " + reply
	case KindConvertFormat:
		return "convert to " + reply
	}
	return strings.TrimSpace(base + " " + reply)
}

func defaultBase(kind QuestionKind) string {
	switch kind {
	case KindRotateDegrees:
		return "rotate"
	case KindCompressSize:
		return "compress"
	case KindKeepPages:
		return "split"
	case KindDeletePages:
		return "delete"
	case KindOrder:
		return "reorder"
	}
	return ""
}

// MatchOption compares a reply against previously offered options,
// case-insensitively and whitespace-normalized. A bare 1-based index into
// the option list also counts as a selection.
func MatchOption(reply string, options []string) (string, bool) {
	norm := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	r := norm(reply)
	if r == "" || len(options) == 0 {
		return "", false
	}
	for _, opt := range options {
		if norm(opt) == r {
			return opt, true
		}
	}
	if bareNumberRe.MatchString(r) {
		idx := 0
		for _, c := range r {
			idx = idx*10 + int(c-'0')
		}
		if idx >= 1 && idx <= len(options) {
			return options[idx-1], true
		}
	}
	return "", false
}
