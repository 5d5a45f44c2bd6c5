package resolve

import (
	"errors"
	"regexp"
	"strings"

	"ordermypdf-be/pkg/intent"
)

// UnsupportedReply is the fixed sentinel for capabilities this system does
// not have. It is emitted verbatim, never embedded in other prose.
const UnsupportedReply = "Not supported yet or sooner"

var unsupportedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(password|encrypt|decrypt|unlock|protect with)\b`),
	regexp.MustCompile(`\b(sign|signature|esign|digitally signed?)\b`),
	regexp.MustCompile(`\b(xlsx?|excel|spreadsheet)\b`),
	regexp.MustCompile(`\b(pptx?|powerpoint|presentation|slides?)\b`),
	regexp.MustCompile(`\bhtml\b`),
	regexp.MustCompile(`\b(edit|annotate|fill)\b.*\bpdf\b`),
}

// isUnsupportedRequest scans the raw instruction for capabilities we know
// we cannot serve. The scan runs before any parsing or collaborator call.
func isUnsupportedRequest(text string) bool {
	t := strings.ToLower(text)
	for _, re := range unsupportedPatterns {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

// isUnsupportedValidation recognizes a collaborator validation failure
// whose shape says the operation kind itself is unknown, as opposed to a
// malformed but recognizable payload.
func isUnsupportedValidation(err error) bool {
	var unknown *intent.UnknownKindError
	return errors.As(err, &unknown)
}
