// Package normalize cleans raw user instructions before any pattern
// matching happens. Typos, shorthand and context-dependent short replies
// are rewritten into canonical phrases; the original text is kept by the
// caller for the rewrite provider.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// Whole-word typo corrections. Word boundaries keep "compres" from eating
// the inside of an already-correct "compression".
var typoFixes = map[string]string{
	"rotet":      "rotate",
	"roate":      "rotate",
	"rotae":      "rotate",
	"degres":     "degrees",
	"splti":      "split",
	"splt":       "split",
	"spllit":     "split",
	"compres":    "compress",
	"comprss":    "compress",
	"comress":    "compress",
	"merg":       "merge",
	"mergee":     "merge",
	"conver":     "convert",
	"cnvert":     "convert",
	"cnvrt":      "convert",
	"convrt":     "convert",
	"pfd":        "pdf",
	"dox":        "docx",
	"wattermark": "watermark",
	"watermak":   "watermark",
	"orc":        "ocr",
	"exract":     "extract",
	"extrat":     "extract",
	"teh":        "the",
}

// Connector typos are only repaired as isolated tokens so that words like
// "thn" inside a longer token are left alone.
var connectorFixes = map[string]string{
	"adn":  "and",
	"nad":  "and",
	"thne": "then",
	"tehn": "then",
	"thn":  "then",
}

var typoRe = map[*regexp.Regexp]string{}

func init() {
	for typo, fix := range typoFixes {
		typoRe[regexp.MustCompile(`\b`+regexp.QuoteMeta(typo)+`\b`)] = fix
	}
	for typo, fix := range connectorFixes {
		typoRe[regexp.MustCompile(`\b`+regexp.QuoteMeta(typo)+`\b`)] = fix
	}
}

var (
	bareNumberRe = regexp.MustCompile(`^\d+$`)
	bareSizeRe   = regexp.MustCompile(`(?i)^\d+\s*(mb|kb)?$`)

	pngRe  = regexp.MustCompile(`\bpng\b`)
	jpgRe  = regexp.MustCompile(`\bjpe?g\b`)
	txtRe  = regexp.MustCompile(`\btxt\b`)
	zipRe  = regexp.MustCompile(`\bzip\b`)
	docxRe = regexp.MustCompile(`\bdocx?\b`)
	wordRe = regexp.MustCompile(`\bword\b`)
	rotRe  = regexp.MustCompile(`\brot\b`)

	leftRe  = regexp.MustCompile(`\bleft\b`)
	rightRe = regexp.MustCompile(`\bright\b`)
	flipRe  = regexp.MustCompile(`\bflip\b`)
	turnRe  = regexp.MustCompile(`\bturn\b`)

	tinyRe    = regexp.MustCompile(`\btiny\b`)
	aLittleRe = regexp.MustCompile(`\ba (little|bit)\b`)
	bestRe    = regexp.MustCompile(`\bbest quality\b`)
)

// Normalize canonicalizes an instruction. lastQuestion is the previous
// clarification question, if any; it decides how bare numeric replies are
// expanded. Normalize is idempotent: every expansion produces text that no
// rule matches again.
func Normalize(text, lastQuestion string) string {
	p := strings.ToLower(strings.TrimSpace(text))
	p = strings.Join(strings.Fields(p), " ")

	for re, fix := range typoRe {
		p = re.ReplaceAllString(p, fix)
	}

	question := strings.ToLower(lastQuestion)
	p = expandContextualReply(p, question)
	p = expandShorthand(p)
	p = expandDirections(p, question)
	p = expandQuality(p)

	return strings.Join(strings.Fields(p), " ")
}

// expandContextualReply turns a bare number into a full instruction when
// the pending question tells us which slot it answers.
func expandContextualReply(p, question string) string {
	switch {
	case bareNumberRe.MatchString(p) && strings.Contains(question, "degree"):
		return fmt.Sprintf("rotate %s degrees", p)
	case bareNumberRe.MatchString(p) && strings.Contains(question, "page") && strings.Contains(question, "extract"):
		return fmt.Sprintf("split page %s", p)
	case bareSizeRe.MatchString(p) && strings.Contains(question, "size"):
		if strings.ContainsAny(p, "mk") {
			return fmt.Sprintf("compress to %s", p)
		}
		return fmt.Sprintf("compress to %s mb", p)
	}
	return p
}

func expandShorthand(p string) string {
	hasExportContext := strings.Contains(p, "export") || strings.Contains(p, "image")

	if !hasExportContext {
		p = pngRe.ReplaceAllString(p, "export as png images")
		p = jpgRe.ReplaceAllString(p, "export as jpg images")
	}
	if !(strings.Contains(p, "extract") && strings.Contains(p, "text")) {
		p = txtRe.ReplaceAllString(p, "extract text")
	}
	p = zipRe.ReplaceAllString(p, "compress as small as possible")
	if !strings.Contains(p, "convert") {
		p = docxRe.ReplaceAllString(p, "convert to docx")
		p = wordRe.ReplaceAllString(p, "convert to word")
	}
	p = rotRe.ReplaceAllString(p, "rotate")
	return p
}

// expandDirections maps left/right/flip onto explicit degree phrases so the
// extractor only ever deals with numbers. Bare "left" and "right" are also
// ordinary English ("the right pages"), so those two only expand when the
// instruction or the pending question already talks about rotating.
func expandDirections(p, question string) string {
	p = turnRe.ReplaceAllString(p, "rotate")

	replace := func(re *regexp.Regexp, degrees int) {
		if !re.MatchString(p) {
			return
		}
		repl := fmt.Sprintf("%d degrees", degrees)
		if !strings.Contains(p, "rotate") {
			repl = "rotate " + repl
		}
		p = re.ReplaceAllString(p, repl)
	}
	rotateContext := strings.Contains(p, "rotate") || strings.Contains(p, "flip") ||
		strings.Contains(question, "rotate") || strings.Contains(question, "degree")
	if rotateContext {
		replace(leftRe, 270)
		replace(rightRe, 90)
	}
	replace(flipRe, 180)
	return p
}

func expandQuality(p string) string {
	p = tinyRe.ReplaceAllString(p, "smallest possible size")
	p = aLittleRe.ReplaceAllString(p, "slightly")
	p = bestRe.ReplaceAllString(p, "prepress quality")
	return p
}
