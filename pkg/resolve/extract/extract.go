// Package extract detects operation families in a normalized instruction
// and pulls out their parameters. A family can match with complete,
// partial or missing parameters; incomplete matches feed the confidence
// scorer and eventually the clarification templates. The extractor never
// guesses a value it cannot find in the text.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"ordermypdf-be/pkg/intent"
)

// Status describes how much of a family's parameters were recovered.
type Status string

const (
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
	StatusMissing  Status = "missing"
)

// Slot names a parameter a clarification question would have to fill.
type Slot string

const (
	SlotPages   Slot = "pages"
	SlotDegrees Slot = "degrees"
	SlotSize    Slot = "size"
	SlotFormat  Slot = "format"
	SlotText    Slot = "text"
	SlotOrder   Slot = "order"
)

// Match is one detected family occurrence.
type Match struct {
	Family      intent.Kind
	Status      Status
	Pos         int // byte offset of the first keyword hit, for ordering ties
	Op          intent.Operation
	MissingSlot Slot
}

// Result is everything the scorer and orderer need from one pass over the
// text.
type Result struct {
	Matches          []Match
	ExplicitSequence bool
	SequenceInverted bool
	VagueKeyword     bool
	QualityKeyword   bool
	ExplicitNumbers  bool
	ExplicitFormat   bool
}

// Families returns the matched kinds in text order.
func (r Result) Families() []intent.Kind {
	kinds := make([]intent.Kind, len(r.Matches))
	for i, m := range r.Matches {
		kinds[i] = m.Family
	}
	return kinds
}

// Complete reports whether every match carries full parameters.
func (r Result) Complete() bool {
	if len(r.Matches) == 0 {
		return false
	}
	for _, m := range r.Matches {
		if m.Status != StatusComplete {
			return false
		}
	}
	return true
}

// FirstIncomplete returns the first match that still needs a slot filled.
func (r Result) FirstIncomplete() (Match, bool) {
	for _, m := range r.Matches {
		if m.Status != StatusComplete {
			return m, true
		}
	}
	return Match{}, false
}

var (
	mergeRe        = regexp.MustCompile(`\b(merge|combine|join)\b`)
	splitFilesRe   = regexp.MustCompile(`\bsplit\b.*\b(separate|individual|each)\b|\beach page\b.*\bfile\b`)
	splitRe        = regexp.MustCompile(`\bsplit\b|\bkeep pages?\b|\bextract pages?\b`)
	blankRe        = regexp.MustCompile(`\b(remove|delete|drop)\b.*\bblank\b`)
	dupRe          = regexp.MustCompile(`\b(remove|delete|drop)\b.*\bduplicate`)
	deleteRe       = regexp.MustCompile(`\b(delete|remove)\b.*\bpages?\b`)
	compressRe     = regexp.MustCompile(`\b(compress|shrink|smaller|reduce)\b`)
	rotateRe       = regexp.MustCompile(`\brotate\b`)
	reorderRe      = regexp.MustCompile(`\b(reorder|rearrange|reverse)\b|\bnew order\b`)
	watermarkRe    = regexp.MustCompile(`\b(watermark|stamp)\b`)
	pageNumbersRe  = regexp.MustCompile(`\bpage numbers?\b|\bnumber (the )?pages\b|\badd numbers\b`)
	extractTextRe  = regexp.MustCompile(`\bextract(ed)? text\b|\bget (the )?text\b|\bpull (the )?text\b`)
	toImagesRe     = regexp.MustCompile(`\bexport as (png|jpg) images?\b|\b(to|as|into) (png|jpg)\b|\bconvert to images?\b|\bas images\b`)
	imageFormatRe  = regexp.MustCompile(`\b(png|jpg)\b`)
	toPdfRe        = regexp.MustCompile(`\b(to|into|as a?) pdf\b|\bmake (a |this a )?pdf\b`)
	ocrRe          = regexp.MustCompile(`\bocr\b|\bsearchable\b|\brecognize text\b|\btext recognition\b`)
	toDocxRe       = regexp.MustCompile(`\b(to|into|as) (docx|word)\b`)
	enhanceRe      = regexp.MustCompile(`\benhance\b|\b(improve|clean|fix)( up)?( the| this)? scan\b`)
	flattenRe      = regexp.MustCompile(`\bflatten\b|\bprint ready\b|\bnon.?editable\b`)
	emailRe        = regexp.MustCompile(`\b(for |via )?e?mail\b|\bemail ready\b`)
	whatsappRe     = regexp.MustCompile(`\bwhats?app\b`)
	webRe          = regexp.MustCompile(`\bfor (the )?web\b`)
	sequenceRe     = regexp.MustCompile(`\bthen\b|\bafter\b|\bbefore\b|\bnext\b|\bfinally\b|\bfollowed by\b|\bfirst\b`)
	invertedSeqRe  = regexp.MustCompile(`\bafter\b`)
	forwardSeqRe   = regexp.MustCompile(`\bthen\b|\bafter (that|this)\b|\bafterwards?\b|\bnext\b|\bfinally\b|\bfollowed by\b|\bfirst\b`)
	vagueRe        = regexp.MustCompile(`\b(fix|optimize|whatever|something|better)\b`)
	qualityRe      = regexp.MustCompile(`\b(smallest|small|aggressive|max|light|slightly|quality|screen|ebook|printer|prepress)\b`)
	formatWordRe   = regexp.MustCompile(`\b(png|jpg|docx|word|txt|pdf|images?)\b`)
	watermarkQuote = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
	watermarkTail  = regexp.MustCompile(`\b(?:watermark|stamp)\s+(?:saying\s+|with\s+|text\s+)?([a-z0-9][a-z0-9 _-]*)`)
)

// Extract runs every family matcher over the normalized text. files is the
// ordered upload list; the first compatible file anchors single-file
// operations and merge-like operations take the whole list.
func Extract(text string, files []string) Result {
	text = strings.ToLower(text)
	res := Result{}

	primary := ""
	if len(files) > 0 {
		primary = files[0]
	}
	allImages := len(files) > 0
	for _, f := range files {
		if intent.TypeOf(f) != intent.TypeImage {
			allImages = false
		}
	}

	add := func(m Match) {
		for _, existing := range res.Matches {
			if existing.Family == m.Family {
				return
			}
		}
		res.Matches = append(res.Matches, m)
	}

	// Merge-like openers. A merge keyword over a pure image upload means
	// combining the images into one PDF, not a PDF merge.
	if loc := mergeRe.FindStringIndex(text); loc != nil {
		if allImages {
			add(Match{Family: intent.KindImagesToPdf, Status: StatusComplete, Pos: loc[0],
				Op: intent.ImagesToPdf{Files: files}})
		} else {
			add(Match{Family: intent.KindMerge, Status: StatusComplete, Pos: loc[0],
				Op: intent.Merge{Files: files}})
		}
	}

	// Page cleanup families go before plain delete so "remove blank pages"
	// is not read as a page deletion with missing numbers.
	if loc := blankRe.FindStringIndex(text); loc != nil {
		add(Match{Family: intent.KindRemoveBlankPages, Status: StatusComplete, Pos: loc[0],
			Op: intent.RemoveBlankPages{File: primary}})
	}
	if loc := dupRe.FindStringIndex(text); loc != nil {
		add(Match{Family: intent.KindRemoveDuplicatePages, Status: StatusComplete, Pos: loc[0],
			Op: intent.RemoveDuplicatePages{File: primary}})
	}
	if loc := deleteRe.FindStringIndex(text); loc != nil && blankRe.FindStringIndex(text) == nil && dupRe.FindStringIndex(text) == nil {
		if pages, ok := pagesAfterKeyword(text); ok {
			add(Match{Family: intent.KindDelete, Status: StatusComplete, Pos: loc[0],
				Op: intent.Delete{File: primary, PagesToDelete: pages}})
		} else {
			add(Match{Family: intent.KindDelete, Status: StatusMissing, Pos: loc[0], MissingSlot: SlotPages})
		}
	}

	// Split to separate files wins over a plain page split.
	if loc := splitFilesRe.FindStringIndex(text); loc != nil {
		pages, _ := pagesAfterKeyword(text)
		add(Match{Family: intent.KindSplitToFiles, Status: StatusComplete, Pos: loc[0],
			Op: intent.SplitToFiles{File: primary, Pages: pages}})
	} else if loc := splitRe.FindStringIndex(text); loc != nil && deleteRe.FindStringIndex(text) == nil {
		if strings.Contains(text, "all pages") {
			// "split all pages" means one file per page.
			add(Match{Family: intent.KindSplitToFiles, Status: StatusComplete, Pos: loc[0],
				Op: intent.SplitToFiles{File: primary}})
		} else if pages, ok := splitPages(text); ok {
			add(Match{Family: intent.KindSplit, Status: StatusComplete, Pos: loc[0],
				Op: intent.Split{File: primary, Pages: pages}})
		} else {
			add(Match{Family: intent.KindSplit, Status: StatusMissing, Pos: loc[0], MissingSlot: SlotPages})
		}
	}

	extractCompress(text, primary, add)
	extractRotate(text, primary, add)
	extractReorder(text, primary, add)
	extractWatermark(text, primary, add)

	if loc := pageNumbersRe.FindStringIndex(text); loc != nil {
		add(Match{Family: intent.KindPageNumbers, Status: StatusComplete, Pos: loc[0],
			Op: intent.PageNumbers{File: primary, Position: intent.PositionBottomCenter, StartAt: 1}})
	}
	if loc := extractTextRe.FindStringIndex(text); loc != nil {
		add(Match{Family: intent.KindExtractText, Status: StatusComplete, Pos: loc[0],
			Op: intent.ExtractText{File: primary}})
	}
	if loc := toImagesRe.FindStringIndex(text); loc != nil {
		format := intent.FormatPNG
		if m := imageFormatRe.FindStringSubmatch(text); m != nil && m[1] == "jpg" {
			format = intent.FormatJPG
		}
		add(Match{Family: intent.KindPdfToImages, Status: StatusComplete, Pos: loc[0],
			Op: intent.PdfToImages{File: primary, Format: format, DPI: 150}})
	}
	if loc := ocrRe.FindStringIndex(text); loc != nil {
		add(Match{Family: intent.KindOcr, Status: StatusComplete, Pos: loc[0],
			Op: intent.Ocr{File: primary, Language: "eng", Deskew: true}})
	}
	if loc := toDocxRe.FindStringIndex(text); loc != nil {
		add(Match{Family: intent.KindPdfToDocx, Status: StatusComplete, Pos: loc[0],
			Op: intent.PdfToDocx{File: primary}})
	}
	if loc := toPdfRe.FindStringIndex(text); loc != nil {
		if allImages {
			add(Match{Family: intent.KindImagesToPdf, Status: StatusComplete, Pos: loc[0],
				Op: intent.ImagesToPdf{Files: files}})
		} else {
			add(Match{Family: intent.KindDocxToPdf, Status: StatusComplete, Pos: loc[0],
				Op: intent.DocxToPdf{File: primary}})
		}
	}
	if loc := enhanceRe.FindStringIndex(text); loc != nil {
		add(Match{Family: intent.KindEnhanceScan, Status: StatusComplete, Pos: loc[0],
			Op: intent.EnhanceScan{File: primary}})
	}
	if loc := flattenRe.FindStringIndex(text); loc != nil {
		add(Match{Family: intent.KindFlatten, Status: StatusComplete, Pos: loc[0],
			Op: intent.Flatten{File: primary}})
	}

	extractPurpose(text, primary, add)

	sort.SliceStable(res.Matches, func(i, j int) bool {
		return res.Matches[i].Pos < res.Matches[j].Pos
	})

	res.ExplicitSequence = sequenceRe.MatchString(text)
	// "A after B" names B as the earlier step, so the textual order must be
	// reversed before execution. "after that" and friends are forward
	// connectives and do not invert anything.
	res.SequenceInverted = invertedSeqRe.MatchString(text) && !forwardSeqRe.MatchString(text)
	res.QualityKeyword = qualityRe.MatchString(text)
	res.ExplicitNumbers = pagesKeywordRe.MatchString(text) ||
		sizeRe.MatchString(text) || degreesRe.MatchString(text) || rotateNumRe.MatchString(text)
	res.ExplicitFormat = formatWordRe.MatchString(text)
	res.VagueKeyword = hasVagueKeyword(text, &res)

	return res
}

// hasVagueKeyword flags woolly phrasing, ignoring "fix" when it is part of
// a concrete scan-repair request.
func hasVagueKeyword(text string, res *Result) bool {
	hits := vagueRe.FindAllString(text, -1)
	if len(hits) == 0 {
		return false
	}
	enhanced := false
	for _, m := range res.Matches {
		if m.Family == intent.KindEnhanceScan {
			enhanced = true
		}
	}
	for _, hit := range hits {
		if hit == "fix" && enhanced {
			continue
		}
		return true
	}
	return false
}

func extractCompress(text, primary string, add func(Match)) {
	loc := compressRe.FindStringIndex(text)
	if loc == nil {
		return
	}
	if target, ok := parseTargetMB(text); ok {
		add(Match{Family: intent.KindCompress, Status: StatusComplete, Pos: loc[0],
			Op: intent.CompressToTarget{File: primary, TargetMB: target}})
		return
	}
	if m := percentRe.FindStringSubmatch(text); m != nil {
		add(Match{Family: intent.KindCompress, Status: StatusComplete, Pos: loc[0],
			Op: intent.Compress{File: primary, Preset: presetForPercent(m[1])}})
		return
	}
	add(Match{Family: intent.KindCompress, Status: StatusComplete, Pos: loc[0],
		Op: intent.Compress{File: primary, Preset: presetForQuality(text)}})
}

func presetForQuality(text string) intent.Preset {
	switch {
	case strings.Contains(text, "smallest"), strings.Contains(text, "aggressive"),
		strings.Contains(text, "as small as possible"), strings.Contains(text, "max"):
		return intent.PresetScreen
	case strings.Contains(text, "slightly"), strings.Contains(text, "light"):
		return intent.PresetPrinter
	case strings.Contains(text, "prepress"):
		return intent.PresetPrepress
	case strings.Contains(text, "screen"):
		return intent.PresetScreen
	case strings.Contains(text, "printer"):
		return intent.PresetPrinter
	}
	return intent.PresetEbook
}

func presetForPercent(raw string) intent.Preset {
	n := 0
	for _, c := range raw {
		n = n*10 + int(c-'0')
	}
	switch {
	case n >= 70:
		return intent.PresetScreen
	case n >= 40:
		return intent.PresetEbook
	}
	return intent.PresetPrinter
}

func extractRotate(text, primary string, add func(Match)) {
	loc := rotateRe.FindStringIndex(text)
	if loc == nil {
		return
	}
	if deg, ok := parseDegrees(text); ok {
		pages, _ := pagesAfterKeyword(text)
		add(Match{Family: intent.KindRotate, Status: StatusComplete, Pos: loc[0],
			Op: intent.Rotate{File: primary, Degrees: intent.SnapDegrees(deg), Pages: pages}})
		return
	}
	add(Match{Family: intent.KindRotate, Status: StatusMissing, Pos: loc[0], MissingSlot: SlotDegrees})
}

func extractReorder(text, primary string, add func(Match)) {
	loc := reorderRe.FindStringIndex(text)
	if loc == nil {
		return
	}
	if strings.Contains(text, "reverse") {
		add(Match{Family: intent.KindReorder, Status: StatusComplete, Pos: loc[0],
			Op: intent.Reorder{File: primary, Reverse: true}})
		return
	}
	if m := orderListRe.FindString(text); m != "" {
		order, err := parseOrderList(m)
		if err == nil {
			add(Match{Family: intent.KindReorder, Status: StatusComplete, Pos: loc[0],
				Op: intent.Reorder{File: primary, NewOrder: order}})
			return
		}
	}
	add(Match{Family: intent.KindReorder, Status: StatusMissing, Pos: loc[0], MissingSlot: SlotOrder})
}

func parseOrderList(expr string) ([]int, error) {
	parts := strings.Split(expr, ",")
	order := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		order = append(order, n)
	}
	return order, nil
}

func extractWatermark(text, primary string, add func(Match)) {
	loc := watermarkRe.FindStringIndex(text)
	if loc == nil {
		return
	}
	if m := watermarkQuote.FindStringSubmatch(text); m != nil {
		captured := m[1]
		if captured == "" {
			captured = m[2]
		}
		add(Match{Family: intent.KindWatermark, Status: StatusComplete, Pos: loc[0],
			Op: intent.Watermark{File: primary, Text: captured, Opacity: 0.12}})
		return
	}
	if m := watermarkTail.FindStringSubmatch(text); m != nil {
		captured := strings.TrimSpace(m[1])
		// Stop the capture at a connector so "watermark draft then compress"
		// only takes the phrase itself.
		for _, stop := range []string{" then ", " and "} {
			if idx := strings.Index(captured, stop); idx >= 0 {
				captured = captured[:idx]
			}
		}
		if captured != "" && captured != "it" && captured != "this" {
			add(Match{Family: intent.KindWatermark, Status: StatusComplete, Pos: loc[0],
				Op: intent.Watermark{File: primary, Text: captured, Opacity: 0.12}})
			return
		}
	}
	add(Match{Family: intent.KindWatermark, Status: StatusMissing, Pos: loc[0], MissingSlot: SlotText})
}

// extractPurpose maps everyday goals onto concrete operations, the way the
// product's shortcut layer does.
func extractPurpose(text, primary string, add func(Match)) {
	if loc := emailRe.FindStringIndex(text); loc != nil {
		add(Match{Family: intent.KindCompress, Status: StatusComplete, Pos: loc[0],
			Op: intent.CompressToTarget{File: primary, TargetMB: 10}})
	}
	if loc := whatsappRe.FindStringIndex(text); loc != nil {
		add(Match{Family: intent.KindCompress, Status: StatusComplete, Pos: loc[0],
			Op: intent.CompressToTarget{File: primary, TargetMB: 16}})
	}
	if loc := webRe.FindStringIndex(text); loc != nil {
		add(Match{Family: intent.KindCompress, Status: StatusComplete, Pos: loc[0],
			Op: intent.Compress{File: primary, Preset: intent.PresetScreen}})
	}
}

// splitPages recognizes both "keep pages 2,4-6" and "split page 3".
var splitPageRe = regexp.MustCompile(`\bpage\s+(\d+)\b`)

func splitPages(text string) ([]int, bool) {
	if strings.Contains(text, "all pages") {
		return nil, false
	}
	if pages, ok := pagesAfterKeyword(text); ok {
		return pages, true
	}
	if m := splitPageRe.FindStringSubmatch(text); m != nil {
		pages, err := ParsePages(m[1])
		if err == nil {
			return pages, true
		}
	}
	return nil, false
}
