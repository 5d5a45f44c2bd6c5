package intent

import (
	"encoding/json"
	"fmt"
)

// UnknownKindError is returned when a payload names an operation this
// system does not implement. Callers treat it differently from a malformed
// payload: an unknown kind means the request itself is unsupported.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown operation kind %q", e.Kind)
}

// wire payload shapes. The envelope carries a discriminator plus one nested
// object keyed by the operation name, matching what the parsing
// collaborator is prompted to produce.
type mergeWire struct {
	Files []string `json:"files"`
}

type splitWire struct {
	File  string `json:"file"`
	Pages []int  `json:"pages"`
}

type deleteWire struct {
	File          string `json:"file"`
	PagesToDelete []int  `json:"pages_to_delete"`
}

type compressWire struct {
	File   string `json:"file"`
	Preset string `json:"preset"`
}

type compressToTargetWire struct {
	File     string `json:"file"`
	TargetMB int    `json:"target_mb"`
}

type rotateWire struct {
	File    string `json:"file"`
	Degrees int    `json:"degrees"`
	Pages   []int  `json:"pages,omitempty"`
}

type reorderWire struct {
	File     string          `json:"file"`
	NewOrder json.RawMessage `json:"new_order"`
}

type watermarkWire struct {
	File    string   `json:"file"`
	Text    string   `json:"text"`
	Opacity *float64 `json:"opacity,omitempty"`
	Angle   int      `json:"angle,omitempty"`
}

type pageNumbersWire struct {
	File     string `json:"file"`
	Position string `json:"position,omitempty"`
	StartAt  int    `json:"start_at,omitempty"`
}

type extractTextWire struct {
	File  string `json:"file"`
	Pages []int  `json:"pages,omitempty"`
}

type pdfToImagesWire struct {
	File   string `json:"file"`
	Format string `json:"format,omitempty"`
	DPI    int    `json:"dpi,omitempty"`
}

type imagesToPdfWire struct {
	Files []string `json:"files"`
}

type splitToFilesWire struct {
	File  string `json:"file"`
	Pages []int  `json:"pages,omitempty"`
}

type ocrWire struct {
	File     string `json:"file"`
	Language string `json:"language,omitempty"`
	Deskew   *bool  `json:"deskew,omitempty"`
}

type fileOnlyWire struct {
	File string `json:"file"`
}

// DecodeOperation turns one collaborator-produced JSON object into a typed,
// validated Operation. The object must carry "operation_type" plus a nested
// payload under the same key; defaults are applied before validation the
// same way the deterministic extractor applies them.
func DecodeOperation(raw json.RawMessage) (Operation, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode operation envelope: %w", err)
	}
	var kind string
	if err := json.Unmarshal(envelope["operation_type"], &kind); err != nil {
		return nil, fmt.Errorf("decode operation_type: %w", err)
	}

	payload, ok := envelope[kind]
	if !ok {
		// Some providers flatten the payload into the envelope itself.
		payload = raw
	}

	op, err := decodePayload(Kind(kind), payload)
	if err != nil {
		return nil, err
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return op, nil
}

func decodePayload(kind Kind, payload json.RawMessage) (Operation, error) {
	fail := func(err error) (Operation, error) {
		return nil, fmt.Errorf("decode %s payload: %w", kind, err)
	}

	switch kind {
	case KindMerge:
		var w mergeWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return Merge{Files: w.Files}, nil

	case KindSplit:
		var w splitWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return Split{File: w.File, Pages: w.Pages}, nil

	case KindDelete:
		var w deleteWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return Delete{File: w.File, PagesToDelete: w.PagesToDelete}, nil

	case KindCompress:
		var w compressWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		preset := Preset(w.Preset)
		if w.Preset == "" {
			preset = PresetEbook
		}
		return Compress{File: w.File, Preset: preset}, nil

	case KindCompressToTarget:
		var w compressToTargetWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return CompressToTarget{File: w.File, TargetMB: w.TargetMB}, nil

	case KindRotate:
		var w rotateWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return Rotate{File: w.File, Degrees: SnapDegrees(w.Degrees), Pages: w.Pages}, nil

	case KindReorder:
		var w reorderWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		// new_order is either an integer list or the literal "reverse".
		var order []int
		if err := json.Unmarshal(w.NewOrder, &order); err == nil {
			return Reorder{File: w.File, NewOrder: order}, nil
		}
		var lit string
		if err := json.Unmarshal(w.NewOrder, &lit); err == nil && lit == "reverse" {
			return Reorder{File: w.File, Reverse: true}, nil
		}
		return fail(fmt.Errorf("new_order must be an int list or \"reverse\""))

	case KindWatermark:
		var w watermarkWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		opacity := 0.12
		if w.Opacity != nil {
			opacity = *w.Opacity
		}
		return Watermark{File: w.File, Text: w.Text, Opacity: opacity, Angle: w.Angle}, nil

	case KindPageNumbers:
		var w pageNumbersWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		pos := NumberPosition(w.Position)
		if w.Position == "" {
			pos = PositionBottomCenter
		}
		start := w.StartAt
		if start == 0 {
			start = 1
		}
		return PageNumbers{File: w.File, Position: pos, StartAt: start}, nil

	case KindExtractText:
		var w extractTextWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return ExtractText{File: w.File, Pages: w.Pages}, nil

	case KindPdfToImages:
		var w pdfToImagesWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		var format ImageFormat
		switch w.Format {
		case "", "png":
			format = FormatPNG
		case "jpg", "jpeg":
			format = FormatJPG
		default:
			format = ImageFormat(w.Format)
		}
		dpi := w.DPI
		if dpi == 0 {
			dpi = 150
		}
		return PdfToImages{File: w.File, Format: format, DPI: dpi}, nil

	case KindImagesToPdf:
		var w imagesToPdfWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return ImagesToPdf{Files: w.Files}, nil

	case KindSplitToFiles:
		var w splitToFilesWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return SplitToFiles{File: w.File, Pages: w.Pages}, nil

	case KindOcr:
		var w ocrWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		lang := w.Language
		if lang == "" {
			lang = "eng"
		}
		deskew := true
		if w.Deskew != nil {
			deskew = *w.Deskew
		}
		return Ocr{File: w.File, Language: lang, Deskew: deskew}, nil

	case KindPdfToDocx:
		var w fileOnlyWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return PdfToDocx{File: w.File}, nil

	case KindDocxToPdf:
		var w fileOnlyWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return DocxToPdf{File: w.File}, nil

	case KindRemoveBlankPages:
		var w fileOnlyWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return RemoveBlankPages{File: w.File}, nil

	case KindRemoveDuplicatePages:
		var w fileOnlyWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return RemoveDuplicatePages{File: w.File}, nil

	case KindEnhanceScan:
		var w fileOnlyWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return EnhanceScan{File: w.File}, nil

	case KindFlatten:
		var w fileOnlyWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return fail(err)
		}
		return Flatten{File: w.File}, nil
	}

	return nil, &UnknownKindError{Kind: string(kind)}
}

// SnapDegrees normalizes an arbitrary signed rotation to the nearest of
// 90, 180 and 270.
func SnapDegrees(deg int) int {
	d := deg % 360
	if d < 0 {
		d += 360
	}
	if d == 0 {
		return 90
	}
	candidates := []int{90, 180, 270}
	best, bestDist := 90, 1<<31
	for _, c := range candidates {
		dist := d - c
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

// MarshalOperation renders an operation back to the envelope form, used by
// the audit log and the REST response payload.
func MarshalOperation(op Operation) (json.RawMessage, error) {
	payload, err := payloadFor(op)
	if err != nil {
		return nil, err
	}
	envelope := map[string]interface{}{
		"operation_type":  string(op.Kind()),
		string(op.Kind()): payload,
	}
	return json.Marshal(envelope)
}

// MarshalPlan renders an ordered plan as a JSON array of envelopes.
func MarshalPlan(p Plan) (json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(p.Steps))
	for _, step := range p.Steps {
		raw, err := MarshalOperation(step)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

func payloadFor(op Operation) (interface{}, error) {
	switch o := op.(type) {
	case Merge:
		return mergeWire{Files: o.Files}, nil
	case Split:
		return splitWire{File: o.File, Pages: o.Pages}, nil
	case Delete:
		return deleteWire{File: o.File, PagesToDelete: o.PagesToDelete}, nil
	case Compress:
		return compressWire{File: o.File, Preset: string(o.Preset)}, nil
	case CompressToTarget:
		return compressToTargetWire{File: o.File, TargetMB: o.TargetMB}, nil
	case Rotate:
		return rotateWire{File: o.File, Degrees: o.Degrees, Pages: o.Pages}, nil
	case Reorder:
		order, _ := json.Marshal(o.NewOrder)
		if o.Reverse {
			order, _ = json.Marshal("reverse")
		}
		return reorderWire{File: o.File, NewOrder: order}, nil
	case Watermark:
		opacity := o.Opacity
		return watermarkWire{File: o.File, Text: o.Text, Opacity: &opacity, Angle: o.Angle}, nil
	case PageNumbers:
		return pageNumbersWire{File: o.File, Position: string(o.Position), StartAt: o.StartAt}, nil
	case ExtractText:
		return extractTextWire{File: o.File, Pages: o.Pages}, nil
	case PdfToImages:
		return pdfToImagesWire{File: o.File, Format: string(o.Format), DPI: o.DPI}, nil
	case ImagesToPdf:
		return imagesToPdfWire{Files: o.Files}, nil
	case SplitToFiles:
		return splitToFilesWire{File: o.File, Pages: o.Pages}, nil
	case Ocr:
		deskew := o.Deskew
		return ocrWire{File: o.File, Language: o.Language, Deskew: &deskew}, nil
	case PdfToDocx:
		return fileOnlyWire{File: o.File}, nil
	case DocxToPdf:
		return fileOnlyWire{File: o.File}, nil
	case RemoveBlankPages:
		return fileOnlyWire{File: o.File}, nil
	case RemoveDuplicatePages:
		return fileOnlyWire{File: o.File}, nil
	case EnhanceScan:
		return fileOnlyWire{File: o.File}, nil
	case Flatten:
		return fileOnlyWire{File: o.File}, nil
	}
	return nil, &UnknownKindError{Kind: string(op.Kind())}
}
