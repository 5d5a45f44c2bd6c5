package intent

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileType is the coarse document type a step consumes or produces.
type FileType string

const (
	TypePDF     FileType = "pdf"
	TypeDocx    FileType = "docx"
	TypeImage   FileType = "image"
	TypeText    FileType = "text"
	TypeArchive FileType = "zip"
	TypeUnknown FileType = "unknown"
)

// TypeOf classifies a file name by extension. Unknown extensions return
// TypeUnknown rather than an error; guards decide what to do with those.
func TypeOf(name string) FileType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "pdf":
		return TypePDF
	case "doc", "docx":
		return TypeDocx
	case "jpg", "jpeg", "png":
		return TypeImage
	case "txt":
		return TypeText
	case "zip":
		return TypeArchive
	}
	return TypeUnknown
}

// Output reports the file type a step produces. Split-to-files yields a zip
// of single-page PDFs, extract-text yields plain text, the converters yield
// their named formats, and everything else stays a PDF.
func Output(op Operation) FileType {
	switch op.(type) {
	case ExtractText:
		return TypeText
	case PdfToImages:
		return TypeImage
	case SplitToFiles:
		return TypeArchive
	case PdfToDocx:
		return TypeDocx
	default:
		return TypePDF
	}
}

// Terminal reports whether a step's output cannot feed another PDF step.
func Terminal(op Operation) bool {
	return Output(op) != TypePDF
}

// PreviousOutput is the file reference a chained step carries when its
// input is whatever the step before it produced.
const PreviousOutput = "@previous"

// Plan is an ordered, non-empty sequence of operations. Each step consumes
// the previous step's output.
type Plan struct {
	Steps []Operation
}

// Validate checks every step's parameters and the two structural
// invariants: merge and images-to-pdf only open a plan, and no step may
// follow a terminal (non-PDF output) step.
func (p Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan has no steps")
	}
	for i, step := range p.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		switch step.Kind() {
		case KindMerge, KindImagesToPdf:
			if i != 0 {
				return fmt.Errorf("step %d: %s must be the first step", i+1, step.Kind())
			}
		}
		if Terminal(step) && i != len(p.Steps)-1 {
			return fmt.Errorf("step %d: nothing can follow %s output", i+1, Output(step))
		}
	}
	return nil
}

// Kinds returns the ordered operation kinds, mostly for logs and events.
func (p Plan) Kinds() []Kind {
	kinds := make([]Kind, len(p.Steps))
	for i, s := range p.Steps {
		kinds[i] = s.Kind()
	}
	return kinds
}
