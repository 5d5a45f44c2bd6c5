package order

import (
	"fmt"
	"strconv"
	"strings"

	"ordermypdf-be/pkg/intent"
)

// Describe renders an operation as a canonical instruction string. The
// output is re-submittable: feeding it back through normalization and
// extraction reproduces the same operation. Clarification options are
// built from these strings.
func Describe(op intent.Operation) string {
	switch o := op.(type) {
	case intent.Merge:
		return "merge"
	case intent.Split:
		return "keep pages " + joinPages(o.Pages)
	case intent.Delete:
		return "delete pages " + joinPages(o.PagesToDelete)
	case intent.Compress:
		switch o.Preset {
		case intent.PresetScreen:
			return "compress as small as possible"
		case intent.PresetPrinter:
			return "compress slightly"
		case intent.PresetPrepress:
			return "compress prepress quality"
		}
		return "compress"
	case intent.CompressToTarget:
		return fmt.Sprintf("compress to %d mb", o.TargetMB)
	case intent.Rotate:
		return fmt.Sprintf("rotate %d degrees", o.Degrees)
	case intent.Reorder:
		if o.Reverse {
			return "reverse the pages"
		}
		return "reorder " + joinPages(o.NewOrder)
	case intent.Watermark:
		return fmt.Sprintf("watermark %q", o.Text)
	case intent.PageNumbers:
		return "add page numbers"
	case intent.ExtractText:
		return "extract text"
	case intent.PdfToImages:
		return fmt.Sprintf("export as %s images", o.Format)
	case intent.ImagesToPdf:
		return "combine images to pdf"
	case intent.SplitToFiles:
		return "split into separate files"
	case intent.Ocr:
		return "ocr"
	case intent.PdfToDocx:
		return "convert to docx"
	case intent.DocxToPdf:
		return "convert to pdf"
	case intent.RemoveBlankPages:
		return "remove blank pages"
	case intent.RemoveDuplicatePages:
		return "remove duplicate pages"
	case intent.EnhanceScan:
		return "enhance scan"
	case intent.Flatten:
		return "flatten"
	}
	return string(op.Kind())
}

// DescribeSequence renders an ordered step list as a single instruction.
func DescribeSequence(steps []intent.Operation) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = Describe(s)
	}
	return strings.Join(parts, " then ")
}

func joinPages(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
