package intent

import (
	"fmt"
	"sort"
)

// Kind identifies an operation family on the wire and in logs.
type Kind string

const (
	KindMerge                Kind = "merge"
	KindSplit                Kind = "split"
	KindDelete               Kind = "delete"
	KindCompress             Kind = "compress"
	KindCompressToTarget     Kind = "compress_to_target"
	KindRotate               Kind = "rotate"
	KindReorder              Kind = "reorder"
	KindWatermark            Kind = "watermark"
	KindPageNumbers          Kind = "page_numbers"
	KindExtractText          Kind = "extract_text"
	KindPdfToImages          Kind = "pdf_to_images"
	KindImagesToPdf          Kind = "images_to_pdf"
	KindSplitToFiles         Kind = "split_to_files"
	KindOcr                  Kind = "ocr"
	KindPdfToDocx            Kind = "pdf_to_docx"
	KindDocxToPdf            Kind = "docx_to_pdf"
	KindRemoveBlankPages     Kind = "remove_blank_pages"
	KindRemoveDuplicatePages Kind = "remove_duplicate_pages"
	KindEnhanceScan          Kind = "enhance_scan"
	KindFlatten              Kind = "flatten"
)

// Operation is the closed union of everything the executor can be asked to
// do. Each variant carries only its own parameters; the marker method keeps
// the set closed so switches over variants stay exhaustive.
type Operation interface {
	Kind() Kind
	Validate() error
	isOperation()
}

// Preset is a Ghostscript-style compression quality level, weakest first.
type Preset string

const (
	PresetScreen   Preset = "screen"
	PresetEbook    Preset = "ebook"
	PresetPrinter  Preset = "printer"
	PresetPrepress Preset = "prepress"
)

var presetOrder = []Preset{PresetPrepress, PresetPrinter, PresetEbook, PresetScreen}

// StrongerPreset returns the next more aggressive preset, or the same
// preset when already at the strongest.
func StrongerPreset(p Preset) Preset {
	for i, cur := range presetOrder {
		if cur == p && i < len(presetOrder)-1 {
			return presetOrder[i+1]
		}
	}
	return p
}

func validPreset(p Preset) bool {
	switch p {
	case PresetScreen, PresetEbook, PresetPrinter, PresetPrepress:
		return true
	}
	return false
}

// ImageFormat is the export format for PdfToImages.
type ImageFormat string

const (
	FormatPNG ImageFormat = "png"
	FormatJPG ImageFormat = "jpg"
)

// NumberPosition is where page numbers are stamped.
type NumberPosition string

const (
	PositionBottomCenter NumberPosition = "bottom_center"
	PositionBottomRight  NumberPosition = "bottom_right"
	PositionBottomLeft   NumberPosition = "bottom_left"
	PositionTopCenter    NumberPosition = "top_center"
)

type Merge struct {
	Files []string
}

type Split struct {
	File  string
	Pages []int
}

type Delete struct {
	File          string
	PagesToDelete []int
}

type Compress struct {
	File   string
	Preset Preset
}

type CompressToTarget struct {
	File     string
	TargetMB int
}

type Rotate struct {
	File    string
	Degrees int
	Pages   []int // nil means all pages
}

type Reorder struct {
	File     string
	NewOrder []int
	Reverse  bool
}

type Watermark struct {
	File    string
	Text    string
	Opacity float64
	Angle   int
}

type PageNumbers struct {
	File     string
	Position NumberPosition
	StartAt  int
}

type ExtractText struct {
	File  string
	Pages []int // nil means all pages
}

type PdfToImages struct {
	File   string
	Format ImageFormat
	DPI    int
}

type ImagesToPdf struct {
	Files []string
}

type SplitToFiles struct {
	File  string
	Pages []int // nil means every page into its own file
}

type Ocr struct {
	File     string
	Language string
	Deskew   bool
}

type PdfToDocx struct {
	File string
}

type DocxToPdf struct {
	File string
}

type RemoveBlankPages struct {
	File string
}

type RemoveDuplicatePages struct {
	File string
}

type EnhanceScan struct {
	File string
}

type Flatten struct {
	File string
}

func (Merge) Kind() Kind                { return KindMerge }
func (Split) Kind() Kind                { return KindSplit }
func (Delete) Kind() Kind               { return KindDelete }
func (Compress) Kind() Kind             { return KindCompress }
func (CompressToTarget) Kind() Kind     { return KindCompressToTarget }
func (Rotate) Kind() Kind               { return KindRotate }
func (Reorder) Kind() Kind              { return KindReorder }
func (Watermark) Kind() Kind            { return KindWatermark }
func (PageNumbers) Kind() Kind          { return KindPageNumbers }
func (ExtractText) Kind() Kind          { return KindExtractText }
func (PdfToImages) Kind() Kind          { return KindPdfToImages }
func (ImagesToPdf) Kind() Kind          { return KindImagesToPdf }
func (SplitToFiles) Kind() Kind         { return KindSplitToFiles }
func (Ocr) Kind() Kind                  { return KindOcr }
func (PdfToDocx) Kind() Kind            { return KindPdfToDocx }
func (DocxToPdf) Kind() Kind            { return KindDocxToPdf }
func (RemoveBlankPages) Kind() Kind     { return KindRemoveBlankPages }
func (RemoveDuplicatePages) Kind() Kind { return KindRemoveDuplicatePages }
func (EnhanceScan) Kind() Kind          { return KindEnhanceScan }
func (Flatten) Kind() Kind              { return KindFlatten }

func (Merge) isOperation()                {}
func (Split) isOperation()                {}
func (Delete) isOperation()               {}
func (Compress) isOperation()             {}
func (CompressToTarget) isOperation()     {}
func (Rotate) isOperation()               {}
func (Reorder) isOperation()              {}
func (Watermark) isOperation()            {}
func (PageNumbers) isOperation()          {}
func (ExtractText) isOperation()          {}
func (PdfToImages) isOperation()          {}
func (ImagesToPdf) isOperation()          {}
func (SplitToFiles) isOperation()         {}
func (Ocr) isOperation()                  {}
func (PdfToDocx) isOperation()            {}
func (DocxToPdf) isOperation()            {}
func (RemoveBlankPages) isOperation()     {}
func (RemoveDuplicatePages) isOperation() {}
func (EnhanceScan) isOperation()          {}
func (Flatten) isOperation()              {}

func validPages(pages []int) error {
	if !sort.IntsAreSorted(pages) {
		return fmt.Errorf("pages must be ascending")
	}
	seen := map[int]bool{}
	for _, p := range pages {
		if p < 1 {
			return fmt.Errorf("page numbers are 1-indexed, got %d", p)
		}
		if seen[p] {
			return fmt.Errorf("duplicate page %d", p)
		}
		seen[p] = true
	}
	return nil
}

func (o Merge) Validate() error {
	if len(o.Files) < 2 {
		return fmt.Errorf("merge needs at least 2 files, got %d", len(o.Files))
	}
	return nil
}

func (o Split) Validate() error {
	if o.File == "" {
		return fmt.Errorf("split: missing file")
	}
	if len(o.Pages) == 0 {
		return fmt.Errorf("split: no pages given")
	}
	return validPages(o.Pages)
}

func (o Delete) Validate() error {
	if o.File == "" {
		return fmt.Errorf("delete: missing file")
	}
	if len(o.PagesToDelete) == 0 {
		return fmt.Errorf("delete: no pages given")
	}
	return validPages(o.PagesToDelete)
}

func (o Compress) Validate() error {
	if o.File == "" {
		return fmt.Errorf("compress: missing file")
	}
	if !validPreset(o.Preset) {
		return fmt.Errorf("compress: unknown preset %q", o.Preset)
	}
	return nil
}

func (o CompressToTarget) Validate() error {
	if o.File == "" {
		return fmt.Errorf("compress_to_target: missing file")
	}
	if o.TargetMB < 1 {
		return fmt.Errorf("compress_to_target: target must be positive, got %d", o.TargetMB)
	}
	return nil
}

func (o Rotate) Validate() error {
	if o.File == "" {
		return fmt.Errorf("rotate: missing file")
	}
	switch o.Degrees {
	case 90, 180, 270:
	default:
		return fmt.Errorf("rotate: degrees must be 90, 180 or 270, got %d", o.Degrees)
	}
	if o.Pages != nil {
		return validPages(o.Pages)
	}
	return nil
}

func (o Reorder) Validate() error {
	if o.File == "" {
		return fmt.Errorf("reorder: missing file")
	}
	if o.Reverse {
		if len(o.NewOrder) > 0 {
			return fmt.Errorf("reorder: reverse and explicit order are exclusive")
		}
		return nil
	}
	if len(o.NewOrder) == 0 {
		return fmt.Errorf("reorder: no order given")
	}
	for _, p := range o.NewOrder {
		if p < 1 {
			return fmt.Errorf("reorder: page numbers are 1-indexed, got %d", p)
		}
	}
	return nil
}

func (o Watermark) Validate() error {
	if o.File == "" {
		return fmt.Errorf("watermark: missing file")
	}
	if o.Text == "" {
		return fmt.Errorf("watermark: missing text")
	}
	if o.Opacity < 0 || o.Opacity > 1 {
		return fmt.Errorf("watermark: opacity must be within [0,1], got %v", o.Opacity)
	}
	return nil
}

func (o PageNumbers) Validate() error {
	if o.File == "" {
		return fmt.Errorf("page_numbers: missing file")
	}
	switch o.Position {
	case PositionBottomCenter, PositionBottomRight, PositionBottomLeft, PositionTopCenter:
	default:
		return fmt.Errorf("page_numbers: unknown position %q", o.Position)
	}
	if o.StartAt < 1 {
		return fmt.Errorf("page_numbers: start_at must be positive, got %d", o.StartAt)
	}
	return nil
}

func (o ExtractText) Validate() error {
	if o.File == "" {
		return fmt.Errorf("extract_text: missing file")
	}
	if o.Pages != nil {
		return validPages(o.Pages)
	}
	return nil
}

func (o PdfToImages) Validate() error {
	if o.File == "" {
		return fmt.Errorf("pdf_to_images: missing file")
	}
	if o.Format != FormatPNG && o.Format != FormatJPG {
		return fmt.Errorf("pdf_to_images: unknown format %q", o.Format)
	}
	if o.DPI < 1 {
		return fmt.Errorf("pdf_to_images: dpi must be positive, got %d", o.DPI)
	}
	return nil
}

func (o ImagesToPdf) Validate() error {
	if len(o.Files) == 0 {
		return fmt.Errorf("images_to_pdf: no files given")
	}
	return nil
}

func (o SplitToFiles) Validate() error {
	if o.File == "" {
		return fmt.Errorf("split_to_files: missing file")
	}
	if o.Pages != nil {
		return validPages(o.Pages)
	}
	return nil
}

func (o Ocr) Validate() error {
	if o.File == "" {
		return fmt.Errorf("ocr: missing file")
	}
	if o.Language == "" {
		return fmt.Errorf("ocr: missing language")
	}
	return nil
}

func (o PdfToDocx) Validate() error {
	if o.File == "" {
		return fmt.Errorf("pdf_to_docx: missing file")
	}
	return nil
}

func (o DocxToPdf) Validate() error {
	if o.File == "" {
		return fmt.Errorf("docx_to_pdf: missing file")
	}
	return nil
}

func (o RemoveBlankPages) Validate() error {
	if o.File == "" {
		return fmt.Errorf("remove_blank_pages: missing file")
	}
	return nil
}

func (o RemoveDuplicatePages) Validate() error {
	if o.File == "" {
		return fmt.Errorf("remove_duplicate_pages: missing file")
	}
	return nil
}

func (o EnhanceScan) Validate() error {
	if o.File == "" {
		return fmt.Errorf("enhance_scan: missing file")
	}
	return nil
}

func (o Flatten) Validate() error {
	if o.File == "" {
		return fmt.Errorf("flatten: missing file")
	}
	return nil
}
