package order

import (
	"reflect"
	"testing"

	"ordermypdf-be/pkg/intent"
)

func kindsOf(steps []intent.Operation) []intent.Kind {
	kinds := make([]intent.Kind, len(steps))
	for i, s := range steps {
		kinds[i] = s.Kind()
	}
	return kinds
}

func TestOrderByPriority(t *testing.T) {
	tests := []struct {
		name  string
		steps []intent.Operation
		want  []intent.Kind
	}{
		{
			name: "merge always first",
			steps: []intent.Operation{
				intent.CompressToTarget{File: "a.pdf", TargetMB: 2},
				intent.Merge{Files: []string{"a.pdf", "b.pdf"}},
			},
			want: []intent.Kind{intent.KindMerge, intent.KindCompressToTarget},
		},
		{
			name: "compress after content edits",
			steps: []intent.Operation{
				intent.Compress{File: "a.pdf", Preset: intent.PresetEbook},
				intent.Delete{File: "a.pdf", PagesToDelete: []int{1}},
				intent.Watermark{File: "a.pdf", Text: "DRAFT", Opacity: 0.12},
			},
			want: []intent.Kind{intent.KindDelete, intent.KindWatermark, intent.KindCompress},
		},
		{
			name: "terminal export last",
			steps: []intent.Operation{
				intent.PdfToImages{File: "a.pdf", Format: intent.FormatPNG, DPI: 150},
				intent.Rotate{File: "a.pdf", Degrees: 90},
			},
			want: []intent.Kind{intent.KindRotate, intent.KindPdfToImages},
		},
		{
			name: "ocr before text extraction",
			steps: []intent.Operation{
				intent.ExtractText{File: "a.pdf"},
				intent.Ocr{File: "a.pdf", Language: "eng"},
			},
			want: []intent.Kind{intent.KindOcr, intent.KindExtractText},
		},
		{
			name: "rotate before compress by override",
			steps: []intent.Operation{
				intent.Compress{File: "a.pdf", Preset: intent.PresetEbook},
				intent.Rotate{File: "a.pdf", Degrees: 90},
			},
			want: []intent.Kind{intent.KindRotate, intent.KindCompress},
		},
		{
			name: "three families stay deterministic",
			steps: []intent.Operation{
				intent.Compress{File: "a.pdf", Preset: intent.PresetEbook},
				intent.Ocr{File: "a.pdf", Language: "eng"},
				intent.Rotate{File: "a.pdf", Degrees: 180},
			},
			want: []intent.Kind{intent.KindOcr, intent.KindRotate, intent.KindCompress},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ordered, refusal := Order(tt.steps, false)
			if refusal != nil {
				t.Fatalf("unexpected refusal %v", refusal)
			}
			if got := kindsOf(ordered); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderPreservesExplicitSequence(t *testing.T) {
	// The override table would put rotate before compress; an explicit
	// user sequence wins over both the table and the overrides.
	steps := []intent.Operation{
		intent.CompressToTarget{File: "a.pdf", TargetMB: 2},
		intent.Rotate{File: "a.pdf", Degrees: 90},
	}
	ordered, refusal := Order(steps, true)
	if refusal != nil {
		t.Fatalf("unexpected refusal: %v", refusal.Options)
	}
	want := []intent.Kind{intent.KindCompressToTarget, intent.KindRotate}
	if !reflect.DeepEqual(kindsOf(ordered), want) {
		t.Errorf("order = %v, want %v", kindsOf(ordered), want)
	}
}

func TestOrderPreserveStillRefusesDualTerminals(t *testing.T) {
	steps := []intent.Operation{
		intent.PdfToImages{File: "a.pdf", Format: intent.FormatPNG, DPI: 150},
		intent.ExtractText{File: "a.pdf"},
	}
	if _, refusal := Order(steps, true); refusal == nil {
		t.Fatal("dual terminals must refuse even with an explicit sequence")
	}
}

func TestOrderIsDeterministic(t *testing.T) {
	steps := []intent.Operation{
		intent.Watermark{File: "a.pdf", Text: "X", Opacity: 0.12},
		intent.Rotate{File: "a.pdf", Degrees: 90},
		intent.Compress{File: "a.pdf", Preset: intent.PresetEbook},
	}
	first, _ := Order(steps, false)
	for i := 0; i < 10; i++ {
		again, _ := Order(steps, false)
		if !reflect.DeepEqual(kindsOf(first), kindsOf(again)) {
			t.Fatalf("run %d differs: %v vs %v", i, kindsOf(first), kindsOf(again))
		}
	}
}

func TestOrderRefusesDualTerminals(t *testing.T) {
	steps := []intent.Operation{
		intent.PdfToImages{File: "a.pdf", Format: intent.FormatPNG, DPI: 150},
		intent.ExtractText{File: "a.pdf"},
		intent.Compress{File: "a.pdf", Preset: intent.PresetEbook},
	}
	ordered, refusal := Order(steps, false)
	if refusal == nil {
		t.Fatalf("want refusal, got order %v", kindsOf(ordered))
	}
	if len(refusal.Options) != 2 {
		t.Fatalf("got %d options, want 2", len(refusal.Options))
	}
	want := []string{
		"compress then export as png images",
		"compress then extract text",
	}
	if !reflect.DeepEqual(refusal.Options, want) {
		t.Errorf("options = %v, want %v", refusal.Options, want)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		op   intent.Operation
		want string
	}{
		{intent.Merge{Files: []string{"a.pdf", "b.pdf"}}, "merge"},
		{intent.Split{File: "a.pdf", Pages: []int{1, 2}}, "keep pages 1,2"},
		{intent.Delete{File: "a.pdf", PagesToDelete: []int{3}}, "delete pages 3"},
		{intent.Compress{File: "a.pdf", Preset: intent.PresetEbook}, "compress"},
		{intent.Compress{File: "a.pdf", Preset: intent.PresetScreen}, "compress as small as possible"},
		{intent.Compress{File: "a.pdf", Preset: intent.PresetPrinter}, "compress slightly"},
		{intent.CompressToTarget{File: "a.pdf", TargetMB: 2}, "compress to 2 mb"},
		{intent.Rotate{File: "a.pdf", Degrees: 90}, "rotate 90 degrees"},
		{intent.Reorder{File: "a.pdf", Reverse: true}, "reverse the pages"},
		{intent.Reorder{File: "a.pdf", NewOrder: []int{2, 1}}, "reorder 2,1"},
		{intent.Watermark{File: "a.pdf", Text: "DRAFT", Opacity: 0.12}, `watermark "DRAFT"`},
		{intent.PageNumbers{File: "a.pdf", Position: intent.PositionBottomCenter, StartAt: 1}, "add page numbers"},
		{intent.ExtractText{File: "a.pdf"}, "extract text"},
		{intent.PdfToImages{File: "a.pdf", Format: intent.FormatJPG, DPI: 150}, "export as jpg images"},
		{intent.SplitToFiles{File: "a.pdf"}, "split into separate files"},
		{intent.Ocr{File: "a.pdf", Language: "eng"}, "ocr"},
		{intent.PdfToDocx{File: "a.pdf"}, "convert to docx"},
		{intent.DocxToPdf{File: "a.docx"}, "convert to pdf"},
	}
	for _, tt := range tests {
		if got := Describe(tt.op); got != tt.want {
			t.Errorf("Describe(%s) = %q, want %q", tt.op.Kind(), got, tt.want)
		}
	}
}

func TestDescribeSequenceRoundTrips(t *testing.T) {
	steps := []intent.Operation{
		intent.Merge{Files: []string{"a.pdf", "b.pdf"}},
		intent.CompressToTarget{File: intent.PreviousOutput, TargetMB: 2},
	}
	got := DescribeSequence(steps)
	want := "merge then compress to 2 mb"
	if got != want {
		t.Errorf("DescribeSequence() = %q, want %q", got, want)
	}
}
