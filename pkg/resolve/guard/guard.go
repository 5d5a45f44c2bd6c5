// Package guard applies deterministic rules to a candidate plan before it
// reaches the executor: redundant steps are skipped with a friendly note,
// impossible steps are blocked with a fixed message, and transient
// execution failures get exactly one scripted retry.
package guard

import (
	"fmt"

	"ordermypdf-be/pkg/intent"
)

// Action is what the engine decided for a step or a whole plan.
type Action string

const (
	ActionProceed Action = "proceed"
	ActionSkip    Action = "skip"
	ActionBlock   Action = "block"
	ActionRetry   Action = "retry"
)

// Retry actions handed back to the executor.
const (
	RetryStrongerPreset = "stronger_preset"
	RetryOcrFallback    = "ocr_fallback"
)

// Verdict is one guard decision. Message is user-facing and informational
// for skips, final for blocks.
type Verdict struct {
	Action      Action
	Message     string
	RetryAction string
}

// Outcome is the result of running a candidate plan through the engine.
type Outcome struct {
	Steps []intent.Operation
	Skips []Verdict
	Block *Verdict
}

// Blocked reports whether nothing of the plan survived.
func (o Outcome) Blocked() bool { return o.Block != nil }

// Fixed block messages, matched by tests and shown verbatim.
const (
	MsgAlreadyImage   = "Already an image"
	MsgAlreadyPDF     = "Already a PDF"
	MsgAlreadyDocx    = "Already a Word document"
	MsgImagesNoPages  = "Images don't have pages to split - they're single pictures!"
	MsgDocxNoOcr      = "DOCX is already text-based - no OCR needed!"
	MsgMergeNeedsTwo  = "Upload at least 2 PDFs to merge"
	MsgNothingToDo    = "Nothing left to do for this file"
	MsgUnknownFile    = "That file type isn't supported"
	MsgAcceptedResult = "Kept the closest result after one retry"
)

// compatibility lists the input types each operation family accepts.
var compatibility = map[intent.Kind][]intent.FileType{
	intent.KindMerge:                {intent.TypePDF},
	intent.KindSplit:                {intent.TypePDF},
	intent.KindDelete:               {intent.TypePDF},
	intent.KindCompress:             {intent.TypePDF},
	intent.KindCompressToTarget:     {intent.TypePDF},
	intent.KindRotate:               {intent.TypePDF, intent.TypeImage},
	intent.KindReorder:              {intent.TypePDF},
	intent.KindWatermark:            {intent.TypePDF, intent.TypeImage},
	intent.KindPageNumbers:          {intent.TypePDF},
	intent.KindExtractText:          {intent.TypePDF, intent.TypeDocx},
	intent.KindPdfToImages:          {intent.TypePDF},
	intent.KindImagesToPdf:          {intent.TypeImage},
	intent.KindSplitToFiles:         {intent.TypePDF},
	intent.KindOcr:                  {intent.TypePDF, intent.TypeImage},
	intent.KindPdfToDocx:            {intent.TypePDF},
	intent.KindDocxToPdf:            {intent.TypeDocx},
	intent.KindRemoveBlankPages:     {intent.TypePDF},
	intent.KindRemoveDuplicatePages: {intent.TypePDF},
	intent.KindEnhanceScan:          {intent.TypePDF, intent.TypeImage},
	intent.KindFlatten:              {intent.TypePDF},
}

func compatible(kind intent.Kind, t intent.FileType) bool {
	for _, ok := range compatibility[kind] {
		if ok == t {
			return true
		}
	}
	return false
}

// redundancy reports whether a step would convert a file into the type it
// already has, and the note to show instead of running it.
func redundancy(op intent.Operation, input intent.FileType) (string, bool) {
	switch op.Kind() {
	case intent.KindPdfToImages:
		if input == intent.TypeImage {
			return MsgAlreadyImage, true
		}
	case intent.KindDocxToPdf, intent.KindImagesToPdf:
		if input == intent.TypePDF {
			return MsgAlreadyPDF, true
		}
	case intent.KindPdfToDocx:
		if input == intent.TypeDocx {
			return MsgAlreadyDocx, true
		}
	}
	return "", false
}

// blockMessage is the fixed text for an operation that cannot run on the
// given input type at all.
func blockMessage(kind intent.Kind, input intent.FileType) string {
	if input == intent.TypeUnknown {
		return MsgUnknownFile
	}
	switch kind {
	case intent.KindSplit, intent.KindDelete, intent.KindReorder, intent.KindSplitToFiles:
		if input == intent.TypeImage {
			return MsgImagesNoPages
		}
	case intent.KindOcr:
		if input == intent.TypeDocx {
			return MsgDocxNoOcr
		}
	case intent.KindMerge:
		return MsgMergeNeedsTwo
	}
	return fmt.Sprintf("Can't run %s on a %s file", kind, input)
}

// Apply runs redundancy and compatibility checks over an ordered candidate
// plan. The input type of each step is the output type of the one before
// it; the first step sees the uploaded file's own type. A doomed single
// essential step blocks; an incidental incompatible step in a longer plan
// is dropped silently, per the conflict rules.
func Apply(steps []intent.Operation, files []string) Outcome {
	out := Outcome{}
	if len(steps) == 0 {
		out.Block = &Verdict{Action: ActionBlock, Message: MsgNothingToDo}
		return out
	}

	input := intent.TypeUnknown
	if len(files) > 0 {
		input = intent.TypeOf(files[0])
	}

	for _, step := range steps {
		if step.Kind() == intent.KindMerge && len(files) < 2 {
			out.Block = &Verdict{Action: ActionBlock, Message: MsgMergeNeedsTwo}
			return out
		}

		if msg, redundant := redundancy(step, input); redundant {
			out.Skips = append(out.Skips, Verdict{Action: ActionSkip, Message: msg})
			continue
		}

		if !compatible(step.Kind(), input) {
			if len(steps) == 1 {
				out.Block = &Verdict{Action: ActionBlock, Message: blockMessage(step.Kind(), input)}
				return out
			}
			// Incidental step in a longer pipeline: drop it quietly.
			continue
		}

		out.Steps = append(out.Steps, step)
		input = intent.Output(step)
	}

	if len(out.Steps) == 0 {
		if len(out.Skips) > 0 {
			// Everything was redundant; the skip notices are the answer.
			return out
		}
		out.Block = &Verdict{Action: ActionBlock, Message: MsgNothingToDo}
	}
	return out
}

// CheckSizeMiss is the retry policy for a compress-to-target run that came
// back over target. The first miss retries once with the next stronger
// preset; after that the closest result is accepted.
func CheckSizeMiss(actualMB, targetMB float64, retryCount int) Verdict {
	if targetMB <= 0 || actualMB <= targetMB {
		return Verdict{Action: ActionProceed}
	}
	if retryCount == 0 {
		return Verdict{Action: ActionRetry, RetryAction: RetryStrongerPreset}
	}
	return Verdict{Action: ActionProceed, Message: MsgAcceptedResult}
}

// CheckEncodingFailure is the retry policy for text-bearing steps that
// fail on broken XML or unicode: one OCR fallback, then give up.
func CheckEncodingFailure(retryCount int) Verdict {
	if retryCount == 0 {
		return Verdict{Action: ActionRetry, RetryAction: RetryOcrFallback}
	}
	return Verdict{Action: ActionBlock, Message: "Couldn't read the text in this file"}
}
