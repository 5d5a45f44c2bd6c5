package resolve

import (
	"ordermypdf-be/pkg/intent"
	"ordermypdf-be/pkg/resolve/extract"
)

// Clarification is a question with up to five literal options, each of
// which can be resubmitted as a complete instruction.
type Clarification struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// forcedChoiceQuestion is asked when two clarifications in a row have not
// produced a usable instruction; the third turn may only pick an option.
const forcedChoiceQuestion = "Please select one of the options above."

// genericClarification covers the case where no family was detected at
// all.
func genericClarification() Clarification {
	return Clarification{
		Question: "I'm not sure what you'd like to do with this file. What did you have in mind?",
		Options:  []string{"compress", "merge", "split", "convert", "ocr", "something else"},
	}
}

// clarificationFor builds the family-specific question for a match whose
// parameters came back partial or missing.
func clarificationFor(m extract.Match) Clarification {
	switch m.Family {
	case intent.KindSplit:
		return Clarification{
			Question: "Which pages would you like to keep?",
			Options:  []string{"keep pages 1", "keep pages 1-2", "keep pages 1-3", "all pages"},
		}
	case intent.KindDelete:
		return Clarification{
			Question: "Which pages should be deleted?",
			Options:  []string{"delete pages 1", "delete pages 2-3"},
		}
	case intent.KindRotate:
		return Clarification{
			Question: "How many degrees should the pages rotate?",
			Options:  []string{"90", "180", "270"},
		}
	case intent.KindCompress:
		return Clarification{
			Question: "How small should the file end up? Pick a target size or a strength.",
			Options:  []string{"compress to 2 mb", "compress to 5 mb", "compress as small as possible", "compress slightly"},
		}
	case intent.KindReorder:
		return Clarification{
			Question: "What order should the pages be in?",
			Options:  []string{"reverse the pages", "reorder 2,1,3"},
		}
	case intent.KindWatermark:
		return Clarification{
			Question: "What text should the watermark say?",
			Options:  []string{`watermark "CONFIDENTIAL"`, `watermark "DRAFT"`},
		}
	case intent.KindPdfToImages, intent.KindPdfToDocx, intent.KindDocxToPdf:
		return Clarification{
			Question: "Which format would you like to convert to?",
			Options:  []string{"convert to docx", "export as png images", "export as jpg images", "extract text"},
		}
	}
	return genericClarification()
}
