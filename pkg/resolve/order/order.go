// Package order arranges multi-family requests into a deterministic
// execution sequence. A fixed priority table gives the default order;
// a declarative pair-override table wins where it disagrees. Requests
// naming two different terminal outputs cannot be ordered at all and come
// back as a refusal carrying one complete option per terminal.
package order

import (
	"sort"

	"ordermypdf-be/pkg/intent"
)

// priority is the default run order; lower runs earlier. Kinds not listed
// fall back to defaultPriority.
var priority = map[intent.Kind]int{
	intent.KindMerge:                0,
	intent.KindImagesToPdf:          0,
	intent.KindEnhanceScan:          1,
	intent.KindOcr:                  2,
	intent.KindRemoveBlankPages:     5,
	intent.KindRemoveDuplicatePages: 6,
	intent.KindDelete:               10,
	intent.KindSplit:                11,
	intent.KindReorder:              12,
	intent.KindRotate:               13,
	intent.KindWatermark:            20,
	intent.KindPageNumbers:          21,
	intent.KindCompress:             30,
	intent.KindCompressToTarget:     30,
	intent.KindFlatten:              40,
	intent.KindPdfToDocx:            90,
	intent.KindDocxToPdf:            90,
	intent.KindPdfToImages:          91,
	intent.KindExtractText:          92,
	intent.KindSplitToFiles:         93,
}

const defaultPriority = 50

func priorityOf(k intent.Kind) int {
	if p, ok := priority[k]; ok {
		return p
	}
	return defaultPriority
}

// pairKey is an unordered family pair.
type pairKey struct{ a, b intent.Kind }

func keyFor(a, b intent.Kind) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// pairOverrides maps an unordered pair onto the kind that must run first.
// These beat the priority table for exactly the pairs listed; anything
// else keeps the table order.
var pairOverrides = map[pairKey]intent.Kind{
	keyFor(intent.KindRotate, intent.KindCompress):         intent.KindRotate,
	keyFor(intent.KindRotate, intent.KindCompressToTarget): intent.KindRotate,
	keyFor(intent.KindOcr, intent.KindCompress):            intent.KindOcr,
	keyFor(intent.KindOcr, intent.KindCompressToTarget):    intent.KindOcr,
	keyFor(intent.KindOcr, intent.KindSplit):               intent.KindOcr,
	keyFor(intent.KindOcr, intent.KindDelete):              intent.KindOcr,
	keyFor(intent.KindOcr, intent.KindRotate):              intent.KindOcr,
	keyFor(intent.KindOcr, intent.KindWatermark):           intent.KindOcr,
	keyFor(intent.KindOcr, intent.KindPageNumbers):         intent.KindOcr,
	keyFor(intent.KindOcr, intent.KindExtractText):         intent.KindOcr,
	keyFor(intent.KindOcr, intent.KindPdfToDocx):           intent.KindOcr,
	keyFor(intent.KindCompress, intent.KindPdfToDocx):      intent.KindCompress,
	keyFor(intent.KindCompress, intent.KindPdfToImages):    intent.KindCompress,
	keyFor(intent.KindCompress, intent.KindExtractText):    intent.KindCompress,
	keyFor(intent.KindDocxToPdf, intent.KindCompress):      intent.KindDocxToPdf,
	keyFor(intent.KindDocxToPdf, intent.KindCompressToTarget): intent.KindDocxToPdf,
	keyFor(intent.KindDocxToPdf, intent.KindOcr):              intent.KindDocxToPdf,
}

// Refusal is returned instead of an ordering when one request asks for two
// mutually exclusive terminal outputs. Each option is a complete,
// independently re-submittable instruction.
type Refusal struct {
	Options []string
}

// Order sorts a candidate step list into execution order. Ties are kept
// stable so identical input always yields identical output. When preserve
// is set the caller saw explicit sequencing words ("then", "first") and the
// given order is honored verbatim; only the terminal-conflict check still
// applies.
func Order(steps []intent.Operation, preserve bool) ([]intent.Operation, *Refusal) {
	if len(steps) <= 1 {
		return steps, nil
	}

	if refusal := terminalConflict(steps); refusal != nil {
		return nil, refusal
	}

	ordered := make([]intent.Operation, len(steps))
	copy(ordered, steps)

	if preserve {
		return ordered, nil
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return priorityOf(ordered[i].Kind()) < priorityOf(ordered[j].Kind())
	})

	// Pair overrides win over the table. Bounded adjacent-swap passes keep
	// the result total and deterministic even when overrides and table
	// disagree.
	for pass := 0; pass < len(ordered); pass++ {
		swapped := false
		for i := 0; i < len(ordered)-1; i++ {
			a, b := ordered[i].Kind(), ordered[i+1].Kind()
			first, ok := pairOverrides[keyFor(a, b)]
			if ok && first == b {
				ordered[i], ordered[i+1] = ordered[i+1], ordered[i]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}

	return ordered, nil
}

// terminalConflict detects two distinct non-PDF terminal outputs in one
// request and builds the two complete alternatives.
func terminalConflict(steps []intent.Operation) *Refusal {
	var terminals []intent.Operation
	var rest []intent.Operation
	seen := map[intent.FileType]bool{}
	for _, s := range steps {
		if intent.Terminal(s) {
			if !seen[intent.Output(s)] {
				seen[intent.Output(s)] = true
				terminals = append(terminals, s)
			}
			continue
		}
		rest = append(rest, s)
	}
	if len(terminals) < 2 {
		return nil
	}

	options := make([]string, 0, 2)
	for _, t := range terminals[:2] {
		alt := make([]intent.Operation, 0, len(rest)+1)
		alt = append(alt, rest...)
		alt = append(alt, t)
		ordered, _ := Order(alt, false)
		options = append(options, DescribeSequence(ordered))
	}
	return &Refusal{Options: options}
}
