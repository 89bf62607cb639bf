// Package manuscript manages works under the stories tree: their scene
// ordering, discovery by ID or fuzzy title, and per-work metadata.
package manuscript

import (
	"fmt"
	"strings"
)

// Mode selects where an inserted scene lands in the include list.
type Mode string

const (
	ModeFirst    Mode = "first"
	ModeLast     Mode = "last"
	ModeBefore   Mode = "before"
	ModeAfter    Mode = "after"
	ModeIndex    Mode = "index"
	ModeMidpoint Mode = "midpoint"
)

var modes = map[Mode]struct{}{
	ModeFirst:    {},
	ModeLast:     {},
	ModeBefore:   {},
	ModeAfter:    {},
	ModeIndex:    {},
	ModeMidpoint: {},
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := modes[m]; !ok {
		return "", fmt.Errorf("invalid mode %q: must be one of first, last, before, after, index, midpoint", s)
	}
	return m, nil
}

// InsertOp describes one insertion. Ref holds the reference scene for
// before/after; Index holds the position for index mode.
type InsertOp struct {
	Mode  Mode
	Ref   string
	Index int
}

// Insert places scenePath into the include list. Any existing entry for the
// same path is removed first, and all positions are computed against the
// deduplicated list, so inserting a scene that is already present behaves
// exactly like inserting it fresh.
func Insert(includeList []string, scenePath string, op InsertOp) ([]string, error) {
	if strings.TrimSpace(scenePath) == "" {
		return nil, fmt.Errorf("scene path must be a non-empty string")
	}
	if _, ok := modes[op.Mode]; !ok {
		return nil, fmt.Errorf("invalid mode %q: must be one of first, last, before, after, index, midpoint", op.Mode)
	}

	deduped := make([]string, 0, len(includeList))
	for _, item := range includeList {
		if item != scenePath {
			deduped = append(deduped, item)
		}
	}

	var at int
	switch op.Mode {
	case ModeFirst:
		at = 0
	case ModeLast:
		at = len(deduped)
	case ModeBefore, ModeAfter:
		target := -1
		for i, item := range deduped {
			if strings.Contains(item, op.Ref) {
				target = i
				break
			}
		}
		if target == -1 {
			return nil, fmt.Errorf("reference scene %s not found in include list", op.Ref)
		}
		at = target
		if op.Mode == ModeAfter {
			at++
		}
	case ModeIndex:
		if op.Index < 0 {
			return nil, fmt.Errorf("index must be a non-negative integer")
		}
		if op.Index > len(deduped) {
			return nil, fmt.Errorf("index %d is out of bounds for list of length %d", op.Index, len(deduped))
		}
		at = op.Index
	case ModeMidpoint:
		at = len(deduped) / 2
	}

	out := make([]string, 0, len(deduped)+1)
	out = append(out, deduped[:at]...)
	out = append(out, scenePath)
	out = append(out, deduped[at:]...)
	return out, nil
}
