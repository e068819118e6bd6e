package linemap

import "strings"

// searchWindow is how many original lines ahead of the cursor a key is
// looked for. Bounds the scan to O(lines * searchWindow) and keeps a run of
// unmatched keys from dragging the cursor arbitrarily far forward.
const searchWindow = 20

// LineMap maps a 1-based line number in the resolved rendering to the
// 1-based line number in the original text it was derived from. The map is
// not total: lines with no discovered correspondence are absent, and
// consumers should fall back to the resolved line number itself. Mapped
// original line numbers are monotonically non-decreasing as the resolved
// line number increases.
type LineMap map[int]int

// Build reconstructs a best-effort line correspondence between the original
// text and the resolved rendering. A single forward pass over the resolved
// lines extracts each line's leading object key and searches forward from a
// cursor through the original lines, at most searchWindow lines ahead, for
// the same key. A match records the entry and moves the cursor just past the
// matched line, so correspondence only ever moves forward. Lines without a
// leading key, such as array elements and closing brackets, never map.
func Build(originalText, resolvedText string) LineMap {
	originalLines := strings.Split(originalText, "\n")
	resolvedLines := strings.Split(resolvedText, "\n")

	lineMap := make(LineMap)
	cursor := 0

	for i, resolvedLine := range resolvedLines {
		key, ok := leadingKey(resolvedLine)
		if !ok {
			continue
		}

		limit := cursor + searchWindow
		if limit > len(originalLines) {
			limit = len(originalLines)
		}
		for j := cursor; j < limit; j++ {
			originalKey, ok := leadingKey(originalLines[j])
			if ok && originalKey == key {
				lineMap[i+1] = j + 1
				cursor = j + 1
				break
			}
		}
	}

	return lineMap
}

// leadingKey extracts the object key from a line whose trimmed content
// starts with a quoted key immediately followed by a colon. The key is
// returned as written, escapes included, since both renderings escape the
// same way and the comparison is purely textual.
func leadingKey(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 || trimmed[0] != '"' {
		return "", false
	}
	for i := 1; i < len(trimmed); i++ {
		switch trimmed[i] {
		case '\\':
			i++ // skip the escaped character
		case '"':
			if i+1 < len(trimmed) && trimmed[i+1] == ':' {
				return trimmed[1:i], true
			}
			return "", false
		}
	}
	return "", false
}
