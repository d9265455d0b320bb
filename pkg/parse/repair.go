package parse

import "strings"

// repairTruncated attempts to turn a JSON document that was cut off
// mid-stream into a parseable one. The heuristic:
//
//  1. If an open brace follows the last complete object, the document
//     was cut inside a partial entry; drop everything after that last
//     complete "}" so the partial entry is discarded rather than
//     corrupting the repair.
//  2. Append enough "]" and "}" characters to balance the remaining
//     bracket and brace deficits.
//
// Returns false when the text contains no object to recover or the
// counts indicate something other than truncation (more closers than
// openers).
func repairTruncated(text string) (string, bool) {
	if !strings.Contains(text, "{") {
		return "", false
	}

	if last := strings.LastIndex(text, "}"); last >= 0 {
		if strings.Contains(text[last+1:], "{") {
			text = text[:last+1]
		}
	}

	braces := strings.Count(text, "{") - strings.Count(text, "}")
	brackets := strings.Count(text, "[") - strings.Count(text, "]")
	if braces < 0 || brackets < 0 {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(text) + brackets + braces)
	b.WriteString(text)
	// Arrays nest inside the results object, so close them first.
	for i := 0; i < brackets; i++ {
		b.WriteByte(']')
	}
	for i := 0; i < braces; i++ {
		b.WriteByte('}')
	}
	return b.String(), true
}
