package parse

import "regexp"

// entryPattern matches an id field followed by a categories list within
// the same fragment. The list body deliberately stops at the first "]"
// so a list left open by truncation still yields its leading names.
var entryPattern = regexp.MustCompile(`"id"\s*:\s*"([^"]+)"\s*,\s*"categories"\s*:\s*\[([^\]]*)`)

// quotedPattern extracts the quoted strings inside a categories list
// body, tolerating escaped characters.
var quotedPattern = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

// scanAssignments is the last-resort extraction pass over text that
// failed JSON parsing entirely. It pairs each id with the names found in
// its adjacent categories list. The first match for an identifier wins;
// later matches are ignored. Names are returned unfiltered; the caller
// applies catalog validation.
func scanAssignments(raw string) map[string][]string {
	found := make(map[string][]string)

	for _, m := range entryPattern.FindAllStringSubmatch(raw, -1) {
		id := m[1]
		if _, seen := found[id]; seen {
			continue
		}
		var names []string
		for _, q := range quotedPattern.FindAllStringSubmatch(m[2], -1) {
			names = append(names, q[1])
		}
		found[id] = names
	}

	return found
}
