// Package parse recovers category assignments from raw model output.
// Model responses are expected to be JSON but are often wrapped, noisy,
// truncated mid-stream, or outright malformed. The parser never fails
// the caller: every requested identifier receives a catalog-valid
// assignment, degrading to the catalog's default category when nothing
// usable can be extracted.
package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skoenig/rubric/pkg/catalog"
)

// Stage identifies which recovery path produced a batch result.
type Stage string

const (
	// StageDirect means the response parsed as-is.
	StageDirect Stage = "direct"

	// StageRepaired means the response was truncated and parsed after
	// brace/bracket balancing.
	StageRepaired Stage = "repaired"

	// StageFallback means JSON parsing failed entirely and assignments
	// were scavenged by pattern scanning.
	StageFallback Stage = "fallback"
)

// Report describes how a batch response was recovered.
type Report struct {
	// Stage is the recovery path that produced the result.
	Stage Stage

	// Parsed is the number of usable entries extracted from the response.
	Parsed int

	// Defaulted is the number of requested identifiers that received the
	// default-category substitute.
	Defaulted int
}

// batchResponse is the expected top-level response shape.
type batchResponse struct {
	Results []resultEntry `json:"results"`
}

// resultEntry keeps categories raw so one malformed entry is skipped
// instead of failing the whole document.
type resultEntry struct {
	ID         string          `json:"id"`
	Categories json.RawMessage `json:"categories"`
}

// BatchAssignments converts a raw model response into a complete mapping
// from requested identifier to a bounded list of catalog-valid category
// names. It never fails: identifiers missing from the response, or whose
// recovered names are all invalid, map to the catalog's default category.
// The returned map also carries any well-formed entries for identifiers
// outside the requested set.
func BatchAssignments(raw string, ids []string, cat *catalog.Catalog, maxPerRepo int) (map[string][]string, Report) {
	text := strings.TrimSpace(raw)
	out := make(map[string][]string, len(ids))
	report := Report{Stage: StageDirect}

	entries, stage, ok := parseResults(text)
	report.Stage = stage

	if ok {
		for _, e := range entries {
			if e.ID == "" {
				continue
			}
			names, listOK := stringList(e.Categories)
			if !listOK {
				continue
			}
			out[e.ID] = sanitize(names, cat, maxPerRepo, &report)
			report.Parsed++
		}
	} else {
		// The document is beyond repair: scavenge id/categories pairs
		// from the raw text instead.
		report.Stage = StageFallback
		for id, names := range scanAssignments(raw) {
			out[id] = sanitize(names, cat, maxPerRepo, &report)
			report.Parsed++
		}
	}

	// Guarantee coverage: every requested identifier gets an entry.
	for _, id := range ids {
		if _, covered := out[id]; !covered {
			out[id] = []string{cat.Default()}
			report.Defaulted++
		}
	}

	return out, report
}

// SingleAssignment parses a raw response for a single item, expecting a
// top-level categories list. No truncation repair is attempted. On any
// parse problem it returns the default category and a non-empty reason;
// on success the reason is empty.
func SingleAssignment(raw string, cat *catalog.Catalog, maxPerRepo int) ([]string, string) {
	var resp struct {
		Categories json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &resp); err != nil {
		return []string{cat.Default()}, fmt.Sprintf("response is not valid JSON: %v", err)
	}
	if len(resp.Categories) == 0 {
		return []string{cat.Default()}, "response has no categories field"
	}

	names, ok := stringList(resp.Categories)
	if !ok {
		return []string{cat.Default()}, "categories field is not a list"
	}

	return sanitize(names, cat, maxPerRepo, nil), ""
}

// parseResults extracts result entries from the response text, repairing
// suspected truncation first when the text does not end in a closing
// brace. The returned stage records which path succeeded.
func parseResults(text string) ([]resultEntry, Stage, bool) {
	stage := StageDirect
	candidate := text

	if !strings.HasSuffix(candidate, "}") {
		repaired, ok := repairTruncated(candidate)
		if !ok {
			return nil, StageFallback, false
		}
		candidate = repaired
		stage = StageRepaired
	}

	var resp batchResponse
	if err := json.Unmarshal([]byte(candidate), &resp); err != nil {
		return nil, StageFallback, false
	}
	return resp.Results, stage, true
}

// stringList unmarshals a raw JSON value as a list, keeping its string
// elements. Non-string elements are dropped; non-list values fail.
func stringList(raw json.RawMessage) ([]string, bool) {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			names = append(names, s)
		}
	}
	return names, true
}

// sanitize filters names to catalog-valid entries and truncates to
// maxPerRepo. An empty survivor list is substituted with the default
// category, counted against the report when one is supplied.
func sanitize(names []string, cat *catalog.Catalog, maxPerRepo int, report *Report) []string {
	valid := make([]string, 0, len(names))
	for _, name := range names {
		if cat.Valid(name) {
			valid = append(valid, name)
		}
	}
	if maxPerRepo > 0 && len(valid) > maxPerRepo {
		valid = valid[:maxPerRepo]
	}
	if len(valid) == 0 {
		if report != nil {
			report.Defaulted++
		}
		return []string{cat.Default()}
	}
	return valid
}
