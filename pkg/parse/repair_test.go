package parse

import (
	"encoding/json"
	"testing"
)

func TestRepairTruncated_BalancesOpenBrackets(t *testing.T) {
	in := `{"results": [{"id": "a", "categories": ["Lang: Python"]}`

	got, ok := repairTruncated(in)
	if !ok {
		t.Fatal("repairTruncated() = false, want true")
	}
	if want := in + `]}`; got != want {
		t.Errorf("repaired = %q, want %q", got, want)
	}
	if !json.Valid([]byte(got)) {
		t.Errorf("repaired text is not valid JSON: %q", got)
	}
}

func TestRepairTruncated_DropsPartialTrailingObject(t *testing.T) {
	in := `{"results": [{"id": "a", "categories": ["AI: LLM"]}, {"id": "b", "cat`

	got, ok := repairTruncated(in)
	if !ok {
		t.Fatal("repairTruncated() = false, want true")
	}
	if !json.Valid([]byte(got)) {
		t.Fatalf("repaired text is not valid JSON: %q", got)
	}

	var resp batchResponse
	if err := json.Unmarshal([]byte(got), &resp); err != nil {
		t.Fatalf("unmarshal repaired: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != "a" {
		t.Errorf("results = %+v, want only the complete entry for %q", resp.Results, "a")
	}
}

func TestRepairTruncated_NoObjectIsUnrecoverable(t *testing.T) {
	if _, ok := repairTruncated("plain prose, nothing structured"); ok {
		t.Error("repairTruncated() = true for text without an object, want false")
	}
}

func TestRepairTruncated_ExcessClosersIsUnrecoverable(t *testing.T) {
	if _, ok := repairTruncated(`{"a": 1}}]`); ok {
		t.Error("repairTruncated() = true for over-closed text, want false")
	}
}

func TestRepairTruncated_BalancedTextPassesThrough(t *testing.T) {
	in := `{"results": []}`

	got, ok := repairTruncated(in)
	if !ok {
		t.Fatal("repairTruncated() = false, want true")
	}
	if got != in {
		t.Errorf("repaired = %q, want unchanged %q", got, in)
	}
}
