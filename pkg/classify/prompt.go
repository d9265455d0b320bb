package classify

import (
	"fmt"
	"strings"

	"github.com/skoenig/rubric/pkg/catalog"
)

// BatchPrompt is the default prompt builder. It lists the catalog with
// descriptions and asks for the JSON shape the batch parser expects.
func BatchPrompt(repos []Repo, cat *catalog.Catalog) string {
	var b strings.Builder

	b.WriteString("Classify each repository into categories from this list:\n\n")
	writeCatalog(&b, cat)

	b.WriteString("\nRepositories:\n")
	for _, r := range repos {
		fmt.Fprintf(&b, "- id: %s\n  description: %s\n", r.ID, r.Description)
	}

	b.WriteString("\nRespond with JSON only, no prose, in exactly this shape:\n")
	b.WriteString(`{"results": [{"id": "<repository id>", "categories": ["<category name>"]}]}` + "\n")
	b.WriteString("Use only category names from the list, verbatim.\n")

	return b.String()
}

// SinglePrompt builds the prompt for classifying one repository, asking
// for the flat shape the single-item parser expects.
func SinglePrompt(repo Repo, cat *catalog.Catalog) string {
	var b strings.Builder

	b.WriteString("Classify this repository into categories from this list:\n\n")
	writeCatalog(&b, cat)

	fmt.Fprintf(&b, "\nRepository:\n- id: %s\n  description: %s\n", repo.ID, repo.Description)

	b.WriteString("\nRespond with JSON only, no prose, in exactly this shape:\n")
	b.WriteString(`{"categories": ["<category name>"]}` + "\n")
	b.WriteString("Use only category names from the list, verbatim.\n")

	return b.String()
}

func writeCatalog(b *strings.Builder, cat *catalog.Catalog) {
	for _, c := range cat.Categories() {
		if c.Description != "" {
			fmt.Fprintf(b, "- %s: %s\n", c.Name, c.Description)
		} else {
			fmt.Fprintf(b, "- %s\n", c.Name)
		}
	}
}
