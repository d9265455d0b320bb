package classify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skoenig/rubric/pkg/catalog"
)

// Repo is a single classification item: a repository identifier plus the
// descriptive text the model classifies it by.
type Repo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Run is the persisted record of one classification pass.
type Run struct {
	ID          uuid.UUID           `json:"id"`
	Model       string              `json:"model"`
	StartedAt   time.Time           `json:"started_at"`
	CompletedAt time.Time           `json:"completed_at"`
	Assignments map[string][]string `json:"assignments"`
	Stats       Stats               `json:"stats"`
}

// Stats summarizes the outcome of a run.
type Stats struct {
	// Items is the number of repositories classified.
	Items int `json:"items"`

	// Defaulted is how many items received the fallback category because
	// no valid assignment could be recovered.
	Defaulted int `json:"defaulted"`

	// Batches is the number of chunks the run was processed in.
	Batches int `json:"batches"`
}

// PromptFunc assembles the completion prompt for a set of repositories
// against a catalog. Implementations must instruct the model to answer
// in the JSON shape the response parser expects.
type PromptFunc func(repos []Repo, cat *catalog.Catalog) string

// RunStore persists completed runs. Implementations must be safe for
// concurrent use.
type RunStore interface {
	SaveRun(ctx context.Context, run *Run) error
}
