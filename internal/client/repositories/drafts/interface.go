// Package drafts persists unfinished test-result editing sessions so they
// survive a restart of the shell. A draft is keyed by patient case and holds
// the full reconciliation state, tombstones included.
package drafts

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
)

var ErrDraftNotFound = errors.New("draft not found")

// Draft is a saved session.
type Draft struct {
	CaseID   models.ID     `json:"caseId"`
	CaseName string        `json:"caseName,omitempty"`
	State    results.State `json:"state"`
	SavedAt  time.Time     `json:"savedAt"`
}

// Summary describes a draft without its state.
type Summary struct {
	CaseID   string
	CaseName string
	SavedAt  time.Time
}

type Repository interface {
	// Save replaces any draft stored for the same case.
	Save(ctx context.Context, d Draft) error
	// Get returns ErrDraftNotFound when no draft exists.
	Get(ctx context.Context, caseID models.ID) (*Draft, error)
	Delete(ctx context.Context, caseID models.ID) error
	List(ctx context.Context) ([]Summary, error)
}
