// Package metadata is a small key/value store in the local database. The
// client keeps its access token and per-case bookkeeping here.
package metadata

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

// Well-known keys.
const (
	KeyAccessToken = "access_token"
	KeyLastSubmit  = "last_submit:"
)

var ErrKeyNotFound = errors.New("metadata key not found")

type Repository interface {
	// Get returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// MarkSubmitted records when the results of a case were last sent.
	MarkSubmitted(ctx context.Context, caseID models.ID, at time.Time) error
	// LastSubmitted returns ErrKeyNotFound for a case never submitted from
	// this machine.
	LastSubmitted(ctx context.Context, caseID models.ID) (time.Time, error)
}

// SubmitKey is the metadata key holding the last submission time of a case.
func SubmitKey(caseID models.ID) string {
	return KeyLastSubmit + caseID.String()
}
