package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/goccy/go-json"
)

// CaseService browses patient cases and toggles their publication.
type CaseService interface {
	List(ctx context.Context, page, limit int) (models.Page[models.CaseSummary], error)
	Get(ctx context.Context, id models.ID) (*models.PatientCase, error)
	SetPublished(ctx context.Context, id models.ID, published bool) error
	// Export writes the case as returned by the backend, indented.
	Export(ctx context.Context, id models.ID, w io.Writer) error
}

type caseService struct {
	client client.Client
}

func NewCaseService(c client.Client) CaseService {
	return &caseService{client: c}
}

func (s *caseService) List(ctx context.Context, page, limit int) (models.Page[models.CaseSummary], error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = 10
	}
	return s.client.ListPatientCases(ctx, page, limit)
}

func (s *caseService) Get(ctx context.Context, id models.ID) (*models.PatientCase, error) {
	return s.client.GetPatientCase(ctx, id)
}

func (s *caseService) SetPublished(ctx context.Context, id models.ID, published bool) error {
	return s.client.SetPublished(ctx, id, published)
}

func (s *caseService) Export(ctx context.Context, id models.ID, w io.Writer) error {
	pc, err := s.client.GetPatientCase(ctx, id)
	if err != nil {
		return err
	}

	raw := pc.Raw
	if len(raw) == 0 {
		if raw, err = json.Marshal(pc); err != nil {
			return fmt.Errorf("encode case: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format case: %w", err)
	}
	buf.WriteByte('\n')

	_, err = buf.WriteTo(w)
	return err
}
