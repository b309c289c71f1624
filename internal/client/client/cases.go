package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
	"github.com/goccy/go-json"
)

const patientCasesPath = "/api/v1/admin/patient-cases"

func casePath(id models.ID, suffix string) string {
	return patientCasesPath + "/" + url.PathEscape(id.String()) + suffix
}

func pageQuery(pageKey string, page int, sizeKey string, size int) url.Values {
	q := url.Values{}
	q.Set(pageKey, strconv.Itoa(page))
	q.Set(sizeKey, strconv.Itoa(size))
	return q
}

// GetPatientCase fetches the case detail, including both result lists.
func (c *HTTPClient) GetPatientCase(ctx context.Context, id models.ID) (*models.PatientCase, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, casePath(id, ""), nil, nil, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: case %s", ErrNotFound, id)
	}

	pc := &models.PatientCase{}
	if err := json.Unmarshal(raw, pc); err != nil {
		return nil, fmt.Errorf("decode patient case: %w", err)
	}
	pc.Raw = raw
	return pc, nil
}

func (c *HTTPClient) ListPatientCases(ctx context.Context, page, limit int) (models.Page[models.CaseSummary], error) {
	var out models.Page[models.CaseSummary]
	err := c.doJSON(ctx, http.MethodGet, patientCasesPath, pageQuery("page", page, "limit", limit), nil, &out)
	return out, err
}

func (c *HTTPClient) SetPublished(ctx context.Context, id models.ID, published bool) error {
	q := url.Values{}
	q.Set("isPublished", strconv.FormatBool(published))
	return c.doJSON(ctx, http.MethodPut, casePath(id, "/status"), q, nil, nil)
}

// UpdateTestResults submits the reconciled operations for one case.
func (c *HTTPClient) UpdateTestResults(ctx context.Context, caseID models.ID, payload results.Payload) error {
	return c.doJSON(ctx, http.MethodPut, casePath(caseID, "/test-results"), nil, payload, nil)
}
