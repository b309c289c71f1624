package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/casekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
)

type fakeClient struct {
	client.Client

	mu sync.Mutex

	cases      map[string]*models.PatientCase
	getCaseErr error

	categories map[results.Kind][]models.Category
	catErr     error

	submitted []results.Payload
	submitErr error

	roles     []models.Role
	assigned  []string
	revoked   []string
	assignErr error

	createdCategory *models.CategoryInput
	published       map[string]bool
}

func (f *fakeClient) GetPatientCase(_ context.Context, id models.ID) (*models.PatientCase, error) {
	if f.getCaseErr != nil {
		return nil, f.getCaseErr
	}
	pc, ok := f.cases[id.String()]
	if !ok {
		return nil, client.ErrNotFound
	}
	cp := *pc
	return &cp, nil
}

func (f *fakeClient) ListPatientCases(_ context.Context, page, limit int) (models.Page[models.CaseSummary], error) {
	return models.Page[models.CaseSummary]{Total: page*100 + limit}, nil
}

func (f *fakeClient) SetPublished(_ context.Context, id models.ID, published bool) error {
	if f.published == nil {
		f.published = map[string]bool{}
	}
	f.published[id.String()] = published
	return nil
}

func (f *fakeClient) ListCategories(_ context.Context, kind results.Kind, _, _ int) (models.Page[models.Category], error) {
	if f.catErr != nil {
		return models.Page[models.Category]{}, f.catErr
	}
	items := f.categories[kind]
	return models.Page[models.Category]{Items: items, Total: len(items)}, nil
}

func (f *fakeClient) CreateCategory(_ context.Context, _ results.Kind, in models.CategoryInput) (*models.Category, error) {
	f.createdCategory = &in
	return &models.Category{ID: models.NumericID(99), Name: in.Name, Description: in.Description}, nil
}

func (f *fakeClient) UpdateTestResults(_ context.Context, _ models.ID, p results.Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, p)
	return nil
}

func (f *fakeClient) ListRoles(context.Context) ([]models.Role, error) { return f.roles, nil }

func (f *fakeClient) AssignRole(_ context.Context, u, r models.ID) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigned = append(f.assigned, u.String()+"/"+r.String())
	return nil
}

func (f *fakeClient) RevokeRole(_ context.Context, u, r models.ID) error {
	f.revoked = append(f.revoked, u.String()+"/"+r.String())
	return nil
}

// fakeUploader records batches. When gate is set it blocks until the gate
// is closed, signalling started first.
type fakeUploader struct {
	mu      sync.Mutex
	batches [][]models.ImageFile
	err     error
	started chan struct{}
	gate    chan struct{}
	seq     int
}

func (u *fakeUploader) UploadImages(ctx context.Context, files []models.ImageFile) ([]models.UploadedImage, error) {
	u.mu.Lock()
	u.batches = append(u.batches, files)
	u.mu.Unlock()

	if u.started != nil {
		u.started <- struct{}{}
	}
	if u.gate != nil {
		select {
		case <-u.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if u.err != nil {
		return nil, u.err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]models.UploadedImage, len(files))
	for i, f := range files {
		u.seq++
		out[i] = models.UploadedImage{ID: models.StringID(f.Name), URL: "http://cdn/" + f.Name}
	}
	return out, nil
}

type memDrafts struct {
	mu    sync.Mutex
	items map[string]drafts.Draft
	saves int
}

func newMemDrafts() *memDrafts { return &memDrafts{items: map[string]drafts.Draft{}} }

func (m *memDrafts) Save(_ context.Context, d drafts.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[d.CaseID.String()] = d
	m.saves++
	return nil
}

func (m *memDrafts) Get(_ context.Context, id models.ID) (*drafts.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.items[id.String()]
	if !ok {
		return nil, drafts.ErrDraftNotFound
	}
	return &d, nil
}

func (m *memDrafts) Delete(_ context.Context, id models.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id.String())
	return nil
}

func (m *memDrafts) List(context.Context) ([]drafts.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]drafts.Summary, 0, len(m.items))
	for k, d := range m.items {
		out = append(out, drafts.Summary{CaseID: k, CaseName: d.CaseName, SavedAt: d.SavedAt})
	}
	return out, nil
}

type memMeta struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemMeta() *memMeta { return &memMeta{items: map[string][]byte{}} }

func (m *memMeta) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return nil, metadata.ErrKeyNotFound
	}
	return v, nil
}

func (m *memMeta) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *memMeta) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *memMeta) List(context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.items))
	for k, v := range m.items {
		out[k] = v
	}
	return out, nil
}

func (m *memMeta) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = map[string][]byte{}
	return nil
}

func (m *memMeta) MarkSubmitted(ctx context.Context, id models.ID, at time.Time) error {
	return m.Set(ctx, metadata.SubmitKey(id), []byte(at.UTC().Format(time.RFC3339)))
}

func (m *memMeta) LastSubmitted(ctx context.Context, id models.ID) (time.Time, error) {
	raw, err := m.Get(ctx, metadata.SubmitKey(id))
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, string(raw))
}
