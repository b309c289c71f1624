package cli

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/config"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
	"github.com/dmitrijs2005/casekeeper/internal/client/services"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	client.Client

	cases      map[string]*models.PatientCase
	categories map[results.Kind][]models.Category
	users      []models.User
	roles      []models.Role

	submitted []results.Payload
	published map[string]bool
	created   []models.CategoryInput
	deleted   []string
	assigned  []string
	revoked   []string
	uploads   int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		cases: map[string]*models.PatientCase{
			"1": {
				ID:   models.NumericID(1),
				Name: "Pulpitis",
				ClinicalExResults: []models.TestResult{
					{ID: models.NumericID(10), TestCategoryID: models.NumericID(2), TextResult: "tender"},
				},
			},
		},
		categories: map[results.Kind][]models.Category{
			results.Clinical:     {{ID: models.NumericID(2), Name: "Palpation"}},
			results.Paraclinical: {{ID: models.NumericID(7), Name: "X-ray"}},
		},
		users: []models.User{
			{ID: models.NumericID(5), Email: "ana@clinic.io", FullName: "Ana", Active: true,
				Roles: []models.Role{{ID: models.NumericID(1), RoleName: "ROLE_ADMIN"}}},
		},
		roles: []models.Role{
			{ID: models.NumericID(1), RoleName: "ROLE_ADMIN"},
			{ID: models.NumericID(2), RoleName: "ROLE_EDITOR"},
		},
		published: map[string]bool{},
	}
}

func (f *fakeAPI) GetPatientCase(_ context.Context, id models.ID) (*models.PatientCase, error) {
	pc, ok := f.cases[id.String()]
	if !ok {
		return nil, client.ErrNotFound
	}
	cp := *pc
	return &cp, nil
}

func (f *fakeAPI) ListPatientCases(context.Context, int, int) (models.Page[models.CaseSummary], error) {
	return models.Page[models.CaseSummary]{
		Items: []models.CaseSummary{{ID: models.NumericID(1), Name: "Pulpitis", Status: models.StatusPublished, RequestCounter: 3}},
		Total: 12, HasMore: true,
	}, nil
}

func (f *fakeAPI) SetPublished(_ context.Context, id models.ID, p bool) error {
	f.published[id.String()] = p
	return nil
}

func (f *fakeAPI) UpdateTestResults(_ context.Context, _ models.ID, p results.Payload) error {
	f.submitted = append(f.submitted, p)
	return nil
}

func (f *fakeAPI) ListCategories(_ context.Context, k results.Kind, _, _ int) (models.Page[models.Category], error) {
	return models.Page[models.Category]{Items: f.categories[k], Total: len(f.categories[k])}, nil
}

func (f *fakeAPI) CreateCategory(_ context.Context, _ results.Kind, in models.CategoryInput) (*models.Category, error) {
	f.created = append(f.created, in)
	return &models.Category{ID: models.NumericID(50), Name: in.Name}, nil
}

func (f *fakeAPI) DeleteCategory(_ context.Context, _ results.Kind, id models.ID) error {
	f.deleted = append(f.deleted, id.String())
	return nil
}

func (f *fakeAPI) UploadImages(_ context.Context, files []models.ImageFile) ([]models.UploadedImage, error) {
	out := make([]models.UploadedImage, len(files))
	for i, file := range files {
		f.uploads++
		out[i] = models.UploadedImage{ID: models.StringID("up-" + file.Name), URL: "http://cdn/" + file.Name}
	}
	return out, nil
}

func (f *fakeAPI) ListUsers(context.Context, int, int) (models.Page[models.User], error) {
	return models.Page[models.User]{Items: f.users, Total: len(f.users)}, nil
}

func (f *fakeAPI) ListRoles(context.Context) ([]models.Role, error) { return f.roles, nil }

func (f *fakeAPI) AssignRole(_ context.Context, u, r models.ID) error {
	f.assigned = append(f.assigned, u.String()+"/"+r.String())
	return nil
}

func (f *fakeAPI) RevokeRole(_ context.Context, u, r models.ID) error {
	f.revoked = append(f.revoked, u.String()+"/"+r.String())
	return nil
}

// newTestApp wires an App the way NewApp does, with fakeAPI in place of the
// HTTP client and a throwaway database.
func newTestApp(t *testing.T, api *fakeAPI, stdin string) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "ck.db")

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	require.NoError(t, err)
	repos := client.NewRepositories(db)
	log := logging.Nop()

	catalog := services.NewCatalogService(api)
	out := &bytes.Buffer{}
	app := &App{
		config:  cfg,
		log:     log,
		db:      db,
		auth:    services.NewAuthService(repos.Metadata, log),
		cases:   services.NewCaseService(api),
		catalog: catalog,
		iam:     services.NewIAMService(api),
		session: services.NewEditSession(api, catalog, api, repos.Drafts, repos.Metadata, log),
		in:      bufio.NewReader(strings.NewReader(stdin)),
		out:     out,
	}
	t.Cleanup(func() { _ = app.Close() })
	return app, out
}
