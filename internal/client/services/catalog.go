package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
	"github.com/go-playground/validator/v10"
)

// lookupLimit is the page size used to fetch a whole category list for
// selection.
const lookupLimit = 1000

var validate = validator.New(validator.WithRequiredStructEnabled())

// CatalogService manages clinical and paraclinical category lists.
type CatalogService interface {
	// Lookup returns the whole list of a kind for selection.
	Lookup(ctx context.Context, kind results.Kind) ([]models.Category, error)
	List(ctx context.Context, kind results.Kind, page, limit int) (models.Page[models.Category], error)
	Create(ctx context.Context, kind results.Kind, in models.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, kind results.Kind, id models.ID, in models.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, kind results.Kind, id models.ID) error
}

type catalogService struct {
	client client.Client
}

func NewCatalogService(c client.Client) CatalogService {
	return &catalogService{client: c}
}

func (s *catalogService) Lookup(ctx context.Context, kind results.Kind) ([]models.Category, error) {
	page, err := s.client.ListCategories(ctx, kind, 0, lookupLimit)
	if err != nil {
		return nil, fmt.Errorf("load %s categories: %w", kind, err)
	}
	return page.Items, nil
}

func (s *catalogService) List(ctx context.Context, kind results.Kind, page, limit int) (models.Page[models.Category], error) {
	return s.client.ListCategories(ctx, kind, page, limit)
}

func normalizeCategory(in models.CategoryInput) (models.CategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validate.Struct(in); err != nil {
		return in, fmt.Errorf("invalid category: %w", err)
	}
	return in, nil
}

func (s *catalogService) Create(ctx context.Context, kind results.Kind, in models.CategoryInput) (*models.Category, error) {
	in, err := normalizeCategory(in)
	if err != nil {
		return nil, err
	}
	return s.client.CreateCategory(ctx, kind, in)
}

func (s *catalogService) Update(ctx context.Context, kind results.Kind, id models.ID, in models.CategoryInput) (*models.Category, error) {
	in, err := normalizeCategory(in)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateCategory(ctx, kind, id, in)
}

func (s *catalogService) Delete(ctx context.Context, kind results.Kind, id models.ID) error {
	return s.client.DeleteCategory(ctx, kind, id)
}

// findCategory resolves user input against a lookup list by id, then by
// case-insensitive name.
func findCategory(list []models.Category, value string) (models.Category, bool) {
	for _, c := range list {
		if c.ID.String() == value {
			return c, true
		}
	}
	for _, c := range list {
		if strings.EqualFold(c.Name, value) {
			return c, true
		}
	}
	return models.Category{}, false
}
