package client

import (
	"context"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
)

// Client is the backend API used by the services.
type Client interface {
	GetPatientCase(ctx context.Context, id models.ID) (*models.PatientCase, error)
	ListPatientCases(ctx context.Context, page, limit int) (models.Page[models.CaseSummary], error)
	SetPublished(ctx context.Context, id models.ID, published bool) error
	UpdateTestResults(ctx context.Context, caseID models.ID, payload results.Payload) error

	ListCategories(ctx context.Context, kind results.Kind, page, limit int) (models.Page[models.Category], error)
	CreateCategory(ctx context.Context, kind results.Kind, in models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, kind results.Kind, id models.ID, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, kind results.Kind, id models.ID) error

	UploadImages(ctx context.Context, files []models.ImageFile) ([]models.UploadedImage, error)

	ListUsers(ctx context.Context, page, size int) (models.Page[models.User], error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	AssignRole(ctx context.Context, userID, roleID models.ID) error
	RevokeRole(ctx context.Context, userID, roleID models.ID) error
}

// TokenSource supplies the bearer token. Invalidate is called when the
// backend rejects it with 401.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}
