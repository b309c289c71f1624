package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
)

func categoryPath(kind results.Kind) (string, error) {
	switch kind {
	case results.Clinical:
		return "/api/v1/admin/clinical-ex-cats", nil
	case results.Paraclinical:
		return "/api/v1/admin/paraclinical-test-cats", nil
	}
	return "", results.ErrUnknownKind
}

func (c *HTTPClient) ListCategories(ctx context.Context, kind results.Kind, page, limit int) (models.Page[models.Category], error) {
	var out models.Page[models.Category]
	path, err := categoryPath(kind)
	if err != nil {
		return out, err
	}
	err = c.doJSON(ctx, http.MethodGet, path, pageQuery("page", page, "limit", limit), nil, &out)
	return out, err
}

func (c *HTTPClient) CreateCategory(ctx context.Context, kind results.Kind, in models.CategoryInput) (*models.Category, error) {
	path, err := categoryPath(kind)
	if err != nil {
		return nil, err
	}
	out := &models.Category{}
	if err := c.doJSON(ctx, http.MethodPost, path, nil, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, kind results.Kind, id models.ID, in models.CategoryInput) (*models.Category, error) {
	path, err := categoryPath(kind)
	if err != nil {
		return nil, err
	}
	out := &models.Category{}
	if err := c.doJSON(ctx, http.MethodPut, path+"/"+url.PathEscape(id.String()), nil, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, kind results.Kind, id models.ID) error {
	path, err := categoryPath(kind)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, path+"/"+url.PathEscape(id.String()), nil, nil, nil)
}
