package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookup(t *testing.T) {
	api := newFakeClient()
	s := NewCatalogService(api)

	list, err := s.Lookup(context.Background(), results.Paraclinical)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	api.catErr = client.ErrUnauthorized
	_, err = s.Lookup(context.Background(), results.Clinical)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Contains(t, err.Error(), "clinical")
}

func TestCatalogCreate_Validates(t *testing.T) {
	api := newFakeClient()
	s := NewCatalogService(api)
	ctx := context.Background()

	c, err := s.Create(ctx, results.Clinical, models.CategoryInput{Name: "  Palpation ", Description: " soft tissue "})
	require.NoError(t, err)
	assert.Equal(t, "Palpation", c.Name)
	require.NotNil(t, api.createdCategory)
	assert.Equal(t, "soft tissue", api.createdCategory.Description)

	api.createdCategory = nil
	_, err = s.Create(ctx, results.Clinical, models.CategoryInput{Name: "   "})
	require.Error(t, err)
	assert.Nil(t, api.createdCategory)

	_, err = s.Create(ctx, results.Clinical, models.CategoryInput{Name: strings.Repeat("x", 256)})
	require.Error(t, err)
}

func TestFindCategory(t *testing.T) {
	list := []models.Category{
		{ID: models.NumericID(2), Name: "Palpation"},
		{ID: models.StringID("7"), Name: "2"},
	}

	c, ok := findCategory(list, "2")
	require.True(t, ok)
	assert.Equal(t, "Palpation", c.Name, "id match wins over name match")

	c, ok = findCategory(list, "PALPATION")
	require.True(t, ok)
	assert.Equal(t, "2", c.ID.String())

	_, ok = findCategory(list, "missing")
	assert.False(t, ok)
}
