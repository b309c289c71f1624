package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

const iamPath = "/api/admin/iam"

func userRolePath(userID, roleID models.ID) string {
	return iamPath + "/users/" + url.PathEscape(userID.String()) + "/roles/" + url.PathEscape(roleID.String())
}

func (c *HTTPClient) ListUsers(ctx context.Context, page, size int) (models.Page[models.User], error) {
	var out models.Page[models.User]
	err := c.doJSON(ctx, http.MethodGet, iamPath+"/users", pageQuery("page", page, "size", size), nil, &out)
	return out, err
}

func (c *HTTPClient) ListRoles(ctx context.Context) ([]models.Role, error) {
	var out models.Page[models.Role]
	if err := c.doJSON(ctx, http.MethodGet, iamPath+"/roles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *HTTPClient) AssignRole(ctx context.Context, userID, roleID models.ID) error {
	return c.doJSON(ctx, http.MethodPost, userRolePath(userID, roleID), nil, nil, nil)
}

func (c *HTTPClient) RevokeRole(ctx context.Context, userID, roleID models.ID) error {
	return c.doJSON(ctx, http.MethodDelete, userRolePath(userID, roleID), nil, nil, nil)
}
