package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/common"
)

// RoleChange reports which role grants were applied.
type RoleChange struct {
	Added   []models.Role
	Removed []models.Role
}

// IAMService lists accounts and edits their role grants.
type IAMService interface {
	ListUsers(ctx context.Context, page, size int) (models.Page[models.User], error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	// SetRoles makes the user's roles equal to wanted. Grants are added
	// first, then revoked. It stops at the first failure and reports what
	// was applied so far.
	SetRoles(ctx context.Context, user models.User, wanted []models.ID) (RoleChange, error)
}

type iamService struct {
	client client.Client
}

func NewIAMService(c client.Client) IAMService {
	return &iamService{client: c}
}

func (s *iamService) ListUsers(ctx context.Context, page, size int) (models.Page[models.User], error) {
	return s.client.ListUsers(ctx, page, size)
}

func (s *iamService) ListRoles(ctx context.Context) ([]models.Role, error) {
	return s.client.ListRoles(ctx)
}

func (s *iamService) SetRoles(ctx context.Context, user models.User, wanted []models.ID) (RoleChange, error) {
	var change RoleChange

	if user.HasRole(common.SuperAdminRole) {
		return change, ErrSuperAdminProtected
	}

	all, err := s.client.ListRoles(ctx)
	if err != nil {
		return change, fmt.Errorf("list roles: %w", err)
	}
	byID := make(map[string]models.Role, len(all))
	for _, r := range all {
		byID[r.ID.String()] = r
	}

	want := make(map[string]models.Role, len(wanted))
	for _, id := range wanted {
		r, ok := byID[id.String()]
		if !ok {
			return change, fmt.Errorf("%w: %s", ErrUnknownRole, id)
		}
		if r.RoleName == common.SuperAdminRole {
			return change, ErrSuperAdminProtected
		}
		want[id.String()] = r
	}

	have := make(map[string]struct{}, len(user.Roles))
	for _, r := range user.Roles {
		have[r.ID.String()] = struct{}{}
	}

	for _, id := range wanted {
		if _, ok := have[id.String()]; ok {
			continue
		}
		r := want[id.String()]
		if err := s.client.AssignRole(ctx, user.ID, r.ID); err != nil {
			return change, fmt.Errorf("assign %s: %w", r.RoleName, err)
		}
		have[id.String()] = struct{}{}
		change.Added = append(change.Added, r)
	}

	for _, r := range user.Roles {
		if _, ok := want[r.ID.String()]; ok {
			continue
		}
		if err := s.client.RevokeRole(ctx, user.ID, r.ID); err != nil {
			return change, fmt.Errorf("revoke %s: %w", r.RoleName, err)
		}
		change.Removed = append(change.Removed, r)
	}

	return change, nil
}
