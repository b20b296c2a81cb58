package service

import (
	"context"

	"github.com/lodgepole/console/internal/console/domain"
	"github.com/lodgepole/console/internal/console/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListContributors returns all contributor users, newest first.
func (s *UserService) ListContributors(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsersByRole(ctx, domain.RoleContributor)
}
