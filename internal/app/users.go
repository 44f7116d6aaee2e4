package app

import (
	"context"

	"travelguide/internal/domain"
)

func (s *CatalogService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *CatalogService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return readThrough(ctx, s, "user", id, func() (domain.User, error) {
		return s.repo.GetUser(ctx, id)
	})
}

func (s *CatalogService) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	out, err := s.repo.CreateUser(ctx, u)
	if err != nil {
		return out, err
	}
	s.evict(ctx, "user", out.ID)
	return out, nil
}

func (s *CatalogService) UpdateUser(ctx context.Context, id int64, p domain.UserPatch) (domain.User, error) {
	out, err := s.repo.UpdateUser(ctx, id, p)
	if err != nil {
		return out, err
	}
	s.evict(ctx, "user", id)
	return out, nil
}

func (s *CatalogService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, "user", id)
	return nil
}
