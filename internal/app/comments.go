package app

import (
	"context"

	"travelguide/internal/domain"
)

func (s *CatalogService) ListComments(ctx context.Context, q domain.CommentsQuery) ([]domain.Comment, error) {
	return s.repo.ListComments(ctx, q)
}

func (s *CatalogService) GetComment(ctx context.Context, id int64) (domain.Comment, error) {
	return readThrough(ctx, s, "comment", id, func() (domain.Comment, error) {
		return s.repo.GetComment(ctx, id)
	})
}

func (s *CatalogService) CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	out, err := s.repo.CreateComment(ctx, c)
	if err != nil {
		return out, err
	}
	s.evict(ctx, "comment", out.ID)
	return out, nil
}

func (s *CatalogService) UpdateComment(ctx context.Context, id int64, p domain.CommentPatch) (domain.Comment, error) {
	out, err := s.repo.UpdateComment(ctx, id, p)
	if err != nil {
		return out, err
	}
	s.evict(ctx, "comment", id)
	return out, nil
}

func (s *CatalogService) DeleteComment(ctx context.Context, id int64) error {
	if err := s.repo.DeleteComment(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, "comment", id)
	return nil
}
