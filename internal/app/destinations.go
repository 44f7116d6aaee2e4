package app

import (
	"context"

	"travelguide/internal/domain"
)

func (s *CatalogService) ListDestinations(ctx context.Context, name string) ([]domain.Destination, error) {
	return s.repo.ListDestinations(ctx, name)
}

func (s *CatalogService) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	return readThrough(ctx, s, "destination", id, func() (domain.Destination, error) {
		return s.repo.GetDestination(ctx, id)
	})
}

func (s *CatalogService) CreateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	out, err := s.repo.CreateDestination(ctx, d)
	if err != nil {
		return out, err
	}
	// the new id may collide with a cached record
	s.evict(ctx, "destination", out.ID)
	return out, nil
}

func (s *CatalogService) UpdateDestination(ctx context.Context, id int64, p domain.DestinationPatch) (domain.Destination, error) {
	out, err := s.repo.UpdateDestination(ctx, id, p)
	if err != nil {
		return out, err
	}
	s.evict(ctx, "destination", id)
	return out, nil
}

func (s *CatalogService) DeleteDestination(ctx context.Context, id int64) error {
	if err := s.repo.DeleteDestination(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, "destination", id)
	return nil
}

// DestinationDetail returns a destination with the comments that reference it.
func (s *CatalogService) DestinationDetail(ctx context.Context, id int64) (domain.Destination, []domain.Comment, error) {
	d, err := s.GetDestination(ctx, id)
	if err != nil {
		return d, nil, err
	}
	cs, err := s.repo.ListComments(ctx, domain.CommentsQuery{DestinationID: &id})
	if err != nil {
		return d, nil, err
	}
	return d, cs, nil
}
