package memory

import (
	"context"
	"fmt"

	"travelguide/internal/adapters/observability"
	"travelguide/internal/domain"
)

// Store keeps the three collections for the lifetime of the process.
type Store struct {
	destinations collection[domain.Destination]
	users        collection[domain.User]
	comments     collection[domain.Comment]
}

var _ domain.Repository = (*Store)(nil)

func New() *Store { return &Store{} }

// Seed appends the given records as-is.
func (s *Store) Seed(data domain.SeedData) {
	s.destinations.load(data.Destinations)
	s.users.load(data.Users)
	s.comments.load(data.Comments)
}

// Len reports the size of each collection.
func (s *Store) Len() (destinations, users, comments int) {
	return s.destinations.len(), s.users.len(), s.comments.len()
}

func notFound(collection string, id int64) error {
	observability.ObserveStore("memory", collection, "miss")
	return fmt.Errorf("%s %d: %w", collection, id, domain.ErrNotFound)
}

// ---- destinations ----

func (s *Store) ListDestinations(_ context.Context, name string) ([]domain.Destination, error) {
	return s.destinations.list(func(d domain.Destination) bool { return d.MatchesName(name) }), nil
}

func (s *Store) GetDestination(_ context.Context, id int64) (domain.Destination, error) {
	d, ok := s.destinations.get(id)
	if !ok {
		return d, notFound("destination", id)
	}
	return d, nil
}

func (s *Store) CreateDestination(_ context.Context, d domain.Destination) (domain.Destination, error) {
	observability.ObserveStore("memory", "destination", "create")
	return s.destinations.create(func(id int64) domain.Destination {
		d.ID = id
		return d
	}), nil
}

func (s *Store) UpdateDestination(_ context.Context, id int64, p domain.DestinationPatch) (domain.Destination, error) {
	d, ok := s.destinations.update(id, func(d *domain.Destination) { p.Apply(d) })
	if !ok {
		return d, notFound("destination", id)
	}
	observability.ObserveStore("memory", "destination", "update")
	return d, nil
}

func (s *Store) DeleteDestination(_ context.Context, id int64) error {
	if !s.destinations.remove(id) {
		return notFound("destination", id)
	}
	observability.ObserveStore("memory", "destination", "delete")
	return nil
}

// ---- users ----

func (s *Store) ListUsers(_ context.Context) ([]domain.User, error) {
	return s.users.list(nil), nil
}

func (s *Store) GetUser(_ context.Context, id int64) (domain.User, error) {
	u, ok := s.users.get(id)
	if !ok {
		return u, notFound("user", id)
	}
	return u, nil
}

func (s *Store) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	observability.ObserveStore("memory", "user", "create")
	return s.users.create(func(id int64) domain.User {
		u.ID = id
		return u
	}), nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, p domain.UserPatch) (domain.User, error) {
	u, ok := s.users.update(id, func(u *domain.User) { p.Apply(u) })
	if !ok {
		return u, notFound("user", id)
	}
	observability.ObserveStore("memory", "user", "update")
	return u, nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	if !s.users.remove(id) {
		return notFound("user", id)
	}
	observability.ObserveStore("memory", "user", "delete")
	return nil
}

// ---- comments ----

func (s *Store) ListComments(_ context.Context, q domain.CommentsQuery) ([]domain.Comment, error) {
	var keep func(domain.Comment) bool
	if q.DestinationID != nil {
		want := *q.DestinationID
		keep = func(c domain.Comment) bool { return c.OnDestination(want) }
	}
	return s.comments.list(keep), nil
}

func (s *Store) GetComment(_ context.Context, id int64) (domain.Comment, error) {
	c, ok := s.comments.get(id)
	if !ok {
		return c, notFound("comment", id)
	}
	return c, nil
}

func (s *Store) CreateComment(_ context.Context, c domain.Comment) (domain.Comment, error) {
	observability.ObserveStore("memory", "comment", "create")
	return s.comments.create(func(id int64) domain.Comment {
		c.ID = id
		return c
	}), nil
}

func (s *Store) UpdateComment(_ context.Context, id int64, p domain.CommentPatch) (domain.Comment, error) {
	c, ok := s.comments.update(id, func(c *domain.Comment) { p.Apply(c) })
	if !ok {
		return c, notFound("comment", id)
	}
	observability.ObserveStore("memory", "comment", "update")
	return c, nil
}

func (s *Store) DeleteComment(_ context.Context, id int64) error {
	if !s.comments.remove(id) {
		return notFound("comment", id)
	}
	observability.ObserveStore("memory", "comment", "delete")
	return nil
}
