package domain

import "context"

// Create assigns id = current collection length + 1. After a delete this can
// hand out an id that is still in use; lookups then resolve to the first
// record in storage order.
type DestinationRepository interface {
	ListDestinations(ctx context.Context, name string) ([]Destination, error)
	GetDestination(ctx context.Context, id int64) (Destination, error)
	CreateDestination(ctx context.Context, d Destination) (Destination, error)
	UpdateDestination(ctx context.Context, id int64, p DestinationPatch) (Destination, error)
	DeleteDestination(ctx context.Context, id int64) error
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	CreateUser(ctx context.Context, u User) (User, error)
	UpdateUser(ctx context.Context, id int64, p UserPatch) (User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type CommentRepository interface {
	ListComments(ctx context.Context, q CommentsQuery) ([]Comment, error)
	GetComment(ctx context.Context, id int64) (Comment, error)
	CreateComment(ctx context.Context, c Comment) (Comment, error)
	UpdateComment(ctx context.Context, id int64, p CommentPatch) (Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// Repository is the full catalogue; both the memory and MySQL stores implement it.
type Repository interface {
	DestinationRepository
	UserRepository
	CommentRepository
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type CommentsQuery struct {
	DestinationID *int64
}
