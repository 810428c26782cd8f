package performance

import "context"

type ReviewRepository interface {
	Create(ctx context.Context, review Review) (Review, error)
	GetByID(ctx context.Context, id string) (Review, error)
	Update(ctx context.Context, review Review) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ReviewFilter) ([]Review, int64, error)
}

type GoalRepository interface {
	Create(ctx context.Context, goal Goal) (Goal, error)
	GetByID(ctx context.Context, id string) (Goal, error)
	Update(ctx context.Context, goal Goal) error
	ListByReview(ctx context.Context, reviewID string) ([]Goal, error)
}
