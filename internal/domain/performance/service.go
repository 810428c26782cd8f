package performance

import "context"

type PerformanceService interface {
	CreateReview(ctx context.Context, req CreateReviewRequest) (Review, error)
	UpdateReview(ctx context.Context, req UpdateReviewRequest) (Review, error)
	// GetReview returns the review with its goals
	GetReview(ctx context.Context, id string) (Review, error)
	ListReviews(ctx context.Context, filter ReviewFilter) (ListReviewResponse, error)
	DeleteReview(ctx context.Context, id string) error

	Submit(ctx context.Context, id string) (Review, error)
	MarkReviewed(ctx context.Context, id string) (Review, error)
	Acknowledge(ctx context.Context, id string) (Review, error)
	Cancel(ctx context.Context, id string) (Review, error)
	Reset(ctx context.Context, id string) (Review, error)

	AddGoal(ctx context.Context, req CreateGoalRequest) (Goal, error)
	UpdateGoal(ctx context.Context, req UpdateGoalRequest) (Goal, error)
	CompleteGoal(ctx context.Context, id string) (Goal, error)
}
