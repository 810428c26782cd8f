package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/performance"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type reviewRepositoryImpl struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) performance.ReviewRepository {
	return &reviewRepositoryImpl{db: db}
}

const reviewSelect = `
	SELECT r.id, r.name, r.employee_id, r.reviewer_id, r.review_period, r.review_date, r.date_from, r.date_to,
		   r.quality_of_work, r.productivity, r.communication, r.teamwork, r.initiative, r.punctuality,
		   r.overall_rating, r.rating_category,
		   r.achievements, r.areas_of_improvement, r.reviewer_comments, r.employee_comments, r.training_needs,
		   r.next_review_date, r.state, r.created_at, r.updated_at,
		   e.name AS employee_name
	FROM performance_reviews r
	LEFT JOIN employees e ON e.id = r.employee_id
`

func scanReview(row pgx.Row) (performance.Review, error) {
	var r performance.Review
	err := row.Scan(
		&r.ID, &r.Name, &r.EmployeeID, &r.ReviewerID, &r.ReviewPeriod, &r.ReviewDate, &r.DateFrom, &r.DateTo,
		&r.QualityOfWork, &r.Productivity, &r.Communication, &r.Teamwork, &r.Initiative, &r.Punctuality,
		&r.OverallRating, &r.RatingCategory,
		&r.Achievements, &r.AreasOfImprovement, &r.ReviewerComments, &r.EmployeeComments, &r.TrainingNeeds,
		&r.NextReviewDate, &r.State, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return performance.Review{}, performance.ErrReviewNotFound
		}
		return performance.Review{}, err
	}
	return r, nil
}

func collectReviews(rows pgx.Rows) ([]performance.Review, error) {
	defer rows.Close()

	reviews := []performance.Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// Create implements performance.ReviewRepository.
func (repo *reviewRepositoryImpl) Create(ctx context.Context, review performance.Review) (performance.Review, error) {
	q := GetQuerier(ctx, repo.db)

	id, err := uuid.NewV7()
	if err != nil {
		return performance.Review{}, fmt.Errorf("generate review id: %w", err)
	}

	query := `
		INSERT INTO performance_reviews (
			id, name, employee_id, reviewer_id, review_period, review_date, date_from, date_to,
			quality_of_work, productivity, communication, teamwork, initiative, punctuality,
			overall_rating, rating_category,
			achievements, areas_of_improvement, reviewer_comments, employee_comments, training_needs,
			next_review_date, state
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14,
			$15, $16,
			$17, $18, $19, $20, $21,
			$22, $23
		)
	`
	_, err = q.Exec(ctx, query,
		id.String(), review.Name, review.EmployeeID, review.ReviewerID, review.ReviewPeriod,
		review.ReviewDate, review.DateFrom, review.DateTo,
		review.QualityOfWork, review.Productivity, review.Communication, review.Teamwork, review.Initiative, review.Punctuality,
		review.OverallRating, review.RatingCategory,
		review.Achievements, review.AreasOfImprovement, review.ReviewerComments, review.EmployeeComments, review.TrainingNeeds,
		review.NextReviewDate, review.State,
	)
	if err != nil {
		return performance.Review{}, fmt.Errorf("failed to insert review: %w", err)
	}

	return repo.GetByID(ctx, id.String())
}

// GetByID implements performance.ReviewRepository.
func (repo *reviewRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Review, error) {
	q := GetQuerier(ctx, repo.db)
	return scanReview(q.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, id))
}

// Update implements performance.ReviewRepository.
func (repo *reviewRepositoryImpl) Update(ctx context.Context, review performance.Review) error {
	q := GetQuerier(ctx, repo.db)

	query := `
		UPDATE performance_reviews SET
			name = $2, review_period = $3, review_date = $4, date_from = $5, date_to = $6,
			quality_of_work = $7, productivity = $8, communication = $9, teamwork = $10,
			initiative = $11, punctuality = $12,
			overall_rating = $13, rating_category = $14,
			achievements = $15, areas_of_improvement = $16, reviewer_comments = $17,
			employee_comments = $18, training_needs = $19,
			next_review_date = $20, state = $21,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		review.ID, review.Name, review.ReviewPeriod, review.ReviewDate, review.DateFrom, review.DateTo,
		review.QualityOfWork, review.Productivity, review.Communication, review.Teamwork,
		review.Initiative, review.Punctuality,
		review.OverallRating, review.RatingCategory,
		review.Achievements, review.AreasOfImprovement, review.ReviewerComments,
		review.EmployeeComments, review.TrainingNeeds,
		review.NextReviewDate, review.State,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return performance.ErrReviewNotFound
	}
	return nil
}

// Delete implements performance.ReviewRepository. Goals go with the review.
func (repo *reviewRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, repo.db)

	tag, err := q.Exec(ctx, `DELETE FROM performance_reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return performance.ErrReviewNotFound
	}
	return nil
}

// List implements performance.ReviewRepository.
func (repo *reviewRepositoryImpl) List(ctx context.Context, filter performance.ReviewFilter) ([]performance.Review, int64, error) {
	q := GetQuerier(ctx, repo.db)

	var where whereClause
	if filter.EmployeeID != nil {
		where.add("r.employee_id = ?", *filter.EmployeeID)
	}
	if filter.State != nil {
		where.add("r.state = ?", *filter.State)
	}
	if filter.ReviewPeriod != nil {
		where.add("r.review_period = ?", *filter.ReviewPeriod)
	}
	if filter.DateFrom != nil {
		where.add("r.review_date >= ?::date", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where.add("r.review_date <= ?::date", *filter.DateTo)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM performance_reviews r WHERE "+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	selectQuery := fmt.Sprintf("%s WHERE %s ORDER BY r.review_date DESC, r.created_at DESC LIMIT $%d OFFSET $%d",
		reviewSelect, where.String(), where.next(), where.next()+1)
	args := append(where.args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query reviews: %w", err)
	}
	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

type goalRepositoryImpl struct {
	db *database.DB
}

func NewGoalRepository(db *database.DB) performance.GoalRepository {
	return &goalRepositoryImpl{db: db}
}

const goalColumns = `
	id, review_id, employee_id, name, description, target_date, priority, progress, status,
	achievement_notes, completion_date, created_at, updated_at
`

func scanGoal(row pgx.Row) (performance.Goal, error) {
	var g performance.Goal
	err := row.Scan(
		&g.ID, &g.ReviewID, &g.EmployeeID, &g.Name, &g.Description, &g.TargetDate, &g.Priority, &g.Progress, &g.Status,
		&g.AchievementNotes, &g.CompletionDate, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return performance.Goal{}, performance.ErrGoalNotFound
		}
		return performance.Goal{}, err
	}
	return g, nil
}

// Create implements performance.GoalRepository.
func (repo *goalRepositoryImpl) Create(ctx context.Context, goal performance.Goal) (performance.Goal, error) {
	q := GetQuerier(ctx, repo.db)

	id, err := uuid.NewV7()
	if err != nil {
		return performance.Goal{}, fmt.Errorf("generate goal id: %w", err)
	}

	query := `
		INSERT INTO performance_goals (
			id, review_id, employee_id, name, description, target_date, priority, progress, status,
			achievement_notes, completion_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + goalColumns

	return scanGoal(q.QueryRow(ctx, query,
		id.String(), goal.ReviewID, goal.EmployeeID, goal.Name, goal.Description, goal.TargetDate,
		goal.Priority, goal.Progress, goal.Status, goal.AchievementNotes, goal.CompletionDate,
	))
}

// GetByID implements performance.GoalRepository.
func (repo *goalRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Goal, error) {
	q := GetQuerier(ctx, repo.db)
	return scanGoal(q.QueryRow(ctx, `SELECT `+goalColumns+` FROM performance_goals WHERE id = $1`, id))
}

// Update implements performance.GoalRepository.
func (repo *goalRepositoryImpl) Update(ctx context.Context, goal performance.Goal) error {
	q := GetQuerier(ctx, repo.db)

	query := `
		UPDATE performance_goals SET
			name = $2, description = $3, target_date = $4, priority = $5, progress = $6, status = $7,
			achievement_notes = $8, completion_date = $9, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		goal.ID, goal.Name, goal.Description, goal.TargetDate, goal.Priority, goal.Progress, goal.Status,
		goal.AchievementNotes, goal.CompletionDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return performance.ErrGoalNotFound
	}
	return nil
}

// ListByReview implements performance.GoalRepository.
func (repo *goalRepositoryImpl) ListByReview(ctx context.Context, reviewID string) ([]performance.Goal, error) {
	q := GetQuerier(ctx, repo.db)

	rows, err := q.Query(ctx, `SELECT `+goalColumns+` FROM performance_goals WHERE review_id = $1 ORDER BY target_date, created_at`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals := []performance.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
