package performance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/audit"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/performance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

type PerformanceServiceImpl struct {
	tx           database.Transactor
	reviewRepo   performance.ReviewRepository
	goalRepo     performance.GoalRepository
	employeeRepo employee.EmployeeRepository
	audit        audit.Repository
	loc          *time.Location
	now          func() time.Time
}

func NewPerformanceService(
	tx database.Transactor,
	reviewRepo performance.ReviewRepository,
	goalRepo performance.GoalRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.Repository,
	loc *time.Location,
) performance.PerformanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &PerformanceServiceImpl{
		tx:           tx,
		reviewRepo:   reviewRepo,
		goalRepo:     goalRepo,
		employeeRepo: employeeRepo,
		audit:        auditRepo,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *PerformanceServiceImpl) today() time.Time {
	return period.LocalDate(s.now(), s.loc)
}

func actorFrom(ctx context.Context) (jwt.Actor, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return jwt.Actor{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}
	return actor, nil
}

func canManage(actor jwt.Actor) bool {
	return user.HasPermission(actor.Role, user.PermissionPerformanceManage)
}

func validationError(field, message string) error {
	var errs validator.ValidationErrors
	errs.Add(field, message)
	return errs.Err()
}

func defaultReviewName(p performance.ReviewPeriod, emp employee.Employee, on time.Time) string {
	title := strings.ReplaceAll(string(p), "_", "-")
	title = strings.ToUpper(title[:1]) + title[1:]
	return fmt.Sprintf("%s Review %s %s", title, emp.EmployeeCode, on.Format(period.DateLayout))
}

// ========== REVIEWS ==========

// CreateReview implements performance.PerformanceService. The reviewer
// defaults to the caller and the review date to today.
func (s *PerformanceServiceImpl) CreateReview(ctx context.Context, req performance.CreateReviewRequest) (performance.Review, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return performance.Review{}, err
	}
	if !canManage(actor) {
		return performance.Review{}, user.ErrManagerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return performance.Review{}, err
	}
	if req.To.Before(req.From) {
		return performance.Review{}, validationError("date_to", "date_to must not be before date_from")
	}

	review := performance.Review{
		EmployeeID:         req.EmployeeID,
		ReviewerID:         actor.UserID,
		ReviewPeriod:       performance.PeriodQuarterly,
		ReviewDate:         s.today(),
		DateFrom:           req.From,
		DateTo:             req.To,
		Ratings:            req.Ratings,
		Achievements:       req.Achievements,
		AreasOfImprovement: req.AreasOfImprovement,
		ReviewerComments:   req.ReviewerComments,
		TrainingNeeds:      req.TrainingNeeds,
		NextReviewDate:     req.NextReview,
		State:              performance.ReviewDraft,
	}
	if req.ReviewerID != nil {
		review.ReviewerID = *req.ReviewerID
	}
	if req.ReviewPeriod != nil {
		review.ReviewPeriod = performance.ReviewPeriod(*req.ReviewPeriod)
	}
	if req.ReviewedOn != nil {
		review.ReviewDate = *req.ReviewedOn
	}
	if err := review.Rescore(); err != nil {
		return performance.Review{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return performance.Review{}, err
	}
	if req.Name != nil {
		review.Name = strings.TrimSpace(*req.Name)
	} else {
		review.Name = defaultReviewName(review.ReviewPeriod, emp, review.ReviewDate)
	}

	return s.reviewRepo.Create(ctx, review)
}

// UpdateReview implements performance.PerformanceService. Reviewers edit
// while the review is draft or submitted; the reviewed employee may only add
// their own comments before acknowledging.
func (s *PerformanceServiceImpl) UpdateReview(ctx context.Context, req performance.UpdateReviewRequest) (performance.Review, error) {
	if err := req.Validate(); err != nil {
		return performance.Review{}, err
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return performance.Review{}, err
	}

	var updated performance.Review
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		review, err := s.reviewRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		switch {
		case canManage(actor):
			if !review.State.CanEdit() {
				return performance.ErrNotEditable
			}
		case actor.OwnsEmployee(review.EmployeeID):
			if !onlyEmployeeComments(req) {
				return performance.ErrUnauthorized
			}
			if review.State == performance.ReviewAcknowledged || review.State == performance.ReviewCancelled {
				return performance.ErrNotEditable
			}
		default:
			return performance.ErrUnauthorized
		}

		req.Apply(&review)
		review.Name = strings.TrimSpace(review.Name)
		if review.DateTo.Before(review.DateFrom) {
			return validationError("date_to", "date_to must not be before date_from")
		}
		if err := review.Rescore(); err != nil {
			return err
		}
		if err := s.reviewRepo.Update(ctx, review); err != nil {
			return err
		}

		updated, err = s.reviewRepo.GetByID(ctx, review.ID)
		return err
	})
	if err != nil {
		return performance.Review{}, err
	}
	return updated, nil
}

func onlyEmployeeComments(req performance.UpdateReviewRequest) bool {
	other := req
	other.ID, other.EmployeeComments = "", nil
	return other == performance.UpdateReviewRequest{}
}

// GetReview implements performance.PerformanceService.
func (s *PerformanceServiceImpl) GetReview(ctx context.Context, id string) (performance.Review, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return performance.Review{}, err
	}

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return performance.Review{}, err
	}
	if !actor.OwnsEmployee(review.EmployeeID) && !canManage(actor) {
		return performance.Review{}, performance.ErrUnauthorized
	}

	review.Goals, err = s.goalRepo.ListByReview(ctx, review.ID)
	if err != nil {
		return performance.Review{}, fmt.Errorf("failed to load review goals: %w", err)
	}
	return review, nil
}

// ListReviews implements performance.PerformanceService.
func (s *PerformanceServiceImpl) ListReviews(ctx context.Context, filter performance.ReviewFilter) (performance.ListReviewResponse, error) {
	if err := filter.Validate(); err != nil {
		return performance.ListReviewResponse{}, err
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return performance.ListReviewResponse{}, err
	}

	if !canManage(actor) {
		if actor.EmployeeID == nil {
			return performance.ListReviewResponse{}, user.ErrEmployeeLinkRequired
		}
		filter.EmployeeID = actor.EmployeeID
	}

	reviews, total, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		return performance.ListReviewResponse{}, err
	}

	return performance.ListReviewResponse{
		Reviews:    reviews,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: filter.TotalPages(total),
	}, nil
}

// DeleteReview implements performance.PerformanceService. Goals go with it.
func (s *PerformanceServiceImpl) DeleteReview(ctx context.Context, id string) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if !canManage(actor) {
		return user.ErrManagerAccessRequired
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		review, err := s.reviewRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !review.State.CanDelete() {
			return performance.ErrNotDeletable
		}
		return s.reviewRepo.Delete(ctx, id)
	})
}

// ========== WORKFLOW ==========

// Submit implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Submit(ctx context.Context, id string) (performance.Review, error) {
	return s.act(ctx, id, performance.ActionSubmit)
}

// MarkReviewed implements performance.PerformanceService.
func (s *PerformanceServiceImpl) MarkReviewed(ctx context.Context, id string) (performance.Review, error) {
	return s.act(ctx, id, performance.ActionReview)
}

// Acknowledge implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Acknowledge(ctx context.Context, id string) (performance.Review, error) {
	return s.act(ctx, id, performance.ActionAcknowledge)
}

// Cancel implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Cancel(ctx context.Context, id string) (performance.Review, error) {
	return s.act(ctx, id, performance.ActionCancel)
}

// Reset implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Reset(ctx context.Context, id string) (performance.Review, error) {
	return s.act(ctx, id, performance.ActionReset)
}

// act fires action on the review. Acknowledging is done by the reviewed
// employee or a reviewer; every other action needs a reviewer.
func (s *PerformanceServiceImpl) act(ctx context.Context, id string, action performance.Action) (performance.Review, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return performance.Review{}, err
	}

	var result performance.Review
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		review, err := s.reviewRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		allowed := canManage(actor) || (action == performance.ActionAcknowledge && actor.OwnsEmployee(review.EmployeeID))
		if !allowed {
			if actor.OwnsEmployee(review.EmployeeID) {
				return user.ErrManagerAccessRequired
			}
			return performance.ErrUnauthorized
		}

		from := review.State
		to, err := performance.Transition(from, action)
		if err != nil {
			return err
		}
		review.State = to

		if err := s.reviewRepo.Update(ctx, review); err != nil {
			return err
		}
		event := audit.Transition(audit.RecordPerformanceReview, review.ID, string(action), actor.UserID, string(from), string(to))
		if _, err := s.audit.Append(ctx, event); err != nil {
			return fmt.Errorf("failed to record review transition: %w", err)
		}

		result, err = s.reviewRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return performance.Review{}, err
	}
	return result, nil
}

// ========== GOALS ==========

// AddGoal implements performance.PerformanceService. The goal belongs to the
// review's employee.
func (s *PerformanceServiceImpl) AddGoal(ctx context.Context, req performance.CreateGoalRequest) (performance.Goal, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return performance.Goal{}, err
	}
	if !canManage(actor) {
		return performance.Goal{}, user.ErrManagerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return performance.Goal{}, err
	}

	review, err := s.reviewRepo.GetByID(ctx, req.ReviewID)
	if err != nil {
		return performance.Goal{}, err
	}
	if review.State == performance.ReviewCancelled {
		return performance.Goal{}, performance.ErrNotEditable
	}

	goal := performance.Goal{
		ReviewID:    &review.ID,
		EmployeeID:  review.EmployeeID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		TargetDate:  req.Target,
		Priority:    performance.PriorityMedium,
		Progress:    req.Progress,
		Status:      performance.GoalNotStarted,
	}
	if req.Priority != nil {
		goal.Priority = performance.Priority(*req.Priority)
	}

	return s.goalRepo.Create(ctx, goal)
}

// UpdateGoal implements performance.PerformanceService. The goal's employee
// may report progress; reviewers may change anything.
func (s *PerformanceServiceImpl) UpdateGoal(ctx context.Context, req performance.UpdateGoalRequest) (performance.Goal, error) {
	if err := req.Validate(); err != nil {
		return performance.Goal{}, err
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return performance.Goal{}, err
	}

	var updated performance.Goal
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		goal, err := s.goalRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !canManage(actor) {
			if !actor.OwnsEmployee(goal.EmployeeID) {
				return performance.ErrUnauthorized
			}
			if req.Name != nil || req.Description != nil || req.TargetDate != nil || req.Priority != nil {
				return performance.ErrUnauthorized
			}
		}
		if goal.Status == performance.GoalCompleted || goal.Status == performance.GoalCancelled {
			return performance.ErrGoalClosed
		}

		if req.Name != nil {
			goal.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			goal.Description = req.Description
		}
		if req.Target != nil {
			goal.TargetDate = *req.Target
		}
		if req.Priority != nil {
			goal.Priority = performance.Priority(*req.Priority)
		}
		if req.Progress != nil {
			goal.Progress = *req.Progress
		}
		if req.AchievementNotes != nil {
			goal.AchievementNotes = req.AchievementNotes
		}
		if req.Status != nil {
			goal.Status = performance.GoalStatus(*req.Status)
		}
		if goal.Status == performance.GoalCompleted {
			goal.MarkCompleted(s.today())
		}

		if err := s.goalRepo.Update(ctx, goal); err != nil {
			return err
		}
		updated, err = s.goalRepo.GetByID(ctx, goal.ID)
		return err
	})
	if err != nil {
		return performance.Goal{}, err
	}
	return updated, nil
}

// CompleteGoal implements performance.PerformanceService.
func (s *PerformanceServiceImpl) CompleteGoal(ctx context.Context, id string) (performance.Goal, error) {
	status := string(performance.GoalCompleted)
	return s.UpdateGoal(ctx, performance.UpdateGoalRequest{ID: id, Status: &status})
}
