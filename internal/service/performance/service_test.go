package performance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/audit"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/performance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	empA = "0190a5c4-0000-7000-8000-00000000000a"
	empB = "0190a5c4-0000-7000-8000-00000000000b"
)

type passTx struct{}

func (passTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passTx) WithinReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReviewRepo struct {
	reviews map[string]performance.Review
	seq     int
}

func (r *fakeReviewRepo) Create(_ context.Context, rev performance.Review) (performance.Review, error) {
	r.seq++
	rev.ID = fmt.Sprintf("rev-%d", r.seq)
	r.reviews[rev.ID] = rev
	return rev, nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id string) (performance.Review, error) {
	rev, ok := r.reviews[id]
	if !ok {
		return performance.Review{}, performance.ErrReviewNotFound
	}
	return rev, nil
}

func (r *fakeReviewRepo) Update(_ context.Context, rev performance.Review) error {
	r.reviews[rev.ID] = rev
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id string) error {
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) List(_ context.Context, f performance.ReviewFilter) ([]performance.Review, int64, error) {
	list := []performance.Review{}
	for _, rev := range r.reviews {
		if f.EmployeeID == nil || rev.EmployeeID == *f.EmployeeID {
			list = append(list, rev)
		}
	}
	return list, int64(len(list)), nil
}

type fakeGoalRepo struct {
	goals map[string]performance.Goal
}

func (r *fakeGoalRepo) Create(_ context.Context, g performance.Goal) (performance.Goal, error) {
	g.ID = fmt.Sprintf("goal-%d", len(r.goals)+1)
	r.goals[g.ID] = g
	return g, nil
}

func (r *fakeGoalRepo) GetByID(_ context.Context, id string) (performance.Goal, error) {
	g, ok := r.goals[id]
	if !ok {
		return performance.Goal{}, performance.ErrGoalNotFound
	}
	return g, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, g performance.Goal) error {
	r.goals[g.ID] = g
	return nil
}

func (r *fakeGoalRepo) ListByReview(_ context.Context, reviewID string) ([]performance.Goal, error) {
	var out []performance.Goal
	for _, g := range r.goals {
		if g.ReviewID != nil && *g.ReviewID == reviewID {
			out = append(out, g)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
}

func (fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	switch id {
	case empA:
		return employee.Employee{ID: empA, EmployeeCode: "EMP00001"}, nil
	case empB:
		return employee.Employee{ID: empB, EmployeeCode: "EMP00002"}, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeAudit struct {
	events []audit.Event
}

func (f *fakeAudit) Append(_ context.Context, ev audit.Event) (audit.Event, error) {
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeAudit) ListByRecord(context.Context, audit.RecordType, string) ([]audit.Event, error) {
	return f.events, nil
}

type fixture struct {
	svc     *PerformanceServiceImpl
	reviews *fakeReviewRepo
	goals   *fakeGoalRepo
	audit   *fakeAudit
}

func newFixture() *fixture {
	f := &fixture{
		reviews: &fakeReviewRepo{reviews: map[string]performance.Review{}},
		goals:   &fakeGoalRepo{goals: map[string]performance.Goal{}},
		audit:   &fakeAudit{},
	}
	f.svc = NewPerformanceService(passTx{}, f.reviews, f.goals, fakeEmployeeRepo{}, f.audit, time.UTC).(*PerformanceServiceImpl)
	f.svc.now = func() time.Time { return time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC) }
	return f
}

func managerCtx() context.Context {
	return jwt.NewActorContext(context.Background(), jwt.Actor{UserID: "mgr", Role: user.RoleManager})
}

func employeeCtx(employeeID string) context.Context {
	return jwt.NewActorContext(context.Background(), jwt.Actor{UserID: "u-" + employeeID, Role: user.RoleEmployee, EmployeeID: &employeeID})
}

func quarterReview(t *testing.T, f *fixture) performance.Review {
	t.Helper()
	rev, err := f.svc.CreateReview(managerCtx(), performance.CreateReviewRequest{
		EmployeeID: empA,
		DateFrom:   "2025-01-01",
		DateTo:     "2025-03-31",
		Ratings:    performance.Ratings{QualityOfWork: 5, Productivity: 4, Communication: 4, Teamwork: 3, Initiative: 4, Punctuality: 4},
	})
	require.NoError(t, err)
	return rev
}

func TestCreateReview_DefaultsAndScore(t *testing.T) {
	f := newFixture()
	rev := quarterReview(t, f)

	assert.Equal(t, "mgr", rev.ReviewerID)
	assert.Equal(t, performance.PeriodQuarterly, rev.ReviewPeriod)
	assert.Equal(t, "2025-03-31", rev.ReviewDate.Format("2006-01-02"))
	assert.Equal(t, "Quarterly Review EMP00001 2025-03-31", rev.Name)
	assert.Equal(t, 4.0, rev.OverallRating)
	assert.Equal(t, performance.CategoryGood, rev.RatingCategory)
	assert.Equal(t, performance.ReviewDraft, rev.State)
}

func TestCreateReview_Errors(t *testing.T) {
	f := newFixture()
	req := performance.CreateReviewRequest{EmployeeID: empA, DateFrom: "2025-01-01", DateTo: "2025-03-31"}

	_, err := f.svc.CreateReview(employeeCtx(empA), req)
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	inverted := req
	inverted.DateFrom = "2025-04-01"
	_, err = f.svc.CreateReview(managerCtx(), inverted)
	assert.Error(t, err)

	unknown := req
	unknown.EmployeeID = "0190a5c4-0000-7000-8000-0000000000ff"
	_, err = f.svc.CreateReview(managerCtx(), unknown)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateReview_Rescores(t *testing.T) {
	f := newFixture()
	rev := quarterReview(t, f)

	five := 5
	updated, err := f.svc.UpdateReview(managerCtx(), performance.UpdateReviewRequest{
		ID: rev.ID, Productivity: &five, Communication: &five, Teamwork: &five, Initiative: &five, Punctuality: &five,
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.OverallRating)
	assert.Equal(t, performance.CategoryExcellent, updated.RatingCategory)
}

func TestUpdateReview_EmployeeMayOnlyComment(t *testing.T) {
	f := newFixture()
	rev := quarterReview(t, f)

	comment := "Thanks, agreed."
	updated, err := f.svc.UpdateReview(employeeCtx(empA), performance.UpdateReviewRequest{ID: rev.ID, EmployeeComments: &comment})
	require.NoError(t, err)
	assert.Equal(t, &comment, updated.EmployeeComments)

	five := 5
	_, err = f.svc.UpdateReview(employeeCtx(empA), performance.UpdateReviewRequest{ID: rev.ID, Teamwork: &five})
	assert.ErrorIs(t, err, performance.ErrUnauthorized)

	_, err = f.svc.UpdateReview(employeeCtx(empB), performance.UpdateReviewRequest{ID: rev.ID, EmployeeComments: &comment})
	assert.ErrorIs(t, err, performance.ErrUnauthorized)
}

func TestReviewWorkflow(t *testing.T) {
	f := newFixture()
	rev := quarterReview(t, f)

	_, err := f.svc.Submit(employeeCtx(empA), rev.ID)
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	_, err = f.svc.Acknowledge(employeeCtx(empA), rev.ID)
	assert.ErrorIs(t, err, performance.ErrInvalidTransition)

	_, err = f.svc.Submit(managerCtx(), rev.ID)
	require.NoError(t, err)
	reviewed, err := f.svc.MarkReviewed(managerCtx(), rev.ID)
	require.NoError(t, err)
	assert.Equal(t, performance.ReviewReviewed, reviewed.State)

	five := 5
	_, err = f.svc.UpdateReview(managerCtx(), performance.UpdateReviewRequest{ID: rev.ID, Teamwork: &five})
	assert.ErrorIs(t, err, performance.ErrNotEditable)

	acked, err := f.svc.Acknowledge(employeeCtx(empA), rev.ID)
	require.NoError(t, err)
	assert.Equal(t, performance.ReviewAcknowledged, acked.State)

	_, err = f.svc.Cancel(managerCtx(), rev.ID)
	assert.ErrorIs(t, err, performance.ErrInvalidTransition)

	reset, err := f.svc.Reset(managerCtx(), rev.ID)
	require.NoError(t, err)
	assert.Equal(t, performance.ReviewDraft, reset.State)

	actions := make([]string, 0, len(f.audit.events))
	for _, ev := range f.audit.events {
		assert.Equal(t, audit.RecordPerformanceReview, ev.RecordType)
		actions = append(actions, ev.Action)
	}
	assert.Equal(t, []string{"submit", "review", "acknowledge", "reset"}, actions)
}

func TestDeleteReview(t *testing.T) {
	f := newFixture()
	rev := quarterReview(t, f)

	_, err := f.svc.Submit(managerCtx(), rev.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.DeleteReview(managerCtx(), rev.ID), performance.ErrNotDeletable)

	_, err = f.svc.Cancel(managerCtx(), rev.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteReview(managerCtx(), rev.ID))
	assert.Empty(t, f.reviews.reviews)
}

func TestGoals(t *testing.T) {
	f := newFixture()
	rev := quarterReview(t, f)

	goal, err := f.svc.AddGoal(managerCtx(), performance.CreateGoalRequest{ReviewID: rev.ID, Name: "Ship v2", TargetDate: "2025-06-30"})
	require.NoError(t, err)
	assert.Equal(t, empA, goal.EmployeeID)
	assert.Equal(t, performance.PriorityMedium, goal.Priority)
	assert.Equal(t, performance.GoalNotStarted, goal.Status)

	_, err = f.svc.AddGoal(managerCtx(), performance.CreateGoalRequest{ReviewID: rev.ID, Name: "Bad", TargetDate: "2025-06-30", Progress: 120})
	assert.Error(t, err)

	progress := 60
	updated, err := f.svc.UpdateGoal(employeeCtx(empA), performance.UpdateGoalRequest{ID: goal.ID, Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, 60, updated.Progress)

	name := "Ship v3"
	_, err = f.svc.UpdateGoal(employeeCtx(empA), performance.UpdateGoalRequest{ID: goal.ID, Name: &name})
	assert.ErrorIs(t, err, performance.ErrUnauthorized)

	done, err := f.svc.CompleteGoal(employeeCtx(empA), goal.ID)
	require.NoError(t, err)
	assert.Equal(t, performance.GoalCompleted, done.Status)
	assert.Equal(t, 100, done.Progress)
	require.NotNil(t, done.CompletionDate)
	assert.Equal(t, "2025-03-31", done.CompletionDate.Format("2006-01-02"))

	_, err = f.svc.UpdateGoal(managerCtx(), performance.UpdateGoalRequest{ID: goal.ID, Progress: &progress})
	assert.ErrorIs(t, err, performance.ErrGoalClosed)

	withGoals, err := f.svc.GetReview(employeeCtx(empA), rev.ID)
	require.NoError(t, err)
	assert.Len(t, withGoals.Goals, 1)
}

func TestListReviews_EmployeeScope(t *testing.T) {
	f := newFixture()
	quarterReview(t, f)

	resp, err := f.svc.ListReviews(employeeCtx(empB), performance.ReviewFilter{})
	require.NoError(t, err)
	assert.Empty(t, resp.Reviews)

	resp, err = f.svc.ListReviews(managerCtx(), performance.ReviewFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.TotalCount)
}
