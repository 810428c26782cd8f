package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
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

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	filter  attendance.AttendanceFilter
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	a.ID = fmt.Sprintf("att-%d", len(r.records)+1)
	r.records[a.ID] = a
	return a, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, a attendance.Attendance) error {
	r.records[a.ID] = a
	return nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, f attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.filter = f
	return []attendance.Attendance{}, 0, nil
}

func (r *fakeAttendanceRepo) GetOpenByEmployee(_ context.Context, employeeID string) (attendance.Attendance, error) {
	for _, a := range r.records {
		if a.EmployeeID == employeeID && a.IsOpen() {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotCheckedIn
}

func (r *fakeAttendanceRepo) ListByEmployeeBetween(_ context.Context, _ string, _, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
}

func (fakeEmployeeRepo) LockByID(_ context.Context, id string) error {
	if id != empA && id != empB {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

type recomputeCall struct {
	employeeID string
	day        time.Time
}

type fakeRecomputer struct {
	calls []recomputeCall
}

func (f *fakeRecomputer) RecomputeCovering(_ context.Context, employeeID string, day time.Time) error {
	f.calls = append(f.calls, recomputeCall{employeeID, day})
	return nil
}

type fixture struct {
	svc        *AttendanceServiceImpl
	repo       *fakeAttendanceRepo
	recomputer *fakeRecomputer
	clock      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	f := &fixture{
		repo:       &fakeAttendanceRepo{records: map[string]attendance.Attendance{}},
		recomputer: &fakeRecomputer{},
	}
	f.svc = NewAttendanceService(passTx{}, f.repo, fakeEmployeeRepo{}, f.recomputer, loc).(*AttendanceServiceImpl)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func employeeCtx(employeeID string) context.Context {
	return jwt.NewActorContext(context.Background(), jwt.Actor{UserID: "u-" + employeeID, Role: user.RoleEmployee, EmployeeID: &employeeID})
}

func managerCtx() context.Context {
	return jwt.NewActorContext(context.Background(), jwt.Actor{UserID: "mgr", Role: user.RoleManager})
}

func TestCheckInCheckOut_DerivesInWorkTimezone(t *testing.T) {
	f := newFixture(t)
	ctx := employeeCtx(empA)

	// 09:20 in Kolkata is 03:50 UTC.
	f.clock = time.Date(2025, 3, 3, 3, 50, 0, 0, time.UTC)
	opened, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, opened.Status)
	assert.Equal(t, 20, opened.LateMinutes)

	f.clock = f.clock.Add(10 * time.Hour)
	closed, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, closed.WorkedHours, 1e-9)
	assert.InDelta(t, 2.0, closed.OvertimeHours, 1e-9)
	assert.Equal(t, attendance.StatusLate, closed.Status)

	require.Len(t, f.recomputer.calls, 2)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), f.recomputer.calls[1].day)
}

func TestCheckIn_RejectsSecondOpenRecord(t *testing.T) {
	f := newFixture(t)
	ctx := employeeCtx(empA)
	f.clock = time.Date(2025, 3, 3, 3, 0, 0, 0, time.UTC)

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = f.svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Len(t, f.repo.records, 1)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CheckOut(employeeCtx(empA), attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckIn_ForAnotherEmployeeNeedsManager(t *testing.T) {
	f := newFixture(t)
	other := empB

	_, err := f.svc.CheckIn(employeeCtx(empA), attendance.CheckInRequest{EmployeeID: &other})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	created, err := f.svc.CheckIn(managerCtx(), attendance.CheckInRequest{EmployeeID: &other})
	require.NoError(t, err)
	assert.Equal(t, empB, created.EmployeeID)
}

func TestCheckIn_UnlinkedUser(t *testing.T) {
	f := newFixture(t)
	ctx := jwt.NewActorContext(context.Background(), jwt.Actor{UserID: "admin", Role: user.RoleAdmin})
	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, user.ErrEmployeeLinkRequired)
}

func TestUpdateAttendance_RecomputesOldAndNewDay(t *testing.T) {
	f := newFixture(t)
	out := "2025-03-03T12:30:00Z"
	created, err := f.svc.CreateAttendance(managerCtx(), attendance.CreateAttendanceRequest{
		EmployeeID: empA,
		CheckIn:    "2025-03-03T03:30:00Z",
		CheckOut:   &out,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, created.Status)
	f.recomputer.calls = nil

	newIn := "2025-03-04T03:30:00Z"
	newOut := "2025-03-04T05:30:00Z"
	updated, err := f.svc.UpdateAttendance(managerCtx(), attendance.UpdateAttendanceRequest{ID: created.ID, CheckIn: &newIn, CheckOut: &newOut})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, updated.Status)
	assert.Len(t, f.recomputer.calls, 2)
}

func TestUpdateAttendance_CheckOutBeforeCheckIn(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateAttendance(managerCtx(), attendance.CreateAttendanceRequest{EmployeeID: empA, CheckIn: "2025-03-03T03:30:00Z"})
	require.NoError(t, err)

	early := "2025-03-03T01:00:00Z"
	_, err = f.svc.UpdateAttendance(managerCtx(), attendance.UpdateAttendanceRequest{ID: created.ID, CheckOut: &early})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
	assert.True(t, f.repo.records[created.ID].IsOpen())
}

func TestCreateAttendance_RequiresManager(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateAttendance(employeeCtx(empA), attendance.CreateAttendanceRequest{EmployeeID: empA, CheckIn: "2025-03-03T03:30:00Z"})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestListAttendance_EmployeeSeesOwnRecordsOnly(t *testing.T) {
	f := newFixture(t)
	other := empB
	start := "2025-03-01"
	end := "2025-03-31"

	_, err := f.svc.ListAttendance(employeeCtx(empA), attendance.AttendanceFilter{EmployeeID: &other, StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	require.NotNil(t, f.repo.filter.EmployeeID)
	assert.Equal(t, empA, *f.repo.filter.EmployeeID)
	require.NotNil(t, f.repo.filter.From)
	require.NotNil(t, f.repo.filter.To)
	// Local midnight in Kolkata is 18:30 UTC the previous day.
	assert.Equal(t, time.Date(2025, 2, 28, 18, 30, 0, 0, time.UTC), f.repo.filter.From.UTC())
	assert.Equal(t, time.Date(2025, 3, 31, 18, 30, 0, 0, time.UTC), f.repo.filter.To.UTC())
}
