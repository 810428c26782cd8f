package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/audit"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
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

type fakePayslipRepo struct {
	payslips map[string]payroll.Payslip
	seq      int
}

func (r *fakePayslipRepo) Create(_ context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	r.seq++
	p.ID = fmt.Sprintf("slip-%d", r.seq)
	r.payslips[p.ID] = p
	return p, nil
}

func (r *fakePayslipRepo) GetByID(_ context.Context, id string) (payroll.Payslip, error) {
	p, ok := r.payslips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return p, nil
}

func (r *fakePayslipRepo) Update(_ context.Context, p payroll.Payslip) error {
	r.payslips[p.ID] = p
	return nil
}

func (r *fakePayslipRepo) List(_ context.Context, f payroll.PayslipFilter) ([]payroll.Payslip, int64, error) {
	list := []payroll.Payslip{}
	for _, p := range r.payslips {
		if f.EmployeeID == nil || p.EmployeeID == *f.EmployeeID {
			list = append(list, p)
		}
	}
	return list, int64(len(list)), nil
}

func (r *fakePayslipRepo) ListRecomputable(_ context.Context, employeeID string) ([]payroll.Payslip, error) {
	var list []payroll.Payslip
	for _, p := range r.payslips {
		if p.EmployeeID == employeeID && p.PaymentStatus != payroll.PaymentStatusCancelled {
			list = append(list, p)
		}
	}
	return list, nil
}

func (r *fakePayslipRepo) ListRecomputableCovering(ctx context.Context, employeeID string, day time.Time) ([]payroll.Payslip, error) {
	all, _ := r.ListRecomputable(ctx, employeeID)
	var list []payroll.Payslip
	for _, p := range all {
		if p.Period().Contains(day) {
			list = append(list, p)
		}
	}
	return list, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records []attendance.Attendance
	queries int
}

func (f *fakeAttendanceRepo) ListByEmployeeBetween(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	f.queries++
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.CheckIn.Before(start) && rec.CheckIn.Before(end) {
			out = append(out, rec)
		}
	}
	return out, nil
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
	svc        *PayrollServiceImpl
	payslips   *fakePayslipRepo
	employees  *fakeEmployeeRepo
	attendance *fakeAttendanceRepo
	audit      *fakeAudit
}

func present(employeeID string, day int) attendance.Attendance {
	return attendance.Attendance{
		EmployeeID: employeeID,
		CheckIn:    time.Date(2025, 1, day, 9, 0, 0, 0, time.UTC),
		Status:     attendance.StatusPresent,
	}
}

func newFixture() *fixture {
	f := &fixture{
		payslips: &fakePayslipRepo{payslips: map[string]payroll.Payslip{}},
		employees: &fakeEmployeeRepo{employees: map[string]employee.Employee{
			empA: {ID: empA, EmployeeCode: "EMP00001", BasicSalary: decimal.NewFromInt(26000)},
			empB: {ID: empB, EmployeeCode: "EMP00002", BasicSalary: decimal.NewFromInt(52000)},
		}},
		attendance: &fakeAttendanceRepo{records: []attendance.Attendance{
			present(empA, 2),
			present(empA, 3),
			present(empB, 2),
			{EmployeeID: empA, CheckIn: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), Status: attendance.StatusPresent},
		}},
		audit: &fakeAudit{},
	}
	f.svc = NewPayrollService(passTx{}, f.payslips, f.employees, f.attendance, f.audit, time.UTC)
	f.svc.now = func() time.Time { return time.Date(2025, 2, 5, 10, 0, 0, 0, time.UTC) }
	return f
}

func adminCtx() context.Context {
	return jwt.NewActorContext(context.Background(), jwt.Actor{UserID: "admin", Role: user.RoleAdmin})
}

func employeeCtx(employeeID string) context.Context {
	return jwt.NewActorContext(context.Background(), jwt.Actor{UserID: "u-" + employeeID, Role: user.RoleEmployee, EmployeeID: &employeeID})
}

func january(employeeID string) payroll.CreatePayslipRequest {
	return payroll.CreatePayslipRequest{EmployeeID: employeeID, DateFrom: "2025-01-01", DateTo: "2025-01-31"}
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestCreatePayslip_ComputesFromAttendance(t *testing.T) {
	f := newFixture()

	slip, err := f.svc.CreatePayslip(adminCtx(), january(empA))
	require.NoError(t, err)

	assert.Equal(t, "SLIP/EMP00001/2025-01", slip.Name)
	assert.Equal(t, payroll.PaymentStatusDraft, slip.PaymentStatus)
	assert.Equal(t, 2.0, slip.AttendanceDays)
	assertMoney(t, "2000", slip.GrossSalary)
	assertMoney(t, "200", slip.TotalDeductions)
	assertMoney(t, "1800", slip.NetSalary)
}

func TestCreatePayslip_InvertedPeriodIsZero(t *testing.T) {
	f := newFixture()

	slip, err := f.svc.CreatePayslip(adminCtx(), payroll.CreatePayslipRequest{
		EmployeeID: empA, DateFrom: "2025-01-31", DateTo: "2025-01-01",
	})
	require.NoError(t, err)
	assert.Zero(t, slip.AttendanceDays)
	assert.True(t, slip.NetSalary.IsZero())
	assert.Zero(t, f.attendance.queries)
}

func TestCreatePayslip_Errors(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreatePayslip(employeeCtx(empA), january(empA))
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = f.svc.CreatePayslip(adminCtx(), january("0190a5c4-0000-7000-8000-0000000000ff"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdatePayslip_ManualAmountsRecalculate(t *testing.T) {
	f := newFixture()
	slip, err := f.svc.CreatePayslip(adminCtx(), january(empA))
	require.NoError(t, err)

	bonus := decimal.NewFromInt(1000)
	updated, err := f.svc.UpdatePayslip(adminCtx(), payroll.UpdatePayslipRequest{ID: slip.ID, Bonus: &bonus})
	require.NoError(t, err)
	assertMoney(t, "3000", updated.GrossSalary)
	assertMoney(t, "2700", updated.NetSalary)
}

func TestPaymentFlow(t *testing.T) {
	f := newFixture()
	slip, err := f.svc.CreatePayslip(adminCtx(), january(empA))
	require.NoError(t, err)

	pending, err := f.svc.MarkPending(adminCtx(), slip.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.PaymentStatusPending, pending.PaymentStatus)

	ref := "TRX-001"
	paid, err := f.svc.MarkPaid(adminCtx(), slip.ID, payroll.MarkPaidRequest{PaymentReference: &ref})
	require.NoError(t, err)
	assert.Equal(t, payroll.PaymentStatusPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "2025-02-05", paid.PaymentDate.Format("2006-01-02"))
	assert.Equal(t, &ref, paid.PaymentReference)

	_, err = f.svc.Cancel(adminCtx(), slip.ID)
	assert.ErrorIs(t, err, payroll.ErrInvalidPaymentChange)

	bonus := decimal.NewFromInt(1)
	_, err = f.svc.UpdatePayslip(adminCtx(), payroll.UpdatePayslipRequest{ID: slip.ID, Bonus: &bonus})
	assert.ErrorIs(t, err, payroll.ErrPayslipNotEditable)

	require.Len(t, f.audit.events, 2)
	assert.Equal(t, "mark_paid", f.audit.events[1].Action)
	assert.Equal(t, "TRX-001", f.audit.events[1].Payload["payment_reference"])
}

func TestRecomputeCovering_OnlyMatchingPayslips(t *testing.T) {
	f := newFixture()
	jan, err := f.svc.CreatePayslip(adminCtx(), january(empA))
	require.NoError(t, err)
	feb, err := f.svc.CreatePayslip(adminCtx(), payroll.CreatePayslipRequest{EmployeeID: empA, DateFrom: "2025-02-01", DateTo: "2025-02-28"})
	require.NoError(t, err)

	f.attendance.records = append(f.attendance.records, present(empA, 6))
	require.NoError(t, f.svc.RecomputeCovering(context.Background(), empA, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, 3.0, f.payslips.payslips[jan.ID].AttendanceDays)
	assert.Equal(t, 1.0, f.payslips.payslips[feb.ID].AttendanceDays)
	assert.Empty(t, f.audit.events)
}

func TestRecomputeForEmployee_SkipsCancelledAndAuditsPaid(t *testing.T) {
	f := newFixture()
	paid, err := f.svc.CreatePayslip(adminCtx(), january(empA))
	require.NoError(t, err)
	_, err = f.svc.MarkPaid(adminCtx(), paid.ID, payroll.MarkPaidRequest{})
	require.NoError(t, err)

	cancelled, err := f.svc.CreatePayslip(adminCtx(), january(empA))
	require.NoError(t, err)
	_, err = f.svc.Cancel(adminCtx(), cancelled.ID)
	require.NoError(t, err)

	emp := f.employees.employees[empA]
	emp.BasicSalary = decimal.NewFromInt(52000)
	f.employees.employees[empA] = emp

	require.NoError(t, f.svc.RecomputeForEmployee(context.Background(), empA))

	assertMoney(t, "3600", f.payslips.payslips[paid.ID].NetSalary)
	assertMoney(t, "1800", f.payslips.payslips[cancelled.ID].NetSalary)

	last := f.audit.events[len(f.audit.events)-1]
	assert.Equal(t, "recompute", last.Action)
	assert.Nil(t, last.ActorID)
	assert.Equal(t, "1800.00", last.Payload["net_before"])
	assert.Equal(t, "3600.00", last.Payload["net_after"])
}

func TestRecompute_Idempotent(t *testing.T) {
	f := newFixture()
	slip, err := f.svc.CreatePayslip(adminCtx(), january(empA))
	require.NoError(t, err)
	bonus := decimal.RequireFromString("333.33")
	_, err = f.svc.UpdatePayslip(adminCtx(), payroll.UpdatePayslipRequest{ID: slip.ID, Bonus: &bonus})
	require.NoError(t, err)

	first, err := f.svc.Recompute(adminCtx(), slip.ID)
	require.NoError(t, err)
	second, err := f.svc.Recompute(adminCtx(), slip.ID)
	require.NoError(t, err)

	assert.Equal(t, first.AttendanceDays, second.AttendanceDays)
	assert.Equal(t, first.OvertimeHours, second.OvertimeHours)
	assert.True(t, first.GrossSalary.Equal(second.GrossSalary))
	assert.True(t, first.TotalDeductions.Equal(second.TotalDeductions))
	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	assertMoney(t, "2333.33", second.GrossSalary)
}

func TestRecompute_CancelledRejected(t *testing.T) {
	f := newFixture()
	slip, err := f.svc.CreatePayslip(adminCtx(), january(empA))
	require.NoError(t, err)
	_, err = f.svc.Cancel(adminCtx(), slip.ID)
	require.NoError(t, err)

	_, err = f.svc.Recompute(adminCtx(), slip.ID)
	assert.ErrorIs(t, err, payroll.ErrPayslipNotEditable)
}

func TestPayslipVisibility(t *testing.T) {
	f := newFixture()
	slipA, err := f.svc.CreatePayslip(adminCtx(), january(empA))
	require.NoError(t, err)
	_, err = f.svc.CreatePayslip(adminCtx(), january(empB))
	require.NoError(t, err)

	_, err = f.svc.GetPayslip(employeeCtx(empB), slipA.ID)
	assert.ErrorIs(t, err, payroll.ErrUnauthorized)

	got, err := f.svc.GetPayslip(employeeCtx(empA), slipA.ID)
	require.NoError(t, err)
	assert.Equal(t, slipA.ID, got.ID)

	resp, err := f.svc.ListPayslips(employeeCtx(empB), payroll.PayslipFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Payslips, 1)
	assert.Equal(t, empB, resp.Payslips[0].EmployeeID)

	resp, err = f.svc.ListPayslips(adminCtx(), payroll.PayslipFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.TotalCount)
}
