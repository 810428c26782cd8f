package payroll

import (
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeID = "0192f0a0-0000-7000-8000-000000000001"

func TestCreatePayslipRequest_Validate(t *testing.T) {
	req := CreatePayslipRequest{EmployeeID: employeeID, DateFrom: "2025-01-01", DateTo: "2025-01-31"}
	require.NoError(t, req.Validate())
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), req.Period.From)
	assert.Equal(t, 31, req.Period.Days())
}

func TestCreatePayslipRequest_InvertedPeriodAllowed(t *testing.T) {
	req := CreatePayslipRequest{EmployeeID: employeeID, DateFrom: "2025-01-31", DateTo: "2025-01-01"}
	require.NoError(t, req.Validate())
	assert.True(t, req.Period.Inverted())
}

func TestCreatePayslipRequest_Errors(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	req := CreatePayslipRequest{DateFrom: "2025-01-01", Bonus: &negative}

	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	m := errs.ToMap()
	assert.Contains(t, m, "employee_id")
	assert.Contains(t, m, "period")
	assert.Equal(t, "bonus must be non-negative", m["bonus"])
}

func TestPayslipFilter_Validate(t *testing.T) {
	f := PayslipFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)

	bad := "settled"
	f = PayslipFilter{PaymentStatus: &bad}
	assert.Error(t, f.Validate())
}
