package payroll

import (
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

const (
	WorkingDaysPerMonth = 26
	WorkingHoursPerDay  = 8
)

var (
	OvertimeMultiplier = decimal.RequireFromString("1.5")
	StatutoryRate      = decimal.RequireFromString("0.10")

	hoursPerMonth = decimal.NewFromInt(WorkingDaysPerMonth * WorkingHoursPerDay)
	daysPerMonth  = decimal.NewFromInt(WorkingDaysPerMonth)
)

type Inputs struct {
	BasicSalary      decimal.Decimal
	AttendanceDays   float64
	OvertimeHours    float64
	LateDeduction    decimal.Decimal
	Bonus            decimal.Decimal
	PerformanceBonus decimal.Decimal
	OtherAllowances  decimal.Decimal
	OtherDeductions  decimal.Decimal
}

type Result struct {
	AttendanceDays  float64
	OvertimeHours   float64
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
}

// Calculate derives gross, deductions and net in that order. Money is rounded
// half away from zero to 2 decimals at each step.
func Calculate(in Inputs) Result {
	days := decimal.NewFromFloat(in.AttendanceDays)
	overtime := decimal.NewFromFloat(in.OvertimeHours)

	base := in.BasicSalary.Mul(days).Div(daysPerMonth)
	overtimePay := in.BasicSalary.Mul(overtime).Mul(OvertimeMultiplier).Div(hoursPerMonth)

	gross := base.
		Add(overtimePay).
		Add(in.Bonus).
		Add(in.PerformanceBonus).
		Add(in.OtherAllowances).
		Round(2)

	deductions := in.LateDeduction.
		Add(in.OtherDeductions).
		Add(gross.Mul(StatutoryRate)).
		Round(2)

	return Result{
		AttendanceDays:  in.AttendanceDays,
		OvertimeHours:   in.OvertimeHours,
		GrossSalary:     gross,
		TotalDeductions: deductions,
		NetSalary:       gross.Sub(deductions),
	}
}

// SummarizeAttendance totals day weights and overtime of the records whose
// check-in falls on a local date inside r. An inverted range totals zero.
func SummarizeAttendance(records []attendance.Attendance, r period.Range, loc *time.Location) (days, overtime float64) {
	if r.Inverted() {
		return 0, 0
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, rec := range records {
		if !r.ContainsInstant(rec.CheckIn, loc) {
			continue
		}
		days += attendance.DayWeight(rec.Status)
		overtime += rec.OvertimeHours
	}
	return days, overtime
}
