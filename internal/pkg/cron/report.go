package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/report"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/pagination"
)

// SystemUserID identifies scheduled jobs in the request context
const SystemUserID = "system"

type ReportJobs struct {
	reportService report.ReportService
	logger        *slog.Logger
}

func NewReportJobs(reportService report.ReportService, logger *slog.Logger) *ReportJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportJobs{reportService: reportService, logger: logger}
}

func (j *ReportJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("refresh_saved_reports", interval, j.RefreshSavedReports)
}

// RefreshSavedReports recomputes the snapshot of every saved report. A failing
// report does not stop the others.
func (j *ReportJobs) RefreshSavedReports(ctx context.Context) error {
	ctx = jwt.NewActorContext(ctx, jwt.Actor{UserID: SystemUserID, Role: user.RoleAdmin})

	var errs []error
	refreshed := 0
	filter := report.ReportFilter{Params: pagination.Params{Page: 1, Limit: pagination.MaxLimit}}
	for {
		page, err := j.reportService.ListReports(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list saved reports: %w", err)
		}

		for _, saved := range page.Reports {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if _, err := j.reportService.RefreshReport(ctx, saved.ID); err != nil {
				errs = append(errs, fmt.Errorf("report %s: %w", saved.ID, err))
				continue
			}
			refreshed++
		}

		if filter.Page >= page.TotalPages {
			break
		}
		filter.Page++
	}

	j.logger.Info("Cron: saved reports refreshed", "refreshed", refreshed, "failed", len(errs))
	return errors.Join(errs...)
}
