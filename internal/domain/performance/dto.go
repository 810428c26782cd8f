package performance

import (
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/pagination"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

// ========== REVIEW DTOs ==========

type CreateReviewRequest struct {
	Name               *string `json:"name,omitempty"`
	EmployeeID         string  `json:"employee_id"`
	ReviewerID         *string `json:"reviewer_id,omitempty"` // defaults to the caller
	ReviewPeriod       *string `json:"review_period,omitempty"`
	ReviewDate         *string `json:"review_date,omitempty"` // defaults to today
	DateFrom           string  `json:"date_from"`
	DateTo             string  `json:"date_to"`
	Ratings                    // missing ratings count as 0
	Achievements       *string `json:"achievements,omitempty"`
	AreasOfImprovement *string `json:"areas_of_improvement,omitempty"`
	ReviewerComments   *string `json:"reviewer_comments,omitempty"`
	TrainingNeeds      *string `json:"training_needs,omitempty"`
	NextReviewDate     *string `json:"next_review_date,omitempty"`

	// Parsed by Validate
	From       time.Time  `json:"-"`
	To         time.Time  `json:"-"`
	ReviewedOn *time.Time `json:"-"`
	NextReview *time.Time `json:"-"`
}

func (r *CreateReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if r.ReviewerID != nil && !validator.IsValidUUID(*r.ReviewerID) {
		errs.Add("reviewer_id", "reviewer_id must be a valid UUID")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.ReviewPeriod != nil && !validator.IsInSlice(*r.ReviewPeriod, ReviewPeriods) {
		errs.Add("review_period", "review_period must be one of: monthly, quarterly, half_yearly, annual")
	}

	if validator.IsEmpty(r.DateFrom) {
		errs.Add("date_from", "date_from is required")
	} else if d, ok := validator.IsValidDate(r.DateFrom); ok {
		r.From = d
	} else {
		errs.Add("date_from", "date_from must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.DateTo) {
		errs.Add("date_to", "date_to is required")
	} else if d, ok := validator.IsValidDate(r.DateTo); ok {
		r.To = d
	} else {
		errs.Add("date_to", "date_to must be in YYYY-MM-DD format")
	}

	r.ReviewedOn = parseOptionalDate(&errs, "review_date", r.ReviewDate)
	r.NextReview = parseOptionalDate(&errs, "next_review_date", r.NextReviewDate)

	if err := r.Ratings.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	return errs.Err()
}

type UpdateReviewRequest struct {
	ID                 string  `json:"-"`
	Name               *string `json:"name,omitempty"`
	ReviewPeriod       *string `json:"review_period,omitempty"`
	ReviewDate         *string `json:"review_date,omitempty"`
	DateFrom           *string `json:"date_from,omitempty"`
	DateTo             *string `json:"date_to,omitempty"`
	QualityOfWork      *int    `json:"quality_of_work,omitempty"`
	Productivity       *int    `json:"productivity,omitempty"`
	Communication      *int    `json:"communication,omitempty"`
	Teamwork           *int    `json:"teamwork,omitempty"`
	Initiative         *int    `json:"initiative,omitempty"`
	Punctuality        *int    `json:"punctuality,omitempty"`
	Achievements       *string `json:"achievements,omitempty"`
	AreasOfImprovement *string `json:"areas_of_improvement,omitempty"`
	ReviewerComments   *string `json:"reviewer_comments,omitempty"`
	EmployeeComments   *string `json:"employee_comments,omitempty"`
	TrainingNeeds      *string `json:"training_needs,omitempty"`
	NextReviewDate     *string `json:"next_review_date,omitempty"`

	// Parsed by Validate
	From       *time.Time `json:"-"`
	To         *time.Time `json:"-"`
	ReviewedOn *time.Time `json:"-"`
	NextReview *time.Time `json:"-"`
}

func (r *UpdateReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.ReviewPeriod != nil && !validator.IsInSlice(*r.ReviewPeriod, ReviewPeriods) {
		errs.Add("review_period", "review_period must be one of: monthly, quarterly, half_yearly, annual")
	}

	r.From = parseOptionalDate(&errs, "date_from", r.DateFrom)
	r.To = parseOptionalDate(&errs, "date_to", r.DateTo)
	r.ReviewedOn = parseOptionalDate(&errs, "review_date", r.ReviewDate)
	r.NextReview = parseOptionalDate(&errs, "next_review_date", r.NextReviewDate)

	for field, rating := range map[string]*int{
		"quality_of_work": r.QualityOfWork,
		"productivity":    r.Productivity,
		"communication":   r.Communication,
		"teamwork":        r.Teamwork,
		"initiative":      r.Initiative,
		"punctuality":     r.Punctuality,
	} {
		if rating != nil && !validator.InRange(*rating, MinRating, MaxRating) {
			errs.Add(field, field+" must be between 0 and 5")
		}
	}

	return errs.Err()
}

// Apply merges the set fields into review.
func (r UpdateReviewRequest) Apply(review *Review) {
	if r.Name != nil {
		review.Name = *r.Name
	}
	if r.ReviewPeriod != nil {
		review.ReviewPeriod = ReviewPeriod(*r.ReviewPeriod)
	}
	if r.ReviewedOn != nil {
		review.ReviewDate = *r.ReviewedOn
	}
	if r.From != nil {
		review.DateFrom = *r.From
	}
	if r.To != nil {
		review.DateTo = *r.To
	}
	setInt(&review.QualityOfWork, r.QualityOfWork)
	setInt(&review.Productivity, r.Productivity)
	setInt(&review.Communication, r.Communication)
	setInt(&review.Teamwork, r.Teamwork)
	setInt(&review.Initiative, r.Initiative)
	setInt(&review.Punctuality, r.Punctuality)
	if r.Achievements != nil {
		review.Achievements = r.Achievements
	}
	if r.AreasOfImprovement != nil {
		review.AreasOfImprovement = r.AreasOfImprovement
	}
	if r.ReviewerComments != nil {
		review.ReviewerComments = r.ReviewerComments
	}
	if r.EmployeeComments != nil {
		review.EmployeeComments = r.EmployeeComments
	}
	if r.TrainingNeeds != nil {
		review.TrainingNeeds = r.TrainingNeeds
	}
	if r.NextReview != nil {
		review.NextReviewDate = r.NextReview
	}
}

// ========== GOAL DTOs ==========

type CreateGoalRequest struct {
	ReviewID    string  `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	TargetDate  string  `json:"target_date"`
	Priority    *string `json:"priority,omitempty"`
	Progress    int     `json:"progress"`

	// Parsed by Validate
	Target time.Time `json:"-"`
}

func (r *CreateGoalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ReviewID) {
		errs.Add("review_id", "review_id is required")
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if validator.IsEmpty(r.TargetDate) {
		errs.Add("target_date", "target_date is required")
	} else if d, ok := validator.IsValidDate(r.TargetDate); ok {
		r.Target = d
	} else {
		errs.Add("target_date", "target_date must be in YYYY-MM-DD format")
	}
	if r.Priority != nil && !validator.IsInSlice(*r.Priority, Priorities) {
		errs.Add("priority", "priority must be one of: low, medium, high")
	}
	if err := ValidateProgress(r.Progress); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	return errs.Err()
}

type UpdateGoalRequest struct {
	ID               string  `json:"-"`
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	TargetDate       *string `json:"target_date,omitempty"`
	Priority         *string `json:"priority,omitempty"`
	Progress         *int    `json:"progress,omitempty"`
	Status           *string `json:"status,omitempty"`
	AchievementNotes *string `json:"achievement_notes,omitempty"`

	// Parsed by Validate
	Target *time.Time `json:"-"`
}

func (r *UpdateGoalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	r.Target = parseOptionalDate(&errs, "target_date", r.TargetDate)
	if r.Priority != nil && !validator.IsInSlice(*r.Priority, Priorities) {
		errs.Add("priority", "priority must be one of: low, medium, high")
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, GoalStatuses) {
		errs.Add("status", "status must be one of: not_started, in_progress, completed, cancelled")
	}
	if r.Progress != nil {
		if err := ValidateProgress(*r.Progress); err != nil {
			errs = append(errs, err.(validator.ValidationErrors)...)
		}
	}

	return errs.Err()
}

// ========== FILTER DTOs ==========

type ReviewFilter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	State        *string `json:"state,omitempty"`
	ReviewPeriod *string `json:"review_period,omitempty"`
	DateFrom     *string `json:"date_from,omitempty"` // review_date on or after
	DateTo       *string `json:"date_to,omitempty"`   // review_date on or before

	pagination.Params
}

func (f *ReviewFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Params.Normalize(&errs)

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.State != nil && !validator.IsInSlice(*f.State, ReviewStates) {
		errs.Add("state", "state must be one of: draft, submitted, reviewed, acknowledged, cancelled")
	}
	if f.ReviewPeriod != nil && !validator.IsInSlice(*f.ReviewPeriod, ReviewPeriods) {
		errs.Add("review_period", "review_period must be one of: monthly, quarterly, half_yearly, annual")
	}
	parseOptionalDate(&errs, "date_from", f.DateFrom)
	parseOptionalDate(&errs, "date_to", f.DateTo)

	return errs.Err()
}

type ListReviewResponse struct {
	Reviews    []Review `json:"reviews"`
	TotalCount int64    `json:"total_count"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
}

func parseOptionalDate(errs *validator.ValidationErrors, field string, value *string) *time.Time {
	if value == nil {
		return nil
	}
	d, ok := validator.IsValidDate(*value)
	if !ok {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return nil
	}
	return &d
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
