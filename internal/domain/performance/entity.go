package performance

import "time"

type ReviewPeriod string

const (
	PeriodMonthly    ReviewPeriod = "monthly"
	PeriodQuarterly  ReviewPeriod = "quarterly"
	PeriodHalfYearly ReviewPeriod = "half_yearly"
	PeriodAnnual     ReviewPeriod = "annual"
)

var ReviewPeriods = []string{string(PeriodMonthly), string(PeriodQuarterly), string(PeriodHalfYearly), string(PeriodAnnual)}

type Category string

const (
	CategoryPoor      Category = "poor"
	CategoryAverage   Category = "average"
	CategoryGood      Category = "good"
	CategoryExcellent Category = "excellent"
)

type ReviewState string

const (
	ReviewDraft        ReviewState = "draft"
	ReviewSubmitted    ReviewState = "submitted"
	ReviewReviewed     ReviewState = "reviewed"
	ReviewAcknowledged ReviewState = "acknowledged"
	ReviewCancelled    ReviewState = "cancelled"
)

var ReviewStates = []string{
	string(ReviewDraft), string(ReviewSubmitted), string(ReviewReviewed),
	string(ReviewAcknowledged), string(ReviewCancelled),
}

// Ratings are scored 1 to 5; 0 means not rated.
type Ratings struct {
	QualityOfWork int `json:"quality_of_work"`
	Productivity  int `json:"productivity"`
	Communication int `json:"communication"`
	Teamwork      int `json:"teamwork"`
	Initiative    int `json:"initiative"`
	Punctuality   int `json:"punctuality"`
}

type Review struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	EmployeeID   string       `json:"employee_id"`
	ReviewerID   string       `json:"reviewer_id"`
	ReviewPeriod ReviewPeriod `json:"review_period"`
	ReviewDate   time.Time    `json:"review_date"`
	DateFrom     time.Time    `json:"date_from"`
	DateTo       time.Time    `json:"date_to"`
	Ratings
	OverallRating      float64     `json:"overall_rating"`
	RatingCategory     Category    `json:"rating_category"`
	Achievements       *string     `json:"achievements,omitempty"`
	AreasOfImprovement *string     `json:"areas_of_improvement,omitempty"`
	ReviewerComments   *string     `json:"reviewer_comments,omitempty"`
	EmployeeComments   *string     `json:"employee_comments,omitempty"`
	TrainingNeeds      *string     `json:"training_needs,omitempty"`
	NextReviewDate     *time.Time  `json:"next_review_date,omitempty"`
	State              ReviewState `json:"state"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`

	// Join
	EmployeeName *string `json:"employee_name,omitempty"`
	Goals        []Goal  `json:"goals,omitempty"`
}

// Rescore recomputes OverallRating and RatingCategory from the ratings.
func (r *Review) Rescore() error {
	overall, category, err := Score(r.Ratings)
	if err != nil {
		return err
	}
	r.OverallRating = overall
	r.RatingCategory = category
	return nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)}

type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
	GoalCancelled  GoalStatus = "cancelled"
)

var GoalStatuses = []string{string(GoalNotStarted), string(GoalInProgress), string(GoalCompleted), string(GoalCancelled)}

type Goal struct {
	ID               string     `json:"id"`
	ReviewID         *string    `json:"review_id,omitempty"`
	EmployeeID       string     `json:"employee_id"`
	Name             string     `json:"name"`
	Description      *string    `json:"description,omitempty"`
	TargetDate       time.Time  `json:"target_date"`
	Priority         Priority   `json:"priority"`
	Progress         int        `json:"progress"`
	Status           GoalStatus `json:"status"`
	AchievementNotes *string    `json:"achievement_notes,omitempty"`
	CompletionDate   *time.Time `json:"completion_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// MarkCompleted closes the goal at full progress on today's date.
func (g *Goal) MarkCompleted(today time.Time) {
	g.Status = GoalCompleted
	g.Progress = 100
	g.CompletionDate = &today
}
