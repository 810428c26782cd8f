package performance

import (
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	cases := []struct {
		name     string
		ratings  Ratings
		overall  float64
		category Category
	}{
		{"mixed good", Ratings{5, 4, 4, 3, 4, 4}, 4.0, CategoryGood},
		{"all excellent", Ratings{5, 5, 5, 5, 5, 5}, 5.0, CategoryExcellent},
		{"unrated", Ratings{}, 0, CategoryPoor},
		{"boundary average", Ratings{3, 3, 2, 2, 3, 2}, 2.5, CategoryAverage},
		{"rounded into excellent", Ratings{5, 5, 5, 4, 4, 4}, 4.5, CategoryExcellent},
		{"two decimals", Ratings{4, 4, 4, 4, 4, 3}, 3.83, CategoryGood},
		{"rounded up into excellent", Ratings{5, 5, 4, 5, 4, 5}, 4.67, CategoryExcellent},
		{"missing counts as zero", Ratings{5, 5, 5, 0, 0, 0}, 2.5, CategoryAverage},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			overall, category, err := Score(c.ratings)
			require.NoError(t, err)
			assert.Equal(t, c.overall, overall)
			assert.Equal(t, c.category, category)
		})
	}
}

func TestScore_OutOfRange(t *testing.T) {
	_, _, err := Score(Ratings{QualityOfWork: 6, Punctuality: -1})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	m := errs.ToMap()
	assert.Contains(t, m, "quality_of_work")
	assert.Contains(t, m, "punctuality")
	assert.Len(t, m, 2)
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, CategoryPoor, CategoryFor(2.49))
	assert.Equal(t, CategoryAverage, CategoryFor(2.5))
	assert.Equal(t, CategoryAverage, CategoryFor(3.49))
	assert.Equal(t, CategoryGood, CategoryFor(3.5))
	assert.Equal(t, CategoryGood, CategoryFor(4.49))
	assert.Equal(t, CategoryExcellent, CategoryFor(4.5))
}

func TestValidateProgress(t *testing.T) {
	assert.NoError(t, ValidateProgress(0))
	assert.NoError(t, ValidateProgress(100))
	assert.Error(t, ValidateProgress(101))
	assert.Error(t, ValidateProgress(-1))
}

func TestGoal_MarkCompleted(t *testing.T) {
	g := Goal{Status: GoalInProgress, Progress: 40}
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	g.MarkCompleted(today)

	assert.Equal(t, GoalCompleted, g.Status)
	assert.Equal(t, 100, g.Progress)
	require.NotNil(t, g.CompletionDate)
	assert.Equal(t, today, *g.CompletionDate)
}

func TestReview_Rescore(t *testing.T) {
	r := Review{Ratings: Ratings{4, 4, 4, 4, 4, 4}}
	require.NoError(t, r.Rescore())
	assert.Equal(t, 4.0, r.OverallRating)
	assert.Equal(t, CategoryGood, r.RatingCategory)

	r.Teamwork = 9
	assert.Error(t, r.Rescore())
	assert.Equal(t, 4.0, r.OverallRating)
}
