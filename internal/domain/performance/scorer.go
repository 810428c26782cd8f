package performance

import (
	"math"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

const (
	MinRating   = 0
	MaxRating   = 5
	MinProgress = 0
	MaxProgress = 100
)

// Validate checks every rating lies in 0..5.
func (r Ratings) Validate() error {
	var errs validator.ValidationErrors

	for _, f := range r.fields() {
		if !validator.InRange(f.value, MinRating, MaxRating) {
			errs.Add(f.name, f.name+" must be between 0 and 5")
		}
	}

	return errs.Err()
}

type ratingField struct {
	name  string
	value int
}

func (r Ratings) fields() []ratingField {
	return []ratingField{
		{"quality_of_work", r.QualityOfWork},
		{"productivity", r.Productivity},
		{"communication", r.Communication},
		{"teamwork", r.Teamwork},
		{"initiative", r.Initiative},
		{"punctuality", r.Punctuality},
	}
}

// Score returns the mean of the six ratings rounded to 2 decimals and its category.
func Score(r Ratings) (float64, Category, error) {
	if err := r.Validate(); err != nil {
		return 0, "", err
	}
	fields := r.fields()
	sum := 0
	for _, f := range fields {
		sum += f.value
	}
	overall := math.Round(float64(sum)/float64(len(fields))*100) / 100
	return overall, CategoryFor(overall), nil
}

// CategoryFor buckets an overall rating.
func CategoryFor(overall float64) Category {
	switch {
	case overall < 2.5:
		return CategoryPoor
	case overall < 3.5:
		return CategoryAverage
	case overall < 4.5:
		return CategoryGood
	default:
		return CategoryExcellent
	}
}

// ValidateProgress checks a goal progress percentage.
func ValidateProgress(progress int) error {
	var errs validator.ValidationErrors

	if !validator.InRange(progress, MinProgress, MaxProgress) {
		errs.Add("progress", "progress must be between 0 and 100")
	}

	return errs.Err()
}
