package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParse(t *testing.T) {
	r, err := Parse("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, day("2025-01-01"), r.From)
	assert.Equal(t, day("2025-01-31"), r.To)
	assert.Equal(t, 31, r.Days())

	_, err = Parse("", "2025-01-31")
	assert.ErrorIs(t, err, ErrMissingBound)

	_, err = Parse("2025-01-01", "31/01/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	inverted, err := Parse("2025-02-01", "2025-01-01")
	require.NoError(t, err)
	assert.True(t, inverted.Inverted())
	assert.Equal(t, 0, inverted.Days())
}

func TestDays_SingleDay(t *testing.T) {
	assert.Equal(t, 1, Range{From: day("2025-03-10"), To: day("2025-03-10")}.Days())
}

func TestDays_BeyondDurationRange(t *testing.T) {
	r, err := Parse("0001-01-01", "9999-12-31")
	require.NoError(t, err)
	assert.Equal(t, 3652059, r.Days())

	assert.Equal(t, 109573, Range{From: day("1900-01-01"), To: day("2199-12-31")}.Days())
}

func TestDays_AcrossDST(t *testing.T) {
	// Dates are UTC midnights, so a DST change in some local zone cannot shift the count.
	assert.Equal(t, 31, Range{From: day("2025-03-01"), To: day("2025-03-31")}.Days())
}

func TestContainsInstant(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	r := Range{From: day("2025-01-01"), To: day("2025-01-31")}

	// 2025-01-31 20:00 UTC is 2025-02-01 01:30 in Kolkata.
	assert.False(t, r.ContainsInstant(time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC), loc))
	assert.True(t, r.ContainsInstant(time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC), time.UTC))
	// 2024-12-31 19:00 UTC is 2025-01-01 00:30 in Kolkata.
	assert.True(t, r.ContainsInstant(time.Date(2024, 12, 31, 19, 0, 0, 0, time.UTC), loc))
}

func TestOverlapsAndWithin(t *testing.T) {
	jan := Range{From: day("2025-01-01"), To: day("2025-01-31")}
	cases := []struct {
		name     string
		other    Range
		overlaps bool
		within   bool
	}{
		{"inside", Range{From: day("2025-01-10"), To: day("2025-01-12")}, true, true},
		{"touching end", Range{From: day("2025-01-31"), To: day("2025-02-02")}, true, false},
		{"touching start", Range{From: day("2024-12-30"), To: day("2025-01-01")}, true, false},
		{"after", Range{From: day("2025-02-01"), To: day("2025-02-02")}, false, false},
		{"before", Range{From: day("2024-12-01"), To: day("2024-12-31")}, false, false},
		{"same", jan, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.overlaps, jan.Overlaps(c.other))
			assert.Equal(t, c.overlaps, c.other.Overlaps(jan))
			assert.Equal(t, c.within, jan.Within(c.other))
		})
	}
}

func TestBounds(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	r := Range{From: day("2025-01-01"), To: day("2025-01-02")}

	start, end := r.Bounds(loc)
	assert.Equal(t, time.Date(2024, 12, 31, 18, 30, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2025, 1, 2, 18, 30, 0, 0, time.UTC), end.UTC())
}

func TestString(t *testing.T) {
	assert.Equal(t, "2025-01-01..2025-01-31", Range{From: day("2025-01-01"), To: day("2025-01-31")}.String())
}
