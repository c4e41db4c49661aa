package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
	"github.com/peoplepulse/perform-backend-go/internal/domain/review"
)

func ptr(s string) *string { return &s }

func TestAverageRatingSkipsUnratedAndQualitative(t *testing.T) {
	t.Parallel()
	calc := NewRatingCalculator(nil)
	items := []kpi.KPIItem{
		{ID: "a"},
		{ID: "b"},
		{ID: "c", IsQualitative: true},
		{ID: "d", IsQualitative: true, ExcludeFromCalculation: true},
	}
	ratings := map[string]float64{"a": 1.00, "b": 1.50, "c": 1.50}

	avg := calc.AverageRating(items, ratings, nil)
	assert.InDelta(t, 1.25, avg, 1e-9)
}

func TestAverageRatingAllUnrated(t *testing.T) {
	t.Parallel()
	calc := NewRatingCalculator(nil)
	items := []kpi.KPIItem{{ID: "a"}, {ID: "b"}}

	avg := calc.AverageRating(items, map[string]float64{}, nil)
	assert.Equal(t, 0.0, avg)
}

func TestAverageRatingAccomplishmentsJoinTheMean(t *testing.T) {
	t.Parallel()
	calc := NewRatingCalculator(nil)
	items := []kpi.KPIItem{{ID: "a"}, {ID: "b"}}
	ratings := map[string]float64{"a": 1.00, "b": 1.50}
	accomplishments := []review.Accomplishment{
		{Description: "shipped migration", ManagerRating: 1.50},
	}

	avg := calc.AverageRating(items, ratings, accomplishments)
	assert.InDelta(t, 4.0/3.0, avg, 1e-9)
	assert.Equal(t, 1.25, calc.RoundToAllowed(avg))
}

func TestRoundToAllowedTieBreaksLow(t *testing.T) {
	t.Parallel()
	calc := NewRatingCalculator([]float64{1.00, 1.25, 1.50})

	// 1.125 is equidistant from 1.00 and 1.25.
	assert.Equal(t, 1.00, calc.RoundToAllowed(1.125))
	assert.Equal(t, 1.25, calc.RoundToAllowed(1.375-1e-9))
}

func TestRoundToAllowedIdempotent(t *testing.T) {
	t.Parallel()
	calc := NewRatingCalculator(nil)
	for _, v := range []float64{1.00, 1.25, 1.50} {
		assert.Equal(t, v, calc.RoundToAllowed(v))
		assert.Equal(t, v, calc.RoundToAllowed(calc.RoundToAllowed(v)))
	}
}

func TestAllowedRating(t *testing.T) {
	t.Parallel()
	calc := NewRatingCalculator(nil)
	assert.True(t, calc.AllowedRating(1.25))
	assert.False(t, calc.AllowedRating(1.30))
	assert.False(t, calc.AllowedRating(0))
}

func TestPercentageObtained(t *testing.T) {
	t.Parallel()
	pct := PercentageObtained(ptr("80"), ptr("100"))
	require.NotNil(t, pct)
	assert.InDelta(t, 80.0, *pct, 1e-9)
}

func TestPercentageObtainedZeroOrMissingTarget(t *testing.T) {
	t.Parallel()
	assert.Nil(t, PercentageObtained(ptr("80"), ptr("0")))
	assert.Nil(t, PercentageObtained(ptr("80"), nil))
	assert.Nil(t, PercentageObtained(nil, ptr("100")))
	assert.Nil(t, PercentageObtained(ptr("80"), ptr("n/a")))
}

func TestManagerRatingPercentageWeighted(t *testing.T) {
	t.Parallel()
	pct := 80.0
	got := ManagerRatingPercentage(&pct, ptr("50"), nil)
	require.NotNil(t, got)
	assert.InDelta(t, 40.0, *got, 1e-9)
}

func TestManagerRatingPercentageManualOverride(t *testing.T) {
	t.Parallel()
	pct := 80.0
	got := ManagerRatingPercentage(&pct, ptr("50"), ptr("95%"))
	require.NotNil(t, got)
	assert.InDelta(t, 95.0, *got, 1e-9)
}

func TestManagerRatingPercentageMissingInputs(t *testing.T) {
	t.Parallel()
	pct := 80.0
	assert.Nil(t, ManagerRatingPercentage(nil, ptr("50"), nil))
	assert.Nil(t, ManagerRatingPercentage(&pct, nil, nil))
}

func TestFullRatingPipeline(t *testing.T) {
	t.Parallel()
	calc := NewRatingCalculator(nil)
	items := []kpi.KPIItem{{ID: "a"}, {ID: "b"}}
	ratings := map[string]float64{"a": 1.00, "b": 1.50}

	avg := calc.AverageRating(items, ratings, nil)
	assert.InDelta(t, 1.25, avg, 1e-9)
	assert.Equal(t, 1.25, calc.RoundToAllowed(avg))

	// Adding a rated accomplishment shifts the mean and the rounding.
	avg = calc.AverageRating(items, ratings, []review.Accomplishment{
		{Description: "mentored two juniors", ManagerRating: 1.50},
	})
	assert.InDelta(t, 1.3333333, avg, 1e-6)
	assert.Equal(t, 1.25, calc.RoundToAllowed(avg))
}
