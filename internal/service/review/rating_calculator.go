package review

import (
	"math"

	"github.com/peoplepulse/perform-backend-go/internal/domain/kpi"
	"github.com/peoplepulse/perform-backend-go/internal/domain/review"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/validator"
)

// RatingCalculator computes averages and percentage scores over a discrete
// rating scale.
type RatingCalculator struct {
	scale []float64
}

func NewRatingCalculator(scale []float64) *RatingCalculator {
	if len(scale) == 0 {
		scale = review.ScaleOf(review.FallbackRatingOptions())
	}
	return &RatingCalculator{scale: scale}
}

// AverageRating returns the mean of all rated (> 0) item values, with rated
// accomplishment entries joining both the numerator and the count.
// Qualitative and explicitly excluded items are omitted. Returns 0 when
// nothing is rated.
func (c *RatingCalculator) AverageRating(items []kpi.KPIItem, ratings map[string]float64, accomplishments []review.Accomplishment) float64 {
	var sum float64
	var count int

	for _, item := range items {
		if item.IsQualitative || item.ExcludeFromCalculation {
			continue
		}
		if rating := ratings[item.ID]; rating > 0 {
			sum += rating
			count++
		}
	}

	for _, acc := range accomplishments {
		if acc.ManagerRating > 0 {
			sum += acc.ManagerRating
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// RoundToAllowed snaps an arbitrary average to the nearest value of the
// discrete rating scale by minimal absolute distance. The comparison is
// strict, so on an exact tie the earlier (lower) scale value wins.
func (c *RatingCalculator) RoundToAllowed(avg float64) float64 {
	best := c.scale[0]
	bestDistance := math.Abs(avg - best)
	for _, value := range c.scale[1:] {
		if distance := math.Abs(avg - value); distance < bestDistance {
			best = value
			bestDistance = distance
		}
	}
	return best
}

// AllowedRating reports whether rating is exactly one of the scale values.
func (c *RatingCalculator) AllowedRating(rating float64) bool {
	for _, value := range c.scale {
		if rating == value {
			return true
		}
	}
	return false
}

// PercentageObtained computes (actual / target) * 100. A missing,
// non-numeric or zero target yields nil, not an error: percentage fields
// are optional outputs.
func PercentageObtained(actual, target *string) *float64 {
	if actual == nil || target == nil {
		return nil
	}
	actualValue, ok := validator.ParseNumeric(*actual)
	if !ok {
		return nil
	}
	targetValue, ok := validator.ParseNumeric(*target)
	if !ok || targetValue == 0 {
		return nil
	}
	pct := (actualValue / targetValue) * 100
	return &pct
}

// ManagerRatingPercentage weights a percentage score by the item's goal
// weight. A manual override string takes precedence verbatim (percent sign
// stripped).
func ManagerRatingPercentage(percentageObtained *float64, goalWeight *string, manual *string) *float64 {
	if manual != nil {
		if value, ok := validator.ParseNumeric(*manual); ok {
			return &value
		}
	}
	if percentageObtained == nil || goalWeight == nil {
		return nil
	}
	weight, ok := validator.ParseNumeric(*goalWeight)
	if !ok {
		return nil
	}
	weighted := *percentageObtained * (weight / 100)
	return &weighted
}
