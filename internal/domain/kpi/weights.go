package kpi

import (
	"fmt"
	"math"

	"github.com/peoplepulse/perform-backend-go/internal/pkg/validator"
)

const weightSumTolerance = 0.01

// WeightValidation is the outcome of a successful goal-weight check.
type WeightValidation struct {
	// NeedsConfirmation is set when no item carries a goal weight; the
	// caller must obtain an explicit user confirmation before proceeding
	// without weights.
	NeedsConfirmation bool
}

// ValidateGoalWeights enforces the all-or-nothing, sum-to-100 invariant.
// Only items with a non-empty title and description are considered. The
// contract is a strict three-way branch: no weighted items is valid but
// needs confirmation, a partially weighted set is always rejected, and a
// fully weighted set must sum to 100 within tolerance. Weights given as
// fractions (every value <= 1) are scaled to percentages before summing.
func ValidateGoalWeights(items []KPIItem) (WeightValidation, error) {
	var weights []float64
	var unweighted int

	for _, item := range items {
		if validator.IsEmpty(item.Title) || validator.IsEmpty(item.Description) {
			continue
		}
		if item.IsQualitative {
			continue
		}
		if item.GoalWeight == nil {
			unweighted++
			continue
		}
		w, ok := validator.ParseNumeric(*item.GoalWeight)
		if !ok {
			unweighted++
			continue
		}
		weights = append(weights, w)
	}

	if len(weights) == 0 {
		return WeightValidation{NeedsConfirmation: true}, nil
	}

	if unweighted > 0 {
		return WeightValidation{}, ErrPartialGoalWeights
	}

	fractional := true
	for _, w := range weights {
		if w > 1 {
			fractional = false
			break
		}
	}

	var total float64
	for _, w := range weights {
		if fractional {
			w *= 100
		}
		total += w
	}

	if math.Abs(total-100) > weightSumTolerance {
		return WeightValidation{}, fmt.Errorf("%w: total is %.2f", ErrGoalWeightSum, total)
	}

	return WeightValidation{}, nil
}
