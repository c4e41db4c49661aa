package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func weightedItem(title string, weight *string) KPIItem {
	return KPIItem{Title: title, Description: "measurable objective", GoalWeight: weight}
}

func TestValidateGoalWeightsNoneWeighted(t *testing.T) {
	t.Parallel()
	items := []KPIItem{
		weightedItem("revenue", nil),
		weightedItem("churn", nil),
	}

	result, err := ValidateGoalWeights(items)
	require.NoError(t, err)
	assert.True(t, result.NeedsConfirmation)
}

func TestValidateGoalWeightsPartial(t *testing.T) {
	t.Parallel()
	items := []KPIItem{
		weightedItem("revenue", ptr("60")),
		weightedItem("churn", nil),
	}

	_, err := ValidateGoalWeights(items)
	assert.ErrorIs(t, err, ErrPartialGoalWeights)
}

func TestValidateGoalWeightsSumMismatch(t *testing.T) {
	t.Parallel()
	items := []KPIItem{
		weightedItem("revenue", ptr("60")),
		weightedItem("churn", ptr("30")),
	}

	_, err := ValidateGoalWeights(items)
	assert.ErrorIs(t, err, ErrGoalWeightSum)
}

func TestValidateGoalWeightsExact(t *testing.T) {
	t.Parallel()
	items := []KPIItem{
		weightedItem("revenue", ptr("60")),
		weightedItem("churn", ptr("40")),
	}

	result, err := ValidateGoalWeights(items)
	require.NoError(t, err)
	assert.False(t, result.NeedsConfirmation)
}

func TestValidateGoalWeightsWithinTolerance(t *testing.T) {
	t.Parallel()
	items := []KPIItem{
		weightedItem("a", ptr("33.33")),
		weightedItem("b", ptr("33.33")),
		weightedItem("c", ptr("33.34")),
	}

	_, err := ValidateGoalWeights(items)
	assert.NoError(t, err)
}

func TestValidateGoalWeightsFractionalInput(t *testing.T) {
	t.Parallel()
	// Weights entered as fractions are treated as percentages.
	items := []KPIItem{
		weightedItem("revenue", ptr("0.6")),
		weightedItem("churn", ptr("0.4")),
	}

	result, err := ValidateGoalWeights(items)
	require.NoError(t, err)
	assert.False(t, result.NeedsConfirmation)
}

func TestValidateGoalWeightsPercentSignTolerated(t *testing.T) {
	t.Parallel()
	items := []KPIItem{
		weightedItem("revenue", ptr("60%")),
		weightedItem("churn", ptr("40%")),
	}

	_, err := ValidateGoalWeights(items)
	assert.NoError(t, err)
}

func TestValidateGoalWeightsIgnoresBlankAndQualitativeItems(t *testing.T) {
	t.Parallel()
	items := []KPIItem{
		weightedItem("revenue", ptr("100")),
		{Title: "", Description: "", GoalWeight: nil},
		{Title: "culture", Description: "team health", IsQualitative: true},
	}

	result, err := ValidateGoalWeights(items)
	require.NoError(t, err)
	assert.False(t, result.NeedsConfirmation)
}

func TestValidateGoalWeightsUnparseableWeightCountsAsUnweighted(t *testing.T) {
	t.Parallel()
	items := []KPIItem{
		weightedItem("revenue", ptr("sixty")),
		weightedItem("churn", ptr("40")),
	}

	_, err := ValidateGoalWeights(items)
	assert.ErrorIs(t, err, ErrPartialGoalWeights)
}
