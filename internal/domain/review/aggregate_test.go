package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestNormalizePrefersStructuredPayload(t *testing.T) {
	t.Parallel()
	legacy := `{"items":[{"item_id":"a","rating":1.00,"comment":"old"}]}`
	rv := Review{
		ItemRatings: ItemRatings{
			Employee: map[string]ItemRating{
				"a": {Rating: 1.50, Comment: "new", ActualValue: strptr("42")},
			},
		},
		EmployeeComment: &legacy,
	}

	got := Normalize(rv, nil)
	assert.Equal(t, 1.50, got.Employee.Ratings["a"])
	assert.Equal(t, "new", got.Employee.Comments["a"])
	assert.Equal(t, "42", got.Employee.ActualValues["a"])
}

func TestNormalizeFallsBackToLegacyBlob(t *testing.T) {
	t.Parallel()
	legacy := `{"items":[{"item_id":"a","rating":1.25,"comment":"steady"},{"item_id":"b","rating":0}],"average_rating":1.25,"rounded_rating":1.25}`
	rv := Review{EmployeeComment: &legacy}

	got := Normalize(rv, nil)
	assert.Equal(t, 1.25, got.Employee.Ratings["a"])
	assert.Equal(t, "steady", got.Employee.Comments["a"])
	_, rated := got.Employee.Ratings["b"]
	assert.False(t, rated)
}

func TestNormalizeLegacyNumericItemIDs(t *testing.T) {
	t.Parallel()
	legacy := `{"items":[{"item_id":7,"rating":1.5}]}`
	rv := Review{ManagerComment: &legacy}

	got := Normalize(rv, nil)
	assert.Equal(t, 1.5, got.Manager.Ratings["7"])
}

func TestNormalizeMalformedLegacyDegradesSilently(t *testing.T) {
	t.Parallel()
	legacy := `this was a plain text comment`
	rv := Review{EmployeeComment: &legacy}

	got := Normalize(rv, nil)
	assert.Empty(t, got.Employee.Ratings)
	assert.Empty(t, got.Employee.Comments)
}

func TestNormalizeRoutesQualitativeItems(t *testing.T) {
	t.Parallel()
	rv := Review{
		ItemRatings: ItemRatings{
			Employee: map[string]ItemRating{
				"q": {QualitativeRating: strptr(QualitativeExceeds)},
				"n": {Rating: 1.25},
			},
		},
	}

	got := Normalize(rv, map[string]bool{"q": true})
	assert.Equal(t, QualitativeExceeds, got.Employee.Qualitative["q"])
	_, rated := got.Employee.Ratings["q"]
	assert.False(t, rated)
	assert.Equal(t, 1.25, got.Employee.Ratings["n"])
}

func TestNormalizeEmptyReview(t *testing.T) {
	t.Parallel()
	got := Normalize(Review{}, nil)
	assert.Empty(t, got.Employee.Ratings)
	assert.Empty(t, got.Manager.Ratings)
}
