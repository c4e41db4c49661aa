package review

import (
	"encoding/json"
)

// RatingSet is one side's normalized in-memory rating state.
type RatingSet struct {
	Ratings      map[string]float64
	Comments     map[string]string
	Qualitative  map[string]string
	ActualValues map[string]string
}

func newRatingSet() RatingSet {
	return RatingSet{
		Ratings:      map[string]float64{},
		Comments:     map[string]string{},
		Qualitative:  map[string]string{},
		ActualValues: map[string]string{},
	}
}

// NormalizedRatings is the single internal shape all wire variants decode
// into. Code past this boundary never branches on payload shape.
type NormalizedRatings struct {
	Employee RatingSet
	Manager  RatingSet
}

// legacyItemID accepts both quoted and bare numeric item IDs found in old
// review blobs.
type legacyItemID string

func (id *legacyItemID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = legacyItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = legacyItemID(n.String())
	return nil
}

type legacyItem struct {
	ItemID  legacyItemID `json:"item_id"`
	Rating  float64      `json:"rating"`
	Comment string       `json:"comment"`
}

// LegacySummary is the shape of the JSON blob older records store inside
// the employee_comment/manager_comment columns.
type LegacySummary struct {
	Items         []legacyItem `json:"items"`
	AverageRating float64      `json:"average_rating"`
	RoundedRating float64      `json:"rounded_rating"`
}

// Normalize assembles per-item ratings and comments into normalized maps.
// The structured ItemRatings payload is preferred; when a side has no
// structured data its legacy comment blob is parsed instead. Malformed
// legacy JSON degrades to empty maps without error: old records are allowed
// to be lossy. Items in the qualitative set are routed to the label map
// rather than the numeric map.
func Normalize(rv Review, qualitative map[string]bool) NormalizedRatings {
	return NormalizedRatings{
		Employee: normalizeSide(rv.ItemRatings.Employee, rv.EmployeeComment, qualitative),
		Manager:  normalizeSide(rv.ItemRatings.Manager, rv.ManagerComment, qualitative),
	}
}

func normalizeSide(structured map[string]ItemRating, legacy *string, qualitative map[string]bool) RatingSet {
	set := newRatingSet()

	if len(structured) > 0 {
		for itemID, ir := range structured {
			if ir.QualitativeRating != nil && *ir.QualitativeRating != "" {
				set.Qualitative[itemID] = *ir.QualitativeRating
			} else if !qualitative[itemID] && ir.Rating > 0 {
				set.Ratings[itemID] = ir.Rating
			}
			if ir.Comment != "" {
				set.Comments[itemID] = ir.Comment
			}
			if ir.ActualValue != nil && *ir.ActualValue != "" {
				set.ActualValues[itemID] = *ir.ActualValue
			}
		}
		return set
	}

	if legacy == nil || *legacy == "" {
		return set
	}

	var summary LegacySummary
	if err := json.Unmarshal([]byte(*legacy), &summary); err != nil {
		return set
	}

	for _, item := range summary.Items {
		itemID := string(item.ItemID)
		if itemID == "" {
			continue
		}
		if !qualitative[itemID] && item.Rating > 0 {
			set.Ratings[itemID] = item.Rating
		}
		if item.Comment != "" {
			set.Comments[itemID] = item.Comment
		}
	}
	return set
}
