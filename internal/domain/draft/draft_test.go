package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidKey(t *testing.T) {
	t.Parallel()
	assert.True(t, ValidKey("kpi-review-draft-abc"))
	assert.True(t, ValidKey("kpi-setting-draft-abc"))

	assert.False(t, ValidKey("kpi-review-draft-"))
	assert.False(t, ValidKey("session-draft-abc"))
	assert.False(t, ValidKey(""))
}

func TestMergeDraftNeverClobbersBase(t *testing.T) {
	t.Parallel()
	base := Payload{
		Ratings:  map[string]float64{"a": 1.50},
		Comments: map[string]string{"a": "server copy"},
	}
	d := Payload{
		Ratings:  map[string]float64{"a": 1.00, "b": 1.25},
		Comments: map[string]string{"a": "stale draft", "b": "drafted"},
	}

	merged := Merge(base, d)
	assert.Equal(t, 1.50, merged.Ratings["a"])
	assert.Equal(t, "server copy", merged.Comments["a"])
	assert.Equal(t, 1.25, merged.Ratings["b"])
	assert.Equal(t, "drafted", merged.Comments["b"])
}

func TestMergeFillsEmptyScalars(t *testing.T) {
	t.Parallel()
	base := Payload{OverallComment: "final words"}
	d := Payload{OverallComment: "draft words", Signature: "draft-sig"}

	merged := Merge(base, d)
	assert.Equal(t, "final words", merged.OverallComment)
	assert.Equal(t, "draft-sig", merged.Signature)
}

func TestMergeEmptyDraftIsNoOp(t *testing.T) {
	t.Parallel()
	base := Payload{
		Ratings:        map[string]float64{"a": 1.25},
		OverallComment: "done",
	}

	merged := Merge(base, Payload{})
	assert.Equal(t, base.Ratings, merged.Ratings)
	assert.Equal(t, "done", merged.OverallComment)
}

func TestMergeItemsOnlyWhenBaseEmpty(t *testing.T) {
	t.Parallel()
	d := Payload{Items: []SettingItem{{Title: "drafted item"}}}

	merged := Merge(Payload{}, d)
	assert.Len(t, merged.Items, 1)

	base := Payload{Items: []SettingItem{{Title: "saved item"}}}
	merged = Merge(base, d)
	assert.Equal(t, "saved item", merged.Items[0].Title)
}
