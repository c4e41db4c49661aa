package draft

import (
	"context"
	"strings"
	"time"
)

const (
	reviewKeyPrefix  = "kpi-review-draft-"
	settingKeyPrefix = "kpi-setting-draft-"
)

// ReviewKey returns the draft key for an in-progress review form.
func ReviewKey(reviewID string) string {
	return reviewKeyPrefix + reviewID
}

// SettingKey returns the draft key for an in-progress KPI setting form.
func SettingKey(employeeID string) string {
	return settingKeyPrefix + employeeID
}

// StorageKey namespaces a client draft key under its owning user. Drafts
// are private unsaved form state: the employee and the manager of the
// same review each get their own entry, and one actor's draft is never
// served to another.
func StorageKey(userID, key string) string {
	return userID + ":" + key
}

// ValidKey reports whether key belongs to one of the known draft
// namespaces and carries a non-empty suffix.
func ValidKey(key string) bool {
	for _, prefix := range []string{reviewKeyPrefix, settingKeyPrefix} {
		if strings.HasPrefix(key, prefix) && len(key) > len(prefix) {
			return true
		}
	}
	return false
}

// SettingItem is one unsaved KPI item row in a KPI setting draft.
type SettingItem struct {
	Title                  string  `json:"title,omitempty"`
	Description            string  `json:"description,omitempty"`
	IsQualitative          bool    `json:"is_qualitative,omitempty"`
	TargetValue            *string `json:"target_value,omitempty"`
	MeasureUnit            *string `json:"measure_unit,omitempty"`
	GoalWeight             *string `json:"goal_weight,omitempty"`
	ExpectedCompletionDate *string `json:"expected_completion_date,omitempty"`
}

// Payload is the unsaved form state snapshot. Review drafts use the map
// fields; KPI setting drafts use Items.
type Payload struct {
	Ratings      map[string]float64 `json:"ratings,omitempty"`
	Comments     map[string]string  `json:"comments,omitempty"`
	Qualitative  map[string]string  `json:"qualitative,omitempty"`
	ActualValues map[string]string  `json:"actual_values,omitempty"`

	OverallComment string `json:"overall_comment,omitempty"`
	Signature      string `json:"signature,omitempty"`

	Items []SettingItem `json:"items,omitempty"`
}

// Draft is a locally cached snapshot of unsaved form state. It is written
// on every change, deleted only on confirmed successful submission, and
// never overwrites non-empty authoritative state on load.
type Draft struct {
	Key     string    `json:"key"`
	Payload Payload   `json:"payload"`
	SavedAt time.Time `json:"saved_at"`
}

// Repository is the injected key-value store backing drafts. Load returns
// (nil, nil) when no draft exists for the key.
type Repository interface {
	Load(ctx context.Context, key string) (*Draft, error)
	Save(ctx context.Context, d Draft) error
	Clear(ctx context.Context, key string) error
}

// Merge overlays a loaded draft onto authoritative state. A draft value
// lands only where the base is empty or zero-valued: server-sourced or
// already-edited values are never clobbered by a stale draft.
func Merge(base Payload, d Payload) Payload {
	base.Ratings = mergeFloatMap(base.Ratings, d.Ratings)
	base.Comments = mergeStringMap(base.Comments, d.Comments)
	base.Qualitative = mergeStringMap(base.Qualitative, d.Qualitative)
	base.ActualValues = mergeStringMap(base.ActualValues, d.ActualValues)

	if base.OverallComment == "" {
		base.OverallComment = d.OverallComment
	}
	if base.Signature == "" {
		base.Signature = d.Signature
	}
	if len(base.Items) == 0 {
		base.Items = d.Items
	}
	return base
}

func mergeFloatMap(base, overlay map[string]float64) map[string]float64 {
	if len(overlay) == 0 {
		return base
	}
	merged := make(map[string]float64, len(base)+len(overlay))
	for k, v := range overlay {
		merged[k] = v
	}
	for k, v := range base {
		merged[k] = v
	}
	return merged
}

func mergeStringMap(base, overlay map[string]string) map[string]string {
	if len(overlay) == 0 {
		return base
	}
	merged := make(map[string]string, len(base)+len(overlay))
	for k, v := range overlay {
		merged[k] = v
	}
	for k, v := range base {
		merged[k] = v
	}
	return merged
}
