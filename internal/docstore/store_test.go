package docstore_test

import (
	"testing"
	"time"

	"go-jobboard-backend/internal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanUpdate(t *testing.T) {
	plan, err := docstore.PlanUpdate(map[string]any{
		"name":      "Ana",
		"tags":      []string{"a", "b"},
		"updatedAt": docstore.ServerTimestamp,
		"createdAt": docstore.ServerTimestamp,
		"saved":     docstore.ArrayUnion("v1"),
		"old":       docstore.ArrayRemove("v0", "v9"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "tags"}, plan.SetKeys())
	assert.Equal(t, []any{"a", "b"}, plan.Set["tags"])
	assert.Equal(t, []string{"createdAt", "updatedAt"}, plan.Timestamps)
	assert.Equal(t, map[string][]any{"saved": {"v1"}}, plan.Union)
	assert.Equal(t, map[string][]any{"old": {"v0", "v9"}}, plan.Remove)
}

func TestPlanUpdateRejectsEmptyField(t *testing.T) {
	_, err := docstore.PlanUpdate(map[string]any{"": 1})
	assert.ErrorIs(t, err, docstore.ErrInvalidTransform)
}

func TestPlanCreateRejectsArrayTransforms(t *testing.T) {
	_, err := docstore.PlanCreate(map[string]any{"saved": docstore.ArrayUnion("v1")})
	assert.ErrorIs(t, err, docstore.ErrInvalidTransform)

	plan, err := docstore.PlanCreate(map[string]any{"saved": []string{}, "createdAt": docstore.ServerTimestamp})
	require.NoError(t, err)
	assert.Equal(t, []any{}, plan.Set["saved"])
	assert.Equal(t, []string{"createdAt"}, plan.Timestamps)
}

func TestTransformString(t *testing.T) {
	assert.Equal(t, "ServerTimestamp", docstore.ServerTimestamp.String())
	assert.Equal(t, "ArrayUnion[a]", docstore.ArrayUnion("a").String())
	assert.Equal(t, "ArrayRemove[b]", docstore.ArrayRemove("b").String())
}

type dateTime int64

func (d dateTime) Time() time.Time {
	return time.UnixMilli(int64(d))
}

func TestDecodeHelpers(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	data := map[string]any{
		"name":    "Ana",
		"curso":   nil,
		"saved":   []any{"v1", 3, "v2"},
		"asTime":  ts,
		"asText":  "2024-03-01T12:00:00.000000+00:00",
		"asDate":  dateTime(ts.UnixMilli()),
		"garbage": "yesterday",
	}

	assert.Equal(t, "Ana", docstore.String(data, "name"))
	assert.Equal(t, "", docstore.String(data, "missing"))
	assert.Nil(t, docstore.OptionalString(data, "curso"))
	require.NotNil(t, docstore.OptionalString(data, "name"))
	assert.Equal(t, []string{"v1", "v2"}, docstore.Strings(data, "saved"))
	assert.Equal(t, []string{}, docstore.Strings(data, "missing"))

	assert.True(t, docstore.Time(data, "asTime").Equal(ts))
	assert.True(t, docstore.Time(data, "asText").Equal(ts))
	assert.True(t, docstore.Time(data, "asDate").Equal(ts))
	assert.True(t, docstore.Time(data, "garbage").IsZero())
}

func TestContainsAndEqual(t *testing.T) {
	data := map[string]any{"saved": []string{"v1", "v2"}, "n": []any{float64(1)}}

	assert.True(t, docstore.Contains(data, "saved", "v2"))
	assert.False(t, docstore.Contains(data, "saved", "v3"))
	assert.False(t, docstore.Contains(data, "missing", "v1"))
	assert.True(t, docstore.Contains(data, "n", 1))

	assert.True(t, docstore.Equal(int64(2), 2.0))
	assert.False(t, docstore.Equal("2", 2))
}

func TestNormalizeDoesNotAlias(t *testing.T) {
	src := map[string]any{"saved": []any{"v1"}}
	out := docstore.NormalizeMap(src)

	out["saved"].([]any)[0] = "changed"
	assert.Equal(t, "v1", src["saved"].([]any)[0])
	assert.Equal(t, map[string]any{}, docstore.NormalizeMap(nil))
}
