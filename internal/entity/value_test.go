package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
)

func TestComputeDiff(t *testing.T) {
	t.Run("returns nil for equal values", func(t *testing.T) {
		a := entity.Value{"name": "pump", "speed": 2}
		b := entity.Value{"name": "pump", "speed": 2}
		require.Nil(t, entity.ComputeDiff(a, b))
	})

	t.Run("records changed and added properties", func(t *testing.T) {
		a := entity.Value{"name": "pump", "speed": 2}
		b := entity.Value{"name": "pump", "speed": 3, "filter": "water"}
		diff := entity.ComputeDiff(a, b)
		require.Equal(t, entity.Diff{"speed": 3, "filter": "water"}, diff)
	})

	t.Run("records removed properties as Unset", func(t *testing.T) {
		a := entity.Value{"name": "pump", "filter": "water"}
		b := entity.Value{"name": "pump"}
		diff := entity.ComputeDiff(a, b)
		require.Len(t, diff, 1)
		require.True(t, entity.IsUnset(diff["filter"]))
	})

	t.Run("distinguishes Unset from zero values", func(t *testing.T) {
		a := entity.Value{"count": 1}
		b := entity.Value{"count": 0}
		diff := entity.ComputeDiff(a, b)
		require.False(t, entity.IsUnset(diff["count"]))
		require.Equal(t, 0, diff["count"])
	})
}

func TestApplyDiffRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		a, b entity.Value
	}{
		{"plain change", entity.Value{"name": "pump", "speed": 2}, entity.Value{"name": "pump", "speed": 5}},
		{"removal", entity.Value{"name": "pump", "filter": "water"}, entity.Value{"name": "pump"}},
		{"addition", entity.Value{"name": "pump"}, entity.Value{"name": "pump", "filter": "oil"}},
		{"empty to full", entity.Value{}, entity.Value{"name": "lamp", "enabled": true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diff := entity.ComputeDiff(tc.a, tc.b)
			got := entity.ApplyDiff(tc.a.Clone(), diff)
			require.True(t, got.Equal(tc.b), "got %v, want %v", got, tc.b)
		})
	}
}

func TestValueClone(t *testing.T) {
	a := entity.Value{"name": "pump", "settings": entity.Value{"mode": "auto"}}
	clone := a.Clone()
	clone["name"] = "lamp"
	clone["settings"].(entity.Value)["mode"] = "manual"

	require.Equal(t, "pump", a["name"])
	require.Equal(t, "auto", a["settings"].(entity.Value)["mode"])
}

func TestValueEqual(t *testing.T) {
	require.True(t, entity.Value(nil).Equal(entity.Value{}))
	require.True(t, entity.Value{}.Equal(nil))
	require.False(t, entity.Value{"a": 1}.Equal(nil))
}

func TestMergeDiff(t *testing.T) {
	t.Run("later entries win", func(t *testing.T) {
		earlier := entity.Diff{"speed": 2, "filter": "water"}
		later := entity.Diff{"speed": 3}
		merged := entity.MergeDiff(earlier, later)
		require.Equal(t, entity.Diff{"speed": 3, "filter": "water"}, merged)
	})

	t.Run("empty inputs merge to nil", func(t *testing.T) {
		require.Nil(t, entity.MergeDiff(nil, nil))
	})

	t.Run("Unset survives merging", func(t *testing.T) {
		merged := entity.MergeDiff(entity.Diff{"filter": "water"}, entity.Diff{"filter": entity.Unset})
		require.True(t, entity.IsUnset(merged["filter"]))
	})
}
