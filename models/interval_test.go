package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, date, start, end string) Interval {
	t.Helper()
	iv, err := NewInterval(date, start, end)
	require.NoError(t, err)
	return iv
}

func TestNewInterval_Validation(t *testing.T) {
	cases := []struct {
		name             string
		date, start, end string
	}{
		{"inverted range", "2025-01-10", "10:00", "09:00"},
		{"equal start and end", "2025-01-10", "09:00", "09:00"},
		{"bad hour", "2025-01-10", "25:00", "26:00"},
		{"bad minute", "2025-01-10", "09:61", "10:00"},
		{"missing padding", "2025-01-10", "9:00", "10:00"},
		{"not a time", "2025-01-10", "morning", "10:00"},
		{"bad date", "2025-13-40", "09:00", "10:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInterval(tc.date, tc.start, tc.end)
			assert.Error(t, err)
		})
	}

	iv, err := NewInterval("2025-01-10", "09:00", "10:30")
	require.NoError(t, err)
	assert.Equal(t, 540, iv.StartMinute())
	assert.Equal(t, 630, iv.EndMinute())
	assert.Equal(t, 90, iv.Minutes())
}

func TestOverlaps(t *testing.T) {
	base := mustInterval(t, "2025-01-10", "09:00", "10:00")

	assert.True(t, base.Overlaps(mustInterval(t, "2025-01-10", "09:30", "10:30")))
	assert.True(t, base.Overlaps(mustInterval(t, "2025-01-10", "08:00", "09:01")))
	assert.True(t, base.Overlaps(base))

	// Touching endpoints do not overlap (half-open ranges).
	assert.False(t, base.Overlaps(mustInterval(t, "2025-01-10", "10:00", "11:00")))
	assert.False(t, base.Overlaps(mustInterval(t, "2025-01-10", "08:00", "09:00")))
	// Different dates never overlap.
	assert.False(t, base.Overlaps(mustInterval(t, "2025-01-11", "09:00", "10:00")))
}

func TestContains(t *testing.T) {
	outer := mustInterval(t, "2025-01-10", "09:00", "12:00")

	assert.True(t, outer.Contains(mustInterval(t, "2025-01-10", "09:00", "12:00")))
	assert.True(t, outer.Contains(mustInterval(t, "2025-01-10", "10:00", "11:00")))
	assert.True(t, outer.Contains(mustInterval(t, "2025-01-10", "09:00", "09:30")))

	assert.False(t, outer.Contains(mustInterval(t, "2025-01-10", "08:30", "09:30")))
	assert.False(t, outer.Contains(mustInterval(t, "2025-01-10", "11:30", "12:30")))
	assert.False(t, outer.Contains(mustInterval(t, "2025-01-11", "10:00", "11:00")))
}

func TestSubtractCovering_Self(t *testing.T) {
	iv := mustInterval(t, "2025-01-10", "09:00", "10:00")
	assert.Empty(t, iv.SubtractCovering(iv))
}

func TestSubtractCovering_LeftAligned(t *testing.T) {
	outer := mustInterval(t, "2025-01-10", "09:00", "10:00")
	inner := mustInterval(t, "2025-01-10", "09:00", "09:30")

	remainders := outer.SubtractCovering(inner)
	require.Len(t, remainders, 1)
	assert.Equal(t, mustInterval(t, "2025-01-10", "09:30", "10:00"), remainders[0])
}

func TestSubtractCovering_RightAligned(t *testing.T) {
	outer := mustInterval(t, "2025-01-10", "09:00", "10:00")
	inner := mustInterval(t, "2025-01-10", "09:30", "10:00")

	remainders := outer.SubtractCovering(inner)
	require.Len(t, remainders, 1)
	assert.Equal(t, mustInterval(t, "2025-01-10", "09:00", "09:30"), remainders[0])
}

func TestSubtractCovering_Middle(t *testing.T) {
	outer := mustInterval(t, "2025-01-10", "09:00", "12:00")
	inner := mustInterval(t, "2025-01-10", "10:00", "10:30")

	remainders := outer.SubtractCovering(inner)
	require.Len(t, remainders, 2)
	assert.Equal(t, mustInterval(t, "2025-01-10", "09:00", "10:00"), remainders[0])
	assert.Equal(t, mustInterval(t, "2025-01-10", "10:30", "12:00"), remainders[1])
}

// Remainders plus the removed interval must exactly reconstruct the outer
// interval, with no overlap against the removed part.
func TestSubtractCovering_Reconstruction(t *testing.T) {
	outer := mustInterval(t, "2025-01-10", "08:00", "17:00")
	inners := []Interval{
		mustInterval(t, "2025-01-10", "08:00", "17:00"),
		mustInterval(t, "2025-01-10", "08:00", "08:15"),
		mustInterval(t, "2025-01-10", "16:45", "17:00"),
		mustInterval(t, "2025-01-10", "12:00", "13:00"),
	}

	for _, inner := range inners {
		remainders := outer.SubtractCovering(inner)

		total := inner.Minutes()
		for _, rem := range remainders {
			assert.False(t, rem.Overlaps(inner), "remainder %v overlaps removed %v", rem, inner)
			assert.True(t, outer.Contains(rem))
			total += rem.Minutes()
		}
		assert.Equal(t, outer.Minutes(), total, "minutes not conserved for inner %v", inner)
	}
}
