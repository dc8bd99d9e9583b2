package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeekdaySet(t *testing.T) {
	t.Run("normalizes duplicates and order", func(t *testing.T) {
		set, err := NewWeekdaySet([]int{4, 0, 4, 2, 0})
		require.NoError(t, err)
		assert.Equal(t, WeekdaySet{0, 2, 4}, set)
	})

	t.Run("empty input yields empty set", func(t *testing.T) {
		set, err := NewWeekdaySet(nil)
		require.NoError(t, err)
		assert.True(t, set.IsEmpty())
	})

	t.Run("rejects out of range values", func(t *testing.T) {
		_, err := NewWeekdaySet([]int{0, 7})
		assert.Error(t, err)

		_, err = NewWeekdaySet([]int{-1})
		assert.Error(t, err)
	})
}

func TestParseWeekdaySet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  WeekdaySet
	}{
		{"empty string", "", WeekdaySet{}},
		{"single day", "3", WeekdaySet{3}},
		{"weekdays", "0,1,2,3,4", WeekdaySet{0, 1, 2, 3, 4}},
		{"whitespace tolerated", " 1 , 2 ", WeekdaySet{1, 2}},
		{"trailing comma tolerated", "1,2,", WeekdaySet{1, 2}},
		{"duplicates collapsed", "1,1,2", WeekdaySet{1, 2}},
		{"malformed degrades to empty", "not,a,weekday", WeekdaySet{}},
		{"out of range degrades to empty", "1,9", WeekdaySet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWeekdaySet(tt.input))
		})
	}
}

func TestWeekdaySetRoundTrip(t *testing.T) {
	for _, encoded := range []string{"", "0", "0,1,2,3,4", "5,6"} {
		set := ParseWeekdaySet(encoded)
		assert.Equal(t, encoded, set.Serialize())
	}
}

func TestWeekdaySetContains(t *testing.T) {
	set := WeekdaySet{0, 1, 2, 3, 4}
	assert.True(t, set.Contains(Monday))
	assert.True(t, set.Contains(Friday))
	assert.False(t, set.Contains(Saturday))
	assert.False(t, set.Contains(Sunday))
}

func TestWeekdaySetJSON(t *testing.T) {
	t.Run("empty set marshals as empty array", func(t *testing.T) {
		data, err := json.Marshal(WeekdaySet{})
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("round trips through JSON", func(t *testing.T) {
		data, err := json.Marshal(WeekdaySet{0, 4})
		require.NoError(t, err)

		var decoded WeekdaySet
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, WeekdaySet{0, 4}, decoded)
	})

	t.Run("rejects out of range on unmarshal", func(t *testing.T) {
		var decoded WeekdaySet
		assert.Error(t, json.Unmarshal([]byte("[0,7]"), &decoded))
	})
}

func TestWeekdaySetScan(t *testing.T) {
	var set WeekdaySet
	require.NoError(t, set.Scan([]byte("0,1")))
	assert.Equal(t, WeekdaySet{0, 1}, set)

	require.NoError(t, set.Scan(nil))
	assert.True(t, set.IsEmpty())

	// Corrupt stored data degrades to no restriction, never an error.
	require.NoError(t, set.Scan([]byte("garbage")))
	assert.True(t, set.IsEmpty())
}
