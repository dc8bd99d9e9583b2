package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Weekday indices run Monday=0 through Sunday=6, matching how doctors'
// availability is entered and stored.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayIndex converts an instant's weekday to the Monday=0 indexing.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekdaySet is the set of weekdays a doctor accepts bookings on.
// The empty set means no weekday restriction. Persisted as a
// comma-separated string ("0,1,4"); exchanged over the API as a JSON
// array of integers 0-6.
type WeekdaySet []int

// NewWeekdaySet validates and normalizes a list of weekday indices:
// out-of-range values are rejected, duplicates collapsed, order sorted.
func NewWeekdaySet(days []int) (WeekdaySet, error) {
	seen := make(map[int]bool, len(days))
	set := make(WeekdaySet, 0, len(days))
	for _, d := range days {
		if d < Monday || d > Sunday {
			return nil, fmt.Errorf("invalid weekday %d: must be between 0 and 6", d)
		}
		if !seen[d] {
			seen[d] = true
			set = append(set, d)
		}
	}
	sort.Ints(set)
	return set, nil
}

// ParseWeekdaySet decodes the stored comma-separated form. Malformed
// input degrades to the empty set (no restriction) so corrupt
// availability data can never block an otherwise valid booking.
func ParseWeekdaySet(s string) WeekdaySet {
	if s == "" {
		return WeekdaySet{}
	}
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return WeekdaySet{}
		}
		days = append(days, d)
	}
	set, err := NewWeekdaySet(days)
	if err != nil {
		return WeekdaySet{}
	}
	return set
}

// Serialize encodes the set in its stored comma-separated form.
// The empty set round-trips as the empty string.
func (w WeekdaySet) Serialize() string {
	if len(w) == 0 {
		return ""
	}
	parts := make([]string, len(w))
	for i, d := range w {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// IsEmpty reports whether the set carries no restriction.
func (w WeekdaySet) IsEmpty() bool { return len(w) == 0 }

func (w WeekdaySet) Contains(day int) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

func (w WeekdaySet) MarshalJSON() ([]byte, error) {
	if len(w) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(w))
}

func (w *WeekdaySet) UnmarshalJSON(data []byte) error {
	var days []int
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	set, err := NewWeekdaySet(days)
	if err != nil {
		return err
	}
	*w = set
	return nil
}

func (w WeekdaySet) Value() (driver.Value, error) {
	return w.Serialize(), nil
}

func (w *WeekdaySet) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*w = WeekdaySet{}
	case []byte:
		*w = ParseWeekdaySet(string(v))
	case string:
		*w = ParseWeekdaySet(v)
	default:
		return fmt.Errorf("cannot scan %T into WeekdaySet", src)
	}
	return nil
}
