package schedule

import (
	"time"
)

// RejectionReason identifies why a candidate appointment was refused.
type RejectionReason string

const (
	ReasonPastDate           RejectionReason = "PastDate"
	ReasonBeforeHours        RejectionReason = "BeforeHours"
	ReasonAfterHours         RejectionReason = "AfterHours"
	ReasonWeekdayUnavailable RejectionReason = "WeekdayUnavailable"
)

// RejectionError carries the specific reason a booking was refused.
type RejectionError struct {
	Reason  RejectionReason
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

// Availability is a doctor's static weekly schedule: a daily recurring
// time-of-day window (inclusive bounds, From <= To, no overnight
// wraparound) plus the weekdays on which bookings are accepted.
type Availability struct {
	From TimeOfDay
	To   TimeOfDay
	Days WeekdaySet
}

// Validate checks a candidate appointment instant against a doctor's
// availability. Pure and side-effect free; safe for concurrent use.
// Checks run in order and the first failure wins:
//
//  1. candidate strictly before now (an instant equal to now passes)
//  2. time of day earlier than the window start
//  3. time of day later than the window end
//  4. weekday not in the allowed set, unless the set is empty, which
//     means no weekday restriction
//
// The window bounds are inclusive: a candidate exactly at From or To
// is accepted.
func Validate(av Availability, candidate, now time.Time) error {
	if candidate.Before(now) {
		return &RejectionError{
			Reason:  ReasonPastDate,
			Message: "appointment date cannot be in the past",
		}
	}

	tod := TimeOfDayOf(candidate)
	if tod.Before(av.From) {
		return &RejectionError{
			Reason:  ReasonBeforeHours,
			Message: "appointment time is before the doctor's available hours",
		}
	}
	if tod.After(av.To) {
		return &RejectionError{
			Reason:  ReasonAfterHours,
			Message: "appointment time is after the doctor's available hours",
		}
	}

	if !av.Days.IsEmpty() && !av.Days.Contains(WeekdayIndex(candidate)) {
		return &RejectionError{
			Reason:  ReasonWeekdayUnavailable,
			Message: "doctor is not available on the selected day",
		}
	}

	return nil
}
