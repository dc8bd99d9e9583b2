package model

import (
	"github.com/clinicdesk/booking-api/internal/schedule"
)

// Doctor holds a doctor's profile and embedded availability: a daily
// recurring time-of-day window plus the weekdays bookings are accepted
// on. An empty weekday set means no restriction.
type Doctor struct {
	Base
	Name           string              `json:"name" db:"name"`
	Specialization string              `json:"specialization" db:"specialization"`
	Email          string              `json:"email" db:"email"`
	Phone          string              `json:"phone" db:"phone"`
	AvailableFrom  schedule.TimeOfDay  `json:"available_from" db:"available_from"`
	AvailableTo    schedule.TimeOfDay  `json:"available_to" db:"available_to"`
	AvailableDays  schedule.WeekdaySet `json:"available_days" db:"available_days"`
}

// Availability projects the validator's view of this doctor.
func (d *Doctor) Availability() schedule.Availability {
	return schedule.Availability{
		From: d.AvailableFrom,
		To:   d.AvailableTo,
		Days: d.AvailableDays,
	}
}

type CreateDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	AvailableFrom  string `json:"available_from" binding:"required,timeofday"`
	AvailableTo    string `json:"available_to" binding:"required,timeofday"`
	AvailableDays  []int  `json:"available_days"`
}

// UpdateDoctorRequest is a partial patch; nil fields are left untouched.
type UpdateDoctorRequest struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone"`
	AvailableFrom  *string `json:"available_from" binding:"omitempty,timeofday"`
	AvailableTo    *string `json:"available_to" binding:"omitempty,timeofday"`
	AvailableDays  *[]int  `json:"available_days"`
}
