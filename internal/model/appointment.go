package model

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the booking lifecycle state, serialized as the
// literal strings "Pending", "Approved" and "Rejected".
type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "Pending"
	AppointmentStatusApproved AppointmentStatus = "Approved"
	AppointmentStatusRejected AppointmentStatus = "Rejected"
)

// Valid reports whether s is one of the three known states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusApproved, AppointmentStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusApproved || s == AppointmentStatusRejected
}

// CanTransition encodes the state machine: Pending may move to either
// terminal state, terminal states never move again.
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	return s == AppointmentStatusPending && to.Terminal()
}

// Appointment links a patient to a doctor at an absolute instant.
// PatientID and DoctorID are immutable after creation; only staff may
// change Status.
type Appointment struct {
	Base
	PatientID       uuid.UUID         `json:"patient_id" db:"patient_id"`
	DoctorID        uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	AppointmentTime time.Time         `json:"appointment_time" db:"appointment_time"`
	Status          AppointmentStatus `json:"status" db:"status"`
}

// CreateAppointmentRequest deliberately has no status field: creation
// always yields Pending, whatever the caller sends.
type CreateAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" binding:"required"`
	AppointmentTime time.Time `json:"appointment_time" binding:"required"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=Approved Rejected"`
}

// AppointmentFilters narrows staff-level listing.
type AppointmentFilters struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Status    AppointmentStatus
}
