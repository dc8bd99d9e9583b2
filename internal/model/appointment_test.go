package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentStatusValid(t *testing.T) {
	assert.True(t, AppointmentStatusPending.Valid())
	assert.True(t, AppointmentStatusApproved.Valid())
	assert.True(t, AppointmentStatusRejected.Valid())

	assert.False(t, AppointmentStatus("").Valid())
	assert.False(t, AppointmentStatus("pending").Valid())
	assert.False(t, AppointmentStatus("Cancelled").Valid())
}

func TestAppointmentStatusTerminal(t *testing.T) {
	assert.False(t, AppointmentStatusPending.Terminal())
	assert.True(t, AppointmentStatusApproved.Terminal())
	assert.True(t, AppointmentStatusRejected.Terminal())
}

func TestAppointmentStatusCanTransition(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{AppointmentStatusPending, AppointmentStatusApproved, true},
		{AppointmentStatusPending, AppointmentStatusRejected, true},
		{AppointmentStatusPending, AppointmentStatusPending, false},
		{AppointmentStatusApproved, AppointmentStatusRejected, false},
		{AppointmentStatusApproved, AppointmentStatusPending, false},
		{AppointmentStatusApproved, AppointmentStatusApproved, false},
		{AppointmentStatusRejected, AppointmentStatusApproved, false},
		{AppointmentStatusRejected, AppointmentStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

// A status field in the create payload has nowhere to land: the request
// type simply does not carry one.
func TestCreateAppointmentRequestIgnoresStatus(t *testing.T) {
	doctorID := uuid.New()
	payload := []byte(`{
		"doctor_id": "` + doctorID.String() + `",
		"appointment_time": "2026-09-02T10:00:00Z",
		"status": "Approved"
	}`)

	var req CreateAppointmentRequest
	require.NoError(t, json.Unmarshal(payload, &req))

	assert.Equal(t, doctorID, req.DoctorID)
	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), req.AppointmentTime)
}
