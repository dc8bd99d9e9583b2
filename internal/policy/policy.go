package policy

import (
	"github.com/google/uuid"

	"github.com/clinicdesk/booking-api/pkg/errors"
)

// Action names an operation an actor wants to perform.
type Action string

const (
	ActionReadDoctor        Action = "doctor:read"
	ActionWriteDoctor       Action = "doctor:write"
	ActionCreateAppointment Action = "appointment:create"
	ActionReadAppointment   Action = "appointment:read"
	ActionDeleteAppointment Action = "appointment:delete"
	ActionTransitionStatus  Action = "appointment:transition"
	ActionListAll           Action = "appointment:list_all"
)

// Actor is the authenticated principal. The staff flag comes from the
// identity provider (JWT claims); the core performs no credential
// checks of its own.
type Actor struct {
	UserID  uuid.UUID
	Email   string
	IsStaff bool
}

// Resource identifies what the action targets. OwnerID is the patient
// owning an appointment; the zero UUID means ownership is not relevant
// (doctors, collection-level actions).
type Resource struct {
	OwnerID uuid.UUID
}

// Policy decides whether an actor may perform an action on a resource.
// A nil return means allow; otherwise the error explains the denial.
type Policy interface {
	Allow(actor Actor, action Action, resource Resource) error
}

// RolePolicy is the static decision table: staff may do everything,
// patients only read doctors and work with their own appointments.
type RolePolicy struct{}

func NewRolePolicy() *RolePolicy { return &RolePolicy{} }

func (p *RolePolicy) Allow(actor Actor, action Action, resource Resource) error {
	if actor.IsStaff {
		return nil
	}

	switch action {
	case ActionReadDoctor, ActionCreateAppointment:
		return nil
	case ActionReadAppointment, ActionDeleteAppointment:
		if resource.OwnerID == actor.UserID {
			return nil
		}
		return errors.Forbidden("you may only access your own appointments")
	case ActionWriteDoctor:
		return errors.Forbidden("staff privileges required to manage doctors")
	case ActionTransitionStatus:
		return errors.Forbidden("staff privileges required to change appointment status")
	case ActionListAll:
		return errors.Forbidden("staff privileges required to list all appointments")
	default:
		return errors.Forbidden("permission denied")
	}
}
