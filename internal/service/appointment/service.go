package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/policy"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/internal/schedule"
	apperrors "github.com/clinicdesk/booking-api/pkg/errors"
	"github.com/clinicdesk/booking-api/pkg/logger"
	"github.com/clinicdesk/booking-api/pkg/messaging"
)

// Broker channels for appointment lifecycle events.
const (
	channelCreated       = "appointment.created"
	channelStatusChanged = "appointment.status_changed"
)

// DoctorGetter is the slice of the doctor service the booking path
// needs: availability lookup by id.
type DoctorGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
}

type Service struct {
	repo    repository.AppointmentRepository
	doctors DoctorGetter
	policy  policy.Policy
	broker  messaging.Broker
	logger  *logger.Logger
	now     func() time.Time
}

func NewService(repo repository.AppointmentRepository, doctors DoctorGetter, pol policy.Policy, broker messaging.Broker, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		doctors: doctors,
		policy:  pol,
		broker:  broker,
		logger:  log,
		now:     time.Now,
	}
}

type statusEvent struct {
	AppointmentID uuid.UUID               `json:"appointment_id"`
	PatientID     uuid.UUID               `json:"patient_id"`
	DoctorID      uuid.UUID               `json:"doctor_id"`
	Status        model.AppointmentStatus `json:"status"`
}

// Create books an appointment for the acting patient. The availability
// validator gates creation; a rejection reaches the caller with its
// specific reason. Status is always Pending at creation, regardless of
// anything the request carried.
func (s *Service) Create(ctx context.Context, actor policy.Actor, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := s.policy.Allow(actor, policy.ActionCreateAppointment, policy.Resource{}); err != nil {
		return nil, err
	}

	doctor, err := s.doctors.Get(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	if err := schedule.Validate(doctor.Availability(), req.AppointmentTime, s.now()); err != nil {
		var rej *schedule.RejectionError
		if errors.As(err, &rej) {
			return nil, apperrors.Validation(rej.Message)
		}
		return nil, apperrors.Internal(err)
	}

	appointment := &model.Appointment{
		PatientID:       actor.UserID,
		DoctorID:        doctor.ID,
		AppointmentTime: req.AppointmentTime,
		Status:          model.AppointmentStatusPending,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create appointment: %w", err))
	}

	s.publish(ctx, channelCreated, appointment)
	return appointment, nil
}

func (s *Service) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to get appointment: %w", err))
	}

	if err := s.policy.Allow(actor, policy.ActionReadAppointment, policy.Resource{OwnerID: appointment.PatientID}); err != nil {
		return nil, err
	}
	return appointment, nil
}

// ListOwn returns the acting patient's appointments.
func (s *Service) ListOwn(ctx context.Context, actor policy.Actor) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListByPatient(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list appointments: %w", err))
	}
	return appointments, nil
}

// ListAll is the staff view over every appointment in the system.
func (s *Service) ListAll(ctx context.Context, actor policy.Actor, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	if err := s.policy.Allow(actor, policy.ActionListAll, policy.Resource{}); err != nil {
		return nil, err
	}

	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list appointments: %w", err))
	}
	return appointments, nil
}

// Transition moves an appointment to a new status. Only staff may call
// this, and only Pending appointments move; terminal states are final.
func (s *Service) Transition(ctx context.Context, actor policy.Actor, id uuid.UUID, to model.AppointmentStatus) (*model.Appointment, error) {
	if err := s.policy.Allow(actor, policy.ActionTransitionStatus, policy.Resource{}); err != nil {
		return nil, err
	}

	if !to.Valid() || !to.Terminal() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid target status %q", to))
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to get appointment: %w", err))
	}

	if !appointment.Status.CanTransition(to) {
		return nil, apperrors.InvalidTransition(string(appointment.Status), string(to))
	}

	appointment.Status = to
	if err := s.repo.UpdateStatus(ctx, appointment); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update appointment status: %w", err))
	}

	s.publish(ctx, channelStatusChanged, appointment)
	return appointment, nil
}

// Delete removes a whole appointment record. Patients delete their own,
// staff any.
func (s *Service) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return apperrors.Internal(fmt.Errorf("failed to get appointment: %w", err))
	}

	if err := s.policy.Allow(actor, policy.ActionDeleteAppointment, policy.Resource{OwnerID: appointment.PatientID}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete appointment: %w", err))
	}
	return nil
}

// publish is best effort: a broker outage must never fail a booking.
func (s *Service) publish(ctx context.Context, channel string, appointment *model.Appointment) {
	if s.broker == nil {
		return
	}

	event := statusEvent{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		Status:        appointment.Status,
	}
	if err := s.broker.Publish(ctx, channel, event); err != nil {
		s.logger.Error(err, "failed to publish appointment event", "channel", channel)
	}
}
