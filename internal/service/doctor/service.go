package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/policy"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/internal/schedule"
	apperrors "github.com/clinicdesk/booking-api/pkg/errors"
	"github.com/clinicdesk/booking-api/pkg/logger"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

type Service struct {
	repo   repository.DoctorRepository
	policy policy.Policy
	cache  *gocache.Cache
	logger *logger.Logger
}

func NewService(repo repository.DoctorRepository, pol policy.Policy, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		policy: pol,
		cache:  gocache.New(cacheTTL, cacheCleanup),
		logger: log,
	}
}

func (s *Service) Create(ctx context.Context, actor policy.Actor, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if err := s.policy.Allow(actor, policy.ActionWriteDoctor, policy.Resource{}); err != nil {
		return nil, err
	}

	from, to, err := parseWindow(req.AvailableFrom, req.AvailableTo)
	if err != nil {
		return nil, err
	}

	days, err := schedule.NewWeekdaySet(req.AvailableDays)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	doctor := &model.Doctor{
		Name:           req.Name,
		Specialization: req.Specialization,
		Email:          req.Email,
		Phone:          req.Phone,
		AvailableFrom:  from,
		AvailableTo:    to,
		AvailableDays:  days,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("doctor email already in use", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to create doctor: %w", err))
	}

	s.logger.Info("doctor created", "doctor_id", doctor.ID.String())
	return doctor, nil
}

// Get is on the booking hot path (every validation needs the doctor's
// availability), so reads go through a short-lived cache.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	if cached, ok := s.cache.Get(id.String()); ok {
		return cached.(*model.Doctor), nil
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to get doctor: %w", err))
	}

	s.cache.Set(id.String(), doctor, gocache.DefaultExpiration)
	return doctor, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list doctors: %w", err))
	}
	return doctors, nil
}

// Update applies a partial patch; only supplied fields change. The
// window invariant is re-checked against the merged result so a patch
// cannot invert it.
func (s *Service) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	if err := s.policy.Allow(actor, policy.ActionWriteDoctor, policy.Resource{}); err != nil {
		return nil, err
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to get doctor: %w", err))
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.AvailableFrom != nil {
		from, err := schedule.ParseTimeOfDay(*req.AvailableFrom)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		doctor.AvailableFrom = from
	}
	if req.AvailableTo != nil {
		to, err := schedule.ParseTimeOfDay(*req.AvailableTo)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		doctor.AvailableTo = to
	}
	if req.AvailableDays != nil {
		days, err := schedule.NewWeekdaySet(*req.AvailableDays)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		doctor.AvailableDays = days
	}

	if doctor.AvailableFrom.After(doctor.AvailableTo) {
		return nil, apperrors.Validation("available_from must not be after available_to")
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("doctor email already in use", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to update doctor: %w", err))
	}

	s.cache.Delete(id.String())
	return doctor, nil
}

func (s *Service) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := s.policy.Allow(actor, policy.ActionWriteDoctor, policy.Resource{}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("doctor", err)
		}
		return apperrors.Internal(fmt.Errorf("failed to delete doctor: %w", err))
	}

	s.cache.Delete(id.String())
	return nil
}

func parseWindow(fromStr, toStr string) (schedule.TimeOfDay, schedule.TimeOfDay, error) {
	from, err := schedule.ParseTimeOfDay(fromStr)
	if err != nil {
		return 0, 0, apperrors.Validation(err.Error())
	}
	to, err := schedule.ParseTimeOfDay(toStr)
	if err != nil {
		return 0, 0, apperrors.Validation(err.Error())
	}
	if from.After(to) {
		return 0, 0, apperrors.Validation("available_from must not be after available_to")
	}
	return from, to, nil
}
