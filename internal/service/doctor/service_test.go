package doctor

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/policy"
	"github.com/clinicdesk/booking-api/internal/repository"
	apperrors "github.com/clinicdesk/booking-api/pkg/errors"
	"github.com/clinicdesk/booking-api/pkg/logger"
)

type memDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
	gets    int
}

func newMemDoctorRepo() *memDoctorRepo {
	return &memDoctorRepo{doctors: make(map[uuid.UUID]*model.Doctor)}
}

func (r *memDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	for _, existing := range r.doctors {
		if existing.Email == d.Email {
			return repository.ErrDuplicateEmail
		}
	}
	d.ID = uuid.New()
	stored := *d
	r.doctors[d.ID] = &stored
	return nil
}

func (r *memDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	r.gets++
	d, ok := r.doctors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *memDoctorRepo) Update(_ context.Context, d *model.Doctor) error {
	if _, ok := r.doctors[d.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *d
	r.doctors[d.ID] = &stored
	return nil
}

func (r *memDoctorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.doctors[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.doctors, id)
	return nil
}

func (r *memDoctorRepo) List(_ context.Context) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range r.doctors {
		copied := *d
		out = append(out, &copied)
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *memDoctorRepo) {
	t.Helper()
	repo := newMemDoctorRepo()
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(repo, policy.NewRolePolicy(), log), repo
}

func validRequest() *model.CreateDoctorRequest {
	return &model.CreateDoctorRequest{
		Name:           "Dr. Okafor",
		Specialization: "Dermatology",
		Email:          "okafor@clinic.test",
		Phone:          "555-0102",
		AvailableFrom:  "09:00",
		AvailableTo:    "17:00",
		AvailableDays:  []int{0, 1, 2, 3, 4},
	}
}

var (
	staff   = policy.Actor{UserID: uuid.New(), IsStaff: true}
	patient = policy.Actor{UserID: uuid.New()}
)

func TestCreateDoctor(t *testing.T) {
	t.Run("staff creates a doctor", func(t *testing.T) {
		svc, _ := newTestService(t)

		created, err := svc.Create(context.Background(), staff, validRequest())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, "09:00", created.AvailableFrom.String())
		assert.Equal(t, "17:00", created.AvailableTo.String())
	})

	t.Run("patients are forbidden", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(context.Background(), patient, validRequest())
		requireAppError(t, err, apperrors.ErrForbidden)
	})

	t.Run("inverted window is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := validRequest()
		req.AvailableFrom = "17:00"
		req.AvailableTo = "09:00"

		_, err := svc.Create(context.Background(), staff, req)
		requireAppError(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "available_from must not be after available_to")
	})

	t.Run("invalid weekday is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := validRequest()
		req.AvailableDays = []int{0, 7}

		_, err := svc.Create(context.Background(), staff, req)
		requireAppError(t, err, apperrors.ErrValidation)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(context.Background(), staff, validRequest())
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), staff, validRequest())
		requireAppError(t, err, apperrors.ErrConflict)
	})
}

func TestGetDoctorCaching(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Create(context.Background(), staff, validRequest())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := svc.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	}
	assert.Equal(t, 1, repo.gets, "repeat reads should be served from cache")

	t.Run("unknown doctor is not found", func(t *testing.T) {
		_, err := svc.Get(context.Background(), uuid.New())
		requireAppError(t, err, apperrors.ErrNotFound)
	})
}

func TestUpdateDoctor(t *testing.T) {
	t.Run("partial patch touches only supplied fields", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(context.Background(), staff, validRequest())
		require.NoError(t, err)

		newPhone := "555-0199"
		updated, err := svc.Update(context.Background(), staff, created.ID, &model.UpdateDoctorRequest{
			Phone: &newPhone,
		})
		require.NoError(t, err)

		assert.Equal(t, newPhone, updated.Phone)
		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, created.AvailableFrom, updated.AvailableFrom)
		assert.Equal(t, created.AvailableDays, updated.AvailableDays)
	})

	t.Run("patch cannot invert the window", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(context.Background(), staff, validRequest())
		require.NoError(t, err)

		badFrom := "18:00"
		_, err = svc.Update(context.Background(), staff, created.ID, &model.UpdateDoctorRequest{
			AvailableFrom: &badFrom,
		})
		requireAppError(t, err, apperrors.ErrValidation)
	})

	t.Run("update invalidates the read cache", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(context.Background(), staff, validRequest())
		require.NoError(t, err)

		_, err = svc.Get(context.Background(), created.ID)
		require.NoError(t, err)

		emptyDays := []int{}
		_, err = svc.Update(context.Background(), staff, created.ID, &model.UpdateDoctorRequest{
			AvailableDays: &emptyDays,
		})
		require.NoError(t, err)

		got, err := svc.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, got.AvailableDays.IsEmpty())
	})

	t.Run("patients are forbidden", func(t *testing.T) {
		svc, _ := newTestService(t)
		created, err := svc.Create(context.Background(), staff, validRequest())
		require.NoError(t, err)

		name := "Dr. Nobody"
		_, err = svc.Update(context.Background(), patient, created.ID, &model.UpdateDoctorRequest{Name: &name})
		requireAppError(t, err, apperrors.ErrForbidden)
	})
}

func TestDeleteDoctor(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(context.Background(), staff, validRequest())
	require.NoError(t, err)

	t.Run("patients are forbidden", func(t *testing.T) {
		requireAppError(t, svc.Delete(context.Background(), patient, created.ID), apperrors.ErrForbidden)
	})

	t.Run("staff deletes and record is gone", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), staff, created.ID))

		_, err := svc.Get(context.Background(), created.ID)
		requireAppError(t, err, apperrors.ErrNotFound)
	})

	t.Run("deleting again is not found", func(t *testing.T) {
		requireAppError(t, svc.Delete(context.Background(), staff, created.ID), apperrors.ErrNotFound)
	})
}

func requireAppError(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}
