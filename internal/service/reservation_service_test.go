package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"resource_booking/internal/model"
	"resource_booking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReservationRepo is an in-memory ReservationRepository. Its conflict
// check reuses model.Reservation.Overlaps, the same rule the SQL predicate
// implements.
type fakeReservationRepo struct {
	resources    map[int]bool // resource ID -> available flag
	reservations []model.Reservation
	nextID       int64
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{resources: map[int]bool{}}
}

func (f *fakeReservationRepo) CreateIfFree(_ context.Context, r *model.Reservation) error {
	available, ok := f.resources[r.ResourceID]
	if !ok {
		return repository.ErrResourceMissing
	}
	if !available {
		return repository.ErrResourceUnavailable
	}
	for i := range f.reservations {
		ex := &f.reservations[i]
		if ex.ResourceID == r.ResourceID && ex.Overlaps(r.StartTime, r.EndTime) {
			return repository.ErrOverlap
		}
	}
	f.nextID++
	r.ID = f.nextID
	f.reservations = append(f.reservations, *r)
	return nil
}

func (f *fakeReservationRepo) HasConflict(_ context.Context, resourceID int, start, end time.Time) (bool, error) {
	for i := range f.reservations {
		ex := &f.reservations[i]
		if ex.ResourceID == resourceID && ex.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id int64) (*model.Reservation, error) {
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			r := f.reservations[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindByUser(_ context.Context, userID int) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindAll(_ context.Context) ([]model.Reservation, error) {
	return append([]model.Reservation(nil), f.reservations...), nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id int64) error {
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			f.reservations = append(f.reservations[:i], f.reservations[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("reservation not found for deletion")
}

func reserveReq(start, end time.Time) model.ReserveRequest {
	return model.ReserveRequest{StartTime: start, EndTime: end}
}

func TestReservationService_CreateReservation(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.resources[1] = true
	svc := NewReservationService(repo)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	r, err := svc.CreateReservation(ctx, 1, 100, reserveReq(start, start.Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusPending, r.Status)
	assert.Equal(t, 100, r.UserID)
	assert.Equal(t, 1, r.ResourceID)
}

func TestReservationService_CreateReservation_NonOverlappingBothSucceed(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.resources[1] = true
	svc := NewReservationService(repo)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.CreateReservation(ctx, 1, 100, reserveReq(start, start.Add(time.Hour)))
	require.NoError(t, err)

	// A gap of one minute after the first interval ends
	_, err = svc.CreateReservation(ctx, 1, 101, reserveReq(start.Add(61*time.Minute), start.Add(2*time.Hour)))
	assert.NoError(t, err)
	assert.Len(t, repo.reservations, 2)
}

func TestReservationService_CreateReservation_OverlapRejected(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.resources[1] = true
	svc := NewReservationService(repo)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.CreateReservation(ctx, 1, 100, reserveReq(start, start.Add(time.Hour)))
	require.NoError(t, err)

	// Overlapping in the middle
	_, err = svc.CreateReservation(ctx, 1, 101, reserveReq(start.Add(30*time.Minute), start.Add(90*time.Minute)))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, repo.reservations, 1) // no row written

	// Touching boundary: starts exactly when the first one ends. Still a
	// conflict under the inclusive-boundary rule.
	_, err = svc.CreateReservation(ctx, 1, 102, reserveReq(start.Add(time.Hour), start.Add(2*time.Hour)))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, repo.reservations, 1)

	// The same interval on a different resource is fine
	repo.resources[2] = true
	_, err = svc.CreateReservation(ctx, 2, 103, reserveReq(start.Add(30*time.Minute), start.Add(90*time.Minute)))
	assert.NoError(t, err)
}

func TestReservationService_CreateReservation_InvalidInterval(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.resources[1] = true
	svc := NewReservationService(repo)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.CreateReservation(ctx, 1, 100, reserveReq(start, start)) // end == start
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = svc.CreateReservation(ctx, 1, 100, reserveReq(start, start.Add(-time.Hour))) // end < start
	assert.ErrorIs(t, err, ErrInvalidInterval)

	assert.Empty(t, repo.reservations) // nothing written
}

func TestReservationService_CreateReservation_ResourceErrors(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.resources[2] = false // exists but not reservable
	svc := NewReservationService(repo)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.CreateReservation(ctx, 99, 100, reserveReq(start, start.Add(time.Hour)))
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = svc.CreateReservation(ctx, 2, 100, reserveReq(start, start.Add(time.Hour)))
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestReservationService_GetReservationByID_Ownership(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.resources[1] = true
	svc := NewReservationService(repo)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	created, err := svc.CreateReservation(ctx, 1, 100, reserveReq(start, start.Add(time.Hour)))
	require.NoError(t, err)

	// Owner can read
	got, err := svc.GetReservationByID(ctx, created.ID, 100, false)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Another user cannot
	_, err = svc.GetReservationByID(ctx, created.ID, 101, false)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admin can
	_, err = svc.GetReservationByID(ctx, created.ID, 101, true)
	assert.NoError(t, err)

	// Missing reservation
	_, err = svc.GetReservationByID(ctx, 999, 100, false)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestReservationService_ListReservations(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.resources[1] = true
	svc := NewReservationService(repo)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.CreateReservation(ctx, 1, 100, reserveReq(start, start.Add(time.Hour)))
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, 1, 101, reserveReq(start.Add(2*time.Hour), start.Add(3*time.Hour)))
	require.NoError(t, err)

	mine, err := svc.ListReservations(ctx, 100, false)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListReservations(ctx, 100, true)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReservationService_DeleteReservation_Ownership(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.resources[1] = true
	svc := NewReservationService(repo)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	created, err := svc.CreateReservation(ctx, 1, 100, reserveReq(start, start.Add(time.Hour)))
	require.NoError(t, err)

	// Non-owner cannot delete
	err = svc.DeleteReservation(ctx, created.ID, 101, false)
	assert.ErrorIs(t, err, ErrForbidden)

	// Owner can
	err = svc.DeleteReservation(ctx, created.ID, 100, false)
	assert.NoError(t, err)
	assert.Empty(t, repo.reservations)

	// Deleting again reports not found
	err = svc.DeleteReservation(ctx, created.ID, 100, false)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
