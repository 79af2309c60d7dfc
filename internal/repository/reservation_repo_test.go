package repository

import (
	"context"
	"testing"
	"time"

	"resource_booking/internal/model"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReservation() *model.Reservation {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	return &model.Reservation{
		UserID:     1,
		ResourceID: 7,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     model.ReservationStatusPending,
		CreatedAt:  start,
		UpdatedAt:  start,
	}
}

func TestReservationRepository_CreateIfFree(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReservationRepository(mock)
	res := newReservation()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available FROM resources").
		WithArgs(res.ResourceID).
		WillReturnRows(pgxmock.NewRows([]string{"available"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(res.ResourceID, res.StartTime, res.EndTime).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(res.UserID, res.ResourceID, res.StartTime, res.EndTime, res.Guests, res.Note, res.Status, res.CreatedAt, res.UpdatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))
	mock.ExpectCommit()

	err = repo.CreateIfFree(context.Background(), res)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_CreateIfFree_Conflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReservationRepository(mock)
	res := newReservation()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available FROM resources").
		WithArgs(res.ResourceID).
		WillReturnRows(pgxmock.NewRows([]string{"available"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(res.ResourceID, res.StartTime, res.EndTime).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err = repo.CreateIfFree(context.Background(), res)
	assert.ErrorIs(t, err, ErrOverlap)
	// No insert happened
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_CreateIfFree_ResourceMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReservationRepository(mock)
	res := newReservation()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available FROM resources").
		WithArgs(res.ResourceID).
		WillReturnRows(pgxmock.NewRows([]string{"available"}))
	mock.ExpectRollback()

	err = repo.CreateIfFree(context.Background(), res)
	assert.ErrorIs(t, err, ErrResourceMissing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_CreateIfFree_ResourceUnavailable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReservationRepository(mock)
	res := newReservation()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available FROM resources").
		WithArgs(res.ResourceID).
		WillReturnRows(pgxmock.NewRows([]string{"available"}).AddRow(false))
	mock.ExpectRollback()

	err = repo.CreateIfFree(context.Background(), res)
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_HasConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReservationRepository(mock)
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(7, start, end).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	conflict, err := repo.HasConflict(context.Background(), 7, start, end)
	assert.NoError(t, err)
	assert.True(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_Delete_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReservationRepository(mock)

	mock.ExpectExec("DELETE FROM reservations").
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.Delete(context.Background(), 99)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
