package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resource_booking/internal/model"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrOverlap is returned when the candidate interval intersects an
	// existing reservation on the same resource.
	ErrOverlap = errors.New("reservation interval overlaps an existing one")
	// ErrResourceMissing is returned when the target resource does not exist.
	ErrResourceMissing = errors.New("resource does not exist")
	// ErrResourceUnavailable is returned when the target resource is flagged
	// as not reservable.
	ErrResourceUnavailable = errors.New("resource is not available")
)

// ReservationRepository defines operations for reservation data
type ReservationRepository interface {
	// CreateIfFree atomically checks the resource for conflicting
	// reservations and inserts the new one. The check and the insert run in
	// a single transaction holding a row lock on the resource, so two
	// concurrent requests for the same resource serialize instead of both
	// passing the conflict check.
	CreateIfFree(ctx context.Context, reservation *model.Reservation) error
	HasConflict(ctx context.Context, resourceID int, start, end time.Time) (bool, error)
	FindByID(ctx context.Context, id int64) (*model.Reservation, error)
	FindByUser(ctx context.Context, userID int) ([]model.Reservation, error)
	FindAll(ctx context.Context) ([]model.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

type reservationRepository struct {
	db DB
}

// NewReservationRepository creates a new ReservationRepository
func NewReservationRepository(db DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// Intervals conflict when start_time <= $end AND end_time >= $start: the
// boundaries are inclusive, so intervals that merely touch at an endpoint are
// rejected. This mirrors model.Reservation.Overlaps.
const conflictSQL = `SELECT EXISTS (
            SELECT 1 FROM reservations
            WHERE resource_id = $1 AND start_time <= $3 AND end_time >= $2)`

func (r *reservationRepository) CreateIfFree(ctx context.Context, reservation *model.Reservation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the resource row for the duration of the check-and-insert.
	var available bool
	err = tx.QueryRow(ctx, `SELECT available FROM resources WHERE id = $1 FOR UPDATE`, reservation.ResourceID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrResourceMissing
		}
		return fmt.Errorf("failed to lock resource: %w", err)
	}
	if !available {
		return ErrResourceUnavailable
	}

	var conflict bool
	err = tx.QueryRow(ctx, conflictSQL, reservation.ResourceID, reservation.StartTime, reservation.EndTime).Scan(&conflict)
	if err != nil {
		return fmt.Errorf("failed to check for conflicts: %w", err)
	}
	if conflict {
		return ErrOverlap
	}

	insertSQL := `INSERT INTO reservations (user_id, resource_id, start_time, end_time, guests, note, status, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, insertSQL,
		reservation.UserID, reservation.ResourceID, reservation.StartTime, reservation.EndTime,
		reservation.Guests, reservation.Note, reservation.Status, reservation.CreatedAt, reservation.UpdatedAt,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reservation: %w", err)
	}
	return nil
}

// HasConflict runs the overlap check outside a transaction. Advisory only:
// creation must go through CreateIfFree, which re-checks under the lock.
func (r *reservationRepository) HasConflict(ctx context.Context, resourceID int, start, end time.Time) (bool, error) {
	var conflict bool
	if err := r.db.QueryRow(ctx, conflictSQL, resourceID, start, end).Scan(&conflict); err != nil {
		return false, fmt.Errorf("failed to check for conflicts: %w", err)
	}
	return conflict, nil
}

// FindByID retrieves a reservation by its ID
func (r *reservationRepository) FindByID(ctx context.Context, id int64) (*model.Reservation, error) {
	res := &model.Reservation{}
	sql := `SELECT id, user_id, resource_id, start_time, end_time, guests, note, status, created_at, updated_at
            FROM reservations WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&res.ID, &res.UserID, &res.ResourceID, &res.StartTime, &res.EndTime,
		&res.Guests, &res.Note, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find reservation by ID: %w", err)
	}
	return res, nil
}

// FindByUser retrieves all reservations owned by a user
func (r *reservationRepository) FindByUser(ctx context.Context, userID int) ([]model.Reservation, error) {
	sql := `SELECT id, user_id, resource_id, start_time, end_time, guests, note, status, created_at, updated_at
            FROM reservations WHERE user_id = $1 ORDER BY start_time`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations by user: %w", err)
	}
	return scanReservations(rows)
}

// FindAll retrieves every reservation, for admin listings
func (r *reservationRepository) FindAll(ctx context.Context) ([]model.Reservation, error) {
	sql := `SELECT id, user_id, resource_id, start_time, end_time, guests, note, status, created_at, updated_at
            FROM reservations ORDER BY start_time`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	return scanReservations(rows)
}

func scanReservations(rows pgx.Rows) ([]model.Reservation, error) {
	defer rows.Close()

	var reservations []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.ResourceID, &res.StartTime, &res.EndTime,
			&res.Guests, &res.Note, &res.Status, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservation rows: %w", err)
	}
	return reservations, nil
}

// Delete removes a reservation from the database
func (r *reservationRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM reservations WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("reservation not found for deletion")
	}
	return nil
}
