package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resource_booking/internal/model"
	"resource_booking/internal/repository"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrForbidden           = errors.New("forbidden: user does not have permission for this action")
	ErrInvalidInterval     = errors.New("end_time must be after start_time")
	// ErrConflict is the terminal outcome for an overlapping interval. No
	// retry: the caller has to pick a different slot.
	ErrConflict            = errors.New("the selected time overlaps an existing reservation")
	ErrResourceUnavailable = errors.New("the resource is not available for reservation")
)

// ReservationService orchestrates validation, conflict checking and
// persistence for reservation requests.
type ReservationService interface {
	CreateReservation(ctx context.Context, resourceID, userID int, req model.ReserveRequest) (*model.Reservation, error)
	GetReservationByID(ctx context.Context, reservationID int64, userID int, isAdmin bool) (*model.Reservation, error)
	ListReservations(ctx context.Context, userID int, isAdmin bool) ([]model.Reservation, error)
	DeleteReservation(ctx context.Context, reservationID int64, userID int, isAdmin bool) error
}

type reservationService struct {
	repo repository.ReservationRepository
}

// NewReservationService creates a new ReservationService
func NewReservationService(repo repository.ReservationRepository) ReservationService {
	return &reservationService{repo: repo}
}

// CreateReservation validates the requested interval and hands it to the
// repository, which performs the conflict check and the insert atomically.
// On conflict nothing is written and ErrConflict is returned.
func (s *reservationService) CreateReservation(ctx context.Context, resourceID, userID int, req model.ReserveRequest) (*model.Reservation, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidInterval
	}

	reservation := &model.Reservation{
		UserID:     userID,
		ResourceID: resourceID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Guests:     req.Guests,
		Note:       req.Note,
		Status:     model.ReservationStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.repo.CreateIfFree(ctx, reservation); err != nil {
		switch {
		case errors.Is(err, repository.ErrOverlap):
			return nil, ErrConflict
		case errors.Is(err, repository.ErrResourceMissing):
			return nil, ErrResourceNotFound
		case errors.Is(err, repository.ErrResourceUnavailable):
			return nil, ErrResourceUnavailable
		}
		return nil, fmt.Errorf("failed to create reservation in repo: %w", err)
	}
	return reservation, nil
}

// GetReservationByID returns a reservation visible to the caller: the owner
// or an admin.
func (s *reservationService) GetReservationByID(ctx context.Context, reservationID int64, userID int, isAdmin bool) (*model.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservation by ID: %w", err)
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}

	if !isAdmin && reservation.UserID != userID {
		return nil, ErrForbidden
	}
	return reservation, nil
}

// ListReservations returns the caller's reservations; admins see all of them
func (s *reservationService) ListReservations(ctx context.Context, userID int, isAdmin bool) ([]model.Reservation, error) {
	var (
		reservations []model.Reservation
		err          error
	)
	if isAdmin {
		reservations, err = s.repo.FindAll(ctx)
	} else {
		reservations, err = s.repo.FindByUser(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

// DeleteReservation removes a reservation owned by the caller (or any
// reservation, for admins)
func (s *reservationService) DeleteReservation(ctx context.Context, reservationID int64, userID int, isAdmin bool) error {
	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("failed to find reservation for deletion: %w", err)
	}
	if reservation == nil {
		return ErrReservationNotFound
	}

	if !isAdmin && reservation.UserID != userID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, reservationID); err != nil {
		return fmt.Errorf("failed to delete reservation in repo: %w", err)
	}
	return nil
}
