package repository

import (
	"context"
	"errors"
	"fmt"

	"resource_booking/internal/model"

	"github.com/jackc/pgx/v5"
)

// ResourceRepository defines operations for the resource catalog
type ResourceRepository interface {
	Create(ctx context.Context, resource *model.Resource) error
	FindByID(ctx context.Context, id int) (*model.Resource, error)
	FindAll(ctx context.Context) ([]model.Resource, error)
	Update(ctx context.Context, resource *model.Resource) error
	Delete(ctx context.Context, id int) error
}

type resourceRepository struct {
	db DB
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db DB) ResourceRepository {
	return &resourceRepository{db: db}
}

// Create inserts a new resource into the catalog
func (r *resourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	sql := `INSERT INTO resources (name, description, type, capacity, available, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		resource.Name, resource.Description, resource.Type, resource.Capacity,
		resource.Available, resource.CreatedAt, resource.UpdatedAt,
	).Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

// FindByID retrieves a resource by its ID
func (r *resourceRepository) FindByID(ctx context.Context, id int) (*model.Resource, error) {
	res := &model.Resource{}
	sql := `SELECT id, name, description, type, capacity, available, created_at, updated_at
            FROM resources WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&res.ID, &res.Name, &res.Description, &res.Type, &res.Capacity,
		&res.Available, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find resource by ID: %w", err)
	}
	return res, nil
}

// FindAll retrieves the whole resource catalog
func (r *resourceRepository) FindAll(ctx context.Context) ([]model.Resource, error) {
	sql := `SELECT id, name, description, type, capacity, available, created_at, updated_at
            FROM resources ORDER BY id`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	var resources []model.Resource
	for rows.Next() {
		var res model.Resource
		if err := rows.Scan(
			&res.ID, &res.Name, &res.Description, &res.Type, &res.Capacity,
			&res.Available, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}
		resources = append(resources, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}
	return resources, nil
}

// Update writes all mutable fields of an existing resource
func (r *resourceRepository) Update(ctx context.Context, resource *model.Resource) error {
	sql := `UPDATE resources
            SET name = $1, description = $2, type = $3, capacity = $4, available = $5, updated_at = NOW()
            WHERE id = $6 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		resource.Name, resource.Description, resource.Type, resource.Capacity,
		resource.Available, resource.ID,
	).Scan(&resource.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("resource not found for update")
		}
		return fmt.Errorf("failed to update resource: %w", err)
	}
	return nil
}

// Delete removes a resource. Reservations on it go with it (FK cascade).
func (r *resourceRepository) Delete(ctx context.Context, id int) error {
	sql := `DELETE FROM resources WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("resource not found for deletion")
	}
	return nil
}
