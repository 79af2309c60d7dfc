package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resource_booking/internal/model"
	"resource_booking/internal/repository"
)

var ErrResourceNotFound = errors.New("resource not found")

// ResourceService provides catalog operations. Writes are admin-gated at the
// route level; the service itself only deals with catalog semantics.
type ResourceService interface {
	ListResources(ctx context.Context) ([]model.Resource, error)
	GetResourceByID(ctx context.Context, id int) (*model.Resource, error)
	CreateResource(ctx context.Context, req model.CreateResourceRequest) (*model.Resource, error)
	UpdateResource(ctx context.Context, id int, req model.UpdateResourceRequest) (*model.Resource, error)
	DeleteResource(ctx context.Context, id int) error
}

type resourceService struct {
	repo repository.ResourceRepository
}

// NewResourceService creates a new ResourceService
func NewResourceService(repo repository.ResourceRepository) ResourceService {
	return &resourceService{repo: repo}
}

func (s *resourceService) ListResources(ctx context.Context) ([]model.Resource, error) {
	resources, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

func (s *resourceService) GetResourceByID(ctx context.Context, id int) (*model.Resource, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find resource by ID: %w", err)
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}
	return resource, nil
}

func (s *resourceService) CreateResource(ctx context.Context, req model.CreateResourceRequest) (*model.Resource, error) {
	resourceType := model.ResourceTypeOther
	if req.Type != nil {
		resourceType = *req.Type
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	resource := &model.Resource{
		Name:        req.Name,
		Description: req.Description,
		Type:        resourceType,
		Capacity:    req.Capacity,
		Available:   available,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to create resource in repo: %w", err)
	}
	return resource, nil
}

// UpdateResource applies a partial update: omitted fields are untouched
func (s *resourceService) UpdateResource(ctx context.Context, id int, req model.UpdateResourceRequest) (*model.Resource, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find resource for update: %w", err)
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}

	if req.Name != nil {
		resource.Name = *req.Name
	}
	if req.Description != nil {
		resource.Description = req.Description
	}
	if req.Type != nil {
		resource.Type = *req.Type
	}
	if req.Capacity != nil {
		resource.Capacity = req.Capacity
	}
	if req.Available != nil {
		resource.Available = *req.Available
	}

	if err := s.repo.Update(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to update resource in repo: %w", err)
	}
	return resource, nil
}

func (s *resourceService) DeleteResource(ctx context.Context, id int) error {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find resource for deletion: %w", err)
	}
	if resource == nil {
		return ErrResourceNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete resource in repo: %w", err)
	}
	return nil
}
