package model

import "time"

const (
	ResourceTypeRoom      = "room"
	ResourceTypeCar       = "car"
	ResourceTypeProjector = "projector"
	ResourceTypeOther     = "other"
)

// Resource represents a reservable entity (room, car, projector, ...)
type Resource struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"` // Pointer for optional field
	Type        string    `json:"type"`
	Capacity    *int      `json:"capacity,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateResourceRequest is used for creating a new resource (admin only)
type CreateResourceRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Type        *string `json:"type" binding:"omitempty,oneof=room car projector other"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=1"`
	Available   *bool   `json:"available"`
}

// UpdateResourceRequest allows partial updates; omitted fields are untouched
type UpdateResourceRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty" binding:"omitempty,oneof=room car projector other"`
	Capacity    *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Available   *bool   `json:"available,omitempty"`
}
