package handler

import (
	"errors"
	"net/http"
	"strconv"

	"resource_booking/internal/model"
	"resource_booking/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ResourceHandler handles resource catalog requests
type ResourceHandler struct {
	service            service.ResourceService
	reservationService service.ReservationService
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(s service.ResourceService, rs service.ReservationService) *ResourceHandler {
	return &ResourceHandler{service: s, reservationService: rs}
}

func (h *ResourceHandler) ListResources(c *gin.Context) {
	resources, err := h.service.ListResources(c.Request.Context())
	if err != nil {
		log.Printf("Error listing resources: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve resources"})
		return
	}
	c.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) GetResourceByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
		return
	}

	resource, err := h.service.GetResourceByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting resource by ID: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve resource"})
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req model.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resource, err := h.service.CreateResource(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error creating resource: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create resource"})
		return
	}
	c.JSON(http.StatusCreated, resource)
}

func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
		return
	}

	var req model.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resource, err := h.service.UpdateResource(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error updating resource: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update resource"})
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
		return
	}

	if err := h.service.DeleteResource(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error deleting resource: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete resource"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted"})
}

// ReserveResource creates a reservation for the resource in the path
func (h *ResourceHandler) ReserveResource(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	resourceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
		return
	}

	var req model.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), resourceID, userID, req)
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// RegisterResourceRoutes registers resource routes. Reads are open to any
// authenticated user; writes go through the admin gate.
func (h *ResourceHandler) RegisterResourceRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	resourceRoutes := rg.Group("/resources")
	resourceRoutes.Use(authMW)
	{
		resourceRoutes.GET("", h.ListResources)
		resourceRoutes.GET("/:id", h.GetResourceByID)
		resourceRoutes.POST("/:id/reserve", h.ReserveResource)
	}

	adminRoutes := rg.Group("/resources")
	adminRoutes.Use(authMW)
	adminRoutes.Use(adminMW)
	{
		adminRoutes.POST("", h.CreateResource)
		adminRoutes.PUT("/:id", h.UpdateResource)
		adminRoutes.DELETE("/:id", h.DeleteResource)
	}
}
