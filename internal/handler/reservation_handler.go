package handler

import (
	"errors"
	"net/http"
	"strconv"

	"resource_booking/internal/middleware"
	"resource_booking/internal/model"
	"resource_booking/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ReservationHandler handles reservation requests
type ReservationHandler struct {
	service service.ReservationService
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(s service.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: s}
}

// Helper to get authenticated user ID from context
func getAuthUserID(c *gin.Context) (int, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(int)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

// Helper to get the authenticated principal's admin flag from context
func getAuthIsAdmin(c *gin.Context) bool {
	adminVal, exists := c.Get(middleware.AuthAdminKey)
	if !exists {
		return false
	}
	isAdmin, ok := adminVal.(bool)
	return ok && isAdmin
}

// respondReservationError maps reservation service sentinels to status codes
func respondReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInterval):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrResourceUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("Error creating reservation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
	}
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reservation, err := h.service.CreateReservation(c.Request.Context(), req.ResourceID, userID, model.ReserveRequest{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Guests:    req.Guests,
		Note:      req.Note,
	})
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (h *ReservationHandler) ListReservations(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	reservations, err := h.service.ListReservations(c.Request.Context(), userID, getAuthIsAdmin(c))
	if err != nil {
		log.Printf("Error listing reservations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservations"})
		return
	}
	c.JSON(http.StatusOK, reservations)
}

func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	reservationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	reservation, err := h.service.GetReservationByID(c.Request.Context(), reservationID, userID, getAuthIsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			log.Printf("Error getting reservation by ID: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reservation"})
		}
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	reservationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	if err := h.service.DeleteReservation(c.Request.Context(), reservationID, userID, getAuthIsAdmin(c)); err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			log.Printf("Error deleting reservation: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reservation"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted"})
}

// RegisterReservationRoutes registers reservation routes. Ownership checks
// for reads and deletes live in the service layer.
func (h *ReservationHandler) RegisterReservationRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	reservationRoutes := rg.Group("/reservations")
	reservationRoutes.Use(authMW)
	{
		reservationRoutes.POST("", h.CreateReservation)
		reservationRoutes.GET("", h.ListReservations)
		reservationRoutes.GET("/:id", h.GetReservationByID)
		reservationRoutes.DELETE("/:id", h.DeleteReservation)
	}
}
