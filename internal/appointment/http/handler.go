package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nekogravitycat/appointment-booking-backend/internal/appointment"
	"github.com/nekogravitycat/appointment-booking-backend/internal/auth"
	"github.com/nekogravitycat/appointment-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/appointment-booking-backend/internal/schedule"
)

type Handler struct {
	service  appointment.Service
	template *schedule.Template
}

func NewHandler(service appointment.Service, template *schedule.Template) *Handler {
	return &Handler{
		service:  service,
		template: template,
	}
}

// Availability returns the slot list for a provider on one calendar day.
func (h *Handler) Availability(c *gin.Context) {
	providerID := c.Param("providerId")
	if _, err := uuid.Parse(providerID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider UUID"})
		return
	}

	var req DayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date parameters", "details": err.Error()})
		return
	}

	day, ok := req.Date(h.template.Location())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calendar date"})
		return
	}

	slots, err := h.service.Availability(c.Request.Context(), providerID, day)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(slots))
}

// Create books a new appointment for the authenticated customer.
func (h *Handler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	a, err := h.service.Book(c.Request.Context(), appointment.BookRequest{
		ProviderID: req.ProviderID,
		CustomerID: userID,
		Date:       req.Date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCreateAppointmentResponse(a))
}

// List returns the authenticated customer's upcoming appointments.
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	appointments, total, err := h.service.ListByCustomer(c.Request.Context(), userID, appointment.Filter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		items[i] = NewAppointmentResponse(a)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

// Schedule returns the authenticated provider's own appointments for one
// calendar day.
func (h *Handler) Schedule(c *gin.Context) {
	var req DayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date parameters", "details": err.Error()})
		return
	}

	day, ok := req.Date(h.template.Location())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calendar date"})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	appointments, err := h.service.ProviderDay(c.Request.Context(), userID, day)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		items[i] = NewAppointmentResponse(a)
	}

	c.JSON(http.StatusOK, items)
}

// Cancel voids the authenticated customer's appointment.
func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	a, err := h.service.Cancel(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAppointmentResponse(a))
}
