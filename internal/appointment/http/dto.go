package http

import (
	"time"

	"github.com/nekogravitycat/appointment-booking-backend/internal/appointment"
	userHttp "github.com/nekogravitycat/appointment-booking-backend/internal/user/http"
)

// DayRequest defines the query parameters selecting one calendar day.
type DayRequest struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required,min=1,max=12"`
	Day   int `form:"day" binding:"required,min=1,max=31"`
}

// Date builds the first instant of the requested day in loc. It rejects
// dates that do not exist on the calendar (e.g. February 30th).
func (r *DayRequest) Date(loc *time.Location) (time.Time, bool) {
	d := time.Date(r.Year, time.Month(r.Month), r.Day, 0, 0, 0, 0, loc)
	if d.Year() != r.Year || d.Month() != time.Month(r.Month) || d.Day() != r.Day {
		return time.Time{}, false
	}
	return d, true
}

// AvailabilitySlotResponse is one entry of the availability list.
type AvailabilitySlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

func NewAvailabilityResponse(slots []appointment.AvailabilitySlot) []AvailabilitySlotResponse {
	items := make([]AvailabilitySlotResponse, len(slots))
	for i, s := range slots {
		items[i] = AvailabilitySlotResponse{Time: s.Time, Available: s.Available}
	}
	return items
}

type CreateAppointmentRequest struct {
	ProviderID string    `json:"provider_id" binding:"required,uuid"`
	Date       time.Time `json:"date" binding:"required"`
}

// CreateAppointmentResponse is the booking contract payload.
type CreateAppointmentResponse struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"provider_id"`
	Date       time.Time `json:"date"`
}

func NewCreateAppointmentResponse(a *appointment.Appointment) CreateAppointmentResponse {
	return CreateAppointmentResponse{
		ID:         a.ID,
		ProviderID: a.ProviderID,
		Date:       a.Date,
	}
}

// AppointmentResponse is the full appointment shape used by list,
// schedule and cancel endpoints.
type AppointmentResponse struct {
	ID         string           `json:"id"`
	Provider   userHttp.UserTag `json:"provider"`
	Customer   userHttp.UserTag `json:"customer"`
	Date       time.Time        `json:"date"`
	CanceledAt *time.Time       `json:"canceled_at"`
	CreatedAt  time.Time        `json:"created_at"`
}

func NewAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:         a.ID,
		Provider:   userHttp.UserTag{ID: a.ProviderID, Name: a.ProviderName},
		Customer:   userHttp.UserTag{ID: a.CustomerID, Name: a.CustomerName},
		Date:       a.Date,
		CanceledAt: a.CanceledAt,
		CreatedAt:  a.CreatedAt,
	}
}
