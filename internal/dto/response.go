package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shutterdesk/studio/internal/models"
)

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ClientResponse struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	Status        models.ClientStatus `json:"status"`
	LifetimeValue float64             `json:"lifetimeValue"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type BookingResponse struct {
	ID          uuid.UUID            `json:"id"`
	ClientID    uuid.UUID            `json:"clientId"`
	ServiceID   uuid.UUID            `json:"serviceId"`
	Date        time.Time            `json:"date"`
	Duration    int                  `json:"duration"`
	Location    string               `json:"location"`
	TotalPrice  float64              `json:"totalPrice"`
	DepositPaid bool                 `json:"depositPaid"`
	Status      models.BookingStatus `json:"status"`
	Color       string               `json:"color"`
	Notes       string               `json:"notes"`
	AddOns      models.AddOns        `json:"addOns"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Client      *ClientResponse      `json:"client,omitempty"`
	Service     *ServiceResponse     `json:"service,omitempty"`
}

type StatsResponse struct {
	Total       int64                          `json:"total"`
	Counts      map[models.BookingStatus]int64 `json:"counts"`
	Percentages map[models.BookingStatus]int   `json:"percentages"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToServiceResponse(s *models.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Duration:    s.Duration,
		Category:    s.Category,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func ToClientResponse(c *models.Client) ClientResponse {
	return ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Status:        c.Status,
		LifetimeValue: c.LifetimeValue,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		ClientID:    b.ClientID,
		ServiceID:   b.ServiceID,
		Date:        b.Date.UTC(),
		Duration:    b.Duration,
		Location:    b.Location,
		TotalPrice:  b.TotalPrice,
		DepositPaid: b.DepositPaid,
		Status:      b.Status,
		Color:       b.Status.Color(),
		Notes:       b.Notes,
		AddOns:      b.AddOns,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if resp.AddOns == nil {
		resp.AddOns = models.AddOns{}
	}
	if b.Client != nil {
		c := ToClientResponse(b.Client)
		resp.Client = &c
	}
	if b.Service != nil {
		s := ToServiceResponse(b.Service)
		resp.Service = &s
	}
	return resp
}

func ToStatsResponse(counts models.StatusCounts) StatsResponse {
	resp := StatsResponse{
		Total:       counts.Total(),
		Counts:      make(map[models.BookingStatus]int64, len(models.AllStatuses)),
		Percentages: make(map[models.BookingStatus]int, len(models.AllStatuses)),
	}
	for _, s := range models.AllStatuses {
		resp.Counts[s] = counts[s]
		resp.Percentages[s] = counts.Percent(s)
	}
	return resp
}
