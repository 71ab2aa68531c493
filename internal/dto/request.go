package dto

import "time"

type AddOnRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type CreateBookingRequest struct {
	ClientName  string         `json:"clientName" validate:"required"`
	ClientEmail string         `json:"clientEmail" validate:"required,email"`
	ClientPhone string         `json:"clientPhone,omitempty"`
	ServiceID   string         `json:"serviceId" validate:"required,uuid"`
	Date        *time.Time     `json:"date" validate:"required"`
	Location    string         `json:"location,omitempty"`
	TotalPrice  *float64       `json:"totalPrice,omitempty" validate:"omitempty,gte=0"`
	Notes       string         `json:"notes,omitempty"`
	Duration    *int           `json:"duration,omitempty" validate:"omitempty,gt=0"`
	DepositPaid bool           `json:"depositPaid,omitempty"`
	Status      string         `json:"status,omitempty"`
	AddOns      []AddOnRequest `json:"addOns,omitempty" validate:"omitempty,dive"`
}

type UpdateBookingRequest struct {
	Status      *string  `json:"status,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	Location    *string  `json:"location,omitempty"`
	TotalPrice  *float64 `json:"totalPrice,omitempty" validate:"omitempty,gte=0"`
	DepositPaid *bool    `json:"depositPaid,omitempty"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Duration    int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Category    string  `json:"category,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Duration    *int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,min=1"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

type CreateClientRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone,omitempty"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=lead qualified booked repeat archived"`
}

type UpdateClientRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Phone  *string `json:"phone,omitempty"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=lead qualified booked repeat archived"`
}
