package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientStatus string

const (
	ClientLead      ClientStatus = "lead"
	ClientQualified ClientStatus = "qualified"
	ClientBooked    ClientStatus = "booked"
	ClientRepeat    ClientStatus = "repeat"
	ClientArchived  ClientStatus = "archived"
)

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientLead, ClientQualified, ClientBooked, ClientRepeat, ClientArchived:
		return true
	}
	return false
}

// AfterBooking returns the relationship status once the client books again.
func (s ClientStatus) AfterBooking() ClientStatus {
	switch s {
	case ClientLead, ClientQualified, "":
		return ClientBooked
	default:
		return ClientRepeat
	}
}

// Client is never deleted. Email is the natural key but the schema only
// indexes it; dedup happens in the service layer.
type Client struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string       `gorm:"not null" json:"name"`
	Email         string       `gorm:"not null;index" json:"email"`
	Phone         string       `json:"phone"`
	Status        ClientStatus `gorm:"type:varchar(20);not null;default:'lead'" json:"status"`
	LifetimeValue float64      `gorm:"type:decimal(10,2);not null;default:0" json:"lifetimeValue"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Email = NormalizeEmail(c.Email)
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
