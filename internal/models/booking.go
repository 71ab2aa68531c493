package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"clientId"`
	ServiceID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"serviceId"`
	Date        time.Time     `gorm:"not null;index" json:"date"`
	Duration    int           `gorm:"not null" json:"duration"` // minutes
	Location    string        `json:"location"`
	TotalPrice  float64       `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	DepositPaid bool          `gorm:"not null;default:false" json:"depositPaid"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes       string        `gorm:"type:text" json:"notes"`
	AddOns      AddOns        `gorm:"type:jsonb;default:'[]'" json:"addOns"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	Client  *Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.AddOns == nil {
		b.AddOns = AddOns{}
	}
	return nil
}

// End is derived; only the start instant and the duration are stored.
func (b *Booking) End() time.Time {
	return b.Date.Add(time.Duration(b.Duration) * time.Minute)
}

// AddOn is a free-form extra sold with a booking. There is no catalog behind it.
type AddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type AddOns []AddOn

func (a AddOns) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *AddOns) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*a = AddOns{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("add-ons: unsupported scan type")
	}
	return json.Unmarshal(raw, a)
}

func (a AddOns) Total() float64 {
	var sum float64
	for _, item := range a {
		sum += item.Price
	}
	return sum
}
