package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusAccepted  BookingStatus = "Accepted"
	StatusPickup    BookingStatus = "Pickup"
	StatusInTransit BookingStatus = "In-Transit"
	StatusDelivered BookingStatus = "Delivered"
	StatusCancelled BookingStatus = "Cancelled"
	StatusRevoked   BookingStatus = "Revoked"
)

// StringList stores a list of names as a JSON text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported StringList column type %T", value)
	}
}

// Booking represents one shipment contracted against a truck.
// A booking with Incoming set is still in the trucker's request queue and
// is not part of the active ledger; accepting it clears the flag and stamps
// LedgerAt, which orders the ledger most-recent-first.
type Booking struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	TruckID string `gorm:"index;size:36;not null" json:"truckId"`

	FactoryName string  `gorm:"size:128;not null" json:"factoryName"`
	GoodsType   string  `gorm:"size:128" json:"goodsType"`
	Fragile     bool    `gorm:"not null" json:"isFragile"`
	Weight      float64 `gorm:"not null" json:"weight"`

	OriginAddress      string `gorm:"size:255" json:"originAddress"`
	DestinationAddress string `gorm:"size:255" json:"destinationAddress"`

	Price  float64       `gorm:"not null" json:"price"`
	Status BookingStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	OTP    string        `gorm:"size:8;not null" json:"otp"`

	BookingTime time.Time  `gorm:"not null" json:"bookingTime"`
	ExpiryTime  *time.Time `json:"expiryTime,omitempty"`

	Incoming bool       `gorm:"index;not null" json:"-"`
	LedgerAt *time.Time `gorm:"index" json:"-"`

	CoLoaders        StringList `gorm:"type:text" json:"coLoaders,omitempty"`
	EstimatedArrival *time.Time `json:"estimatedArrival,omitempty"`

	AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
	PickedUpAt  *time.Time `json:"pickedUpAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`

	// Associations
	ChatHistory []ChatMessage `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"chatHistory"`
}
