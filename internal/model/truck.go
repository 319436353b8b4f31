package model

import "time"

// TruckStatus is the derived utilisation state of a truck.
type TruckStatus string

const (
	TruckActive     TruckStatus = "Active"
	TruckPartial    TruckStatus = "Partial"
	TruckAlmostFull TruckStatus = "Almost Full"
	TruckFull       TruckStatus = "Full"
)

// DriverProfile holds the personal details of the driver offering the trip.
type DriverProfile struct {
	Age             int    `json:"age"`
	Sex             string `gorm:"size:16" json:"sex"`
	LicenseNumber   string `gorm:"size:64" json:"licenseNumber"`
	ExperienceYears int    `json:"experienceYears"`
}

// Rating is the composite review score of a truck, each component in [0,5].
type Rating struct {
	Overall     float64 `json:"overall"`
	Punctuality float64 `json:"punctuality"`
	Behavior    float64 `json:"behavior"`
	Safety      float64 `json:"safety"`
}

// Truck represents one vehicle and driver offering capacity on a route.
// Capacities are in tons, prices in INR.
type Truck struct {
	ID           string        `gorm:"primaryKey;size:36" json:"id"`
	DriverName   string        `gorm:"size:128;not null" json:"driverName"`
	Driver       DriverProfile `gorm:"embedded;embeddedPrefix:driver_" json:"driverDetails"`
	VehicleModel string        `gorm:"size:128" json:"vehicleModel"`
	VehicleRegNo string        `gorm:"size:32" json:"vehicleRegNo"`

	Origin        string `gorm:"size:128;not null;index" json:"origin"`
	Destination   string `gorm:"size:128;not null;index" json:"destination"`
	DepartureDate string `gorm:"size:32;not null" json:"departureDate"`

	CapacityTotal  float64 `gorm:"not null" json:"capacityTotal"`
	CapacityFilled float64 `gorm:"not null" json:"capacityFilled"`
	PricePerTon    float64 `gorm:"not null" json:"pricePerTon"`
	GroupShipping  bool    `gorm:"not null" json:"isGroupShippingAllowed"`

	Status TruckStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	Rating Rating      `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`

	// Trip economics, optional.
	Mileage      *float64 `json:"mileage,omitempty"`
	DieselPrice  *float64 `json:"dieselPrice,omitempty"`
	TollEstimate *float64 `json:"tollEstimate,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`

	// Associations
	Bookings []Booking `gorm:"foreignKey:TruckID" json:"-"`
}

// Remaining is the unbooked capacity in tons.
func (t *Truck) Remaining() float64 {
	return t.CapacityTotal - t.CapacityFilled
}
