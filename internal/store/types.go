package store

import "freight-marketplace-backend/internal/model"

// TripInput carries the fields a trucker submits when posting a trip.
// Route, capacity and price are required; everything else falls back to
// fixed demo defaults.
type TripInput struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departureDate"`
	CapacityTotal float64 `json:"capacityTotal"`
	PricePerTon   float64 `json:"pricePerTon"`

	DriverName    string               `json:"driverName"`
	Driver        *model.DriverProfile `json:"driverDetails"`
	VehicleModel  string               `json:"vehicleModel"`
	VehicleRegNo  string               `json:"vehicleRegNo"`
	GroupShipping *bool                `json:"isGroupShippingAllowed"`

	Mileage      *float64 `json:"mileage"`
	DieselPrice  *float64 `json:"dieselPrice"`
	TollEstimate *float64 `json:"tollEstimate"`
}

// BookingInput carries the fields a factory submits when booking a truck.
// Only the weight is required.
type BookingInput struct {
	Weight             float64  `json:"weight"`
	FactoryName        string   `json:"factoryName"`
	GoodsType          string   `json:"goodsType"`
	Fragile            bool     `json:"isFragile"`
	OriginAddress      string   `json:"originAddress"`
	DestinationAddress string   `json:"destinationAddress"`
	CoLoaders          []string `json:"coLoaders"`
}

// Decision is a trucker's answer to an incoming load request.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

// EarningsSummary aggregates the trucker's delivered shipments.
type EarningsSummary struct {
	TotalEarnings  float64 `json:"totalEarnings"`
	DeliveredTrips int64   `json:"deliveredTrips"`
}
