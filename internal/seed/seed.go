// Package seed loads the demo fixture data: the fleet, the booking history
// and one pending incoming request. It only runs against an empty database,
// so a configured persistent database is never re-seeded.
package seed

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"freight-marketplace-backend/internal/model"
)

func ptr[T any](v T) *T { return &v }

// Load inserts the fixtures when the trucks table is empty.
func Load(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Truck{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count trucks: %w", err)
	}
	if count > 0 {
		logrus.Debug("database already populated, skipping seed")
		return nil
	}

	now := time.Now().UTC()
	trucks := fixtureTrucks()
	bookings := fixtureBookings(now)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trucks).Error; err != nil {
			return fmt.Errorf("failed to seed trucks: %w", err)
		}
		if err := tx.Create(&bookings).Error; err != nil {
			return fmt.Errorf("failed to seed bookings: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.Infof("seeded %d trucks and %d bookings", len(trucks), len(bookings))
	return nil
}

func fixtureTrucks() []model.Truck {
	return []model.Truck{
		{
			ID:         "TRK-001",
			DriverName: "Rajesh Yadav",
			Driver: model.DriverProfile{
				Age: 42, Sex: "Male", LicenseNumber: "MH-31-2009-0043210", ExperienceYears: 15,
			},
			VehicleModel:  "Tata 407 (Light Commercial)",
			VehicleRegNo:  "MH-31-CB-1234",
			Origin:        "Butibori MIDC",
			Destination:   "Pune (Chakan)",
			DepartureDate: "2024-10-25",
			CapacityTotal: 4.0,
			PricePerTon:   3500,
			GroupShipping: true,
			Status:        model.TruckActive,
			Rating:        model.Rating{Overall: 4.8, Punctuality: 4.9, Behavior: 4.5, Safety: 5.0},
			DieselPrice:   ptr(94.5),
			Mileage:       ptr(10.0),
			TollEstimate:  ptr(1200.0),
		},
		{
			ID:         "TRK-002",
			DriverName: "Amit Singh",
			Driver: model.DriverProfile{
				Age: 29, Sex: "Male", LicenseNumber: "MH-40-2015-998877", ExperienceYears: 5,
			},
			VehicleModel:   "Eicher Pro 1049",
			VehicleRegNo:   "MH-40-X-9090",
			Origin:         "Kalmeshwar",
			Destination:    "Mumbai (Bhiwandi)",
			DepartureDate:  "2024-10-26",
			CapacityTotal:  7.0,
			CapacityFilled: 3.5,
			PricePerTon:    4200,
			GroupShipping:  true,
			Status:         model.TruckPartial,
			Rating:         model.Rating{Overall: 4.5, Punctuality: 4.0, Behavior: 4.8, Safety: 4.7},
			DieselPrice:    ptr(95.0),
			Mileage:        ptr(8.0),
			TollEstimate:   ptr(2100.0),
		},
		{
			ID:         "TRK-003",
			DriverName: "Suresh Patil",
			Driver: model.DriverProfile{
				Age: 51, Sex: "Male", LicenseNumber: "MH-31-1995-112233", ExperienceYears: 25,
			},
			VehicleModel:   "Ashok Leyland Boss",
			VehicleRegNo:   "MH-31-AL-5555",
			Origin:         "Hingna MIDC",
			Destination:    "Hyderabad",
			DepartureDate:  "2024-10-25",
			CapacityTotal:  10.0,
			CapacityFilled: 9.0,
			PricePerTon:    3800,
			GroupShipping:  false,
			Status:         model.TruckAlmostFull,
			Rating:         model.Rating{Overall: 4.2, Punctuality: 3.8, Behavior: 4.0, Safety: 4.8},
		},
	}
}

func fixtureBookings(now time.Time) []model.Booking {
	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.Add(-7 * 24 * time.Hour)
	twoWeeksAgo := now.Add(-14 * 24 * time.Hour)

	return []model.Booking{
		{
			ID:                 "BK-901",
			TruckID:            "TRK-002",
			FactoryName:        "My Factory Pvt Ltd",
			GoodsType:          "Processed Soy",
			Weight:             2.0,
			OriginAddress:      "Plot No 45, Kalmeshwar Industrial Area, Nagpur",
			DestinationAddress: "Bhiwandi Warehousing Corp, Mumbai",
			Price:              8400,
			Status:             model.StatusInTransit,
			OTP:                "4590",
			BookingTime:        dayAgo,
			ExpiryTime:         ptr(now.Add(-12 * time.Hour)),
			LedgerAt:           ptr(dayAgo),
			AcceptedAt:         ptr(dayAgo),
			PickedUpAt:         ptr(now.Add(-10 * time.Hour)),
			CoLoaders:          model.StringList{"Nagpur Agro Foods"},
			EstimatedArrival:   ptr(now.Add(3 * time.Hour)),
			ChatHistory: []model.ChatMessage{
				{Sender: model.SenderSystem, Text: "Booking Confirmed", Timestamp: dayAgo},
				{Sender: model.SenderTrucker, Text: "Picked up the goods. Leaving Kalmeshwar now.", Timestamp: now.Add(-10 * time.Hour)},
				{Sender: model.SenderFactory, Text: "Great, drive safely.", Timestamp: now.Add(-10 * time.Hour).Add(17 * time.Minute)},
			},
		},
		{
			ID:                 "BK-880",
			TruckID:            "TRK-001",
			FactoryName:        "My Factory Pvt Ltd",
			GoodsType:          "Machinery Parts",
			Fragile:            true,
			Weight:             1.0,
			OriginAddress:      "Butibori MIDC",
			DestinationAddress: "Pune (Chakan)",
			Price:              3500,
			Status:             model.StatusDelivered,
			OTP:                "0000",
			BookingTime:        weekAgo,
			LedgerAt:           ptr(weekAgo),
			DeliveredAt:        ptr(weekAgo.Add(18 * time.Hour)),
		},
		{
			ID:                 "BK-850",
			TruckID:            "TRK-003",
			FactoryName:        "My Factory Pvt Ltd",
			GoodsType:          "Textile Waste",
			Weight:             5.0,
			OriginAddress:      "Hingna MIDC",
			DestinationAddress: "Hyderabad",
			Price:              19000,
			Status:             model.StatusDelivered,
			OTP:                "0000",
			BookingTime:        twoWeeksAgo,
			LedgerAt:           ptr(twoWeeksAgo),
			DeliveredAt:        ptr(twoWeeksAgo.Add(26 * time.Hour)),
		},
		{
			ID:                 "BK-NEW-01",
			TruckID:            "TRK-001",
			FactoryName:        "Orange City Logistics",
			GoodsType:          "Electronics",
			Fragile:            true,
			Weight:             1.5,
			OriginAddress:      "Nagpur Airport Cargo",
			DestinationAddress: "Pune IT Park",
			Price:              6500,
			Status:             model.StatusPending,
			OTP:                "1234",
			BookingTime:        now,
			ExpiryTime:         ptr(now.Add(12 * time.Hour)),
			Incoming:           true,
		},
	}
}
