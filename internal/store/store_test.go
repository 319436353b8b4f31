package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"freight-marketplace-backend/config"
	"freight-marketplace-backend/internal/freight"
	"freight-marketplace-backend/internal/model"
	"freight-marketplace-backend/internal/seed"
)

// newTestStore opens a private in-memory SQLite database seeded with the
// demo fixtures: trucks TRK-001..003, three ledger bookings and the queued
// request BK-NEW-01.
func newTestStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&model.Truck{}, &model.Booking{}, &model.ChatMessage{}))
	require.NoError(t, seed.Load(db))

	cfg := config.BookingConfig{RequestExpiryHours: 12, AlmostFullRatio: 0.9}
	return NewGormStore(db, cfg), db
}

func TestBookTruck(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	booking, err := s.BookTruck(ctx, "TRK-001", BookingInput{Weight: 1.2})
	require.NoError(t, err)

	assert.Equal(t, "TRK-001", booking.TruckID)
	assert.InDelta(t, 4200, booking.Price, 1e-9)
	assert.Equal(t, model.StatusAccepted, booking.Status)
	assert.Len(t, booking.OTP, 4)
	require.NotNil(t, booking.ExpiryTime)
	assert.Equal(t, 12.0, booking.ExpiryTime.Sub(booking.BookingTime).Hours())

	truck, err := s.GetTruck(ctx, "TRK-001")
	require.NoError(t, err)
	assert.InDelta(t, 1.2, truck.CapacityFilled, 1e-9)
	assert.Equal(t, model.TruckPartial, truck.Status)

	// The new booking sits at the head of the ledger.
	bookings, err := s.ListBookings(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, bookings)
	assert.Equal(t, booking.ID, bookings[0].ID)

	// One system chat message records the booking.
	detail, err := s.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, detail.ChatHistory, 1)
	assert.Equal(t, model.SenderSystem, detail.ChatHistory[0].Sender)
}

func TestBookTruckFillsTruck(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// TRK-003 has exactly one ton left.
	_, err := s.BookTruck(ctx, "TRK-003", BookingInput{Weight: 1.0})
	require.NoError(t, err)

	truck, err := s.GetTruck(ctx, "TRK-003")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, truck.CapacityFilled, 1e-9)
	assert.Equal(t, model.TruckFull, truck.Status)

	// A full truck rejects further bookings and stays unmodified.
	_, err = s.BookTruck(ctx, "TRK-003", BookingInput{Weight: 1.0})
	assert.True(t, freight.IsValidation(err))

	truck, err = s.GetTruck(ctx, "TRK-003")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, truck.CapacityFilled, 1e-9)
}

func TestBookTruckAlmostFull(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// 3.5 of 7 booked; another 3.0 lands at 6.5/7 ≈ 0.93 utilisation.
	_, err := s.BookTruck(ctx, "TRK-002", BookingInput{Weight: 3.0})
	require.NoError(t, err)

	truck, err := s.GetTruck(ctx, "TRK-002")
	require.NoError(t, err)
	assert.Equal(t, model.TruckAlmostFull, truck.Status)
}

func TestBookTruckRejections(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.BookTruck(ctx, "TRK-404", BookingInput{Weight: 1.0})
	assert.True(t, freight.IsNotFound(err))

	_, err = s.BookTruck(ctx, "TRK-001", BookingInput{Weight: 0})
	assert.True(t, freight.IsValidation(err))

	_, err = s.BookTruck(ctx, "TRK-001", BookingInput{Weight: -2})
	assert.True(t, freight.IsValidation(err))

	// Over the remaining capacity.
	_, err = s.BookTruck(ctx, "TRK-001", BookingInput{Weight: 4.5})
	assert.True(t, freight.IsValidation(err))

	// Failed bookings leave no trace: the truck and the ledger are unchanged.
	truck, err := s.GetTruck(ctx, "TRK-001")
	require.NoError(t, err)
	assert.Zero(t, truck.CapacityFilled)
	assert.Equal(t, model.TruckActive, truck.Status)

	bookings, err := s.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 3)
}

func TestBookTruckCapacityInvariant(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	weights := []float64{1.0, 0.5, 2.0, 1.5, 0.7}
	for _, w := range weights {
		_, _ = s.BookTruck(ctx, "TRK-001", BookingInput{Weight: w})

		truck, err := s.GetTruck(ctx, "TRK-001")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, truck.CapacityFilled, 0.0)
		assert.LessOrEqual(t, truck.CapacityFilled, truck.CapacityTotal)
	}
}

func TestRespondToRequestAccept(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	before, err := s.ListBookings(ctx)
	require.NoError(t, err)

	booking, err := s.RespondToRequest(ctx, "BK-NEW-01", DecisionAccept)
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, model.StatusAccepted, booking.Status)
	assert.NotNil(t, booking.AcceptedAt)

	requests, err := s.ListRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, requests)

	after, err := s.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, "BK-NEW-01", after[0].ID)
}

func TestRespondToRequestDecline(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	before, err := s.ListBookings(ctx)
	require.NoError(t, err)

	booking, err := s.RespondToRequest(ctx, "BK-NEW-01", DecisionDecline)
	require.NoError(t, err)
	assert.Nil(t, booking)

	requests, err := s.ListRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, requests)

	// Declined requests are discarded, not moved to the ledger.
	after, err := s.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))

	_, err = s.GetBooking(ctx, "BK-NEW-01")
	assert.True(t, freight.IsNotFound(err))
}

func TestRespondToRequestErrors(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.RespondToRequest(ctx, "BK-404", DecisionAccept)
	assert.True(t, freight.IsNotFound(err))

	// Ledger bookings are not requests.
	_, err = s.RespondToRequest(ctx, "BK-901", DecisionAccept)
	assert.True(t, freight.IsNotFound(err))

	_, err = s.RespondToRequest(ctx, "BK-NEW-01", Decision("maybe"))
	assert.True(t, freight.IsValidation(err))
}

func TestAdvanceStatus(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// BK-901 is seeded In-Transit.
	booking, err := s.AdvanceStatus(ctx, "BK-901", model.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, booking.Status)
	require.NotNil(t, booking.DeliveredAt)
	deliveredAt := *booking.DeliveredAt

	// Repeating the identical call is a no-op.
	again, err := s.AdvanceStatus(ctx, "BK-901", model.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, again.Status)
	assert.Equal(t, deliveredAt.Unix(), again.DeliveredAt.Unix())

	// Delivered is terminal.
	_, err = s.AdvanceStatus(ctx, "BK-901", model.StatusAccepted)
	assert.True(t, freight.IsTransition(err))
}

func TestAdvanceStatusErrors(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.AdvanceStatus(ctx, "BK-404", model.StatusDelivered)
	assert.True(t, freight.IsNotFound(err))

	// Queued requests are not in the ledger yet.
	_, err = s.AdvanceStatus(ctx, "BK-NEW-01", model.StatusAccepted)
	assert.True(t, freight.IsNotFound(err))

	_, err = s.AdvanceStatus(ctx, "BK-901", model.BookingStatus("Warp"))
	assert.True(t, freight.IsValidation(err))
}

func TestPostTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	truck, err := s.PostTrip(ctx, TripInput{
		Origin:        "Nagpur",
		Destination:   "Pune",
		DepartureDate: "2024-11-01",
		CapacityTotal: 5,
		PricePerTon:   3000,
	})
	require.NoError(t, err)

	assert.Zero(t, truck.CapacityFilled)
	assert.Equal(t, model.TruckActive, truck.Status)
	assert.Equal(t, 5.0, truck.Rating.Overall)
	assert.Equal(t, "You (Current User)", truck.DriverName)
	assert.True(t, truck.GroupShipping)
	assert.True(t, strings.HasPrefix(truck.ID, "TRK-"))

	// New trips appear at the head of the fleet list.
	trucks, err := s.ListTrucks(ctx, "")
	require.NoError(t, err)
	require.Len(t, trucks, 4)
	assert.Equal(t, truck.ID, trucks[0].ID)
}

func TestPostTripValidation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	testCases := []struct {
		name string
		in   TripInput
	}{
		{"missing origin", TripInput{Destination: "Pune", DepartureDate: "2024-11-01", CapacityTotal: 5, PricePerTon: 3000}},
		{"missing destination", TripInput{Origin: "Nagpur", DepartureDate: "2024-11-01", CapacityTotal: 5, PricePerTon: 3000}},
		{"missing departure date", TripInput{Origin: "Nagpur", Destination: "Pune", CapacityTotal: 5, PricePerTon: 3000}},
		{"zero capacity", TripInput{Origin: "Nagpur", Destination: "Pune", DepartureDate: "2024-11-01", PricePerTon: 3000}},
		{"zero price", TripInput{Origin: "Nagpur", Destination: "Pune", DepartureDate: "2024-11-01", CapacityTotal: 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.PostTrip(ctx, tc.in)
			assert.True(t, freight.IsValidation(err))
		})
	}
}

func TestListTrucksSearch(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	trucks, err := s.ListTrucks(ctx, "hyderabad")
	require.NoError(t, err)
	require.Len(t, trucks, 1)
	assert.Equal(t, "TRK-003", trucks[0].ID)

	trucks, err = s.ListTrucks(ctx, "eicher")
	require.NoError(t, err)
	require.Len(t, trucks, 1)
	assert.Equal(t, "TRK-002", trucks[0].ID)

	trucks, err = s.ListTrucks(ctx, "no-such-route")
	require.NoError(t, err)
	assert.Empty(t, trucks)
}

func TestEarnings(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// Seeded: BK-880 (3500) and BK-850 (19000) are delivered.
	summary, err := s.Earnings(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 22500, summary.TotalEarnings, 1e-9)
	assert.Equal(t, int64(2), summary.DeliveredTrips)

	_, err = s.AdvanceStatus(ctx, "BK-901", model.StatusDelivered)
	require.NoError(t, err)

	summary, err = s.Earnings(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 30900, summary.TotalEarnings, 1e-9)
	assert.Equal(t, int64(3), summary.DeliveredTrips)
}

func TestAppendMessage(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	msg, err := s.AppendMessage(ctx, "BK-901", model.SenderFactory, "Any delay expected?")
	require.NoError(t, err)
	assert.Equal(t, "BK-901", msg.BookingID)

	detail, err := s.GetBooking(ctx, "BK-901")
	require.NoError(t, err)
	require.Len(t, detail.ChatHistory, 4)
	assert.Equal(t, "Any delay expected?", detail.ChatHistory[3].Text)

	_, err = s.AppendMessage(ctx, "BK-901", model.SenderRole("stranger"), "hi")
	assert.True(t, freight.IsValidation(err))

	_, err = s.AppendMessage(ctx, "BK-901", model.SenderFactory, "   ")
	assert.True(t, freight.IsValidation(err))

	_, err = s.AppendMessage(ctx, "BK-404", model.SenderFactory, "hello")
	assert.True(t, freight.IsNotFound(err))
}
