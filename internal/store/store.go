package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freight-marketplace-backend/config"
	"freight-marketplace-backend/internal/freight"
	"freight-marketplace-backend/internal/model"
)

// Store is the booking engine's boundary: every marketplace mutation and
// read the presentation layer needs. Mutations are transactional; a failed
// operation leaves no partial state behind.
type Store interface {
	DB() *gorm.DB

	BookTruck(ctx context.Context, truckID string, in BookingInput) (*model.Booking, error)
	PostTrip(ctx context.Context, in TripInput) (*model.Truck, error)
	RespondToRequest(ctx context.Context, bookingID string, decision Decision) (*model.Booking, error)
	AdvanceStatus(ctx context.Context, bookingID string, to model.BookingStatus) (*model.Booking, error)
	AppendMessage(ctx context.Context, bookingID string, sender model.SenderRole, text string) (*model.ChatMessage, error)

	ListTrucks(ctx context.Context, query string) ([]model.Truck, error)
	GetTruck(ctx context.Context, id string) (*model.Truck, error)
	ListBookings(ctx context.Context) ([]model.Booking, error)
	GetBooking(ctx context.Context, id string) (*model.Booking, error)
	ListRequests(ctx context.Context) ([]model.Booking, error)
	Earnings(ctx context.Context) (*EarningsSummary, error)
}

// gormStore implements Store on top of GORM.
type gormStore struct {
	db  *gorm.DB
	cfg config.BookingConfig
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, cfg config.BookingConfig) Store {
	return &gormStore{db: db, cfg: cfg}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// BookTruck books requested tonnage on a truck. The booking is auto-accepted,
// priced at the truck's per-ton rate and head-inserted into the ledger; the
// truck's filled capacity and derived status are updated in the same
// transaction. Requests exceeding the remaining capacity are rejected.
func (s *gormStore) BookTruck(ctx context.Context, truckID string, in BookingInput) (*model.Booking, error) {
	var booking *model.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var truck model.Truck
		if err := tx.Where("id = ?", truckID).First(&truck).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &freight.NotFoundError{Kind: "truck", ID: truckID}
			}
			return fmt.Errorf("failed to load truck %s: %w", truckID, err)
		}

		if err := freight.CheckWeight(in.Weight, truck.Remaining()); err != nil {
			return err
		}

		now := time.Now().UTC()
		expiry := now.Add(time.Duration(s.cfg.RequestExpiryHours) * time.Hour)
		ledgerAt := now
		acceptedAt := now

		b := &model.Booking{
			ID:                 newID("BK"),
			TruckID:            truck.ID,
			FactoryName:        defaultString(in.FactoryName, "My Factory (You)"),
			GoodsType:          defaultString(in.GoodsType, "General Goods"),
			Fragile:            in.Fragile,
			Weight:             in.Weight,
			OriginAddress:      defaultString(in.OriginAddress, truck.Origin),
			DestinationAddress: defaultString(in.DestinationAddress, truck.Destination),
			Price:              freight.Quote(truck.PricePerTon, in.Weight),
			Status:             model.StatusAccepted,
			OTP:                freight.NewOTP(),
			BookingTime:        now,
			ExpiryTime:         &expiry,
			LedgerAt:           &ledgerAt,
			AcceptedAt:         &acceptedAt,
			CoLoaders:          in.CoLoaders,
			ChatHistory: []model.ChatMessage{
				{Sender: model.SenderSystem, Text: "Booking request sent", Timestamp: now},
			},
		}
		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		truck.CapacityFilled += in.Weight
		truck.Status = freight.TruckStatusFor(truck.CapacityFilled, truck.CapacityTotal, s.cfg.AlmostFullRatio)
		if err := tx.Save(&truck).Error; err != nil {
			return fmt.Errorf("failed to update truck %s capacity: %w", truck.ID, err)
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// PostTrip registers a new truck at the head of the fleet list. Fields the
// trucker left out fall back to the demo defaults.
func (s *gormStore) PostTrip(ctx context.Context, in TripInput) (*model.Truck, error) {
	if err := validateTrip(in); err != nil {
		return nil, err
	}

	truck := &model.Truck{
		ID:            newID("TRK"),
		DriverName:    defaultString(in.DriverName, "You (Current User)"),
		Driver:        model.DriverProfile{Age: 30, Sex: "Male", LicenseNumber: "MH-31-0000", ExperienceYears: 5},
		VehicleModel:  defaultString(in.VehicleModel, "Tata Ace Gold"),
		VehicleRegNo:  defaultString(in.VehicleRegNo, "MH-31-NEW"),
		Origin:        in.Origin,
		Destination:   in.Destination,
		DepartureDate: in.DepartureDate,
		CapacityTotal: in.CapacityTotal,
		PricePerTon:   in.PricePerTon,
		GroupShipping: true,
		Status:        model.TruckActive,
		Rating:        model.Rating{Overall: 5.0, Punctuality: 5, Behavior: 5, Safety: 5},
		Mileage:       in.Mileage,
		DieselPrice:   in.DieselPrice,
		TollEstimate:  in.TollEstimate,
	}
	if in.Driver != nil {
		truck.Driver = *in.Driver
	}
	if in.GroupShipping != nil {
		truck.GroupShipping = *in.GroupShipping
	}

	if err := s.db.WithContext(ctx).Create(truck).Error; err != nil {
		return nil, fmt.Errorf("failed to create truck: %w", err)
	}
	return truck, nil
}

// RespondToRequest resolves a queued load request. Accept moves the booking
// into the ledger with status Accepted; Decline discards the record. The
// returned booking is nil on decline.
func (s *gormStore) RespondToRequest(ctx context.Context, bookingID string, decision Decision) (*model.Booking, error) {
	if decision != DecisionAccept && decision != DecisionDecline {
		return nil, &freight.ValidationError{Field: "decision", Reason: fmt.Sprintf("must be %q or %q", DecisionAccept, DecisionDecline)}
	}

	var accepted *model.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b model.Booking
		if err := tx.Where("id = ? AND incoming = ?", bookingID, true).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &freight.NotFoundError{Kind: "request", ID: bookingID}
			}
			return fmt.Errorf("failed to load request %s: %w", bookingID, err)
		}

		now := time.Now().UTC()
		if decision == DecisionDecline {
			// The source discards declined requests without keeping an
			// audit record, so delete rather than terminal-state.
			if err := tx.Where("booking_id = ?", b.ID).Delete(&model.ChatMessage{}).Error; err != nil {
				return fmt.Errorf("failed to delete request chat: %w", err)
			}
			if err := tx.Delete(&b).Error; err != nil {
				return fmt.Errorf("failed to delete request %s: %w", b.ID, err)
			}
			return nil
		}

		if err := freight.ApplyTransition(&b, model.StatusAccepted, now); err != nil {
			return err
		}
		b.Incoming = false
		b.LedgerAt = &now
		if err := tx.Save(&b).Error; err != nil {
			return fmt.Errorf("failed to accept request %s: %w", b.ID, err)
		}
		accepted = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// AdvanceStatus moves a ledger booking to the target status. Illegal
// transitions are rejected with a TransitionError; repeating the same call
// is a no-op.
func (s *gormStore) AdvanceStatus(ctx context.Context, bookingID string, to model.BookingStatus) (*model.Booking, error) {
	var booking *model.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b model.Booking
		if err := tx.Where("id = ? AND incoming = ?", bookingID, false).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &freight.NotFoundError{Kind: "booking", ID: bookingID}
			}
			return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
		}

		if err := freight.ApplyTransition(&b, to, time.Now().UTC()); err != nil {
			return err
		}
		if err := tx.Save(&b).Error; err != nil {
			return fmt.Errorf("failed to update booking %s: %w", b.ID, err)
		}
		booking = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// AppendMessage adds a chat message to a booking's history.
func (s *gormStore) AppendMessage(ctx context.Context, bookingID string, sender model.SenderRole, text string) (*model.ChatMessage, error) {
	if !freight.ValidSender(sender) {
		return nil, &freight.ValidationError{Field: "sender", Reason: fmt.Sprintf("unknown role %q", sender)}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &freight.ValidationError{Field: "text", Reason: "must not be empty"}
	}

	var msg *model.ChatMessage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b model.Booking
		if err := tx.Select("id").Where("id = ?", bookingID).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &freight.NotFoundError{Kind: "booking", ID: bookingID}
			}
			return fmt.Errorf("failed to load booking %s: %w", bookingID, err)
		}

		m := &model.ChatMessage{
			BookingID: b.ID,
			Sender:    sender,
			Text:      strings.TrimSpace(text),
			Timestamp: time.Now().UTC(),
		}
		if err := tx.Create(m).Error; err != nil {
			return fmt.Errorf("failed to append message: %w", err)
		}
		msg = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ListTrucks returns the fleet newest-first, optionally filtered by a search
// term over origin, destination and vehicle model.
func (s *gormStore) ListTrucks(ctx context.Context, query string) ([]model.Truck, error) {
	q := s.db.WithContext(ctx).Model(&model.Truck{})
	if term := strings.TrimSpace(query); term != "" {
		pat := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(origin) LIKE ? OR LOWER(destination) LIKE ? OR LOWER(vehicle_model) LIKE ?", pat, pat, pat)
	}

	var trucks []model.Truck
	if err := q.Order("created_at DESC").Find(&trucks).Error; err != nil {
		return nil, fmt.Errorf("failed to list trucks: %w", err)
	}
	return trucks, nil
}

func (s *gormStore) GetTruck(ctx context.Context, id string) (*model.Truck, error) {
	var truck model.Truck
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&truck).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &freight.NotFoundError{Kind: "truck", ID: id}
		}
		return nil, fmt.Errorf("failed to load truck %s: %w", id, err)
	}
	return &truck, nil
}

// ListBookings returns the active ledger most-recent-first. Queued requests
// are excluded until the trucker accepts them.
func (s *gormStore) ListBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := s.db.WithContext(ctx).
		Where("incoming = ?", false).
		Order("ledger_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *gormStore) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	if err := s.db.WithContext(ctx).
		Preload("ChatHistory", func(db *gorm.DB) *gorm.DB { return db.Order("timestamp ASC") }).
		Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &freight.NotFoundError{Kind: "booking", ID: id}
		}
		return nil, fmt.Errorf("failed to load booking %s: %w", id, err)
	}
	return &b, nil
}

// ListRequests returns the trucker's incoming queue, newest-first.
func (s *gormStore) ListRequests(ctx context.Context) ([]model.Booking, error) {
	var requests []model.Booking
	if err := s.db.WithContext(ctx).
		Where("incoming = ?", true).
		Order("booking_time DESC").
		Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// Earnings totals the prices of delivered ledger bookings.
func (s *gormStore) Earnings(ctx context.Context) (*EarningsSummary, error) {
	var summary EarningsSummary
	if err := s.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("status = ? AND incoming = ?", model.StatusDelivered, false).
		Select("COALESCE(SUM(price), 0) AS total_earnings, COUNT(*) AS delivered_trips").
		Scan(&summary).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate earnings: %w", err)
	}
	return &summary, nil
}

func validateTrip(in TripInput) error {
	switch {
	case strings.TrimSpace(in.Origin) == "":
		return &freight.ValidationError{Field: "origin", Reason: "required"}
	case strings.TrimSpace(in.Destination) == "":
		return &freight.ValidationError{Field: "destination", Reason: "required"}
	case strings.TrimSpace(in.DepartureDate) == "":
		return &freight.ValidationError{Field: "departureDate", Reason: "required"}
	case in.CapacityTotal <= 0:
		return &freight.ValidationError{Field: "capacityTotal", Reason: "must be positive"}
	case in.PricePerTon <= 0:
		return &freight.ValidationError{Field: "pricePerTon", Reason: "must be positive"}
	}
	return nil
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// newID builds a short prefixed identifier, e.g. "BK-9F2A61C4".
func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8]))
}
