package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"charter/internal/domain"
	"charter/internal/redis"
	"charter/internal/repository"
)

// homeBaseCode is the departure point for scenic experience flights.
const homeBaseCode = "GUA"

// BookingService handles charter reservations. Prices are always quoted
// server-side; a client-supplied price is never trusted.
type BookingService struct {
	bookingRepo    repository.BookingRepository
	helicopterRepo repository.HelicopterRepository
	experienceRepo repository.ExperienceRepository
	pricing        *PricingService
	ledger         *LedgerService
	cache          redis.HelicopterCacheInterface
	notifier       *NotificationService
}

// NewBookingService creates a new BookingService. cache and notifier may
// be nil.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	helicopterRepo repository.HelicopterRepository,
	experienceRepo repository.ExperienceRepository,
	pricing *PricingService,
	ledger *LedgerService,
	cache redis.HelicopterCacheInterface,
	notifier *NotificationService,
) *BookingService {
	return &BookingService{
		bookingRepo:    bookingRepo,
		helicopterRepo: helicopterRepo,
		experienceRepo: experienceRepo,
		pricing:        pricing,
		ledger:         ledger,
		cache:          cache,
		notifier:       notifier,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	UserID       string
	HelicopterID string
	ExperienceID string // When set, the booking is a scenic package.
	FromCode     string
	ToCode       string
	Passengers   int
	RoundTrip    bool
	FlightDate   time.Time
}

// CreateBooking quotes and creates a booking in PENDING state. Payment
// happens separately through the ledger.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if req.Passengers < 1 {
		return nil, ErrInvalidPassengerCount
	}
	if req.FlightDate.IsZero() || req.FlightDate.Before(time.Now()) {
		return nil, ErrInvalidFlightDate
	}

	helicopter, err := s.getHelicopter(ctx, req.HelicopterID)
	if err != nil {
		return nil, err
	}
	if helicopter.Status != domain.HelicopterStatusAvailable {
		return nil, ErrHelicopterUnavailable
	}
	if req.Passengers > helicopter.Capacity {
		return nil, ErrCapacityExceeded
	}

	booking := &domain.Booking{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		HelicopterID: helicopter.ID,
		Passengers:   req.Passengers,
		FlightDate:   req.FlightDate,
		Status:       domain.BookingStatusPending,
	}

	if req.ExperienceID != "" {
		exp, err := s.experienceRepo.GetByID(ctx, req.ExperienceID)
		if err != nil {
			return nil, err
		}
		if !exp.Active {
			return nil, ErrExperienceInactive
		}

		// Experience flights depart the home base and return to it.
		booking.ExperienceID = exp.ID
		booking.FromCode = homeBaseCode
		booking.ToCode = exp.DestinationCode
		booking.RoundTrip = true
		booking.Price = exp.PricePerSeat * float64(req.Passengers)
	} else {
		quote, err := s.pricing.Quote(QuoteRequest{
			From:       req.FromCode,
			To:         req.ToCode,
			Passengers: req.Passengers,
			RoundTrip:  req.RoundTrip,
		})
		if err != nil {
			return nil, err
		}

		booking.FromCode = quote.FromCode
		booking.ToCode = quote.ToCode
		booking.RoundTrip = req.RoundTrip
		booking.Price = quote.TotalPrice
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyBookingCreated(ctx, booking)
	}

	return booking, nil
}

// GetBooking retrieves a booking, enforcing that non-admin callers only
// see their own.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, callerID string, callerRole domain.Role) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if callerRole != domain.RoleAdmin && booking.UserID != callerID {
		return nil, ErrBookingNotOwned
	}

	return booking, nil
}

// GetBookingsForUser retrieves all bookings belonging to a user.
func (s *BookingService) GetBookingsForUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.bookingRepo.GetAllByUser(ctx, userID)
}

// GetAllBookings retrieves every booking (admin listing).
func (s *BookingService) GetAllBookings(ctx context.Context) ([]*domain.Booking, error) {
	return s.bookingRepo.GetAll(ctx)
}

// CancelBookingRequest contains the parameters for cancelling a booking.
type CancelBookingRequest struct {
	BookingID  string
	CallerID   string
	CallerRole domain.Role
	Reason     string
}

// CancelBooking cancels a booking. A booking paid from balance is
// refunded atomically through the ledger; an unpaid booking is just
// marked cancelled.
func (s *BookingService) CancelBooking(ctx context.Context, req CancelBookingRequest) (*domain.Booking, error) {
	booking, err := s.GetBooking(ctx, req.BookingID, req.CallerID, req.CallerRole)
	if err != nil {
		return nil, err
	}

	if booking.Status == domain.BookingStatusCancelled {
		return nil, ErrBookingAlreadyCancelled
	}

	if booking.Paid && booking.PaymentMethod == domain.PaymentMethodBalance {
		if _, err := s.ledger.RefundBooking(ctx, booking, req.Reason); err != nil {
			return nil, err
		}
		return booking, nil
	}

	booking.Status = domain.BookingStatusCancelled
	booking.CancelledAt = time.Now()
	booking.CancelReason = req.Reason

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyBookingCancelled(ctx, booking)
	}

	return booking, nil
}

// UpdateStatus moves a booking to a new status (admin operation, e.g.
// marking a flown charter COMPLETED).
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	booking.Status = status
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// getHelicopter reads through the fleet cache when one is configured.
func (s *BookingService) getHelicopter(ctx context.Context, id string) (*domain.Helicopter, error) {
	if id == "" {
		return nil, repository.ErrNotFound
	}

	if s.cache != nil {
		cached, err := s.cache.GetHelicopter(ctx, id)
		if err == nil && cached != nil {
			return &domain.Helicopter{
				ID:            cached.ID,
				Registration:  cached.Registration,
				Model:         cached.Model,
				Capacity:      cached.Capacity,
				CruiseSpeedKm: cached.CruiseSpeedKm,
				Status:        domain.HelicopterStatus(cached.Status),
			}, nil
		}
	}

	helicopter, err := s.helicopterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetHelicopter(ctx, &redis.CachedHelicopter{
			ID:            helicopter.ID,
			Registration:  helicopter.Registration,
			Model:         helicopter.Model,
			Capacity:      helicopter.Capacity,
			CruiseSpeedKm: helicopter.CruiseSpeedKm,
			Status:        string(helicopter.Status),
		})
	}

	return helicopter, nil
}
