package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"charter/internal/domain"
	"charter/internal/service"
)

// ──────────────────────────────────────────────
// 5. BOOKING LIFECYCLE
// ──────────────────────────────────────────────

type bookingFixture struct {
	booking    *service.BookingService
	ledger     *service.LedgerService
	users      *MockUserRepository
	bookings   *MockBookingRepository
	txns       *MockTransactionRepository
	fleet      *MockHelicopterRepository
	exps       *MockExperienceRepository
	flightDate time.Time
}

func newBookingFixture() *bookingFixture {
	users := NewMockUserRepository()
	bookings := NewMockBookingRepository()
	txns := NewMockTransactionRepository()
	fleet := NewMockHelicopterRepository()
	exps := NewMockExperienceRepository()
	atomicUnit := NewMockAtomic(users, bookings, txns)

	ledger := service.NewLedgerService(atomicUnit, users, bookings, txns, nil, nil)
	pricing := service.NewPricingService(nil)
	booking := service.NewBookingService(bookings, fleet, exps, pricing, ledger, nil, nil)

	fleet.AddHelicopter(&domain.Helicopter{
		ID:       "heli-1",
		Model:    "Bell 407",
		Capacity: 5,
		Status:   domain.HelicopterStatusAvailable,
	})

	return &bookingFixture{
		booking:    booking,
		ledger:     ledger,
		users:      users,
		bookings:   bookings,
		txns:       txns,
		fleet:      fleet,
		exps:       exps,
		flightDate: time.Now().Add(48 * time.Hour),
	}
}

func TestCreateBooking_QuotesServerSide(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()

	booking, err := f.booking.CreateBooking(context.Background(), service.CreateBookingRequest{
		UserID:       "user-1",
		HelicopterID: "heli-1",
		FromCode:     "GUA",
		ToCode:       "ANTIGUA",
		Passengers:   2,
		FlightDate:   f.flightDate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected PENDING booking, got %s", booking.Status)
	}
	if booking.Paid {
		t.Error("new booking must not be paid")
	}
	if booking.Price <= 0 {
		t.Errorf("expected server-side price, got %v", booking.Price)
	}

	// The stored price must match a fresh quote for the same parameters.
	pricing := service.NewPricingService(nil)
	quote, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "ANTIGUA", Passengers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Price != quote.TotalPrice {
		t.Errorf("expected price %v from quote, got %v", quote.TotalPrice, booking.Price)
	}
}

func TestCreateBooking_RejectsPastFlightDate(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()

	_, err := f.booking.CreateBooking(context.Background(), service.CreateBookingRequest{
		UserID:       "user-1",
		HelicopterID: "heli-1",
		FromCode:     "GUA",
		ToCode:       "ANTIGUA",
		Passengers:   1,
		FlightDate:   time.Now().Add(-time.Hour),
	})
	if !errors.Is(err, service.ErrInvalidFlightDate) {
		t.Errorf("expected ErrInvalidFlightDate, got %v", err)
	}
}

func TestCreateBooking_RejectsOverCapacity(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()

	_, err := f.booking.CreateBooking(context.Background(), service.CreateBookingRequest{
		UserID:       "user-1",
		HelicopterID: "heli-1",
		FromCode:     "GUA",
		ToCode:       "ANTIGUA",
		Passengers:   6, // Capacity is 5.
		FlightDate:   f.flightDate,
	})
	if !errors.Is(err, service.ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestCreateBooking_RejectsUnavailableHelicopter(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	f.fleet.AddHelicopter(&domain.Helicopter{
		ID:       "heli-2",
		Capacity: 5,
		Status:   domain.HelicopterStatusMaintenance,
	})

	_, err := f.booking.CreateBooking(context.Background(), service.CreateBookingRequest{
		UserID:       "user-1",
		HelicopterID: "heli-2",
		FromCode:     "GUA",
		ToCode:       "ANTIGUA",
		Passengers:   1,
		FlightDate:   f.flightDate,
	})
	if !errors.Is(err, service.ErrHelicopterUnavailable) {
		t.Errorf("expected ErrHelicopterUnavailable, got %v", err)
	}
}

func TestCreateBooking_ExperiencePricedPerSeat(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	f.exps.AddExperience(&domain.Experience{
		ID:              "exp-1",
		Name:            "Atitlan Sunrise",
		DestinationCode: "ATITLAN",
		PricePerSeat:    350,
		Active:          true,
	})

	booking, err := f.booking.CreateBooking(context.Background(), service.CreateBookingRequest{
		UserID:       "user-1",
		HelicopterID: "heli-1",
		ExperienceID: "exp-1",
		Passengers:   3,
		FlightDate:   f.flightDate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Price != 1050 {
		t.Errorf("expected 3 seats at 350 = 1050, got %v", booking.Price)
	}
	if !booking.RoundTrip {
		t.Error("experience flights are always round trips")
	}
	if booking.FromCode != "GUA" {
		t.Errorf("expected departure from home base, got %s", booking.FromCode)
	}
	if booking.ToCode != "ATITLAN" {
		t.Errorf("expected destination ATITLAN, got %s", booking.ToCode)
	}
}

func TestCreateBooking_InactiveExperienceRejected(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	f.exps.AddExperience(&domain.Experience{
		ID:              "exp-1",
		DestinationCode: "ATITLAN",
		PricePerSeat:    350,
		Active:          false,
	})

	_, err := f.booking.CreateBooking(context.Background(), service.CreateBookingRequest{
		UserID:       "user-1",
		HelicopterID: "heli-1",
		ExperienceID: "exp-1",
		Passengers:   1,
		FlightDate:   f.flightDate,
	})
	if !errors.Is(err, service.ErrExperienceInactive) {
		t.Errorf("expected ErrExperienceInactive, got %v", err)
	}
}

func TestGetBooking_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	f.bookings.AddBooking(&domain.Booking{ID: "booking-1", UserID: "user-1"})

	if _, err := f.booking.GetBooking(context.Background(), "booking-1", "user-1", domain.RoleCustomer); err != nil {
		t.Errorf("owner should see own booking, got %v", err)
	}

	_, err := f.booking.GetBooking(context.Background(), "booking-1", "user-2", domain.RoleCustomer)
	if !errors.Is(err, service.ErrBookingNotOwned) {
		t.Errorf("expected ErrBookingNotOwned for another customer, got %v", err)
	}

	if _, err := f.booking.GetBooking(context.Background(), "booking-1", "admin-1", domain.RoleAdmin); err != nil {
		t.Errorf("admin should see any booking, got %v", err)
	}
}

func TestCancelBooking_UnpaidJustCancels(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	f.bookings.AddBooking(&domain.Booking{
		ID:     "booking-1",
		UserID: "user-1",
		Price:  500,
		Status: domain.BookingStatusPending,
	})

	_, err := f.booking.CancelBooking(context.Background(), service.CancelBookingRequest{
		BookingID:  "booking-1",
		CallerID:   "user-1",
		CallerRole: domain.RoleCustomer,
		Reason:     "changed plans",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := f.bookings.GetBooking("booking-1")
	if stored.Status != domain.BookingStatusCancelled {
		t.Errorf("expected CANCELLED, got %s", stored.Status)
	}
	if f.txns.CountTransactions() != 0 {
		t.Errorf("unpaid cancellation must not touch the ledger, got %d records", f.txns.CountTransactions())
	}
}

func TestCancelBooking_PaidFromBalanceIsRefunded(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	f.users.AddUser(&domain.User{ID: "user-1", Balance: 0})
	f.bookings.AddBooking(&domain.Booking{
		ID:            "booking-1",
		UserID:        "user-1",
		Price:         500,
		Status:        domain.BookingStatusConfirmed,
		Paid:          true,
		PaymentMethod: domain.PaymentMethodBalance,
	})

	_, err := f.booking.CancelBooking(context.Background(), service.CancelBookingRequest{
		BookingID:  "booking-1",
		CallerID:   "user-1",
		CallerRole: domain.RoleCustomer,
		Reason:     "weather",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	balance, _ := f.users.GetBalance(context.Background(), "user-1")
	if balance != 500 {
		t.Errorf("expected refund credit of 500, got %v", balance)
	}
	if f.txns.CountByType(domain.TransactionTypeRefund) != 1 {
		t.Errorf("expected one refund record, got %d", f.txns.CountByType(domain.TransactionTypeRefund))
	}

	stored := f.bookings.GetBooking("booking-1")
	if stored.Status != domain.BookingStatusCancelled || stored.Paid {
		t.Errorf("expected cancelled unpaid booking, got status=%s paid=%v", stored.Status, stored.Paid)
	}
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	f.bookings.AddBooking(&domain.Booking{
		ID:     "booking-1",
		UserID: "user-1",
		Status: domain.BookingStatusCancelled,
	})

	_, err := f.booking.CancelBooking(context.Background(), service.CancelBookingRequest{
		BookingID:  "booking-1",
		CallerID:   "user-1",
		CallerRole: domain.RoleCustomer,
	})
	if !errors.Is(err, service.ErrBookingAlreadyCancelled) {
		t.Errorf("expected ErrBookingAlreadyCancelled, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 6. PAY-THEN-CANCEL ROUND TRIP
// ──────────────────────────────────────────────

func TestBooking_PayThenCancelRestoresBalance(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	f.users.AddUser(&domain.User{ID: "user-1", Balance: 2000})

	booking, err := f.booking.CreateBooking(context.Background(), service.CreateBookingRequest{
		UserID:       "user-1",
		HelicopterID: "heli-1",
		FromCode:     "GUA",
		ToCode:       "ATITLAN",
		Passengers:   2,
		RoundTrip:    true,
		FlightDate:   f.flightDate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payResult, err := f.ledger.PayBookingFromBalance(context.Background(), service.PayBookingRequest{
		BookingID: booking.ID,
		UserID:    "user-1",
		Method:    domain.PaymentMethodBalance,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payResult.NewBalance != 2000-booking.Price {
		t.Errorf("expected balance %v after payment, got %v", 2000-booking.Price, payResult.NewBalance)
	}

	_, err = f.booking.CancelBooking(context.Background(), service.CancelBookingRequest{
		BookingID:  booking.ID,
		CallerID:   "user-1",
		CallerRole: domain.RoleCustomer,
		Reason:     "weather",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	balance, _ := f.users.GetBalance(context.Background(), "user-1")
	if balance != 2000 {
		t.Errorf("expected full balance restored, got %v", balance)
	}

	// One payment and one refund should now exist for the booking.
	if f.txns.CountByType(domain.TransactionTypePayment) != 1 {
		t.Errorf("expected one payment record, got %d", f.txns.CountByType(domain.TransactionTypePayment))
	}
	if f.txns.CountByType(domain.TransactionTypeRefund) != 1 {
		t.Errorf("expected one refund record, got %d", f.txns.CountByType(domain.TransactionTypeRefund))
	}
}
