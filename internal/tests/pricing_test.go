package tests

import (
	"errors"
	"math"
	"testing"

	"charter/internal/service"
)

// ──────────────────────────────────────────────
// 1. PRICE QUOTE COMPUTATION
// ──────────────────────────────────────────────

func TestQuote_UnknownDestination(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	_, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "NOWHERE", Passengers: 1})
	if !errors.Is(err, service.ErrUnknownDestination) {
		t.Errorf("expected ErrUnknownDestination, got %v", err)
	}

	_, err = pricing.Quote(service.QuoteRequest{From: "NOWHERE", To: "GUA", Passengers: 1})
	if !errors.Is(err, service.ErrUnknownDestination) {
		t.Errorf("expected ErrUnknownDestination, got %v", err)
	}
}

func TestQuote_InvalidPassengerCount(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	_, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "ANTIGUA", Passengers: -1})
	if !errors.Is(err, service.ErrInvalidPassengerCount) {
		t.Errorf("expected ErrInvalidPassengerCount, got %v", err)
	}
}

func TestQuote_ZeroPassengersDefaultsToOne(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	quote, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "ANTIGUA", Passengers: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Passengers != 1 {
		t.Errorf("expected passengers to default to 1, got %d", quote.Passengers)
	}
}

func TestQuote_ZeroDistanceChargesTierFloor(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	// Same origin and destination: distance 0, first tier base only.
	quote, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "GUA", Passengers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.DistanceKm != 0 {
		t.Errorf("expected 0 distance, got %v", quote.DistanceKm)
	}
	if quote.TotalPrice != 300 {
		t.Errorf("expected tier floor of 300, got %v", quote.TotalPrice)
	}
}

func TestQuote_DistanceIsSymmetric(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	out, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "TIKAL", Passengers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := pricing.Quote(service.QuoteRequest{From: "TIKAL", To: "GUA", Passengers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.DistanceKm != back.DistanceKm {
		t.Errorf("distance not symmetric: %v vs %v", out.DistanceKm, back.DistanceKm)
	}
	if out.TotalPrice != back.TotalPrice {
		t.Errorf("price not symmetric: %v vs %v", out.TotalPrice, back.TotalPrice)
	}
}

func TestQuote_ShortHopUsesFirstTier(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	// Guatemala City to Antigua is well inside the 50 km bracket.
	quote, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "ANTIGUA", Passengers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Breakdown.TierBasePrice != 300 {
		t.Errorf("expected first tier base 300, got %v", quote.Breakdown.TierBasePrice)
	}
	if quote.Breakdown.PerKmRate != 5.0 {
		t.Errorf("expected first tier rate 5.0, got %v", quote.Breakdown.PerKmRate)
	}
	if quote.DistanceKm <= 0 || quote.DistanceKm > 50 {
		t.Errorf("expected short-hop distance within 50 km, got %v", quote.DistanceKm)
	}
	// Single passenger, one way: total equals the rounded base.
	if quote.TotalPrice != quote.BasePrice {
		t.Errorf("expected total %v to equal base %v", quote.TotalPrice, quote.BasePrice)
	}
}

func TestQuote_LongHaulUsesHigherTier(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	// Guatemala City to Tikal is roughly 270 km: third tier.
	quote, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "TIKAL", Passengers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Breakdown.TierBasePrice != 900 {
		t.Errorf("expected third tier base 900, got %v", quote.Breakdown.TierBasePrice)
	}
	if quote.Breakdown.PerKmRate != 4.0 {
		t.Errorf("expected third tier rate 4.0, got %v", quote.Breakdown.PerKmRate)
	}
	if quote.DistanceKm <= 150 || quote.DistanceKm > 400 {
		t.Errorf("expected distance in the 150-400 km bracket, got %v", quote.DistanceKm)
	}
}

func TestQuote_TierBoundaries(t *testing.T) {
	t.Parallel()

	// A custom rate card makes the boundary behavior exact: the first
	// tier covers distance 0.
	pricing := service.NewPricingService([]service.PriceTier{
		{MaxDistanceKm: 10, BasePrice: 100, PerKmRate: 1},
		{MaxDistanceKm: math.Inf(1), BasePrice: 200, PerKmRate: 2},
	})

	quote, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "GUA", Passengers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TotalPrice != 100 {
		t.Errorf("expected first tier base 100 at zero distance, got %v", quote.TotalPrice)
	}
}

func TestQuote_PassengerSurcharge(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	solo, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "ATITLAN", Passengers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	three, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "ATITLAN", Passengers: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two extra passengers add 40%; rounding happens only on the total.
	expected := math.Round(solo.TotalPrice * 1.4)
	if math.Abs(three.TotalPrice-expected) > 1 {
		t.Errorf("expected roughly %v for 3 passengers, got %v", expected, three.TotalPrice)
	}
	if three.Breakdown.PassengerModifier != "+40%" {
		t.Errorf("expected passenger modifier +40%%, got %s", three.Breakdown.PassengerModifier)
	}
	if solo.Breakdown.PassengerModifier != "N/A" {
		t.Errorf("expected no passenger modifier for a solo flight, got %s", solo.Breakdown.PassengerModifier)
	}
}

func TestQuote_PriceIncreasesWithPassengers(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	prev := 0.0
	for n := 1; n <= 6; n++ {
		quote, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "XELA", Passengers: n})
		if err != nil {
			t.Fatalf("unexpected error for %d passengers: %v", n, err)
		}
		if quote.TotalPrice <= prev {
			t.Errorf("price did not increase at %d passengers: %v <= %v", n, quote.TotalPrice, prev)
		}
		prev = quote.TotalPrice
	}
}

func TestQuote_RoundTripDoublesWithDiscount(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	oneWay, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "ANTIGUA", Passengers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	roundTrip, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "ANTIGUA", Passengers: 2, RoundTrip: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Double minus 10%: the only divergence from 1.8x is final rounding.
	expected := oneWay.TotalPrice * 1.8
	if math.Abs(roundTrip.TotalPrice-expected) > 1 {
		t.Errorf("expected round trip near %v, got %v", expected, roundTrip.TotalPrice)
	}
	if roundTrip.Breakdown.RoundTripDiscount != "-10%" {
		t.Errorf("expected round trip discount -10%%, got %s", roundTrip.Breakdown.RoundTripDiscount)
	}
	if oneWay.Breakdown.RoundTripDiscount != "N/A" {
		t.Errorf("expected no discount one way, got %s", oneWay.Breakdown.RoundTripDiscount)
	}
}

func TestQuote_PricePerPassenger(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	quote, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "COBAN", Passengers: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := math.Round(quote.TotalPrice / 4)
	if quote.PricePerPassenger != expected {
		t.Errorf("expected per-passenger price %v, got %v", expected, quote.PricePerPassenger)
	}
}

func TestQuote_EstimatedFlightTime(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)

	quote, err := pricing.Quote(service.QuoteRequest{From: "GUA", To: "TIKAL", Passengers: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.EstimatedMinutes <= 0 {
		t.Errorf("expected positive flight time estimate, got %d", quote.EstimatedMinutes)
	}
}

func TestQuote_IsDeterministic(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(nil)
	req := service.QuoteRequest{From: "ANTIGUA", To: "MONTERRICO", Passengers: 3, RoundTrip: true}

	first, err := pricing.Quote(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := pricing.Quote(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.TotalPrice != first.TotalPrice {
			t.Errorf("quote not deterministic: %v vs %v", again.TotalPrice, first.TotalPrice)
		}
	}
}
