package service

import (
	"fmt"
	"math"

	"charter/internal/domain"
)

// PriceTier is a distance bracket with an associated base price and
// per-kilometer rate. Tiers are evaluated in ascending MaxDistanceKm
// order; the last tier is an unbounded catch-all.
type PriceTier struct {
	MaxDistanceKm float64
	BasePrice     float64
	PerKmRate     float64
}

// DefaultPriceTiers returns the standard charter rate card.
func DefaultPriceTiers() []PriceTier {
	return []PriceTier{
		{MaxDistanceKm: 50, BasePrice: 300, PerKmRate: 5.0},
		{MaxDistanceKm: 150, BasePrice: 550, PerKmRate: 4.5},
		{MaxDistanceKm: 400, BasePrice: 900, PerKmRate: 4.0},
		{MaxDistanceKm: math.Inf(1), BasePrice: 1500, PerKmRate: 3.5},
	}
}

const (
	earthRadiusKm = 6371.0

	// Round trips double the one-way price and take 10% off.
	roundTripFactor = 2 * 0.9

	// Flat 20% surcharge per passenger beyond the first.
	extraPassengerRate = 0.2

	// Nominal cruise speed used for the displayed flight-time estimate.
	cruiseSpeedKmh = 220.0
)

// PriceBreakdown itemizes how a quote was computed. The modifier fields
// are display strings: "+N%" / "-10%" or "N/A" when not applied.
type PriceBreakdown struct {
	TierBasePrice     float64 `json:"tier_base_price"`
	PerKmRate         float64 `json:"per_km_rate"`
	DistanceCost      float64 `json:"distance_cost"`
	PassengerModifier string  `json:"passenger_modifier"`
	RoundTripDiscount string  `json:"round_trip_discount"`
}

// PriceQuote is a deterministic quote for a point-to-point charter. It is
// derived on every request and never persisted.
type PriceQuote struct {
	FromCode          string         `json:"from_code"`
	FromName          string         `json:"from_name"`
	ToCode            string         `json:"to_code"`
	ToName            string         `json:"to_name"`
	DistanceKm        float64        `json:"distance_km"`
	Passengers        int            `json:"passengers"`
	RoundTrip         bool           `json:"round_trip"`
	BasePrice         float64        `json:"base_price"`
	TotalPrice        float64        `json:"total_price"`
	PricePerPassenger float64        `json:"price_per_passenger"`
	EstimatedMinutes  int            `json:"estimated_minutes"`
	Breakdown         PriceBreakdown `json:"breakdown"`
}

// QuoteRequest contains the parameters for a price quote.
type QuoteRequest struct {
	From       string
	To         string
	Passengers int // Defaults to 1.
	RoundTrip  bool
}

// PricingService computes charter price quotes from the static
// destination table and the tier rate card. It holds no mutable state
// and is safe for concurrent use.
type PricingService struct {
	tiers []PriceTier
}

// NewPricingService creates a new PricingService. A nil tier slice uses
// the default rate card.
func NewPricingService(tiers []PriceTier) *PricingService {
	if len(tiers) == 0 {
		tiers = DefaultPriceTiers()
	}
	return &PricingService{tiers: tiers}
}

// Quote computes the price for a flight between two destination codes.
//
// The computation order is fixed: tier base + distance cost, then the
// round-trip adjustment, then the passenger multiplier, and only the
// final total is rounded. Reordering or rounding earlier changes quotes.
func (s *PricingService) Quote(req QuoteRequest) (*PriceQuote, error) {
	from, ok := domain.LookupDestination(req.From)
	if !ok {
		return nil, ErrUnknownDestination
	}

	to, ok := domain.LookupDestination(req.To)
	if !ok {
		return nil, ErrUnknownDestination
	}

	passengers := req.Passengers
	if passengers == 0 {
		passengers = 1
	}
	if passengers < 1 {
		return nil, ErrInvalidPassengerCount
	}

	distance := haversineKm(from.Lat, from.Lng, to.Lat, to.Lng)

	tier := s.selectTier(distance)

	// Base price before any adjustment. Kept unrounded until the total.
	basePrice := tier.BasePrice + distance*tier.PerKmRate

	roundTripDiscount := "N/A"
	if req.RoundTrip {
		basePrice *= roundTripFactor
		roundTripDiscount = "-10%"
	}

	multiplier := 1 + float64(passengers-1)*extraPassengerRate
	passengerModifier := "N/A"
	if passengers > 1 {
		passengerModifier = fmt.Sprintf("+%d%%", (passengers-1)*20)
	}

	total := math.Round(basePrice * multiplier)

	return &PriceQuote{
		FromCode:          from.Code,
		FromName:          from.Name,
		ToCode:            to.Code,
		ToName:            to.Name,
		DistanceKm:        math.Round(distance),
		Passengers:        passengers,
		RoundTrip:         req.RoundTrip,
		BasePrice:         math.Round(basePrice),
		TotalPrice:        total,
		PricePerPassenger: math.Round(total / float64(passengers)),
		EstimatedMinutes:  int(math.Round(distance / cruiseSpeedKmh * 60)),
		Breakdown: PriceBreakdown{
			TierBasePrice:     tier.BasePrice,
			PerKmRate:         tier.PerKmRate,
			DistanceCost:      math.Round(distance * tier.PerKmRate),
			PassengerModifier: passengerModifier,
			RoundTripDiscount: roundTripDiscount,
		},
	}, nil
}

// selectTier returns the first tier whose MaxDistanceKm covers the
// distance. The unbounded last tier catches everything else.
func (s *PricingService) selectTier(distanceKm float64) PriceTier {
	for _, tier := range s.tiers {
		if distanceKm <= tier.MaxDistanceKm {
			return tier
		}
	}
	return s.tiers[len(s.tiers)-1]
}

// haversineKm computes the great-circle distance between two points.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
