// Package extract assembles the full parameter set for a flight
// request from a single piece of free text.
package extract

import (
	"log/slog"
	"time"

	"github.com/bookmesky/skyparse/internal/airline"
	"github.com/bookmesky/skyparse/internal/cabin"
	"github.com/bookmesky/skyparse/internal/cities"
	"github.com/bookmesky/skyparse/internal/dates"
	"github.com/bookmesky/skyparse/internal/normalize"
	"github.com/bookmesky/skyparse/internal/passengers"
	"github.com/bookmesky/skyparse/internal/triptype"
)

// TravelInfo is the extracted parameter set. Dates are YYYY-MM-DD and
// cities serialize as source/destination IATA codes.
type TravelInfo struct {
	DepartureCity   string            `json:"source,omitempty"`
	DestinationCity string            `json:"destination,omitempty"`
	FlightType      triptype.Type     `json:"flight_type"`
	FlightClass     cabin.Class       `json:"flight_class"`
	DepartureDate   string            `json:"departure_date,omitempty"`
	ReturnDate      string            `json:"return_date,omitempty"`
	Passengers      passengers.Counts `json:"passengers"`
	Airline         string            `json:"content_provider,omitempty"`
}

// MissingFields lists what is still needed before a search can run.
// The return date only counts for return trips.
func (t TravelInfo) MissingFields() []string {
	var missing []string
	if t.DepartureCity == "" {
		missing = append(missing, "source")
	}
	if t.DestinationCity == "" {
		missing = append(missing, "destination")
	}
	if t.DepartureDate == "" {
		missing = append(missing, "departure_date")
	}
	if t.FlightType == triptype.Return && t.ReturnDate == "" {
		missing = append(missing, "return_date")
	}
	return missing
}

// Complete reports whether enough was extracted to run a search.
func (t TravelInfo) Complete() bool { return len(t.MissingFields()) == 0 }

type Extractor struct {
	norm       *normalize.Normalizer
	cities     *cities.Resolver
	cabin      *cabin.Resolver
	dates      *dates.Resolver
	passengers *passengers.Counter
	logger     *slog.Logger
}

// New wires the full extraction pipeline. now supplies the reference
// time for relative dates; nil means the wall clock.
func New(logger *slog.Logger, now func() time.Time) *Extractor {
	return &Extractor{
		norm:       normalize.New(),
		cities:     cities.NewResolver(logger),
		cabin:      cabin.NewResolver(),
		dates:      dates.NewResolver(now),
		passengers: passengers.NewCounter(passengers.DefaultPolicy()),
		logger:     logger,
	}
}

// Extract runs every resolver over text and returns the combined
// result. Extraction never fails; fields the text does not mention
// stay at their zero or default values.
func (e *Extractor) Extract(text string) TravelInfo {
	cleaned := e.norm.Normalize(text)
	cleaned = e.norm.CorrectSpelling(cleaned)
	cleaned = normalize.RewriteOrdinalOf(cleaned)

	var info TravelInfo
	info.DepartureCity, info.DestinationCity = e.cities.Resolve(cleaned)
	info.FlightType = triptype.Classify(cleaned)
	info.FlightClass = e.cabin.Resolve(cleaned)
	info.DepartureDate, info.ReturnDate = e.dates.ResolvePair(cleaned)
	info.Passengers = e.passengers.Count(cleaned)
	info.Airline = airline.Detect(cleaned)

	// A return date with no trip-type cue still means a return trip.
	if info.ReturnDate != "" {
		info.FlightType = triptype.Return
	}

	e.logger.Debug("extraction complete",
		"source", info.DepartureCity,
		"destination", info.DestinationCity,
		"flight_type", info.FlightType,
		"flight_class", info.FlightClass,
		"departure_date", info.DepartureDate,
		"return_date", info.ReturnDate,
		"travelers", info.Passengers.Total(),
		"content_provider", info.Airline,
	)
	return info
}
