// Package search fans a flight query out across content providers and
// aggregates the answers into one price-sorted result set.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bookmesky/skyparse/internal/extract"
	"github.com/bookmesky/skyparse/internal/sky"
)

// API is the slice of the provider client the searcher needs.
type API interface {
	ContentProviders(ctx context.Context, source, destination, travelClass string) ([]string, error)
	Search(ctx context.Context, req sky.SearchRequest) (*sky.SearchResponse, error)
}

// FareOption is one bookable price on an offer.
type FareOption struct {
	Name             string  `json:"fare_name"`
	BaseFare         float64 `json:"base_fare"`
	TotalFare        float64 `json:"total_fare"`
	Refundable       bool    `json:"refundable"`
	RefundFee        float64 `json:"refund_fee"`
	HandBaggageKg    float64 `json:"hand_baggage_kg"`
	CheckedBaggageKg float64 `json:"checked_baggage_kg"`
}

// Offer is one flight option with its fares. LowestFare drives the
// aggregate sort order.
type Offer struct {
	Provider      string       `json:"provider"`
	FlightNumber  string       `json:"flight_number"`
	Airline       string       `json:"airline"`
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	DepartureTime string       `json:"departure_time"`
	ArrivalTime   string       `json:"arrival_time"`
	Duration      string       `json:"duration"`
	Fares         []FareOption `json:"fare_options"`
	LowestFare    float64      `json:"lowest_fare"`
}

// ProviderError records a provider whose search failed, as opposed to
// one that answered with zero flights.
type ProviderError struct {
	Provider   string `json:"provider"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"error"`
}

// Aggregate is the combined outcome of one fan-out search.
type Aggregate struct {
	SearchID            uuid.UUID       `json:"search_id"`
	Offers              []Offer         `json:"offers"`
	TotalOffers         int             `json:"total_offers"`
	ProvidersQueried    int             `json:"providers_queried"`
	ProvidersSucceeded  int             `json:"providers_succeeded"`
	ProvidersWithOffers int             `json:"providers_with_offers"`
	Errors              []ProviderError `json:"errors,omitempty"`
}

type Searcher struct {
	api       API
	workers   int
	resultCap int
	logger    *slog.Logger
}

// NewSearcher builds a searcher running at most workers provider
// queries at once and keeping at most resultCap offers.
func NewSearcher(client API, workers, resultCap int, logger *slog.Logger) *Searcher {
	if workers <= 0 {
		workers = 5
	}
	if resultCap <= 0 {
		resultCap = 50
	}
	return &Searcher{api: client, workers: workers, resultCap: resultCap, logger: logger}
}

// Run searches every available provider for the extracted trip. When
// the trip names a preferred airline only that provider is queried;
// when provider discovery comes back empty a single unscoped search is
// the fallback.
func (s *Searcher) Run(ctx context.Context, info extract.TravelInfo) (*Aggregate, error) {
	if missing := info.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("incomplete travel info: missing %v", missing)
	}

	req := BuildRequest(info)

	providers := []string{info.Airline}
	if info.Airline == "" {
		found, err := s.api.ContentProviders(ctx, info.DepartureCity, info.DestinationCity, info.FlightClass)
		if err != nil {
			s.logger.Warn("provider discovery failed, falling back to unscoped search", "error", err)
			found = nil
		}
		if len(found) == 0 {
			providers = []string{""}
		} else {
			providers = found
		}
	}

	agg := &Aggregate{SearchID: uuid.New(), ProvidersQueried: len(providers)}

	type outcome struct {
		provider string
		offers   []Offer
		err      error
	}

	jobs := make(chan string)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for provider := range jobs {
				scoped := req
				scoped.ContentProvider = provider
				resp, err := s.api.Search(ctx, scoped)
				if err != nil {
					results <- outcome{provider: provider, err: err}
					continue
				}
				results <- outcome{provider: provider, offers: flatten(provider, resp)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range providers {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	start := time.Now()
	for out := range results {
		name := out.provider
		if name == "" {
			name = "all"
		}
		if out.err != nil {
			agg.Errors = append(agg.Errors, providerError(name, out.err))
			s.logger.Warn("provider search failed", "provider", name, "error", out.err)
			continue
		}
		agg.ProvidersSucceeded++
		if len(out.offers) == 0 {
			s.logger.Info("provider returned no flights", "provider", name)
			continue
		}
		agg.ProvidersWithOffers++
		agg.Offers = append(agg.Offers, out.offers...)
	}

	sort.SliceStable(agg.Offers, func(i, j int) bool {
		return agg.Offers[i].LowestFare < agg.Offers[j].LowestFare
	})
	agg.TotalOffers = len(agg.Offers)
	if len(agg.Offers) > s.resultCap {
		agg.Offers = agg.Offers[:s.resultCap]
	}

	s.logger.Info("search complete",
		"search_id", agg.SearchID,
		"providers", agg.ProvidersQueried,
		"succeeded", agg.ProvidersSucceeded,
		"with_offers", agg.ProvidersWithOffers,
		"offers", agg.TotalOffers,
		"elapsed", time.Since(start),
	)
	return agg, nil
}

// BuildRequest maps extracted parameters to the provider search
// payload. Prices are always requested in PKR.
func BuildRequest(info extract.TravelInfo) sky.SearchRequest {
	req := sky.SearchRequest{
		Locations: []sky.Location{
			sky.AirportLocation(info.DepartureCity),
			sky.AirportLocation(info.DestinationCity),
		},
		Currency:    "PKR",
		TravelClass: info.FlightClass,
		TripType:    string(info.FlightType),
	}
	if info.DepartureDate != "" {
		req.TravelingDates = append(req.TravelingDates, info.DepartureDate)
	}
	if info.ReturnDate != "" {
		req.TravelingDates = append(req.TravelingDates, info.ReturnDate)
	}
	if info.Passengers.Adults > 0 {
		req.Travelers = append(req.Travelers, sky.Traveler{Type: "adult", Count: info.Passengers.Adults})
	}
	if info.Passengers.Children > 0 {
		req.Travelers = append(req.Travelers, sky.Traveler{Type: "child", Count: info.Passengers.Children})
	}
	if info.Passengers.Infants > 0 {
		req.Travelers = append(req.Travelers, sky.Traveler{Type: "infant", Count: info.Passengers.Infants})
	}
	return req
}

// flatten turns a raw provider response into offers. The first segment
// carries the headline route and times.
func flatten(provider string, resp *sky.SearchResponse) []Offer {
	if provider == "" {
		provider = "all"
	}
	var offers []Offer
	for _, itin := range resp.Itineraries {
		for _, flight := range itin.Flights {
			if len(flight.Segments) == 0 {
				continue
			}
			seg := flight.Segments[0]
			offer := Offer{
				Provider:      provider,
				FlightNumber:  fmt.Sprintf("%s-%s", seg.OperatingCarrier.IATA, seg.FlightNumber),
				Airline:       seg.OperatingCarrier.Name,
				Origin:        seg.From.IATA,
				Destination:   seg.To.IATA,
				DepartureTime: clockTime(seg.DepartureAt),
				ArrivalTime:   clockTime(seg.ArrivalAt),
				Duration:      duration(seg.FlightTime),
			}
			for _, fare := range flight.Fares {
				opt := FareOption{
					Name:      fare.Name,
					BaseFare:  fare.ChargedBasePrice,
					TotalFare: fare.ChargedTotalPrice,
				}
				for _, bag := range fare.BaggagePolicy {
					switch bag.Type {
					case "carry":
						opt.HandBaggageKg = bag.WeightLimit
					case "checked":
						opt.CheckedBaggageKg = bag.WeightLimit
					}
				}
				for _, pol := range fare.Policies {
					if pol.Type == "refund" {
						opt.RefundFee = pol.Charges
						opt.Refundable = pol.Charges > 0
						break
					}
				}
				offer.Fares = append(offer.Fares, opt)
			}
			offer.LowestFare = lowestFare(offer.Fares)
			offers = append(offers, offer)
		}
	}
	return offers
}

// lowestFare is the cheapest total price on the offer; offers with no
// fares sort last.
func lowestFare(fares []FareOption) float64 {
	const unpriced = 999999
	if len(fares) == 0 {
		return unpriced
	}
	lowest := fares[0].TotalFare
	for _, f := range fares[1:] {
		if f.TotalFare < lowest {
			lowest = f.TotalFare
		}
	}
	return lowest
}

func providerError(provider string, err error) ProviderError {
	var apiErr *sky.APIError
	if errors.As(err, &apiErr) {
		return ProviderError{Provider: provider, StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	}
	return ProviderError{Provider: provider, Message: err.Error()}
}

// clockTime shortens an RFC 3339 timestamp to HH:MM.
func clockTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return "N/A"
	}
	return t.Format("15:04")
}

func duration(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
