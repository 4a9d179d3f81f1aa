// Package sky is the client for the BookMe Sky partner API: token
// auth, content-provider discovery and flight search.
package sky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	defaultAuthURL      = "https://bookmesky.com/partner/api/auth/token"
	defaultSearchURL    = "https://bookmesky.com/air/api/search"
	defaultProvidersURL = "https://api.bookmesky.com/air/api/content-providers"
)

// Config holds the endpoints and credentials. Empty URLs fall back to
// the production endpoints.
type Config struct {
	AuthURL      string
	SearchURL    string
	ProvidersURL string
	Username     string
	Password     string
}

// APIError is a non-200 answer from the partner API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sky api error %d: %s", e.StatusCode, e.Message)
}

// Location is an endpoint of a route, identified by IATA code.
type Location struct {
	IATA string `json:"IATA"`
	Type string `json:"Type"`
}

func AirportLocation(iata string) Location {
	return Location{IATA: iata, Type: "airport"}
}

// Traveler is one age bucket in the search payload.
type Traveler struct {
	Type  string `json:"Type"`
	Count int    `json:"Count"`
}

// SearchRequest is the flight search payload. TravelingDates holds the
// departure date, then the return date for round trips.
type SearchRequest struct {
	Locations       []Location `json:"Locations"`
	Currency        string     `json:"Currency"`
	TravelClass     string     `json:"TravelClass"`
	TripType        string     `json:"TripType"`
	TravelingDates  []string   `json:"TravelingDates"`
	Travelers       []Traveler `json:"Travelers"`
	ContentProvider string     `json:"ContentProvider,omitempty"`
}

type Carrier struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
}

type Airport struct {
	IATA string `json:"iata"`
}

// Segment is one leg of a flight. FlightTime is minutes.
type Segment struct {
	OperatingCarrier Carrier `json:"OperatingCarrier"`
	FlightNumber     string  `json:"FlightNumber"`
	From             Airport `json:"From"`
	To               Airport `json:"To"`
	DepartureAt      string  `json:"DepartureAt"`
	ArrivalAt        string  `json:"ArrivalAt"`
	FlightTime       int     `json:"FlightTime"`
}

type BaggageAllowance struct {
	Type        string  `json:"Type"`
	WeightLimit float64 `json:"WeightLimit"`
}

type FarePolicy struct {
	Type    string  `json:"Type"`
	Charges float64 `json:"Charges"`
}

// Fare is one bookable price for a flight.
type Fare struct {
	Name              string             `json:"Name"`
	ChargedBasePrice  float64            `json:"ChargedBasePrice"`
	ChargedTotalPrice float64            `json:"ChargedTotalPrice"`
	BaggagePolicy     []BaggageAllowance `json:"BaggagePolicy"`
	Policies          []FarePolicy       `json:"Policies"`
}

type Flight struct {
	Segments []Segment `json:"Segments"`
	Fares    []Fare    `json:"Fares"`
}

type Itinerary struct {
	Flights []Flight `json:"Flights"`
}

// SearchResponse is the raw search answer for one content provider.
type SearchResponse struct {
	Itineraries []Itinerary `json:"Itineraries"`
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"Token"`
}

type providersRequest struct {
	Locations   []Location `json:"Locations"`
	TravelClass string     `json:"TravelClass"`
}

type providerEntry struct {
	ContentProvider string `json:"ContentProvider"`
}

type Client struct {
	cfg    Config
	client *http.Client

	mu        sync.Mutex
	token     string
	providers map[string][]string
}

func NewClient(cfg Config) *Client {
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultAuthURL
	}
	if cfg.SearchURL == "" {
		cfg.SearchURL = defaultSearchURL
	}
	if cfg.ProvidersURL == "" {
		cfg.ProvidersURL = defaultProvidersURL
	}
	return &Client{
		cfg:       cfg,
		client:    &http.Client{Timeout: 30 * time.Second},
		providers: make(map[string][]string),
	}
}

// Authenticate fetches a bearer token and keeps it for later calls.
func (c *Client) Authenticate(ctx context.Context) error {
	body, err := json.Marshal(authRequest{Username: c.cfg.Username, Password: c.cfg.Password})
	if err != nil {
		return fmt.Errorf("marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("auth call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read auth response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: truncate(string(respBody))}
	}

	var auth authResponse
	if err := json.Unmarshal(respBody, &auth); err != nil {
		return fmt.Errorf("unmarshal auth response: %w", err)
	}
	if auth.Token == "" {
		return fmt.Errorf("auth response has no token")
	}

	c.mu.Lock()
	c.token = auth.Token
	c.mu.Unlock()
	return nil
}

// ContentProviders lists the providers able to serve a route in a
// given class. Results are cached per route and class.
func (c *Client) ContentProviders(ctx context.Context, source, destination, travelClass string) ([]string, error) {
	key := source + "-" + destination + "-" + travelClass
	c.mu.Lock()
	if cached, ok := c.providers[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	var locations []Location
	if source != "" {
		locations = append(locations, AirportLocation(source))
	}
	if destination != "" {
		locations = append(locations, AirportLocation(destination))
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("no locations for provider lookup")
	}

	var entries []providerEntry
	if err := c.post(ctx, c.cfg.ProvidersURL, providersRequest{Locations: locations, TravelClass: travelClass}, &entries); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.ContentProvider != "" {
			names = append(names, e.ContentProvider)
		}
	}

	c.mu.Lock()
	c.providers[key] = names
	c.mu.Unlock()
	return names, nil
}

// Search runs one flight search. The request's ContentProvider scopes
// it to a single provider; empty searches everything the API covers.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.post(ctx, c.cfg.SearchURL, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: apiMessage(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// apiMessage pulls a human-readable message out of an error body.
func apiMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return truncate(string(body))
}

func truncate(s string) string {
	if len(s) > 200 {
		return s[:200]
	}
	return s
}
