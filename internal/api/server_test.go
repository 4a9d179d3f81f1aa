package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bookmesky/skyparse/internal/extract"
	"github.com/bookmesky/skyparse/internal/search"
	"github.com/bookmesky/skyparse/internal/store"
)

type stubSearcher struct {
	agg  *search.Aggregate
	err  error
	last extract.TravelInfo
}

func (s *stubSearcher) Run(ctx context.Context, info extract.TravelInfo) (*search.Aggregate, error) {
	s.last = info
	return s.agg, s.err
}

type stubLog struct {
	recorded []store.SearchRecord
}

func (s *stubLog) RecordSearch(ctx context.Context, rec store.SearchRecord) error {
	s.recorded = append(s.recorded, rec)
	return nil
}

func (s *stubLog) RecentSearches(ctx context.Context, limit int) ([]store.SearchRecord, error) {
	if limit < len(s.recorded) {
		return s.recorded[:limit], nil
	}
	return s.recorded, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 8, 4, 10, 0, 0, 0, time.UTC)
}

func testServer(searcher FlightSearcher, log SearchLog) *Server {
	extractor := extract.New(slog.Default(), fixedNow)
	return NewServer(8460, extractor, searcher, log, nil, slog.Default())
}

func postJSON(t *testing.T, srv *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(&stubSearcher{}, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestExtractEndpoint(t *testing.T) {
	srv := testServer(&stubSearcher{}, nil)

	w := postJSON(t, srv, "/api/v1/extract", ExtractRequest{
		Text: "flight from Lahore to Karachi tomorrow with 2 adults",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp ExtractResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Info.DepartureCity != "LHE" || resp.Info.DestinationCity != "KHI" {
		t.Errorf("cities = %q -> %q", resp.Info.DepartureCity, resp.Info.DestinationCity)
	}
	if resp.Info.DepartureDate != "2025-08-05" {
		t.Errorf("departure date = %q", resp.Info.DepartureDate)
	}
	if resp.Info.Passengers.Adults != 2 {
		t.Errorf("adults = %d, want 2", resp.Info.Passengers.Adults)
	}
	if !resp.Complete {
		t.Errorf("expected complete, missing %v", resp.MissingFields)
	}
}

func TestExtractEndpoint_EmptyText(t *testing.T) {
	srv := testServer(&stubSearcher{}, nil)
	w := postJSON(t, srv, "/api/v1/extract", ExtractRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExtractEndpoint_CarriesContext(t *testing.T) {
	srv := testServer(&stubSearcher{}, nil)

	prior := extract.TravelInfo{
		DepartureCity:   "LHE",
		DestinationCity: "KHI",
		FlightType:      "one_way",
		FlightClass:     "economy",
		DepartureDate:   "2025-08-05",
	}
	prior.Passengers.Adults = 2

	w := postJSON(t, srv, "/api/v1/extract", ExtractRequest{
		Text:    "make it business class",
		Context: &prior,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp ExtractResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Info.FlightClass != "business" {
		t.Errorf("flight class = %q, want business", resp.Info.FlightClass)
	}
	if resp.Info.DepartureCity != "LHE" || resp.Info.DestinationCity != "KHI" {
		t.Errorf("prior cities lost: %+v", resp.Info)
	}
	if resp.Info.DepartureDate != "2025-08-05" {
		t.Errorf("prior date lost: %q", resp.Info.DepartureDate)
	}
}

func TestSearchEndpoint_MissingInfo(t *testing.T) {
	searcher := &stubSearcher{}
	srv := testServer(searcher, nil)

	w := postJSON(t, srv, "/api/v1/search", ExtractRequest{Text: "flight to Karachi"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "missing_info" {
		t.Errorf("status = %q, want missing_info", resp.Status)
	}
	if len(resp.MissingFields) == 0 {
		t.Error("expected missing fields")
	}
	if resp.Results != nil {
		t.Error("expected no results")
	}
}

func TestSearchEndpoint_Success(t *testing.T) {
	agg := &search.Aggregate{
		SearchID:           uuid.New(),
		Offers:             []search.Offer{{Provider: "pia", LowestFare: 20000}},
		TotalOffers:        1,
		ProvidersQueried:   2,
		ProvidersSucceeded: 2,
	}
	searcher := &stubSearcher{agg: agg}
	log := &stubLog{}
	srv := testServer(searcher, log)

	w := postJSON(t, srv, "/api/v1/search", ExtractRequest{
		Text: "flight from Lahore to Karachi tomorrow",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
	if resp.Results == nil || resp.Results.TotalOffers != 1 {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
	if searcher.last.DepartureCity != "LHE" {
		t.Errorf("searcher got %+v", searcher.last)
	}

	if len(log.recorded) != 1 {
		t.Fatalf("recorded = %d, want 1", len(log.recorded))
	}
	rec := log.recorded[0]
	if rec.ID != agg.SearchID {
		t.Errorf("record id = %v, want %v", rec.ID, agg.SearchID)
	}
	if rec.DepartureCity != "LHE" || rec.DestinationCity != "KHI" {
		t.Errorf("record cities = %q -> %q", rec.DepartureCity, rec.DestinationCity)
	}
}

func TestRecentSearchesEndpoint(t *testing.T) {
	log := &stubLog{recorded: []store.SearchRecord{
		{ID: uuid.New(), Query: "lahore to karachi"},
		{ID: uuid.New(), Query: "isb to kdu"},
	}}
	srv := testServer(&stubSearcher{}, log)

	req := httptest.NewRequest("GET", "/api/v1/searches?limit=1", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Count != 1 {
		t.Errorf("count = %d, want 1", body.Count)
	}
}

func TestRecentSearchesEndpoint_NoLog(t *testing.T) {
	srv := testServer(&stubSearcher{}, nil)

	req := httptest.NewRequest("GET", "/api/v1/searches", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
