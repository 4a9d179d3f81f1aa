// Package api is the HTTP surface: parameter extraction and flight
// search over JSON.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/bookmesky/skyparse/internal/conversation"
	"github.com/bookmesky/skyparse/internal/events"
	"github.com/bookmesky/skyparse/internal/extract"
	"github.com/bookmesky/skyparse/internal/search"
	"github.com/bookmesky/skyparse/internal/store"
)

// FlightSearcher runs a provider fan-out for a complete travel request.
type FlightSearcher interface {
	Run(ctx context.Context, info extract.TravelInfo) (*search.Aggregate, error)
}

// SearchLog persists completed searches. A nil log disables logging.
type SearchLog interface {
	RecordSearch(ctx context.Context, rec store.SearchRecord) error
	RecentSearches(ctx context.Context, limit int) ([]store.SearchRecord, error)
}

type Server struct {
	router    *chi.Mux
	port      int
	extractor *extract.Extractor
	searcher  FlightSearcher
	log       SearchLog
	publisher *events.Publisher
	logger    *slog.Logger
}

func NewServer(port int, extractor *extract.Extractor, searcher FlightSearcher, log SearchLog, publisher *events.Publisher, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		port:      port,
		extractor: extractor,
		searcher:  searcher,
		log:       log,
		publisher: publisher,
		logger:    logger,
	}

	router.Get("/health", s.health)
	router.Post("/api/v1/extract", s.extract)
	router.Post("/api/v1/search", s.search)
	router.Get("/api/v1/searches", s.recentSearches)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// ExtractRequest carries the user's text plus, optionally, what earlier
// turns already established.
type ExtractRequest struct {
	Text    string              `json:"text"`
	Context *extract.TravelInfo `json:"context,omitempty"`
}

// ExtractResponse is the extraction result and what is still missing
// before a search can run.
type ExtractResponse struct {
	Info          extract.TravelInfo `json:"info"`
	MissingFields []string           `json:"missing_fields,omitempty"`
	Complete      bool               `json:"complete"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	info := s.runExtraction(req)

	writeJSON(w, http.StatusOK, ExtractResponse{
		Info:          info,
		MissingFields: info.MissingFields(),
		Complete:      info.Complete(),
	})
}

// SearchResponse wraps either a full aggregate or, when extraction
// came up short, the fields still needed.
type SearchResponse struct {
	Status        string             `json:"status"`
	Info          extract.TravelInfo `json:"info"`
	MissingFields []string           `json:"missing_fields,omitempty"`
	Results       *search.Aggregate  `json:"results,omitempty"`
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	info := s.runExtraction(req)

	if missing := info.MissingFields(); len(missing) > 0 {
		writeJSON(w, http.StatusOK, SearchResponse{
			Status:        "missing_info",
			Info:          info,
			MissingFields: missing,
		})
		return
	}

	agg, err := s.searcher.Run(r.Context(), info)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("search failed: %v", err))
		return
	}

	s.recordSearch(r.Context(), req.Text, info, agg)

	writeJSON(w, http.StatusOK, SearchResponse{
		Status:  "success",
		Info:    info,
		Results: agg,
	})
}

func (s *Server) recentSearches(w http.ResponseWriter, r *http.Request) {
	if s.log == nil {
		writeError(w, http.StatusNotFound, "search log not configured")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	recs, err := s.log.RecentSearches(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("list searches: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"searches": recs, "count": len(recs)})
}

// runExtraction folds prior context into the query, extracts, merges
// and publishes the lifecycle event.
func (s *Server) runExtraction(req ExtractRequest) extract.TravelInfo {
	query := conversation.BuildQuery(req.Context, req.Text)
	info := s.extractor.Extract(query)
	if req.Context != nil {
		info = conversation.Merge(*req.Context, info)
	}

	if err := s.publisher.Publish(events.SubjectExtractionCompleted, events.ExtractionCompleted{
		Query:           req.Text,
		DepartureCity:   info.DepartureCity,
		DestinationCity: info.DestinationCity,
		FlightType:      string(info.FlightType),
		FlightClass:     info.FlightClass,
		MissingFields:   info.MissingFields(),
	}); err != nil {
		s.logger.Warn("publish extraction event", "error", err)
	}
	return info
}

func (s *Server) recordSearch(ctx context.Context, query string, info extract.TravelInfo, agg *search.Aggregate) {
	if s.log != nil {
		rec := store.SearchRecord{
			ID:                 agg.SearchID,
			Query:              query,
			DepartureCity:      info.DepartureCity,
			DestinationCity:    info.DestinationCity,
			DepartureDate:      info.DepartureDate,
			ReturnDate:         info.ReturnDate,
			FlightType:         string(info.FlightType),
			FlightClass:        info.FlightClass,
			Adults:             info.Passengers.Adults,
			Children:           info.Passengers.Children,
			Infants:            info.Passengers.Infants,
			ProvidersQueried:   agg.ProvidersQueried,
			ProvidersSucceeded: agg.ProvidersSucceeded,
			TotalOffers:        agg.TotalOffers,
		}
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		if err := s.log.RecordSearch(ctx, rec); err != nil {
			s.logger.Warn("record search", "error", err)
		}
	}

	if err := s.publisher.Publish(events.SubjectSearchCompleted, events.SearchCompleted{
		SearchID:           agg.SearchID.String(),
		DepartureCity:      info.DepartureCity,
		DestinationCity:    info.DestinationCity,
		ProvidersQueried:   agg.ProvidersQueried,
		ProvidersSucceeded: agg.ProvidersSucceeded,
		TotalOffers:        agg.TotalOffers,
	}); err != nil {
		s.logger.Warn("publish search event", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
