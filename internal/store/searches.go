package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SearchRecord is one logged search: what was asked for and how the
// provider fan-out went.
type SearchRecord struct {
	ID                 uuid.UUID
	Query              string
	DepartureCity      string
	DestinationCity    string
	DepartureDate      string
	ReturnDate         string
	FlightType         string
	FlightClass        string
	Adults             int
	Children           int
	Infants            int
	ProvidersQueried   int
	ProvidersSucceeded int
	TotalOffers        int
	CreatedAt          time.Time
}

// RecordSearch logs a completed search.
func (s *Store) RecordSearch(ctx context.Context, rec SearchRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO searches (id, query, departure_city, destination_city, departure_date, return_date,
			flight_type, flight_class, adults, children, infants,
			providers_queried, providers_succeeded, total_offers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())`,
		rec.ID, rec.Query, rec.DepartureCity, rec.DestinationCity,
		nullable(rec.DepartureDate), nullable(rec.ReturnDate),
		rec.FlightType, rec.FlightClass, rec.Adults, rec.Children, rec.Infants,
		rec.ProvidersQueried, rec.ProvidersSucceeded, rec.TotalOffers,
	)
	if err != nil {
		return fmt.Errorf("insert search: %w", err)
	}
	return nil
}

// RecentSearches lists the latest logged searches, newest first.
func (s *Store) RecentSearches(ctx context.Context, limit int) ([]SearchRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, query, departure_city, destination_city,
			coalesce(departure_date, ''), coalesce(return_date, ''),
			flight_type, flight_class, adults, children, infants,
			providers_queried, providers_succeeded, total_offers, created_at
		FROM searches
		ORDER BY created_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query searches: %w", err)
	}
	defer rows.Close()

	var out []SearchRecord
	for rows.Next() {
		var rec SearchRecord
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.DepartureCity, &rec.DestinationCity,
			&rec.DepartureDate, &rec.ReturnDate, &rec.FlightType, &rec.FlightClass,
			&rec.Adults, &rec.Children, &rec.Infants,
			&rec.ProvidersQueried, &rec.ProvidersSucceeded, &rec.TotalOffers, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// nullable maps "" to NULL for date columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
