// Package conversation carries extracted parameters across conversation
// turns, so a follow-up like "the 12th" can be read against what the
// user already asked for.
package conversation

import (
	"fmt"
	"strings"

	"github.com/bookmesky/skyparse/internal/extract"
	"github.com/bookmesky/skyparse/internal/triptype"
)

// BuildQuery rewrites the latest user text so the extractor sees the
// prior turn's parameters too. With no prior state the text passes
// through untouched.
func BuildQuery(prior *extract.TravelInfo, userText string) string {
	if prior == nil {
		return userText
	}

	var parts []string
	if prior.DepartureCity != "" && prior.DestinationCity != "" {
		parts = append(parts, fmt.Sprintf("travel from %s to %s", prior.DepartureCity, prior.DestinationCity))
	} else if prior.DepartureCity != "" {
		parts = append(parts, fmt.Sprintf("travel from %s", prior.DepartureCity))
	} else if prior.DestinationCity != "" {
		parts = append(parts, fmt.Sprintf("travel to %s", prior.DestinationCity))
	}
	if prior.Passengers.Total() > 0 {
		parts = append(parts, passengerPhrase(prior))
	}
	if prior.FlightClass != "" {
		// "premium_economy" must read as "premium economy" so
		// re-extraction sees the same class.
		parts = append(parts, strings.ReplaceAll(prior.FlightClass, "_", " ")+" class")
	}
	if prior.FlightType == triptype.Return {
		parts = append(parts, "round trip")
	}
	if prior.DepartureDate != "" {
		parts = append(parts, "departing on "+prior.DepartureDate)
	}
	if prior.ReturnDate != "" {
		parts = append(parts, "returning on "+prior.ReturnDate)
	}

	if len(parts) == 0 {
		return userText
	}

	// When only the return date is still missing, a bare date reply
	// like "the 12th" needs a return cue in front of it.
	missing := prior.MissingFields()
	if len(missing) == 1 && missing[0] == "return_date" {
		userText = "returning " + userText
	}

	return strings.Join(parts, " ") + ". Now " + userText
}

// Merge folds a later extraction into an earlier one. Strings only
// overwrite when the later turn actually set them; passenger counts
// replace wholesale once the later turn mentions anyone.
func Merge(prior, latest extract.TravelInfo) extract.TravelInfo {
	out := prior
	if latest.DepartureCity != "" {
		out.DepartureCity = latest.DepartureCity
	}
	if latest.DestinationCity != "" {
		out.DestinationCity = latest.DestinationCity
	}
	if latest.DepartureDate != "" {
		out.DepartureDate = latest.DepartureDate
	}
	if latest.ReturnDate != "" {
		out.ReturnDate = latest.ReturnDate
	}
	if latest.Airline != "" {
		out.Airline = latest.Airline
	}
	if latest.FlightType != "" {
		out.FlightType = latest.FlightType
	}
	if latest.FlightClass != "" {
		out.FlightClass = latest.FlightClass
	}
	if latest.Passengers.Total() > 0 {
		out.Passengers = latest.Passengers
	}
	if out.ReturnDate != "" {
		out.FlightType = triptype.Return
	}
	return out
}

func passengerPhrase(info *extract.TravelInfo) string {
	var parts []string
	add := func(n int, singular, plural string) {
		if n == 1 {
			parts = append(parts, "1 "+singular)
		} else if n > 1 {
			parts = append(parts, fmt.Sprintf("%d %s", n, plural))
		}
	}
	add(info.Passengers.Adults, "adult", "adults")
	add(info.Passengers.Children, "child", "children")
	add(info.Passengers.Infants, "infant", "infants")
	return strings.Join(parts, " and ")
}
