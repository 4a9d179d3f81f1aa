// Package repl is an interactive terminal loop for trying extraction
// and search without the HTTP API.
package repl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bookmesky/skyparse/internal/api"
	"github.com/bookmesky/skyparse/internal/conversation"
	"github.com/bookmesky/skyparse/internal/extract"
)

type REPL struct {
	extractor *extract.Extractor
	searcher  api.FlightSearcher
	in        io.Reader
	out       io.Writer
}

// New builds a loop reading from in and writing to out. searcher may
// be nil, which limits the loop to extraction only.
func New(extractor *extract.Extractor, searcher api.FlightSearcher, in io.Reader, out io.Writer) *REPL {
	return &REPL{extractor: extractor, searcher: searcher, in: in, out: out}
}

// Run reads lines until EOF or an exit command. Extracted parameters
// carry over between lines, so follow-ups refine the same trip.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "skyparse: describe your trip, or type exit")

	var prior *extract.TravelInfo
	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if line == "reset" {
			prior = nil
			fmt.Fprintln(r.out, "context cleared")
			continue
		}

		query := conversation.BuildQuery(prior, line)
		info := r.extractor.Extract(query)
		if prior != nil {
			info = conversation.Merge(*prior, info)
		}
		prior = &info

		printJSON(r.out, info)

		missing := info.MissingFields()
		if len(missing) > 0 {
			fmt.Fprintf(r.out, "still needed: %s\n", strings.Join(missing, ", "))
			continue
		}
		if r.searcher == nil {
			continue
		}

		agg, err := r.searcher.Run(ctx, info)
		if err != nil {
			fmt.Fprintf(r.out, "search failed: %v\n", err)
			continue
		}
		fmt.Fprintf(r.out, "%d offers from %d of %d providers\n",
			agg.TotalOffers, agg.ProvidersWithOffers, agg.ProvidersQueried)
		for i, offer := range agg.Offers {
			if i == 5 {
				fmt.Fprintf(r.out, "... and %d more\n", len(agg.Offers)-5)
				break
			}
			fmt.Fprintf(r.out, "%s %s %s->%s %s-%s (%s) from PKR %.0f\n",
				offer.Airline, offer.FlightNumber, offer.Origin, offer.Destination,
				offer.DepartureTime, offer.ArrivalTime, offer.Duration, offer.LowestFare)
		}
	}
	return scanner.Err()
}

func printJSON(out io.Writer, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "encode: %v\n", err)
		return
	}
	fmt.Fprintln(out, string(b))
}
