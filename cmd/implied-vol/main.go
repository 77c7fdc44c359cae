package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/contactkeval/implied-vol/internal/logger"
	"github.com/contactkeval/implied-vol/internal/pricing"
	"github.com/contactkeval/implied-vol/internal/quotes"
	"github.com/contactkeval/implied-vol/internal/report"
	"github.com/contactkeval/implied-vol/internal/smile"
)

// solveRequest is the /solve REST payload.
type solveRequest struct {
	Type    string  `json:"type"`
	Spot    float64 `json:"spot"`
	Strike  float64 `json:"strike"`
	Expiry  float64 `json:"expiry_years"`
	Rate    float64 `json:"rate"`
	Carry   float64 `json:"carry"`
	Price   float64 `json:"price"`
	Epsilon float64 `json:"epsilon,omitempty"`
}

type solveResponse struct {
	ImpliedVol float64 `json:"implied_vol"`
}

func main() {
	side := flag.String("side", "call", "option side: call or put")
	spot := flag.Float64("spot", 0, "underlying price")
	strike := flag.Float64("strike", 0, "strike price")
	expiry := flag.Float64("expiry", 0, "time to expiry in years")
	rate := flag.Float64("rate", 0, "risk-free rate")
	carry := flag.Float64("carry", 0, "cost of carry (defaults to rate if unset)")
	price := flag.Float64("price", math.NaN(), "observed market price (single-solve mode)")
	eps := flag.Float64("eps", 1e-9, "solver tolerance on price")
	underlying := flag.String("underlying", "SYNTH", "underlying symbol (batch mode)")
	quotesFile := flag.String("quotes", "", "path to a CSV quote chain (batch mode)")
	outDir := flag.String("out", "./out", "report output directory (batch mode)")
	rest := flag.Bool("rest", false, "run as REST server (accept solve requests)")
	port := flag.String("port", ":8080", "REST server listen address")
	verbosity := flag.Int("v", 1, "verbosity: 0=errors,1=info,2=debug,3=trace")
	flag.Parse()

	logger.SetVerbosity(*verbosity)

	if *rest {
		runREST(*port, *eps)
		return
	}

	// Single-solve mode when a market price was given.
	if !math.IsNaN(*price) {
		typ, err := pricing.ParseOptionType(*side)
		if err != nil {
			log.Fatalf("invalid -side: %v", err)
		}
		b := *carry
		if !flagWasSet("carry") {
			b = *rate
		}
		vol, err := pricing.ImpliedVolatility(typ, *spot, *strike, *expiry, *rate, b, *price, *eps)
		if err != nil {
			log.Fatalf("solve failed: %v", err)
		}
		fmt.Printf("%.6f\n", vol)
		return
	}

	// Batch mode: pick a quote source the same way the provider stack
	// is chosen, then build and write the smile.
	var src quotes.Source
	switch {
	case *quotesFile != "":
		src = quotes.NewCSVSource(*quotesFile, nil)
		logger.Infof("csv quote source enabled: %s", *quotesFile)
	case os.Getenv("QUOTE_API_URL") != "":
		src = quotes.NewHTTPSource(os.Getenv("QUOTE_API_URL"), os.Getenv("QUOTE_API_KEY"), quotes.NewSyntheticSource())
		logger.Infof("http quote source enabled")
	default:
		src = quotes.NewSyntheticSource()
		logger.Infof("synthetic quote source enabled")
	}

	start := time.Now()
	sm, err := smile.Build(src, *underlying, *eps)
	if err != nil {
		log.Fatalf("smile build failed: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("could not create output dir %s: %v", *outDir, err)
	}
	if err := report.WriteJSON(sm, *outDir); err != nil {
		logger.Errorf("writing smile.json: %v", err)
	}
	if err := report.WriteCSV(sm, *outDir); err != nil {
		logger.Errorf("writing smile.csv: %v", err)
	}
	logger.Infof("finished in %v, wrote %d points to %s", time.Since(start), len(sm.Points), *outDir)
}

// flagWasSet reports whether a flag was given on the command line.
func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func runREST(port string, defaultEps float64) {
	mux := http.NewServeMux()
	mux.HandleFunc("/solve", func(w http.ResponseWriter, r *http.Request) {
		var req solveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		typ, err := pricing.ParseOptionType(req.Type)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		eps := req.Epsilon
		if eps <= 0 {
			eps = defaultEps
		}
		vol, err := pricing.ImpliedVolatility(typ, req.Spot, req.Strike, req.Expiry, req.Rate, req.Carry, req.Price, eps)
		if errors.Is(err, pricing.ErrNoConvergence) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(solveResponse{ImpliedVol: vol})
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	logger.Infof("starting REST server on %s", port)
	log.Fatal(http.ListenAndServe(port, mux))
}
