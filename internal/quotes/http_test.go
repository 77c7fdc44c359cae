package quotes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contactkeval/implied-vol/internal/pricing"
)

func TestHTTPSourceFetchesChain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/quotes" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("underlying"); got != "SPY" {
			t.Errorf("unexpected underlying param: %q", got)
		}
		resp := httpQuotesResp{
			Status: "OK",
			Results: []httpQuoteRow{
				{Underlying: "SPY", Type: "call", Spot: 450, Strike: 460, Expiry: 0.25, Rate: 0.05, Carry: 0.05, Price: 8.5},
				{Underlying: "SPY", Type: "put", Spot: 450, Strike: 440, Expiry: 0.25, Rate: 0.05, Carry: 0.05, Price: 7.25},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, "test-key", nil)
	chain, err := src.Quotes("SPY")
	if err != nil {
		t.Fatalf("Quotes failed: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(chain))
	}
	if chain[0].Type != pricing.Call || chain[0].Strike != 460 {
		t.Fatalf("first quote parsed wrong: %+v", chain[0])
	}
}

// A trailing slash on the configured base URL must not produce a
// double-slash request path.
func TestHTTPSourceTrailingSlashBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/quotes" {
			t.Errorf("unexpected request path: %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(httpQuotesResp{Status: "OK"})
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", "", nil)
	if _, err := src.Quotes("SPY"); err != nil {
		t.Fatalf("Quotes failed: %v", err)
	}
}

func TestHTTPSourceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, "", nil)
	if _, err := src.Quotes("SPY"); err == nil {
		t.Fatal("expected error on HTTP 500 without secondary")
	}
}

func TestHTTPSourceFallsBackToSecondary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, "", NewSyntheticSource())
	chain, err := src.Quotes("SYNTH")
	if err != nil {
		t.Fatalf("expected fallback to secondary, got error: %v", err)
	}
	if len(chain) == 0 {
		t.Fatal("expected quotes from synthetic secondary")
	}
}
