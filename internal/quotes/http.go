package quotes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/contactkeval/implied-vol/internal/logger"
	"github.com/contactkeval/implied-vol/internal/pricing"
)

// httpSource fetches quote chains from a remote quote API using raw
// HTTP calls.
type httpSource struct {
	// APIKey used for authenticating requests, may be empty.
	APIKey string

	// Client is the HTTP client used to make API requests.
	Client *http.Client

	// BaseURL is the root endpoint of the quote API.
	BaseURL string

	secondary Source
}

// httpQuoteRow models one quote in the API response.
type httpQuoteRow struct {
	Underlying string  `json:"underlying"`
	Type       string  `json:"type"`
	Spot       float64 `json:"spot"`
	Strike     float64 `json:"strike"`
	Expiry     float64 `json:"expiry_years"`
	Rate       float64 `json:"rate"`
	Carry      float64 `json:"carry"`
	Price      float64 `json:"price"`
}

// httpQuotesResp models the quote chain response envelope.
type httpQuotesResp struct {
	Results []httpQuoteRow `json:"results"`
	Status  string         `json:"status"`
}

// NewHTTPSource constructs a quote source backed by a remote API.
func NewHTTPSource(baseURL, apiKey string, secondary Source) Source {
	logger.Infof("initializing HTTP quote source for %s", baseURL)

	return &httpSource{
		APIKey:  apiKey,
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		secondary: secondary,
	}
}

func (httpSrc *httpSource) Secondary() Source {
	return httpSrc.secondary
}

func (httpSrc *httpSource) Quotes(underlying string) ([]Quote, error) {
	u := fmt.Sprintf("%s/v1/quotes?%s", httpSrc.BaseURL, url.Values{
		"underlying": {underlying},
		"apiKey":     {httpSrc.APIKey},
	}.Encode())

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpSrc.processGetRequest(req)
	if err != nil {
		if httpSrc.secondary != nil {
			logger.Debugf("quote API failed (%v), falling back to secondary", err)
			return httpSrc.secondary.Quotes(underlying)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var chain httpQuotesResp
	if err := json.Unmarshal(body, &chain); err != nil {
		return nil, fmt.Errorf("decoding quote chain: %w", err)
	}

	out := make([]Quote, 0, len(chain.Results))
	for _, row := range chain.Results {
		typ, err := pricing.ParseOptionType(row.Type)
		if err != nil {
			return nil, fmt.Errorf("quote at strike %.2f: %w", row.Strike, err)
		}
		out = append(out, Quote{
			Underlying: row.Underlying,
			Type:       typ,
			Spot:       row.Spot,
			Strike:     row.Strike,
			Expiry:     row.Expiry,
			Rate:       row.Rate,
			Carry:      row.Carry,
			Price:      row.Price,
		})
	}

	logger.Debugf("fetched %d quotes for %s", len(out), underlying)
	return out, nil
}

// processGetRequest executes an HTTP GET request with rate-limit
// handling: retries on HTTP 429 after sleeping to the next minute
// boundary, returns immediately on success, errors on anything else.
func (httpSrc *httpSource) processGetRequest(req *http.Request) (*http.Response, error) {
	for {
		resp, err := httpSrc.Client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode < 400 {
			return resp, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()

			now := time.Now()
			sleepDuration := time.Until(now.Truncate(time.Minute).Add(time.Minute))

			logger.Infof("rate limit hit, sleeping for %s", sleepDuration)
			time.Sleep(sleepDuration)
			continue
		}

		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
