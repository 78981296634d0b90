package folio

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/openfolio/folio/date"
)

// This file is the market-data boundary: it supplies historical prices
// and computes nothing. The engine only ever sees the Market it fills.

const eodBaseURL = "https://eodhd.com/api"

// EODClient fetches end-of-day close histories from an EODHD-compatible
// JSON API. Responses are cached on disk for the day, so repeated runs
// do not hammer the provider.
type EODClient struct {
	APIKey  string
	BaseURL string
	client  *http.Client
}

// NewEODClient returns a client with a day-keyed disk cache.
func NewEODClient(apiKey string) *EODClient {
	return &EODClient{
		APIKey:  apiKey,
		BaseURL: eodBaseURL,
		client:  &http.Client{Transport: &diskCache{base: http.DefaultTransport}},
	}
}

// FetchDailyCloses downloads the symbol's daily closes over the range
// and records them into the market. It returns the number of days
// recorded.
func (c *EODClient) FetchDailyCloses(symbol string, r date.Range, m *Market) (int, error) {
	addr := fmt.Sprintf("%s/eod/%s?from=%s&to=%s&api_token=%s&fmt=json",
		c.BaseURL, url.PathEscape(symbol), r.From, r.To, url.QueryEscape(c.APIKey))

	var jobj any
	if err := c.jwget(addr, &jobj); err != nil {
		return 0, fmt.Errorf("error fetching eod history for %q: %w", symbol, err)
	}

	days, err := jsonlist(jobj, "$[*].date")
	if err != nil {
		return 0, fmt.Errorf("error parsing eod dates for %q: %w", symbol, err)
	}
	closes, err := jsonlist(jobj, "$[*].close")
	if err != nil {
		return 0, fmt.Errorf("error parsing eod closes for %q: %w", symbol, err)
	}
	volumes, err := jsonlist(jobj, "$[*].volume")
	if err != nil {
		return 0, fmt.Errorf("error parsing eod volumes for %q: %w", symbol, err)
	}
	if len(days) != len(closes) || len(days) != len(volumes) {
		return 0, fmt.Errorf("ragged eod response for %q: %d dates, %d closes, %d volumes",
			symbol, len(days), len(closes), len(volumes))
	}

	n := 0
	for i, jday := range days {
		str, ok := jday.(string)
		if !ok {
			continue
		}
		on, err := date.Parse(str)
		if err != nil {
			log.Printf("skipping unparsable eod date %q for %s", str, symbol)
			continue
		}
		close, ok := closes[i].(float64)
		if !ok {
			continue
		}
		volume, _ := volumes[i].(float64)
		m.Add(symbol, on, close, volume)
		n++
	}
	return n, nil
}

// jsonlist evaluates a jsonpath expression expected to yield a list.
func jsonlist(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q: not a list: %v", path, jval)
	}
	return jlist, nil
}

// jwget GETs the address and unmarshals the JSON body into v.
func (c *EODClient) jwget(addr string, v any) error {
	resp, err := c.client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// diskCache implements a simple disk cache for HTTP responses.
// The cache key includes today's date, so entries expire daily.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if resp, err := c.get(key, req); err == nil {
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		// a cache write failure is not a fetch failure
		log.Printf("could not cache response: %v", err)
	}
	return resp, nil
}

func (c *diskCache) path(key string) string {
	return filepath.Join(os.TempDir(), "folio-http-cache", key)
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	f, err := os.Open(c.path(key))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(b)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	// DumpResponse drained the body; hand the caller a fresh copy.
	parsed, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(dump)), resp.Request)
	if err != nil {
		return err
	}
	*resp = *parsed
	if err := os.MkdirAll(filepath.Dir(c.path(key)), 0755); err != nil {
		return err
	}
	return os.WriteFile(c.path(key), dump, 0644)
}
