package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfolio/folio"
	"github.com/openfolio/folio/date"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	ledger := folio.NewLedger()
	market := folio.NewMarket("USD")
	for day, close := range map[string]float64{
		"2025-01-02": 100,
		"2025-01-03": 102,
		"2025-01-06": 104,
		"2025-01-07": 100,
		"2025-01-08": 130,
	} {
		market.Add("AAPL", date.MustParse(day), close, 1e6)
	}

	account := folio.Account{
		UserID:       "demo",
		Type:         folio.AccountDemo,
		Currency:     "USD",
		StartingCash: folio.M(10000, "USD"),
	}

	srv := New(Config{
		Port:    0,
		Log:     zerolog.Nop(),
		Account: account,
		Ledger:  ledger,
		Market:  market,
	})

	// seed one position through the API itself
	body := `{"symbol":"AAPL","type":"BUY","units":10,"date":"2025-01-02"}`
	rec := do(srv, http.MethodPost, "/api/transactions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return srv
}

func do(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, r)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t)

	rec := do(srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "demo", resp["user"])
}

func TestHandlePositions(t *testing.T) {
	srv := testServer(t)

	rec := do(srv, http.MethodGet, "/api/positions?on=2025-01-08", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var positions []struct {
		Symbol      string  `json:"symbol"`
		Units       float64 `json:"units"`
		BreakEven   float64 `json:"breakEvenPrice"`
		MarketValue float64 `json:"marketValue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &positions))
	require.Len(t, positions, 1)
	assert.Equal(t, "AAPL", positions[0].Symbol)
	assert.Equal(t, 10.0, positions[0].Units)
	assert.Equal(t, 100.0, positions[0].BreakEven)
	assert.Equal(t, 1300.0, positions[0].MarketValue)
}

func TestHandlePositions_BadDate(t *testing.T) {
	srv := testServer(t)
	rec := do(srv, http.MethodGet, "/api/positions?on=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGrowth(t *testing.T) {
	srv := testServer(t)

	rec := do(srv, http.MethodGet, "/api/growth", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var series []struct {
		Date          string  `json:"date"`
		InvestedTotal float64 `json:"investedTotal"`
		MarketTotal   float64 `json:"marketTotal"`
		BalanceTotal  float64 `json:"balanceTotal"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &series))
	require.Len(t, series, 5)
	assert.Equal(t, "2025-01-02", series[0].Date)
	assert.Equal(t, 1000.0, series[0].InvestedTotal)
	assert.Equal(t, 10000.0, series[0].BalanceTotal)
	assert.Equal(t, 1300.0, series[4].MarketTotal)
}

func TestHandleGrowth_BadPolicy(t *testing.T) {
	srv := testServer(t)
	rec := do(srv, http.MethodGet, "/api/growth?policy=latest", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGrowthChart(t *testing.T) {
	srv := testServer(t)

	rec := do(srv, http.MethodGet, "/api/growth/chart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Greater(t, rec.Body.Len(), 100)
}

func TestHandleNewTrade_Sell(t *testing.T) {
	srv := testServer(t)

	body := `{"symbol":"AAPL","type":"SELL","units":5,"date":"2025-01-08"}`
	rec := do(srv, http.MethodPost, "/api/transactions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tx struct {
		ReturnValue  float64 `json:"returnValue"`
		ReturnChange float64 `json:"returnChange"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tx))
	assert.Equal(t, 150.0, tx.ReturnValue)
	assert.Equal(t, 0.3, tx.ReturnChange)
}

func TestHandleNewTrade_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			"unknown symbol",
			`{"symbol":"NOPE","type":"BUY","units":1,"date":"2025-01-02"}`,
			http.StatusNotFound,
		},
		{
			"oversell",
			`{"symbol":"AAPL","type":"SELL","units":999,"date":"2025-01-08"}`,
			http.StatusUnprocessableEntity,
		},
		{
			"insufficient funds",
			`{"symbol":"AAPL","type":"BUY","units":1000,"date":"2025-01-03"}`,
			http.StatusUnprocessableEntity,
		},
		{
			"zero units",
			`{"symbol":"AAPL","type":"BUY","units":0,"date":"2025-01-02"}`,
			http.StatusBadRequest,
		},
		{
			"garbage body",
			`{"symbol":`,
			http.StatusBadRequest,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := testServer(t)
			rec := do(srv, http.MethodPost, "/api/transactions", tc.body)
			assert.Equal(t, tc.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestHandleTransactions(t *testing.T) {
	srv := testServer(t)

	rec := do(srv, http.MethodGet, "/api/transactions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var txs []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txs))
	require.Len(t, txs, 1)
	assert.Equal(t, "AAPL", txs[0]["symbol"])
	assert.Equal(t, "BUY", txs[0]["type"])
}
