package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/openfolio/folio"
	"github.com/openfolio/folio/date"
)

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "folio",
		"user":    s.account.UserID,
	})
}

// positionView is the wire shape of one open position.
type positionView struct {
	Symbol      string         `json:"symbol"`
	Units       folio.Quantity `json:"units"`
	Invested    folio.Money    `json:"invested"`
	BreakEven   folio.Money    `json:"breakEvenPrice"`
	MarketValue folio.Money    `json:"marketValue"`
}

// handlePositions returns every open position as of a date
// (?on=2025-01-02, default today).
func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	on := date.Today()
	if v := r.URL.Query().Get("on"); v != "" {
		var err error
		if on, err = date.Parse(v); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid 'on' date: "+err.Error())
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]positionView, 0)
	for symbol := range s.ledger.Symbols() {
		pos, err := s.ledger.PositionOn(symbol, on)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if pos.Units.IsZero() {
			continue
		}
		v := positionView{
			Symbol:    symbol,
			Units:     pos.Units,
			Invested:  pos.Invested,
			BreakEven: pos.BreakEvenPrice(),
		}
		if price, ok := s.market.Get(symbol, on); ok {
			v.MarketValue = price.Close.Mul(pos.Units)
		}
		views = append(views, v)
	}
	s.writeJSON(w, http.StatusOK, views)
}

// handleGrowth returns the growth series (?policy=union|governing).
func (s *Server) handleGrowth(w http.ResponseWriter, r *http.Request) {
	policy, err := folio.ParseAxisPolicy(r.URL.Query().Get("policy"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	series, err := folio.GrowthSeries(s.ledger, s.account, s.market, policy)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, series)
}

// handleGrowthChart returns the growth series as a PNG line chart.
func (s *Server) handleGrowthChart(w http.ResponseWriter, r *http.Request) {
	policy, err := folio.ParseAxisPolicy(r.URL.Query().Get("policy"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	series, err := folio.GrowthSeries(s.ledger, s.account, s.market, policy)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	png, err := folio.RenderGrowthChart(series)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		s.log.Error().Err(err).Msg("Failed to write chart response")
	}
}

// handleTransactions lists the ledger, newest last.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	txs := make([]folio.Transaction, 0, s.ledger.Len())
	for _, tx := range s.ledger.Transactions() {
		txs = append(txs, tx)
	}
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, txs)
}

// tradePayload is the wire shape of a trade booking request.
type tradePayload struct {
	Symbol           string          `json:"symbol"`
	Sector           string          `json:"sector"`
	SymbolType       string          `json:"symbolType"`
	Date             date.Date       `json:"date"`
	Type             folio.TradeType `json:"type"`
	Units            folio.Quantity  `json:"units"`
	CustomTotalValue folio.Money     `json:"customTotalValue"`
}

// handleNewTrade validates, prices and books one trade.
func (s *Server) handleNewTrade(w http.ResponseWriter, r *http.Request) {
	var payload tradePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req := folio.TradeRequest{
		Symbol:           payload.Symbol,
		Sector:           payload.Sector,
		SymbolType:       payload.SymbolType,
		Date:             payload.Date,
		Type:             payload.Type,
		Units:            payload.Units,
		CustomTotalValue: payload.CustomTotalValue,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := folio.NewTrade(req, s.account, s.ledger, s.market)
	if err != nil {
		var notFound *folio.SymbolNotFoundError
		var noFunds *folio.InsufficientFundsError
		var oversell *folio.OversellError
		switch {
		case errors.As(err, &notFound):
			s.writeError(w, http.StatusNotFound, err.Error())
		case errors.As(err, &noFunds), errors.As(err, &oversell):
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			s.writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	s.ledger.Append(tx)
	if err := s.saveLedger(); err != nil {
		s.log.Error().Err(err).Msg("Failed to persist ledger")
		s.writeError(w, http.StatusInternalServerError, "trade booked but not persisted: "+err.Error())
		return
	}

	s.log.Info().
		Str("symbol", tx.Symbol).
		Str("type", string(tx.Type)).
		Str("units", tx.Units.String()).
		Msg("Trade booked")
	s.writeJSON(w, http.StatusCreated, tx)
}

// saveLedger rewrites the ledger file. Caller holds s.mu.
func (s *Server) saveLedger() error {
	if s.ledgerPath == "" {
		return nil
	}
	f, err := os.Create(s.ledgerPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return folio.EncodeLedger(f, s.ledger)
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
