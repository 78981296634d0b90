package folio

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ratioPrecision is the number of decimal places for gain ratios.
// Money precision (2) would destroy small-percentage information.
const ratioPrecision = 4

// NewTrade validates and materializes a single requested trade into an
// immutable ledger entry. It is side-effect free beyond the price
// lookup: appending the result to the ledger is the caller's job, so a
// failed request never leaves a partial transaction behind.
//
// It fails with *SymbolNotFoundError when no price exists for the
// symbol and date, with *InsufficientFundsError when a buy would take a
// leveraged account cash-negative, and with *OversellError when a sell
// exceeds the held position.
func NewTrade(req TradeRequest, account Account, ledger *Ledger, prices PriceSource) (Transaction, error) {
	if req.Units.IsZero() || req.Units.IsNegative() {
		return Transaction{}, fmt.Errorf("trade units must be positive, got %s", req.Units)
	}
	if req.Type != Buy && req.Type != Sell {
		return Transaction{}, fmt.Errorf("unsupported trade type %q", req.Type)
	}
	day := req.Date
	if day.IsZero() {
		return Transaction{}, fmt.Errorf("trade date is missing for %s", req.Symbol)
	}

	// Resolve the execution price. An explicit total value overrides
	// the historical close; otherwise the price source decides which
	// day's close applies (nearest prior when the market was closed).
	unitPrice := M(0, account.Currency)
	priceFrom := day
	if !req.CustomTotalValue.IsZero() {
		unitPrice = req.CustomTotalValue.Div(req.Units).Round()
	} else {
		price, ok := prices.Get(req.Symbol, day)
		if !ok {
			return Transaction{}, &SymbolNotFoundError{Symbol: req.Symbol, Day: day}
		}
		unitPrice = price.Close
		priceFrom = price.Date
	}
	gross := unitPrice.Mul(req.Units)

	// Leveraged accounts must never go cash-negative on a buy.
	if req.Type == Buy && account.Leveraged() {
		available := account.StartingCash.Sub(ledger.CashCommitted(day))
		if available.LessThan(gross) {
			return Transaction{}, &InsufficientFundsError{
				Symbol: req.Symbol, Day: day, Cost: gross, Available: available,
			}
		}
	}

	pos, err := ledger.PositionOn(req.Symbol, day)
	if err != nil {
		return Transaction{}, err
	}

	var returnValue Money
	var returnChange decimal.Decimal
	if req.Type == Sell {
		if req.Units.GreaterThan(pos.Units) {
			return Transaction{}, &OversellError{Symbol: req.Symbol, Day: day, Units: req.Units, Held: pos.Units}
		}
		// Realized gain against the break-even price at the moment of
		// sale; the break-even price itself stays untouched by the sell.
		breakEven := pos.BreakEvenPrice()
		returnValue = unitPrice.Sub(breakEven).Mul(req.Units).Round()
		if !breakEven.IsZero() {
			returnChange = unitPrice.Sub(breakEven).Ratio(breakEven).Round(ratioPrecision)
		}
	}

	fees := M(0, account.Currency)
	if account.FeeBearing() {
		fees = gross.Mul(Q(account.FeeRate)).Round()
	}

	return Transaction{
		ID:            uuid.NewString(),
		UserID:        account.UserID,
		Symbol:        req.Symbol,
		Sector:        req.Sector,
		SymbolType:    req.SymbolType,
		Date:          day,
		Type:          req.Type,
		Units:         req.Units,
		UnitPrice:     unitPrice,
		Fees:          fees,
		ReturnValue:   returnValue,
		ReturnChange:  returnChange,
		PriceFromDate: priceFrom,
		DateExecuted:  time.Now().UTC(),
	}, nil
}
