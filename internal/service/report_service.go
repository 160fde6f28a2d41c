package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexandrekoury/painel-backend/internal/model"
)

// DateFormat is the ISO calendar-date layout used for all report parameters
// and result keys.
const DateFormat = "2006-01-02"

// LedgerStore is the read contract for the crypto transaction ledger.
// Both queries must return rows sorted by effective date ascending; the
// replay algorithms depend on that ordering.
type LedgerStore interface {
	CryptoTransactionsBefore(ctx context.Context, currencyID string, date time.Time) ([]model.CryptoTransaction, error)
	CryptoTransactionsBetween(ctx context.Context, currencyID string, start, end time.Time) ([]model.CryptoTransaction, error)
}

// CashFlowStore is the read contract for investor cash transactions.
type CashFlowStore interface {
	SumCashThrough(ctx context.Context, date time.Time) (decimal.Decimal, error)
	TransactionsBetween(ctx context.Context, start, end time.Time) ([]model.InvestorTransaction, error)
}

// BalanceStore is the read contract for custodial balance snapshots.
type BalanceStore interface {
	BalancesOnDate(ctx context.Context, date time.Time) ([]model.ExchangeBalance, error)
}

// CurrencyDirectory is the read contract for the currency list.
type CurrencyDirectory interface {
	ListNonFiat(ctx context.Context, excludedCodes []string) ([]model.Currency, error)
}

// ReportService computes the dashboard valuation report: the change in
// custodial balances, the net investor cash flow, and the value variation of
// crypto holdings over a date window, combined into a single profit figure.
//
// The service is stateless per invocation: each report run is a pure function
// of the stored data plus the window, with a fresh price cache allocated per
// call. It only reads; no locking or transaction discipline of its own is
// needed beyond a consistent read snapshot from the store.
type ReportService struct {
	ledger     LedgerStore
	cashFlows  CashFlowStore
	balances   BalanceStore
	currencies CurrencyDirectory
	prices     PriceStore
	fiatCodes  []string
}

// NewReportService creates a new ReportService with the provided store
// dependencies. fiatCodes lists the currency codes excluded from crypto
// variation processing.
func NewReportService(
	ledger LedgerStore,
	cashFlows CashFlowStore,
	balances BalanceStore,
	currencies CurrencyDirectory,
	prices PriceStore,
	fiatCodes []string,
) *ReportService {
	return &ReportService{
		ledger:     ledger,
		cashFlows:  cashFlows,
		balances:   balances,
		currencies: currencies,
		prices:     prices,
		fiatCodes:  fiatCodes,
	}
}

// ResolveWindow returns the report window for raw start/end query parameters.
// Absent or malformed values silently fall back to the defaults: the first day
// of the current month and the previous calendar day. A bad date parameter
// must never surface as an error.
func ResolveWindow(startParam, endParam string, now time.Time) (start, end time.Time) {
	now = now.UTC()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	if parsed, err := time.Parse(DateFormat, startParam); err == nil {
		start = parsed
	}
	if parsed, err := time.Parse(DateFormat, endParam); err == nil {
		end = parsed
	}
	return start, end
}

// BalanceDifferenceResult holds the change in aggregate custodial balance
// between two snapshot dates.
type BalanceDifferenceResult struct {
	StartDate         string          `json:"start_date"`
	EndDate           string          `json:"end_date"`
	StartBalanceSum   decimal.Decimal `json:"start_balance_sum"`
	EndBalanceSum     decimal.Decimal `json:"end_balance_sum"`
	BalanceDifference decimal.Decimal `json:"balance_difference"`
}

// BalanceDifference computes the aggregate balance change between the two
// snapshot dates. Each side sums all snapshots taken exactly on that calendar
// date; a date with no snapshots contributes zero.
func (s *ReportService) BalanceDifference(ctx context.Context, start, end time.Time) (BalanceDifferenceResult, error) {
	startSum, err := s.sumBalancesOn(ctx, start)
	if err != nil {
		return BalanceDifferenceResult{}, err
	}
	endSum, err := s.sumBalancesOn(ctx, end)
	if err != nil {
		return BalanceDifferenceResult{}, err
	}

	return BalanceDifferenceResult{
		StartDate:         start.Format(DateFormat),
		EndDate:           end.Format(DateFormat),
		StartBalanceSum:   startSum,
		EndBalanceSum:     endSum,
		BalanceDifference: endSum.Sub(startSum),
	}, nil
}

func (s *ReportService) sumBalancesOn(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	balances, err := s.balances.BalancesOnDate(ctx, date)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Balance)
	}
	return sum, nil
}

// CashFlowResult holds the net investor cash flow between two dates plus the
// in-window transactions for display.
type CashFlowResult struct {
	StartDate            string                      `json:"start_date"`
	EndDate              string                      `json:"end_date"`
	StartTransactionsSum decimal.Decimal             `json:"start_transactions_sum"`
	EndTransactionsSum   decimal.Decimal             `json:"end_transactions_sum"`
	CashFlowDifference   decimal.Decimal             `json:"cash_flow_difference"`
	Transactions         []model.InvestorTransaction `json:"transactions"`
}

// CashFlow computes the net investor cash flow between two dates. Both sums
// are cumulative-to-date (all transactions with date <= cutoff), so their
// difference isolates flows strictly inside (start, end]. The returned
// transaction list uses inclusive bounds on both ends and exists for display;
// it is a separate query from the two cumulative sums.
func (s *ReportService) CashFlow(ctx context.Context, start, end time.Time) (CashFlowResult, error) {
	startSum, err := s.cashFlows.SumCashThrough(ctx, start)
	if err != nil {
		return CashFlowResult{}, err
	}
	endSum, err := s.cashFlows.SumCashThrough(ctx, end)
	if err != nil {
		return CashFlowResult{}, err
	}
	transactions, err := s.cashFlows.TransactionsBetween(ctx, start, end)
	if err != nil {
		return CashFlowResult{}, err
	}

	return CashFlowResult{
		StartDate:            start.Format(DateFormat),
		EndDate:              end.Format(DateFormat),
		StartTransactionsSum: startSum,
		EndTransactionsSum:   endSum,
		CashFlowDifference:   endSum.Sub(startSum),
		Transactions:         transactions,
	}, nil
}

// DashboardReport combines the three calculators' outputs into one profit
// figure: total_profit = balance_difference - cash_flow_difference -
// crypto_variation. No rounding is applied; presentation rounding is the
// caller's concern.
type DashboardReport struct {
	StartDate         string                  `json:"start_date"`
	EndDate           string                  `json:"end_date"`
	BalanceDifference BalanceDifferenceResult `json:"balance_difference"`
	CashFlow          CashFlowResult          `json:"cash_flow"`
	CryptoVariation   CryptoVariationResult   `json:"crypto_variation"`
	TotalProfit       decimal.Decimal         `json:"total_profit"`
}

// Report computes the full dashboard report for the window. Profit is the
// balance growth not explained by external cash injections/withdrawals nor by
// asset-price movement alone. Any store failure aborts the whole computation;
// no partial results are returned.
func (s *ReportService) Report(ctx context.Context, start, end time.Time) (DashboardReport, error) {
	balanceDifference, err := s.BalanceDifference(ctx, start, end)
	if err != nil {
		return DashboardReport{}, err
	}
	cashFlow, err := s.CashFlow(ctx, start, end)
	if err != nil {
		return DashboardReport{}, err
	}
	cryptoVariation, err := s.CryptoVariation(ctx, start, end)
	if err != nil {
		return DashboardReport{}, err
	}

	totalProfit := balanceDifference.BalanceDifference.
		Sub(cashFlow.CashFlowDifference).
		Sub(cryptoVariation.TotalVariation)

	return DashboardReport{
		StartDate:         start.Format(DateFormat),
		EndDate:           end.Format(DateFormat),
		BalanceDifference: balanceDifference,
		CashFlow:          cashFlow,
		CryptoVariation:   cryptoVariation,
		TotalProfit:       totalProfit,
	}, nil
}
