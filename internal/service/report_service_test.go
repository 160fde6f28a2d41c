package service_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alexandrekoury/painel-backend/internal/model"
	"github.com/alexandrekoury/painel-backend/internal/service"
	"github.com/alexandrekoury/painel-backend/internal/testutil"
)

// TestResolveWindow tests report window resolution from query parameters.
func TestResolveWindow(t *testing.T) {
	now := time.Date(2026, time.August, 28, 14, 30, 0, 0, time.UTC)

	t.Run("defaults to first of month and previous day", func(t *testing.T) {
		start, end := service.ResolveWindow("", "", now)

		if got, want := start.Format("2006-01-02"), "2026-08-01"; got != want {
			t.Errorf("start = %s, want %s", got, want)
		}
		if got, want := end.Format("2006-01-02"), "2026-08-27"; got != want {
			t.Errorf("end = %s, want %s", got, want)
		}
	})

	t.Run("uses valid parameters", func(t *testing.T) {
		start, end := service.ResolveWindow("2026-06-01", "2026-06-30", now)

		if got, want := start.Format("2006-01-02"), "2026-06-01"; got != want {
			t.Errorf("start = %s, want %s", got, want)
		}
		if got, want := end.Format("2006-01-02"), "2026-06-30"; got != want {
			t.Errorf("end = %s, want %s", got, want)
		}
	})

	t.Run("malformed parameter falls back without error", func(t *testing.T) {
		start, end := service.ResolveWindow("06/01/2026", "not-a-date", now)

		if got, want := start.Format("2006-01-02"), "2026-08-01"; got != want {
			t.Errorf("start = %s, want %s", got, want)
		}
		if got, want := end.Format("2006-01-02"), "2026-08-27"; got != want {
			t.Errorf("end = %s, want %s", got, want)
		}
	})

	t.Run("parameters resolve independently", func(t *testing.T) {
		start, end := service.ResolveWindow("garbage", "2026-06-30", now)

		if got, want := start.Format("2006-01-02"), "2026-08-01"; got != want {
			t.Errorf("start = %s, want %s", got, want)
		}
		if got, want := end.Format("2006-01-02"), "2026-06-30"; got != want {
			t.Errorf("end = %s, want %s", got, want)
		}
	})
}

// TestReportService_BalanceDifference tests the custodial balance delta.
func TestReportService_BalanceDifference(t *testing.T) {
	ctx := context.Background()

	t.Run("sums snapshots on the exact dates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		exchange := testutil.CreateExchange(t, db, "Binance")
		usd := testutil.CreateCurrency(t, db, "USD", "US Dollar")

		testutil.CreateBalance(t, db, exchange.ID, usd.ID, "2026-06-01", "4000")
		testutil.CreateBalance(t, db, exchange.ID, usd.ID, "2026-06-01", "5000")
		testutil.CreateBalance(t, db, exchange.ID, usd.ID, "2026-06-30", "10000")
		// Snapshots on other dates must not leak into either side.
		testutil.CreateBalance(t, db, exchange.ID, usd.ID, "2026-06-15", "99999")

		result, err := svc.BalanceDifference(ctx, testutil.MustDate(t, "2026-06-01"), testutil.MustDate(t, "2026-06-30"))
		if err != nil {
			t.Fatalf("BalanceDifference() returned unexpected error: %v", err)
		}

		if got, want := result.StartBalanceSum.String(), "9000"; got != want {
			t.Errorf("StartBalanceSum = %s, want %s", got, want)
		}
		if got, want := result.EndBalanceSum.String(), "10000"; got != want {
			t.Errorf("EndBalanceSum = %s, want %s", got, want)
		}
		if got, want := result.BalanceDifference.String(), "1000"; got != want {
			t.Errorf("BalanceDifference = %s, want %s", got, want)
		}
	})

	t.Run("date without snapshots contributes zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		exchange := testutil.CreateExchange(t, db, "Binance")
		usd := testutil.CreateCurrency(t, db, "USD", "US Dollar")
		testutil.CreateBalance(t, db, exchange.ID, usd.ID, "2026-06-30", "2500")

		result, err := svc.BalanceDifference(ctx, testutil.MustDate(t, "2026-06-01"), testutil.MustDate(t, "2026-06-30"))
		if err != nil {
			t.Fatalf("BalanceDifference() returned unexpected error: %v", err)
		}

		if !result.StartBalanceSum.IsZero() {
			t.Errorf("StartBalanceSum = %s, want zero", result.StartBalanceSum)
		}
		if got, want := result.BalanceDifference.String(), "2500"; got != want {
			t.Errorf("BalanceDifference = %s, want %s", got, want)
		}
	})
}

// TestReportService_CashFlow tests the cumulative cash flow calculator.
func TestReportService_CashFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("difference of cumulative sums isolates in-window flows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		investor := testutil.CreateInvestor(t, db, "alice")
		testutil.CreateInvestorTransaction(t, db, investor.ID, "2026-05-10", "1000", model.TransactionCashDeposit)
		testutil.CreateInvestorTransaction(t, db, investor.ID, "2026-06-01", "500", model.TransactionCashDeposit)
		testutil.CreateInvestorTransaction(t, db, investor.ID, "2026-06-15", "300", model.TransactionCashDeposit)
		testutil.CreateInvestorTransaction(t, db, investor.ID, "2026-06-20", "-100", model.TransactionCashRedemption)
		testutil.CreateInvestorTransaction(t, db, investor.ID, "2026-07-05", "700", model.TransactionCashDeposit)

		result, err := svc.CashFlow(ctx, testutil.MustDate(t, "2026-06-01"), testutil.MustDate(t, "2026-06-30"))
		if err != nil {
			t.Fatalf("CashFlow() returned unexpected error: %v", err)
		}

		// Both sums are cumulative through their date, so the start-date
		// deposit lands in both and cancels out of the difference.
		if got, want := result.StartTransactionsSum.String(), "1500"; got != want {
			t.Errorf("StartTransactionsSum = %s, want %s", got, want)
		}
		if got, want := result.EndTransactionsSum.String(), "1700"; got != want {
			t.Errorf("EndTransactionsSum = %s, want %s", got, want)
		}
		if got, want := result.CashFlowDifference.String(), "200"; got != want {
			t.Errorf("CashFlowDifference = %s, want %s", got, want)
		}

		// The display list is inclusive on both ends.
		if len(result.Transactions) != 3 {
			t.Errorf("Expected 3 in-window transactions, got %d", len(result.Transactions))
		}
	})

	t.Run("empty ledger yields zero sums", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		result, err := svc.CashFlow(ctx, testutil.MustDate(t, "2026-06-01"), testutil.MustDate(t, "2026-06-30"))
		if err != nil {
			t.Fatalf("CashFlow() returned unexpected error: %v", err)
		}

		if !result.CashFlowDifference.IsZero() {
			t.Errorf("CashFlowDifference = %s, want zero", result.CashFlowDifference)
		}
		if len(result.Transactions) != 0 {
			t.Errorf("Expected no transactions, got %d", len(result.Transactions))
		}
	})
}

// TestReportService_Report tests the combined dashboard report.
//
// WHY: The headline figure is total profit, defined as balance growth not
// explained by investor cash movements or crypto price drift. A sign slip in
// either subtraction would go unnoticed by the per-calculator tests.
func TestReportService_Report(t *testing.T) {
	ctx := context.Background()

	setupReportData := func(t *testing.T) *service.ReportService {
		t.Helper()

		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		exchange := testutil.CreateExchange(t, db, "Kraken")
		usd := testutil.CreateCurrency(t, db, "USD", "US Dollar")
		btc := testutil.CreateCurrency(t, db, "BTC", "Bitcoin")
		investor := testutil.CreateInvestor(t, db, "bob")

		// Balance difference: 10000 - 9000 = 1000.
		testutil.CreateBalance(t, db, exchange.ID, usd.ID, "2026-06-01", "9000")
		testutil.CreateBalance(t, db, exchange.ID, usd.ID, "2026-06-30", "10000")

		// Cash flow difference: one in-window deposit of 200.
		testutil.CreateInvestorTransaction(t, db, investor.ID, "2026-06-10", "200", model.TransactionCashDeposit)

		// Crypto variation: 1 BTC held before the window, 100 -> 400 = 300.
		testutil.CreateCryptoTransaction(t, db, btc.ID, "2026-05-01", "1", "90")
		testutil.CreatePrice(t, db, btc.ID, "2026-06-01", "100")
		testutil.CreatePrice(t, db, btc.ID, "2026-06-30", "400")

		return svc
	}

	t.Run("total profit subtracts cash flow and crypto variation", func(t *testing.T) {
		svc := setupReportData(t)

		report, err := svc.Report(ctx, testutil.MustDate(t, "2026-06-01"), testutil.MustDate(t, "2026-06-30"))
		if err != nil {
			t.Fatalf("Report() returned unexpected error: %v", err)
		}

		if got, want := report.BalanceDifference.BalanceDifference.String(), "1000"; got != want {
			t.Errorf("BalanceDifference = %s, want %s", got, want)
		}
		if got, want := report.CashFlow.CashFlowDifference.String(), "200"; got != want {
			t.Errorf("CashFlowDifference = %s, want %s", got, want)
		}
		if got, want := report.CryptoVariation.TotalVariation.String(), "300"; got != want {
			t.Errorf("TotalVariation = %s, want %s", got, want)
		}
		if got, want := report.TotalProfit.String(), "500"; got != want {
			t.Errorf("TotalProfit = %s, want %s", got, want)
		}
	})

	t.Run("repeated runs return identical results", func(t *testing.T) {
		svc := setupReportData(t)

		start := testutil.MustDate(t, "2026-06-01")
		end := testutil.MustDate(t, "2026-06-30")

		first, err := svc.Report(ctx, start, end)
		if err != nil {
			t.Fatalf("Report() returned unexpected error: %v", err)
		}
		second, err := svc.Report(ctx, start, end)
		if err != nil {
			t.Fatalf("Report() returned unexpected error: %v", err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Errorf("Reports differ between runs:\nfirst:  %+v\nsecond: %+v", first, second)
		}
	})

	t.Run("start equal to end yields zero differences", func(t *testing.T) {
		svc := setupReportData(t)

		day := testutil.MustDate(t, "2026-06-30")
		report, err := svc.Report(ctx, day, day)
		if err != nil {
			t.Fatalf("Report() returned unexpected error: %v", err)
		}

		if !report.BalanceDifference.BalanceDifference.IsZero() {
			t.Errorf("BalanceDifference = %s, want zero", report.BalanceDifference.BalanceDifference)
		}
		if !report.CashFlow.CashFlowDifference.IsZero() {
			t.Errorf("CashFlowDifference = %s, want zero", report.CashFlow.CashFlowDifference)
		}
		if !report.CryptoVariation.TotalVariation.IsZero() {
			t.Errorf("TotalVariation = %s, want zero", report.CryptoVariation.TotalVariation)
		}
		if !report.TotalProfit.IsZero() {
			t.Errorf("TotalProfit = %s, want zero", report.TotalProfit)
		}
	})
}
