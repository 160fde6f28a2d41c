package service

import (
	"github.com/shopspring/decimal"

	"github.com/alexandrekoury/painel-backend/internal/model"
)

// CostBasisTracker maintains the running holdings amount and weighted-average
// cost basis for one currency while its ledger is replayed in chronological
// order. Ordering is a precondition: callers must feed transactions
// date-ascending or the proportional cost reduction on disposals is wrong.
//
// The tracker implements the classic weighted-average-cost lot policy. It does
// not track individual lots (no FIFO/LIFO), so realized-gain attribution is
// approximate for interleaved buys and sells within short windows.
type CostBasisTracker struct {
	amount    decimal.Decimal
	costBasis decimal.Decimal
}

// NewCostBasisTracker creates a tracker with empty holdings.
func NewCostBasisTracker() *CostBasisTracker {
	return &CostBasisTracker{amount: decimal.Zero, costBasis: decimal.Zero}
}

// SeededCostBasisTracker creates a tracker starting from a previously computed
// holding state, typically the result of a before-window replay.
func SeededCostBasisTracker(amount, costBasis decimal.Decimal) *CostBasisTracker {
	return &CostBasisTracker{amount: amount, costBasis: costBasis}
}

// Apply updates the holding state with one signed-quantity ledger entry.
//
// A positive amount is an acquisition: cost basis grows by amount * price.
// A non-positive amount is a disposal: the cost basis is scaled by the
// remaining fraction of holdings. If the disposal empties (or overdraws) the
// position, both amount and cost basis reset to exactly zero; negative
// holdings should not occur in well-formed data, but replay must not carry a
// stale cost basis when they do. A disposal with no holdings is ignored.
func (t *CostBasisTracker) Apply(tx model.CryptoTransaction) {
	if tx.Amount.IsPositive() {
		t.costBasis = t.costBasis.Add(tx.Amount.Mul(tx.Price))
		t.amount = t.amount.Add(tx.Amount)
		return
	}

	if !t.amount.IsPositive() {
		return
	}

	t.costBasis = t.costBasis.Mul(decimal.NewFromInt(1).Add(tx.Amount.Div(t.amount)))
	t.amount = t.amount.Add(tx.Amount)
	if !t.amount.IsPositive() {
		t.amount = decimal.Zero
		t.costBasis = decimal.Zero
	}
}

// Amount returns the current holdings quantity.
func (t *CostBasisTracker) Amount() decimal.Decimal { return t.amount }

// CostBasis returns the total acquisition cost currently attributed to the holdings.
func (t *CostBasisTracker) CostBasis() decimal.Decimal { return t.costBasis }

// AveragePrice returns cost basis per unit held, or zero for empty holdings.
func (t *CostBasisTracker) AveragePrice() decimal.Decimal {
	if !t.amount.IsPositive() {
		return decimal.Zero
	}
	return t.costBasis.Div(t.amount)
}

// replayTransactions builds a holding state by applying all entries in order.
func replayTransactions(transactions []model.CryptoTransaction) *CostBasisTracker {
	tracker := NewCostBasisTracker()
	for _, tx := range transactions {
		tracker.Apply(tx)
	}
	return tracker
}
