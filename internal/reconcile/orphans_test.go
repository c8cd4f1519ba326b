package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/farthing-dev/farthing/internal/model"
)

func transfer(id, accountID string, day time.Time, amount string) model.Transaction {
	txn := existingTxn(id, accountID, day, amount)
	txn.Type = model.TypeTransfer
	return txn
}

func cent() decimal.Decimal {
	return decimal.NewFromFloat(0.01)
}

func TestDetectOrphanTransfers_PairedTransfersClean(t *testing.T) {
	day := date(2025, time.March, 2)
	txns := []model.Transaction{
		transfer("out", "acc1", day, "-500.00"),
		transfer("in", "acc2", day, "500.00"),
	}

	assert.Empty(t, DetectOrphanTransfers(txns, 7, cent()))
}

func TestDetectOrphanTransfers_MissingSideReported(t *testing.T) {
	day := date(2025, time.March, 2)
	out := transfer("out", "acc1", day, "-500.00")
	in := transfer("in", "acc2", day, "500.00")

	// Whichever side is missing, the survivor is the orphan.
	assert.Equal(t, []string{"out"}, DetectOrphanTransfers([]model.Transaction{out}, 7, cent()))
	assert.Equal(t, []string{"in"}, DetectOrphanTransfers([]model.Transaction{in}, 7, cent()))
}

func TestDetectOrphanTransfers_SameAccountNotACounterpart(t *testing.T) {
	day := date(2025, time.March, 2)
	txns := []model.Transaction{
		transfer("out", "acc1", day, "-500.00"),
		transfer("in", "acc1", day, "500.00"),
	}

	assert.ElementsMatch(t, []string{"out", "in"}, DetectOrphanTransfers(txns, 7, cent()))
}

func TestDetectOrphanTransfers_AmountTolerance(t *testing.T) {
	day := date(2025, time.March, 2)

	txns := []model.Transaction{
		transfer("out", "acc1", day, "-500.00"),
		transfer("in", "acc2", day, "500.005"),
	}
	assert.Empty(t, DetectOrphanTransfers(txns, 7, cent()))

	txns = []model.Transaction{
		transfer("out", "acc1", day, "-500.00"),
		transfer("in", "acc2", day, "500.02"),
	}
	assert.ElementsMatch(t, []string{"out", "in"}, DetectOrphanTransfers(txns, 7, cent()))
}

func TestDetectOrphanTransfers_DateWindow(t *testing.T) {
	txns := []model.Transaction{
		transfer("out", "acc1", date(2025, time.March, 2), "-500.00"),
		transfer("in", "acc2", date(2025, time.March, 9), "500.00"),
	}
	assert.Empty(t, DetectOrphanTransfers(txns, 7, cent()))

	txns = []model.Transaction{
		transfer("out", "acc1", date(2025, time.March, 2), "-500.00"),
		transfer("in", "acc2", date(2025, time.March, 10), "500.00"),
	}
	assert.ElementsMatch(t, []string{"out", "in"}, DetectOrphanTransfers(txns, 7, cent()))
}

func TestDetectOrphanTransfers_IgnoresNonTransfers(t *testing.T) {
	day := date(2025, time.March, 2)
	expense := existingTxn("groceries", "acc1", day, "-45.60")
	expense.Type = model.TypeExpense
	income := existingTxn("salary", "acc1", day, "4000.00")
	income.Type = model.TypeIncome

	assert.Empty(t, DetectOrphanTransfers([]model.Transaction{expense, income}, 7, cent()))
}

func TestDetectOrphanTransfers_CounterpartMustBeTransfer(t *testing.T) {
	day := date(2025, time.March, 2)
	out := transfer("out", "acc1", day, "-500.00")
	refundLike := existingTxn("refund", "acc2", day, "500.00")
	refundLike.Type = model.TypeIncome

	assert.Equal(t, []string{"out"}, DetectOrphanTransfers([]model.Transaction{out, refundLike}, 7, cent()))
}
