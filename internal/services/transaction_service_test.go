package services

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/models"
	"rentdesk/internal/utils"
)

func newTransactionFixture(t *testing.T) (ITransactionService, *recorderSink) {
	t.Helper()
	sink := &recorderSink{}
	return NewTransactionService(newTestStores(), sink, 0), sink
}

func TestCreateTransactionPrependsAndNotifies(t *testing.T) {
	ctx := context.Background()
	txns, sink := newTransactionFixture(t)

	first := &models.Transaction{Amount: 25000, TransactionType: models.TransactionTypeRent}
	second := &models.Transaction{Amount: 9500000, TransactionType: models.TransactionTypeSale}
	require.NoError(t, txns.CreateTransaction(ctx, first))
	require.NoError(t, txns.CreateTransaction(ctx, second))

	listed, err := txns.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID) // newest first
	assert.Equal(t, first.ID, listed[1].ID)

	// Rent is announced as a payment, sale as a purchase.
	assert.Equal(t, []string{"Transaction Successful", "Transaction Successful"}, sink.titles())
	assert.Equal(t, "Payment of ₹25000 has been recorded.", sink.sent[0].Description)
	assert.Equal(t, "Purchase of ₹9500000 has been recorded.", sink.sent[1].Description)
}

func TestProcessOnlinePayment(t *testing.T) {
	ctx := context.Background()
	txns, _ := newTransactionFixture(t)

	now := time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)
	pinClock(t, now)

	txn := &models.Transaction{
		Amount:          25000,
		TransactionType: models.TransactionTypeRent,
		PaymentMethod:   models.PaymentMethodUPI,
	}
	receipt, err := txns.ProcessOnlinePayment(ctx, txn)
	require.NoError(t, err)

	assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
	assert.NotEmpty(t, txn.Reference)
	assert.Equal(t, now, txn.Date)
	assert.Regexp(t, regexp.MustCompile(`^RCT-\d{8}$`), receipt)
	assert.Equal(t, fmt.Sprintf("RCT-%08d", now.UnixMilli()%100000000), receipt)

	// The settled payment lands in the ledger.
	listed, err := txns.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, txn.ID, listed[0].ID)
}

func TestProcessOnlinePaymentKeepsExplicitDate(t *testing.T) {
	ctx := context.Background()
	txns, _ := newTransactionFixture(t)

	explicit := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	txn := &models.Transaction{Amount: 100, Date: explicit}
	_, err := txns.ProcessOnlinePayment(ctx, txn)
	require.NoError(t, err)
	assert.Equal(t, explicit, txn.Date)
}

func TestGenerateReceipt(t *testing.T) {
	ctx := context.Background()
	txns, _ := newTransactionFixture(t)

	txn := &models.Transaction{Amount: 500}
	require.NoError(t, txns.CreateTransaction(ctx, txn))

	url, err := txns.GenerateReceipt(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("receipt-%s.pdf", txn.ID.String()), url)

	got, _, err := txns.FindTransactionByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, url, got.ReceiptURL)

	// Unknown ids yield an empty URL, not an error.
	url, err = txns.GenerateReceipt(ctx, utils.NewSixID())
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	txns, _ := newTransactionFixture(t)

	txn := &models.Transaction{Amount: 500}
	require.NoError(t, txns.CreateTransaction(ctx, txn))

	removed, err := txns.DeleteTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = txns.DeleteTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
