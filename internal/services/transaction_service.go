package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentdesk/internal/models"
	"rentdesk/internal/notify"
	"rentdesk/internal/store"
	"rentdesk/internal/utils"
)

// ITransactionService defines the interface for the online-payment ledger.
// The ledger is kept newest-first.
type ITransactionService interface {
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	FindTransactionByID(ctx context.Context, transactionID utils.SixID) (*models.Transaction, bool, error)
	UpdateTransaction(ctx context.Context, transactionID utils.SixID, updates map[string]interface{}) (*models.Transaction, bool, error)
	DeleteTransaction(ctx context.Context, transactionID utils.SixID) (bool, error)
	ProcessOnlinePayment(ctx context.Context, transaction *models.Transaction) (string, error)
	GenerateReceipt(ctx context.Context, transactionID utils.SixID) (string, error)
}

// transactionService implements ITransactionService.
type transactionService struct {
	transactions    *store.Collection[models.Transaction, *models.Transaction]
	sink            notify.Sink
	processingDelay time.Duration
}

// NewTransactionService creates a new TransactionService. processingDelay is
// how long the simulated gateway takes to settle an online payment.
func NewTransactionService(stores *store.Stores, sink notify.Sink, processingDelay time.Duration) ITransactionService {
	return &transactionService{
		transactions:    stores.Transactions,
		sink:            sink,
		processingDelay: processingDelay,
	}
}

// CreateTransaction prepends a new transaction to the ledger so listings come
// back newest-first.
func (s *transactionService) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if err := s.transactions.CreateFront(ctx, transaction); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	kind := "Payment"
	if transaction.TransactionType == models.TransactionTypeSale {
		kind = "Purchase"
	}
	notify.Send(ctx, s.sink, notify.SeverityInfo, "Transaction Successful",
		fmt.Sprintf("%s of ₹%s has been recorded.", kind, formatAmount(transaction.Amount)))
	return nil
}

// ListTransactions returns the ledger, newest first.
func (s *transactionService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.transactions.List(ctx)
}

// FindTransactionByID returns a transaction by id; absence is not an error.
func (s *transactionService) FindTransactionByID(ctx context.Context, transactionID utils.SixID) (*models.Transaction, bool, error) {
	return s.transactions.Get(ctx, transactionID)
}

// UpdateTransaction shallow-merges the given fields into the transaction. An
// unknown id is a silent no-op.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID utils.SixID, updates map[string]interface{}) (*models.Transaction, bool, error) {
	updated, found, err := s.transactions.Update(ctx, transactionID, updates)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update transaction %s: %w", transactionID.String(), err)
	}
	return updated, found, nil
}

// DeleteTransaction removes the transaction. An unknown id is a silent no-op.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID utils.SixID) (bool, error) {
	removed, err := s.transactions.Remove(ctx, transactionID)
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction %s: %w", transactionID.String(), err)
	}
	return removed, nil
}

// ProcessOnlinePayment runs the simulated gateway: it blocks for the
// configured settlement delay, stamps the transaction completed with a fresh
// gateway reference, records it in the ledger and returns the receipt number.
// Processing always runs to completion once started.
func (s *transactionService) ProcessOnlinePayment(ctx context.Context, transaction *models.Transaction) (string, error) {
	// Deliberately not ctx-aware: a payment handed to the gateway settles
	// even if the caller goes away.
	time.Sleep(s.processingDelay)

	transaction.Reference = uuid.NewString()
	transaction.Status = models.TransactionStatusCompleted
	if transaction.Date.IsZero() {
		transaction.Date = utils.Now()
	}

	receipt := fmt.Sprintf("RCT-%08d", utils.Now().UnixMilli()%100000000)

	if err := s.CreateTransaction(ctx, transaction); err != nil {
		return "", err
	}
	return receipt, nil
}

// GenerateReceipt stores and returns a receipt URL for the transaction. No
// document is rendered; the URL is a stable placeholder derived from the id.
// An unknown id returns an empty URL.
func (s *transactionService) GenerateReceipt(ctx context.Context, transactionID utils.SixID) (string, error) {
	_, found, err := s.transactions.Get(ctx, transactionID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}

	receiptURL := fmt.Sprintf("receipt-%s.pdf", transactionID.String())
	if _, _, err := s.transactions.Update(ctx, transactionID, map[string]interface{}{"receipt_url": receiptURL}); err != nil {
		return "", fmt.Errorf("failed to store receipt URL for transaction %s: %w", transactionID.String(), err)
	}
	return receiptURL, nil
}
