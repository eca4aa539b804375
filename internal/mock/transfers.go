package mock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/wallet"
)

// TransactionType tells sent money from requested money.
type TransactionType string

const (
	TransactionSend    TransactionType = "send"
	TransactionRequest TransactionType = "request"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
)

// Currency is the only currency the mock wallet holds.
const Currency = "USD"

// Transaction is the record produced by a transfer.
type Transaction struct {
	ID           string            `json:"id" yaml:"id"`
	Type         TransactionType   `json:"type" yaml:"type"`
	Counterparty Contact           `json:"counterparty" yaml:"counterparty"`
	Amount       float64           `json:"amount" yaml:"amount"`
	Currency     string            `json:"currency" yaml:"currency"`
	Note         string            `json:"note,omitempty" yaml:"note,omitempty"`
	DueDate      string            `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Status       TransactionStatus `json:"status" yaml:"status"`
	Timestamp    time.Time         `json:"timestamp" yaml:"timestamp"`
}

// Transfers settles sends and requests. It is safe for concurrent use.
type Transfers struct {
	cfg config
}

// NewTransfers returns a transfer service.
func NewTransfers(opts ...Option) *Transfers {
	return &Transfers{cfg: newConfig(opts)}
}

// Send settles a payment to the recipient immediately.
func (t *Transfers) Send(ctx context.Context, in wallet.SendMoney) (Transaction, error) {
	amount, err := rules.ParseAmount(in.Amount)
	if err != nil {
		return Transaction{}, fmt.Errorf("send: amount %q: %w", in.Amount, err)
	}
	if err := t.cfg.wait(ctx); err != nil {
		return Transaction{}, fmt.Errorf("send: %w", err)
	}
	return t.record(Transaction{
		Type:         TransactionSend,
		Counterparty: ContactFor(in.Recipient),
		Amount:       amount,
		Note:         strings.TrimSpace(in.Note),
		Status:       StatusCompleted,
	}), nil
}

// Request asks the recipient for money; it stays pending.
func (t *Transfers) Request(ctx context.Context, in wallet.RequestMoney) (Transaction, error) {
	amount, err := rules.ParseAmount(in.Amount)
	if err != nil {
		return Transaction{}, fmt.Errorf("request: amount %q: %w", in.Amount, err)
	}
	if err := t.cfg.wait(ctx); err != nil {
		return Transaction{}, fmt.Errorf("request: %w", err)
	}
	return t.record(Transaction{
		Type:         TransactionRequest,
		Counterparty: ContactFor(in.Recipient),
		Amount:       amount,
		Note:         strings.TrimSpace(in.Note),
		DueDate:      in.DueDate,
		Status:       StatusPending,
	}), nil
}

func (t *Transfers) record(tx Transaction) Transaction {
	tx.ID = uuid.New().String()
	tx.Currency = Currency
	tx.Timestamp = t.cfg.now()

	t.cfg.logger.Info("transaction recorded",
		zap.String("id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.String("counterparty", tx.Counterparty.Email),
		zap.Float64("amount", tx.Amount),
	)
	return tx
}
