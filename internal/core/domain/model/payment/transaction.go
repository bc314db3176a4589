package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fooddelivery/internal/pkg/errs"
)

const (
	// ProviderMock is the only payment provider wired in this system.
	ProviderMock = "MOCK"

	// MockFailureReason is attached to transactions declined by the mock provider.
	MockFailureReason = "Mock payment failure simulation"

	mockRedirectURLFormat = "http://mock-payment-gateway.com/pay?txn=%s"
)

var (
	ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewTransaction constructor")
	ErrIdentityAlreadyAssigned     = errors.New("transaction identity is already assigned")
)

// Transaction is one payment attempt for an order. There is at most one per order.
type Transaction struct {
	id            int64
	orderID       int64
	amount        decimal.Decimal
	currency      string
	status        Status
	provider      string
	providerRef   string
	failureReason string
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewTransaction creates a PENDING transaction with the mock provider and a random
// provider reference.
func NewTransaction(orderID int64, amount decimal.Decimal, currency string, now time.Time) (*Transaction, error) {
	tx := &Transaction{
		status:        Pending,
		provider:      ProviderMock,
		providerRef:   uuid.NewString(),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		tx.setOrderID(orderID),
		tx.setAmount(amount),
		tx.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	return tx, nil
}

// RestoreTransaction rebuilds a Transaction from persistent storage.
func RestoreTransaction(
	id, orderID int64,
	amount decimal.Decimal,
	currency string,
	status Status,
	provider, providerRef, failureReason string,
	createdAt, updatedAt time.Time,
) (*Transaction, error) {
	tx := &Transaction{
		id:            id,
		provider:      provider,
		providerRef:   providerRef,
		failureReason: failureReason,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	var idErr error
	if id <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("transaction id", fmt.Errorf("%d is not positive", id))
	}

	if err := errors.Join(
		idErr,
		tx.setOrderID(orderID),
		tx.setAmount(amount),
		tx.setCurrency(currency),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	tx.status = status

	return tx, nil
}

func (t *Transaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransactionIsNotConstructed
	}
	return nil
}

// AssignIdentity sets the store-generated id. It may only be called once.
func (t *Transaction) AssignIdentity(id int64) error {
	if t.id != 0 {
		return ErrIdentityAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("transaction id", fmt.Errorf("%d is not positive", id))
	}
	t.id = id
	return nil
}

func (t *Transaction) ID() int64 { return t.id }
func (t *Transaction) OrderID() int64 { return t.orderID }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) Currency() string { return t.currency }
func (t *Transaction) Status() Status { return t.status }
func (t *Transaction) Provider() string { return t.provider }
func (t *Transaction) ProviderReference() string { return t.providerRef }
func (t *Transaction) FailureReason() string { return t.failureReason }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time { return t.updatedAt }

// RedirectURL is where the customer would complete the payment with the mock provider.
func (t *Transaction) RedirectURL() string {
	return fmt.Sprintf(mockRedirectURLFormat, t.providerRef)
}

// Confirm finalizes a PENDING transaction. A declined payment records MockFailureReason.
// Any other current status yields an InvalidStateError and leaves the transaction unchanged.
func (t *Transaction) Confirm(succeeded bool, at time.Time) error {
	next := Failed
	if succeeded {
		next = Successful
	}

	if t.status != Pending {
		return errs.NewInvalidStateError(fmt.Sprintf("payment transaction %d", t.id), t.status, next)
	}

	t.status = next
	if !succeeded {
		t.failureReason = MockFailureReason
	}
	t.updatedAt = at
	return nil
}

func (t *Transaction) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", orderID))
	}
	t.orderID = orderID
	return nil
}

func (t *Transaction) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	t.amount = amount
	return nil
}

func (t *Transaction) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a 3-letter ISO code", currency))
	}
	t.currency = currency
	return nil
}
