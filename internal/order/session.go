// Package order holds the purchase conversation state: one typed session per
// user, advanced field by field through a fixed sequence of states.
package order

import "time"

// State identifies a step of the purchase conversation. Each state is named
// after the field it expects next.
type State string

const (
	// StateIdle indicates there is no active purchase conversation.
	StateIdle State = "idle"
	// StateProductAmount expects the product name and waits to ask for quantity.
	StateProductAmount State = "product_amount"
	// StatePaymentMethod expects the quantity and waits to ask for a payment method.
	StatePaymentMethod State = "payment_method"
	// StateAmountOfMoney expects the payment method choice and waits to ask for the paid amount.
	StateAmountOfMoney State = "amount_of_money"
	// StateClientName expects the paid amount and waits to ask for the client's name.
	StateClientName State = "client_name"
	// StateSaveRecord expects the client's name and completes the order.
	StateSaveRecord State = "save_record"
)

// PaymentMethod is the customer's payment choice. Values match what is
// written to the ledger.
type PaymentMethod string

const (
	// PaymentCard means the client pays by card transfer.
	PaymentCard PaymentMethod = "Карта"
	// PaymentCash means the client leaves cash at the register.
	PaymentCash PaymentMethod = "Готівка"
)

// Session stores the fields collected so far for one user's purchase.
// Fields are populated in strict order matching the state sequence.
type Session struct {
	State          State
	ProductName    string
	ProductAmount  string
	PaymentMethod  PaymentMethod
	MoneyAmount    string
	ClientFullName string
	StartedAt      time.Time
}

// Complete reports whether every field required by the ledger is set.
func (s *Session) Complete() bool {
	return s.ProductName != "" &&
		s.ProductAmount != "" &&
		s.PaymentMethod != "" &&
		s.MoneyAmount != "" &&
		s.ClientFullName != ""
}

// Order is one completed purchase, ready for the ledger and the mirror.
type Order struct {
	ID             string
	ClientFullName string
	ProductName    string
	ProductAmount  string
	PaymentMethod  PaymentMethod
	MoneyAmount    string
	PlacedAt       time.Time
}
