package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionOrderPlaced       TransactionKind = "orderPlaced"
	TransactionBidPlaced         TransactionKind = "bidPlaced"
	TransactionDeliveryConfirmed TransactionKind = "deliveryConfirmed"
)

func (k TransactionKind) String() string {
	return string(k)
}

type TransactionNote struct {
	Kind                  TransactionKind
	Amount                decimal.Decimal
	Timestamp             time.Time
	ExternalTransactionID string
	ActorID               string
}

// OrderTransactions последняя запись каждого вида из журнала заказа.
type OrderTransactions struct {
	OrderPlaced       *TransactionNote
	BidPlaced         *TransactionNote
	DeliveryConfirmed *TransactionNote
}

// ApplyHistory сохраняет журнал и заполняет слоты последней записью каждого вида.
// Журнал ожидается в порядке добавления.
func (o *Order) ApplyHistory(notes []TransactionNote) {
	o.History = notes
	o.Transactions = OrderTransactions{}

	for i := range notes {
		note := &notes[i]
		switch note.Kind {
		case TransactionOrderPlaced:
			o.Transactions.OrderPlaced = note
		case TransactionBidPlaced:
			o.Transactions.BidPlaced = note
		case TransactionDeliveryConfirmed:
			o.Transactions.DeliveryConfirmed = note
		}
	}
}
