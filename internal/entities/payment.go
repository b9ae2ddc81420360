package entities

import "github.com/shopspring/decimal"

type PaymentProof struct {
	BuyerAccount  string
	Authorization string
}

type EscrowRequest struct {
	IdempotencyKey string
	Amount         decimal.Decimal
	BuyerAccount   string
	StoreAccount   string
	Authorization  string
}

type EscrowReceipt struct {
	TransactionID string
	ReceiptURL    string
}

type ReleaseRequest struct {
	IdempotencyKey      string
	EscrowTransactionID string
	StoreAccount        string
	DeliveryAccount     string
	StoreAmount         decimal.Decimal
	DeliveryAgentAmount decimal.Decimal
}

type ReleaseReceipt struct {
	TransactionID string
}
