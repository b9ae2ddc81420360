package ledger

import (
	"fmt"

	"jamii/internal/entities"

	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldSuccess       = "success"
	fieldStatus        = "status"
	fieldTransactionID = "transactionId"
	fieldReceiptURL    = "receiptUrl"
)

func escrowToProto(req entities.EscrowRequest) (*structpb.Struct, error) {
	msg, err := structpb.NewStruct(map[string]any{
		"idempotencyKey": req.IdempotencyKey,
		"amount":         req.Amount.StringFixed(2),
		"buyerAccount":   req.BuyerAccount,
		"storeAccount":   req.StoreAccount,
		"authorization":  req.Authorization,
	})
	if err != nil {
		return nil, fmt.Errorf("build escrow request: %w", err)
	}
	return msg, nil
}

func releaseToProto(req entities.ReleaseRequest) (*structpb.Struct, error) {
	msg, err := structpb.NewStruct(map[string]any{
		"idempotencyKey":      req.IdempotencyKey,
		"escrowTransactionId": req.EscrowTransactionID,
		"storeAccount":        req.StoreAccount,
		"deliveryAccount":     req.DeliveryAccount,
		"storeAmount":         req.StoreAmount.StringFixed(2),
		"deliveryAgentAmount": req.DeliveryAgentAmount.StringFixed(2),
	})
	if err != nil {
		return nil, fmt.Errorf("build release request: %w", err)
	}
	return msg, nil
}

type result struct {
	success       bool
	status        string
	transactionID string
	receiptURL    string
}

func fromProto(resp *structpb.Struct) result {
	fields := resp.GetFields()
	return result{
		success:       fields[fieldSuccess].GetBoolValue(),
		status:        fields[fieldStatus].GetStringValue(),
		transactionID: fields[fieldTransactionID].GetStringValue(),
		receiptURL:    fields[fieldReceiptURL].GetStringValue(),
	}
}
