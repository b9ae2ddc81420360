package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jamii/internal/entities"
	"jamii/internal/pkg/errs"
	retrierconfig "jamii/pkg/retrier"
	"jamii/pkg/retrier/backoff_adapter"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	methodEscrow  = "/ledger.v1.Ledger/Escrow"
	methodRelease = "/ledger.v1.Ledger/Release"

	opEscrow  = "escrow"
	opRelease = "release"

	codeEmptyTransaction = "EMPTY_TRANSACTION_ID"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 1 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type LedgerGateway struct {
	client      client
	retrier     retrier
	callTimeout time.Duration
}

func New(client client, callTimeout time.Duration) *LedgerGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  callTimeout,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryableCode,
	}

	return &LedgerGateway{
		client:      client,
		retrier:     backoff_adapter.New(retryConfig),
		callTimeout: callTimeout,
	}
}

// Escrow блокирует оплату заказа на счете покупателя.
func (g *LedgerGateway) Escrow(ctx context.Context, req entities.EscrowRequest) (*entities.EscrowReceipt, error) {
	msg, err := escrowToProto(req)
	if err != nil {
		return nil, err
	}

	res, err := g.call(ctx, opEscrow, methodEscrow, msg)
	if err != nil {
		return nil, fmt.Errorf("gateway ledger, escrow %s: %w", req.IdempotencyKey, err)
	}

	return &entities.EscrowReceipt{
		TransactionID: res.transactionID,
		ReceiptURL:    res.receiptURL,
	}, nil
}

// Release делит эскроу между магазином и курьером.
func (g *LedgerGateway) Release(ctx context.Context, req entities.ReleaseRequest) (*entities.ReleaseReceipt, error) {
	msg, err := releaseToProto(req)
	if err != nil {
		return nil, err
	}

	res, err := g.call(ctx, opRelease, methodRelease, msg)
	if err != nil {
		return nil, fmt.Errorf("gateway ledger, release %s: %w", req.IdempotencyKey, err)
	}

	return &entities.ReleaseReceipt{
		TransactionID: res.transactionID,
	}, nil
}

func (g *LedgerGateway) call(ctx context.Context, op, method string, req *structpb.Struct) (result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	resp := &structpb.Struct{}
	err := g.executeWithMetrics(ctx, method, func(ctx context.Context) error {
		resp.Reset()
		return g.client.Invoke(ctx, method, req, resp)
	})
	if err != nil {
		return result{}, toPaymentError(op, err)
	}

	res := fromProto(resp)
	if !res.success {
		return result{}, &errs.PaymentError{Op: op, Code: res.status}
	}
	// success без id транзакции: деньги могли уйти, исход неизвестен
	if res.transactionID == "" {
		return result{}, &errs.PaymentError{Op: op, Code: codeEmptyTransaction, Retryable: true}
	}
	return res, nil
}

// toPaymentError: явный отказ провайдера не ретраится,
// все остальное считается неизвестным исходом.
func toPaymentError(op string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		code := codes.Unknown
		if errors.Is(err, context.DeadlineExceeded) {
			code = codes.DeadlineExceeded
		} else if errors.Is(err, context.Canceled) {
			code = codes.Canceled
		}
		return &errs.PaymentError{Op: op, Code: code.String(), Retryable: true, Cause: err}
	}

	switch st.Code() {
	case codes.InvalidArgument,
		codes.FailedPrecondition,
		codes.PermissionDenied,
		codes.NotFound:
		return &errs.PaymentError{Op: op, Code: st.Code().String(), Cause: err}
	default:
		return &errs.PaymentError{Op: op, Code: st.Code().String(), Retryable: true, Cause: err}
	}
}

func isRetryableCode(err error) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}

	switch st.Code() {
	case codes.ResourceExhausted,
		codes.Unavailable,
		codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

func (g *LedgerGateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	grpcCode := getGRPCCode(err)
	GatewayRequestDuration.WithLabelValues(method, grpcCode).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(method, grpcCode).Inc()
	}

	return err
}

func getGRPCCode(err error) string {
	if err == nil {
		return codes.OK.String()
	}
	if st, ok := status.FromError(err); ok {
		return st.Code().String()
	}
	return codes.Unknown.String()
}
