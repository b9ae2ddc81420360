// Package errs задает категории ошибок предметной области.
//
// Каждый сервис объявляет свои sentinel-ошибки через New, привязывая их к одной
// из категорий. Транспортный слой смотрит только на категорию через errors.Is,
// поэтому новая ошибка сервиса не требует правок в обработчиках.
package errs

import (
	"errors"
	"fmt"

	"jamii/pkg/tx"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidBid      = errors.New("invalid bid")
	ErrInvalidCode     = errors.New("invalid code")
	ErrPayment         = errors.New("payment error")
)

var kinds = []error{
	ErrValidation,
	ErrUnauthenticated,
	ErrNotFound,
	ErrForbidden,
	ErrInvalidState,
	ErrInvalidBid,
	ErrInvalidCode,
	ErrPayment,
}

// DomainError несет понятное пользователю сообщение и категорию.
type DomainError struct {
	Kind    error
	Message string
	Cause   error
}

func New(kind error, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Is позволяет сравнивать обернутую копию с исходным sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// WithCause копирует sentinel и добавляет причину, сохраняя errors.Is(err, sentinel).
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{Kind: e.Kind, Message: e.Message, Cause: cause}
}

// PaymentError описывает отказ или недоступность платежного провайдера.
// Retryable == true означает, что исход операции неизвестен и ее можно
// повторить с тем же ключом идемпотентности.
type PaymentError struct {
	Op        string
	Code      string
	Retryable bool
	Cause     error
}

func (e *PaymentError) Error() string {
	msg := fmt.Sprintf("payment %s failed: provider code %s", e.Op, e.Code)
	if e.Retryable {
		msg += " (retryable)"
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *PaymentError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPayment}
	}
	return []error{ErrPayment, e.Cause}
}

func AsPaymentError(err error) (*PaymentError, bool) {
	var paymentErr *PaymentError
	if errors.As(err, &paymentErr) {
		return paymentErr, true
	}
	return nil, false
}

// Kind возвращает категорию ошибки или nil для инфраструктурных ошибок.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

var ErrConcurrentUpdate = New(ErrInvalidState, "order was modified concurrently, reload and retry")

// FromTx превращает конфликт сериализации в ErrInvalidState.
func FromTx(err error) error {
	if errors.Is(err, tx.ErrSerialization) {
		return ErrConcurrentUpdate.WithCause(err)
	}
	return err
}
