package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"jamii/internal/pkg/errs"
	"jamii/pkg/logger"
)

const (
	messageTryAgain = "temporary failure, try again later"
	messageInternal = "internal error"
)

type ErrorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// JSON пишет тело с заданным статусом. Ошибка кодирования только логируется:
// заголовок уже отправлен.
func JSON(w http.ResponseWriter, log handlerLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func PNG(w http.ResponseWriter, log handlerLogger, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("write PNG response")
	}
}

// Error переводит категорию ошибки в HTTP-статус. Ошибки предметной области
// отдаются клиенту с их сообщением, инфраструктурные скрываются.
func Error(w http.ResponseWriter, log handlerLogger, err error) {
	status, body := toBody(err)

	switch {
	case status >= http.StatusInternalServerError:
		log.With(
			logger.NewField("error", err),
			logger.NewField("status", status),
		).Error("request failed")
	case status == http.StatusPaymentRequired:
		log.With(
			logger.NewField("error", err),
		).Warn("payment declined")
	}

	JSON(w, log, status, body)
}

func toBody(err error) (int, ErrorBody) {
	if paymentErr, ok := errs.AsPaymentError(err); ok {
		if paymentErr.Retryable {
			return http.StatusServiceUnavailable, ErrorBody{Error: "payment_unavailable", Message: messageTryAgain, Retryable: true}
		}
		return http.StatusPaymentRequired, ErrorBody{
			Error:   "payment_declined",
			Message: fmt.Sprintf("payment declined by provider (%s)", paymentErr.Code),
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable, ErrorBody{Error: "timeout", Message: messageTryAgain, Retryable: true}
	}

	var status int
	var kind string
	switch errs.Kind(err) {
	case errs.ErrValidation:
		status, kind = http.StatusBadRequest, "validation"
	case errs.ErrUnauthenticated:
		status, kind = http.StatusUnauthorized, "unauthenticated"
	case errs.ErrForbidden:
		status, kind = http.StatusForbidden, "forbidden"
	case errs.ErrNotFound:
		status, kind = http.StatusNotFound, "not_found"
	case errs.ErrInvalidState:
		status, kind = http.StatusConflict, "invalid_state"
	case errs.ErrInvalidBid:
		status, kind = http.StatusConflict, "invalid_bid"
	case errs.ErrInvalidCode:
		status, kind = http.StatusUnprocessableEntity, "invalid_code"
	case errs.ErrPayment:
		return http.StatusPaymentRequired, ErrorBody{Error: "payment_declined", Message: message(err)}
	default:
		return http.StatusInternalServerError, ErrorBody{Error: "internal", Message: messageInternal}
	}

	return status, ErrorBody{Error: kind, Message: message(err)}
}

func message(err error) string {
	var domainErr *errs.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}

var ErrMalformedBody = errs.New(errs.ErrValidation, "request body is not valid JSON")
