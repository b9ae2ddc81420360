package order_post

import (
	"encoding/json"
	"net/http"

	"jamii/internal/handlers/rest/dto"
	"jamii/internal/handlers/rest/response"
	"jamii/internal/pkg/errs"
	"jamii/internal/pkg/middlewares/identity"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type Handler struct {
	log       handlerLogger
	service   Service
	validator requestValidator
}

func New(log handlerLogger, service Service, validator requestValidator) *Handler {
	return &Handler{
		log:       log.With(),
		service:   service,
		validator: validator,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		response.Error(w, h.log, errs.ErrUnauthenticated)
		return
	}

	var req dto.OrderCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, h.log, response.ErrMalformedBody)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(w, h.log, err)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), req.ToDomain(r.Header.Get(HeaderIdempotencyKey)), id)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusCreated, dto.FromOrder(order))
}
