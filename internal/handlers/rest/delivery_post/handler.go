package delivery_post

import (
	"encoding/json"
	"net/http"

	"jamii/internal/handlers/rest/dto"
	"jamii/internal/handlers/rest/response"
	"jamii/internal/pkg/errs"
	"jamii/internal/pkg/middlewares/identity"
	"jamii/pkg/logger"

	"github.com/gorilla/mux"
)

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

	var req dto.DeliveryConfirm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, h.log, response.ErrMalformedBody)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(w, h.log, err)
		return
	}

	order, err := h.service.ConfirmDelivery(r.Context(), mux.Vars(r)["id"], req.Code, id)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.With(
		logger.NewField("order", order.ID),
		logger.NewField("settlement", order.SettlementStatus.String()),
	).Info("delivery confirmed")

	response.JSON(w, h.log, http.StatusOK, dto.FromOrder(order))
}
