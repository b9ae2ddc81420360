package bid_post

import (
	"encoding/json"
	"net/http"

	"jamii/internal/entities"
	"jamii/internal/handlers/rest/dto"
	"jamii/internal/handlers/rest/response"
	"jamii/internal/pkg/errs"
	"jamii/internal/pkg/middlewares/identity"

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

	var req dto.BidCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, h.log, response.ErrMalformedBody)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(w, h.log, err)
		return
	}

	bid, err := h.service.CreateBid(r.Context(), entities.BidCreate{
		OrderID:               mux.Vars(r)["id"],
		Amount:                req.Amount,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
	}, id)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusCreated, dto.FromBid(bid))
}
