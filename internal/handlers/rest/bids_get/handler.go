package bids_get

import (
	"net/http"

	"jamii/internal/handlers/rest/dto"
	"jamii/internal/handlers/rest/response"
	"jamii/internal/pkg/errs"
	"jamii/internal/pkg/middlewares/identity"

	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log.With(),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		response.Error(w, h.log, errs.ErrUnauthenticated)
		return
	}

	bids, err := h.service.ListBidsForOrder(r.Context(), mux.Vars(r)["id"], id)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromBidList(bids))
}
