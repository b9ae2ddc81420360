package bid_accept_post

import (
	"net/http"

	"jamii/internal/handlers/rest/dto"
	"jamii/internal/handlers/rest/response"
	"jamii/internal/pkg/errs"
	"jamii/internal/pkg/middlewares/identity"
	"jamii/pkg/logger"

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

	vars := mux.Vars(r)
	acceptance, err := h.service.AcceptBid(r.Context(), vars["id"], vars["bidId"], id)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.With(
		logger.NewField("order", acceptance.Order.ID),
		logger.NewField("bid", acceptance.Bid.ID),
		logger.NewField("rejected_bids", acceptance.Rejected),
	).Info("bid accepted")

	response.JSON(w, h.log, http.StatusOK, dto.FromBidAcceptance(acceptance))
}
