package pickup_code_get

import (
	"net/http"

	"jamii/internal/handlers/rest/dto"
	"jamii/internal/handlers/rest/response"
	"jamii/internal/pkg/errs"
	"jamii/internal/pkg/middlewares/identity"
	"jamii/internal/pkg/qrcode"

	"github.com/gorilla/mux"
)

const formatPNG = "png"

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

// ServeHTTP отдает подписанный токен выдачи; с ?format=png - QR для сканера курьера.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		response.Error(w, h.log, errs.ErrUnauthenticated)
		return
	}

	code, err := h.service.PickupCode(r.Context(), mux.Vars(r)["id"], id)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	if r.URL.Query().Get("format") == formatPNG {
		png, err := qrcode.PNG(code.Token, qrcode.DefaultSize)
		if err != nil {
			response.Error(w, h.log, err)
			return
		}
		response.PNG(w, h.log, png)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.PickupCode{
		OrderID:  code.OrderID,
		Token:    code.Token,
		IssuedAt: code.IssuedAt,
	})
}
