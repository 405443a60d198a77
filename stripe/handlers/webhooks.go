package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adalertio/accounts-api/framework/web"
	"github.com/adalertio/accounts-api/stripe/service"
)

type webhookResponse struct {
	Received bool `json:"received"`
}

// WebhookHandler handles events from stripe
func (h *Stripe) WebhookHandler(ctx *gin.Context) error {
	if err := h.checkInit(); err != nil {
		return err
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	signature := ctx.Request.Header.Get("Stripe-Signature")
	if signature == "" {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	if err := h.webhookService.HandleEvent(ctx, body, signature); err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			return web.NewRequestError(err, http.StatusBadRequest)
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, webhookResponse{Received: true}, http.StatusOK)
}
