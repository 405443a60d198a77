package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adalertio/accounts-api/framework/web"
)

// ExpireTrials is invoked by the scheduler to close out elapsed trials.
// The sweep is Firestore-only and is deliberately not gated on the Stripe
// credentials being present.
func (h *Stripe) ExpireTrials(ctx *gin.Context) error {
	result, err := h.service.ExpireTrials(ctx)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, result, http.StatusOK)
}
