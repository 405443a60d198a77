package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adalertio/accounts-api/framework/web"
	"github.com/adalertio/accounts-api/stripe/domain"
	"github.com/adalertio/accounts-api/stripe/service"
)

type migrateStripeIDsRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	DryRun bool   `json:"dryRun"`
}

type migrateStripeIDsResponse struct {
	Result *domain.MigrationResult `json:"result"`
}

func (h *Stripe) MigrateStripeIDs(ctx *gin.Context) error {
	if err := h.checkInit(); err != nil {
		return err
	}

	var req migrateStripeIDsRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	target := req.UserID
	if target == "" {
		target = req.Email
	}

	if target == "" {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	result, err := h.service.MigrateStripeIDs(ctx, target, req.DryRun)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return web.NewRequestError(err, http.StatusNotFound)
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, migrateStripeIDsResponse{Result: result}, http.StatusOK)
}
