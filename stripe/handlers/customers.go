package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adalertio/accounts-api/framework/web"
	"github.com/adalertio/accounts-api/stripe/service"
)

type createLiveCustomerRequest struct {
	UserID             string `json:"userId"`
	Email              string `json:"email"`
	DryRun             bool   `json:"dryRun"`
	CreateSubscription bool   `json:"createSubscription"`
}

func (r *createLiveCustomerRequest) target() string {
	if r.UserID != "" {
		return r.UserID
	}

	return r.Email
}

func (h *Stripe) CreateLiveCustomer(ctx *gin.Context) error {
	if err := h.checkInit(); err != nil {
		return err
	}

	var req createLiveCustomerRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	if req.target() == "" {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	res, err := h.service.FindOrCreateLiveCustomer(ctx, req.target(), req.DryRun, req.CreateSubscription)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return web.NewRequestError(err, http.StatusNotFound)
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, res, http.StatusOK)
}

// MigrationReadiness is the GET variant of create-live-customer: it reports
// the readiness flags without touching Stripe state.
func (h *Stripe) MigrationReadiness(ctx *gin.Context) error {
	if err := h.checkInit(); err != nil {
		return err
	}

	target := ctx.Query("userId")
	if target == "" {
		target = ctx.Query("email")
	}

	if target == "" {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	report, err := h.service.MigrationReadiness(ctx, target)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return web.NewRequestError(err, http.StatusNotFound)
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, report, http.StatusOK)
}
