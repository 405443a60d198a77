package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adalertio/accounts-api/company/dal"
	"github.com/adalertio/accounts-api/company/iface"
	"github.com/adalertio/accounts-api/company/service"
	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/framework/web"
	"github.com/adalertio/accounts-api/logger"
)

type Companies struct {
	loggerProvider logger.Provider
	service        iface.CompanyService
}

// NewCompanies creates new company package handlers
func NewCompanies(loggerProvider logger.Provider, conn *connection.Connection) *Companies {
	return &Companies{
		loggerProvider: loggerProvider,
		service:        service.NewCompanyService(loggerProvider, conn),
	}
}

func (h *Companies) DeleteCompany(ctx *gin.Context) error {
	companyID := ctx.Param("companyID")
	if companyID == "" {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	result, err := h.service.DeleteCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, dal.ErrCompanyNotFound) {
			return web.NewRequestError(err, http.StatusNotFound)
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, result, http.StatusOK)
}
