package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/framework/web"
	"github.com/adalertio/accounts-api/logger"
	"github.com/adalertio/accounts-api/user/service"
	"github.com/adalertio/accounts-api/user/service/iface"
)

type Users struct {
	loggerProvider logger.Provider
	service        iface.UserService
}

func NewUsers(loggerProvider logger.Provider, conn *connection.Connection) *Users {
	return &Users{
		loggerProvider,
		service.NewUserService(loggerProvider, conn),
	}
}

func (h *Users) ListUsers(ctx *gin.Context) error {
	listing, err := h.service.ListAllUsers(ctx)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, listing, http.StatusOK)
}
