package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adalertio/accounts-api/contact/iface"
	"github.com/adalertio/accounts-api/contact/service"
	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/framework/web"
	"github.com/adalertio/accounts-api/logger"
	userDomain "github.com/adalertio/accounts-api/user/domain"
)

type Contacts struct {
	loggerProvider logger.Provider
	service        iface.ContactSync
}

func NewContacts(loggerProvider logger.Provider, conn *connection.Connection) *Contacts {
	return &Contacts{
		loggerProvider,
		service.NewContactService(loggerProvider, conn),
	}
}

type createContactsRequest struct {
	UserID   string `json:"user"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

type removeContactsRequest struct {
	ContactIDs userDomain.ContactIDs `json:"contactIds"`
}

type contactsResponse struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result"`
}

func (h *Contacts) CreateContacts(ctx *gin.Context) error {
	var req createContactsRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	if req.Email == "" {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	res, err := h.service.CreateContacts(ctx, req.UserID, req.Email, req.UserName)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, contactsResponse{Success: res.Success, Result: res}, http.StatusOK)
}

func (h *Contacts) RemoveContacts(ctx *gin.Context) error {
	var req removeContactsRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	res, err := h.service.RemoveContacts(ctx, req.ContactIDs)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, contactsResponse{Success: res.Success, Result: res}, http.StatusOK)
}
