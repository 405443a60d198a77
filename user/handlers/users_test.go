package handlers

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	testTools "github.com/adalertio/accounts-api/common/test_tools"
	"github.com/adalertio/accounts-api/logger"
	"github.com/adalertio/accounts-api/user/domain"
	"github.com/adalertio/accounts-api/user/service/mocks"
)

func TestUsers_ListUsers(t *testing.T) {
	listing := &domain.UserListing{
		AuthUsers: []domain.AuthUser{
			{UID: "uid-1", Email: "admin@example.com"},
		},
		FirestoreUsers: []*domain.User{
			{ID: "user-1", Email: "admin@example.com"},
		},
		Total: 1,
	}

	type fields struct {
		service *mocks.UserService
	}

	type args struct {
		ctx *gin.Context
	}

	tests := []struct {
		name    string
		fields  fields
		args    args
		wantErr bool
		on      func(f *fields)
	}{
		{
			name: "service error",
			args: args{
				ctx: testTools.GenerateCtxWithJSONAndParams(t, nil, nil),
			},
			wantErr: true,
			on: func(f *fields) {
				f.service.On("ListAllUsers", mock.AnythingOfType("*gin.Context")).Return(nil, errors.New("error"))
			},
		},
		{
			name: "success listing users",
			args: args{
				ctx: testTools.GenerateCtxWithJSONAndParams(t, nil, nil),
			},
			wantErr: false,
			on: func(f *fields) {
				f.service.On("ListAllUsers", mock.AnythingOfType("*gin.Context")).Return(listing, nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fields = fields{
				service: mocks.NewUserService(t),
			}

			h := &Users{
				loggerProvider: logger.FromContext,
				service:        tt.fields.service,
			}

			if tt.on != nil {
				tt.on(&tt.fields)
			}

			if err := h.ListUsers(tt.args.ctx); (err != nil) != tt.wantErr {
				t.Errorf("Users.ListUsers() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
