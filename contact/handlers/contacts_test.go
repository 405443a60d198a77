package handlers

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	testTools "github.com/adalertio/accounts-api/common/test_tools"
	"github.com/adalertio/accounts-api/contact/domain"
	"github.com/adalertio/accounts-api/contact/mocks"
	"github.com/adalertio/accounts-api/logger"
	userDomain "github.com/adalertio/accounts-api/user/domain"
)

func TestContacts_CreateContacts(t *testing.T) {
	syncResult := &domain.SyncResult{
		ContactIDs: userDomain.ContactIDs{Mailchimp: "mc-1"},
		Errors:     []string{},
		Success:    true,
	}

	type fields struct {
		service *mocks.ContactSync
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
			name: "missing email",
			args: args{
				ctx: testTools.GenerateCtxWithJSONAndParams(t, map[string]interface{}{"user": "user-1"}, nil),
			},
			wantErr: true,
		},
		{
			name: "service error",
			args: args{
				ctx: testTools.GenerateCtxWithJSONAndParams(t, map[string]interface{}{"user": "user-1", "email": "a@b.com"}, nil),
			},
			wantErr: true,
			on: func(f *fields) {
				f.service.On("CreateContacts", mock.AnythingOfType("*gin.Context"), "user-1", "a@b.com", "").Return(nil, errors.New("error"))
			},
		},
		{
			name: "success creating contacts",
			args: args{
				ctx: testTools.GenerateCtxWithJSONAndParams(t, map[string]interface{}{"user": "user-1", "userName": "Ada", "email": "a@b.com"}, nil),
			},
			wantErr: false,
			on: func(f *fields) {
				f.service.On("CreateContacts", mock.AnythingOfType("*gin.Context"), "user-1", "a@b.com", "Ada").Return(syncResult, nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fields = fields{
				service: mocks.NewContactSync(t),
			}

			h := &Contacts{
				loggerProvider: logger.FromContext,
				service:        tt.fields.service,
			}

			if tt.on != nil {
				tt.on(&tt.fields)
			}

			if err := h.CreateContacts(tt.args.ctx); (err != nil) != tt.wantErr {
				t.Errorf("Contacts.CreateContacts() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContacts_RemoveContacts(t *testing.T) {
	removalResult := &domain.RemovalResult{
		RemovalResults: domain.RemovalFlags{Mailchimp: true},
		Errors:         []string{},
		Success:        true,
	}

	type fields struct {
		service *mocks.ContactSync
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
				ctx: testTools.GenerateCtxWithJSONAndParams(t, map[string]interface{}{"contactIds": map[string]string{"mailchimp": "mc-1"}}, nil),
			},
			wantErr: true,
			on: func(f *fields) {
				f.service.On("RemoveContacts", mock.AnythingOfType("*gin.Context"), userDomain.ContactIDs{Mailchimp: "mc-1"}).Return(nil, errors.New("error"))
			},
		},
		{
			name: "success removing contacts",
			args: args{
				ctx: testTools.GenerateCtxWithJSONAndParams(t, map[string]interface{}{"contactIds": map[string]string{"mailchimp": "mc-1"}}, nil),
			},
			wantErr: false,
			on: func(f *fields) {
				f.service.On("RemoveContacts", mock.AnythingOfType("*gin.Context"), userDomain.ContactIDs{Mailchimp: "mc-1"}).Return(removalResult, nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fields = fields{
				service: mocks.NewContactSync(t),
			}

			h := &Contacts{
				loggerProvider: logger.FromContext,
				service:        tt.fields.service,
			}

			if tt.on != nil {
				tt.on(&tt.fields)
			}

			if err := h.RemoveContacts(tt.args.ctx); (err != nil) != tt.wantErr {
				t.Errorf("Contacts.RemoveContacts() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
