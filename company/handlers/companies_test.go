package handlers

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/adalertio/accounts-api/company/dal"
	"github.com/adalertio/accounts-api/company/domain"
	"github.com/adalertio/accounts-api/company/mocks"
	testTools "github.com/adalertio/accounts-api/common/test_tools"
	"github.com/adalertio/accounts-api/logger"
)

func TestCompanies_DeleteCompany(t *testing.T) {
	cascadeResult := &domain.CascadeResult{
		CompanyID:    "company-1",
		UsersDeleted: 2,
		DocsDeleted:  6,
		Errors:       []string{},
		Success:      true,
	}

	type fields struct {
		service *mocks.CompanyService
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
			name: "missing company id param",
			args: args{
				ctx: testTools.GenerateCtxWithJSONAndParams(t, nil, nil),
			},
			wantErr: true,
		},
		{
			name: "company not found",
			args: args{
				ctx: testTools.GenerateCtxWithJSONAndParams(t, nil, []gin.Param{{Key: "companyID", Value: "missing"}}),
			},
			wantErr: true,
			on: func(f *fields) {
				f.service.On("DeleteCompany", mock.AnythingOfType("*gin.Context"), "missing").Return(nil, dal.ErrCompanyNotFound)
			},
		},
		{
			name: "service error",
			args: args{
				ctx: testTools.GenerateCtxWithJSONAndParams(t, nil, []gin.Param{{Key: "companyID", Value: "company-1"}}),
			},
			wantErr: true,
			on: func(f *fields) {
				f.service.On("DeleteCompany", mock.AnythingOfType("*gin.Context"), "company-1").Return(nil, errors.New("error"))
			},
		},
		{
			name: "success deleting company",
			args: args{
				ctx: testTools.GenerateCtxWithJSONAndParams(t, nil, []gin.Param{{Key: "companyID", Value: "company-1"}}),
			},
			wantErr: false,
			on: func(f *fields) {
				f.service.On("DeleteCompany", mock.AnythingOfType("*gin.Context"), "company-1").Return(cascadeResult, nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fields = fields{
				service: mocks.NewCompanyService(t),
			}

			h := &Companies{
				loggerProvider: logger.FromContext,
				service:        tt.fields.service,
			}

			if tt.on != nil {
				tt.on(&tt.fields)
			}

			if err := h.DeleteCompany(tt.args.ctx); (err != nil) != tt.wantErr {
				t.Errorf("Companies.DeleteCompany() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
