package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adalertio/accounts-api/logger"
	"github.com/adalertio/accounts-api/pipedrive"
	userDALMocks "github.com/adalertio/accounts-api/user/dal/mocks"
	userDomain "github.com/adalertio/accounts-api/user/domain"
)

type fakeMailchimp struct {
	id    string
	err   error
	calls int32
}

func (f *fakeMailchimp) CreateMember(ctx context.Context, email, name string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.id, f.err
}

func (f *fakeMailchimp) DeleteMember(ctx context.Context, memberID string) error {
	atomic.AddInt32(&f.calls, 1)
	return f.err
}

type fakePipedrive struct {
	id        string
	searchErr error
	err       error
	calls     int32
}

func (f *fakePipedrive) CreatePerson(ctx context.Context, name, email string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.id, f.err
}

func (f *fakePipedrive) SearchPersonByEmail(ctx context.Context, email string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.searchErr != nil {
		return "", f.searchErr
	}

	return f.id, f.err
}

func (f *fakePipedrive) DeletePerson(ctx context.Context, personID string) error {
	atomic.AddInt32(&f.calls, 1)
	return f.err
}

type fakeSendgrid struct {
	id    string
	err   error
	calls int32
}

func (f *fakeSendgrid) UpsertContact(email, name string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.id, f.err
}

func (f *fakeSendgrid) RemoveContact(email string) error {
	atomic.AddInt32(&f.calls, 1)
	return f.err
}

func newTestService(mc *fakeMailchimp, sg *fakeSendgrid, pd *fakePipedrive, usersDAL *userDALMocks.Users) *ContactService {
	return &ContactService{
		loggerProvider: logger.FromContext,
		usersDAL:       usersDAL,
		clients: providerClients{
			mailchimp: func() (mailchimpAPI, error) {
				if mc == nil {
					return nil, errors.New("mailchimp: MAILCHIMP_API_KEY is not set")
				}
				return mc, nil
			},
			sendgrid: func() (sendgridAPI, error) {
				if sg == nil {
					return nil, errors.New("mailer: SENDGRID_API_KEY is not set")
				}
				return sg, nil
			},
			pipedrive: func() (pipedriveAPI, error) {
				if pd == nil {
					return nil, errors.New("pipedrive: PIPEDRIVE_API_TOKEN is not set")
				}
				return pd, nil
			},
		},
	}
}

func TestContactService_CreateContacts_partialSuccess(t *testing.T) {
	mc := &fakeMailchimp{id: "mc-1"}
	sg := &fakeSendgrid{err: errors.New("sendgrid down")}
	pd := &fakePipedrive{id: "42"}

	usersDAL := userDALMocks.NewUsers(t)
	usersDAL.On("UpdateContactIDs", mock.Anything, "user-1", userDomain.ContactIDs{
		Mailchimp: "mc-1",
		PipeDrive: "42",
	}).Return(nil)

	s := newTestService(mc, sg, pd, usersDAL)

	res, err := s.CreateContacts(context.Background(), "user-1", "a@b.com", "Ada")

	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "mc-1", res.ContactIDs.Mailchimp)
	assert.Equal(t, "42", res.ContactIDs.PipeDrive)
	assert.Empty(t, res.ContactIDs.SendGrid)
	assert.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "sendgrid down")
}

func TestContactService_CreateContacts_allProvidersFail(t *testing.T) {
	usersDAL := userDALMocks.NewUsers(t)

	s := newTestService(nil, nil, nil, usersDAL)

	res, err := s.CreateContacts(context.Background(), "user-1", "a@b.com", "Ada")

	assert.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, res.ContactIDs.Empty())
	assert.Len(t, res.Errors, 3)
	usersDAL.AssertNotCalled(t, "UpdateContactIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactService_CreateContacts_storeFailureKeepsSuccess(t *testing.T) {
	mc := &fakeMailchimp{id: "mc-1"}
	sg := &fakeSendgrid{id: "a@b.com"}
	pd := &fakePipedrive{id: "42"}

	usersDAL := userDALMocks.NewUsers(t)
	usersDAL.On("UpdateContactIDs", mock.Anything, "user-1", mock.Anything).Return(errors.New("firestore down"))

	s := newTestService(mc, sg, pd, usersDAL)

	res, err := s.CreateContacts(context.Background(), "user-1", "a@b.com", "Ada")

	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "store contact ids")
}

func TestContactService_CreateContacts_noUserIDSkipsStore(t *testing.T) {
	mc := &fakeMailchimp{id: "mc-1"}
	sg := &fakeSendgrid{id: "a@b.com"}
	pd := &fakePipedrive{id: "42"}

	usersDAL := userDALMocks.NewUsers(t)

	s := newTestService(mc, sg, pd, usersDAL)

	res, err := s.CreateContacts(context.Background(), "", "a@b.com", "Ada")

	assert.NoError(t, err)
	assert.True(t, res.Success)
	usersDAL.AssertNotCalled(t, "UpdateContactIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactService_RemoveContacts_emptyInput(t *testing.T) {
	mc := &fakeMailchimp{}
	sg := &fakeSendgrid{}
	pd := &fakePipedrive{}

	s := newTestService(mc, sg, pd, userDALMocks.NewUsers(t))

	res, err := s.RemoveContacts(context.Background(), userDomain.ContactIDs{})

	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.RemovalResults.Mailchimp)
	assert.False(t, res.RemovalResults.SendGrid)
	assert.False(t, res.RemovalResults.PipeDrive)
	assert.Empty(t, res.Errors)

	// Zero HTTP calls for an empty removal.
	assert.Zero(t, atomic.LoadInt32(&mc.calls))
	assert.Zero(t, atomic.LoadInt32(&sg.calls))
	assert.Zero(t, atomic.LoadInt32(&pd.calls))
}

func TestContactService_RemoveContacts_partialFailure(t *testing.T) {
	mc := &fakeMailchimp{}
	pd := &fakePipedrive{err: errors.New("pipedrive 500")}

	s := newTestService(mc, nil, pd, userDALMocks.NewUsers(t))

	res, err := s.RemoveContacts(context.Background(), userDomain.ContactIDs{
		Mailchimp: "hash-1",
		PipeDrive: "42",
	})

	assert.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, res.RemovalResults.Mailchimp)
	assert.False(t, res.RemovalResults.PipeDrive)
	assert.False(t, res.RemovalResults.SendGrid)
	assert.Len(t, res.Errors, 1)
}

func TestContactService_CreateContacts_pipedriveSearchFallsBackToCreate(t *testing.T) {
	pd := &fakePipedrive{id: "77", searchErr: pipedrive.ErrPersonNotFound}

	s := newTestService(nil, nil, pd, userDALMocks.NewUsers(t))

	res, err := s.CreateContacts(context.Background(), "", "a@b.com", "Ada")

	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "77", res.ContactIDs.PipeDrive)
}
