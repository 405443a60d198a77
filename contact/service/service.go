package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/adalertio/accounts-api/contact/domain"
	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/logger"
	"github.com/adalertio/accounts-api/mailchimp"
	"github.com/adalertio/accounts-api/mailer"
	"github.com/adalertio/accounts-api/pipedrive"
	"github.com/adalertio/accounts-api/settle"
	userDAL "github.com/adalertio/accounts-api/user/dal"
	userDomain "github.com/adalertio/accounts-api/user/domain"
)

const (
	providerMailchimp = "mailchimp"
	providerSendGrid  = "sendgrid"
	providerPipeDrive = "pipedrive"
)

type mailchimpAPI interface {
	CreateMember(ctx context.Context, email, name string) (string, error)
	DeleteMember(ctx context.Context, memberID string) error
}

type pipedriveAPI interface {
	CreatePerson(ctx context.Context, name, email string) (string, error)
	SearchPersonByEmail(ctx context.Context, email string) (string, error)
	DeletePerson(ctx context.Context, personID string) error
}

type sendgridAPI interface {
	UpsertContact(email, name string) (string, error)
	RemoveContact(email string) error
}

// Provider clients are constructed per call so a missing credential fails
// only that provider's task, as a collected error string.
type providerClients struct {
	mailchimp func() (mailchimpAPI, error)
	sendgrid  func() (sendgridAPI, error)
	pipedrive func() (pipedriveAPI, error)
}

type ContactService struct {
	loggerProvider logger.Provider
	usersDAL       userDAL.Users
	clients        providerClients
}

func NewContactService(loggerProvider logger.Provider, conn *connection.Connection) *ContactService {
	return &ContactService{
		loggerProvider: loggerProvider,
		usersDAL:       userDAL.NewUsersFirestoreWithClient(conn.Firestore),
		clients: providerClients{
			mailchimp: func() (mailchimpAPI, error) {
				return mailchimp.NewService()
			},
			sendgrid: func() (sendgridAPI, error) {
				return mailer.NewConfig()
			},
			pipedrive: func() (pipedriveAPI, error) {
				return pipedrive.NewService()
			},
		},
	}
}

type providerID struct {
	provider string
	id       string
}

// CreateContacts registers the email with every configured marketing
// provider. Providers run concurrently and independently; partial success is
// success. The obtained ids are written back to the user doc best-effort.
func (s *ContactService) CreateContacts(ctx context.Context, userID, email, name string) (*domain.SyncResult, error) {
	log := s.loggerProvider(ctx)

	tasks := []settle.Task[providerID]{
		func(ctx context.Context) (providerID, error) {
			client, err := s.clients.mailchimp()
			if err != nil {
				return providerID{}, err
			}

			id, err := client.CreateMember(ctx, email, name)
			if err != nil {
				return providerID{}, err
			}

			return providerID{providerMailchimp, id}, nil
		},
		func(ctx context.Context) (providerID, error) {
			client, err := s.clients.sendgrid()
			if err != nil {
				return providerID{}, err
			}

			id, err := client.UpsertContact(email, name)
			if err != nil {
				return providerID{}, err
			}

			return providerID{providerSendGrid, id}, nil
		},
		func(ctx context.Context) (providerID, error) {
			client, err := s.clients.pipedrive()
			if err != nil {
				return providerID{}, err
			}

			id, err := client.SearchPersonByEmail(ctx, email)
			if errors.Is(err, pipedrive.ErrPersonNotFound) {
				id, err = client.CreatePerson(ctx, name, email)
			}

			if err != nil {
				return providerID{}, err
			}

			return providerID{providerPipeDrive, id}, nil
		},
	}

	res := &domain.SyncResult{
		Errors: make([]string, 0),
	}

	for _, result := range settle.All(ctx, tasks) {
		if !result.OK() {
			res.Errors = append(res.Errors, result.Err.Error())
			continue
		}

		switch result.Value.provider {
		case providerMailchimp:
			res.ContactIDs.Mailchimp = result.Value.id
		case providerSendGrid:
			res.ContactIDs.SendGrid = result.Value.id
		case providerPipeDrive:
			res.ContactIDs.PipeDrive = result.Value.id
		}
	}

	res.Success = !res.ContactIDs.Empty()

	if userID != "" && !res.ContactIDs.Empty() {
		if err := s.usersDAL.UpdateContactIDs(ctx, userID, res.ContactIDs); err != nil {
			log.Errorf("failed to store contact ids for user %s: %s", userID, err)
			res.Errors = append(res.Errors, fmt.Sprintf("store contact ids: %s", err))
		}
	}

	return res, nil
}

// RemoveContacts deletes the contacts the given ids point at. A provider
// without an id is nothing to remove, not an error; removals run
// concurrently and failures are collected.
func (s *ContactService) RemoveContacts(ctx context.Context, ids userDomain.ContactIDs) (*domain.RemovalResult, error) {
	res := &domain.RemovalResult{
		Errors: make([]string, 0),
	}

	if ids.Empty() {
		res.Success = true
		return res, nil
	}

	var tasks []settle.Task[string]

	if ids.Mailchimp != "" {
		tasks = append(tasks, func(ctx context.Context) (string, error) {
			client, err := s.clients.mailchimp()
			if err != nil {
				return "", err
			}

			return providerMailchimp, client.DeleteMember(ctx, ids.Mailchimp)
		})
	}

	if ids.SendGrid != "" {
		tasks = append(tasks, func(ctx context.Context) (string, error) {
			client, err := s.clients.sendgrid()
			if err != nil {
				return "", err
			}

			return providerSendGrid, client.RemoveContact(ids.SendGrid)
		})
	}

	if ids.PipeDrive != "" {
		tasks = append(tasks, func(ctx context.Context) (string, error) {
			client, err := s.clients.pipedrive()
			if err != nil {
				return "", err
			}

			return providerPipeDrive, client.DeletePerson(ctx, ids.PipeDrive)
		})
	}

	for _, result := range settle.All(ctx, tasks) {
		if !result.OK() {
			res.Errors = append(res.Errors, result.Err.Error())
			continue
		}

		switch result.Value {
		case providerMailchimp:
			res.RemovalResults.Mailchimp = true
		case providerSendGrid:
			res.RemovalResults.SendGrid = true
		case providerPipeDrive:
			res.RemovalResults.PipeDrive = true
		}
	}

	res.Success = len(res.Errors) == 0

	return res, nil
}
