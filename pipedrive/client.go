package pipedrive

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/adalertio/accounts-api/common"
)

var (
	ErrMissingAPIToken = errors.New("pipedrive: PIPEDRIVE_API_TOKEN is not set")
	ErrPersonNotFound  = errors.New("pipedrive: person not found")
)

const (
	baseURL        = "https://api.pipedrive.com/v1"
	defaultTimeout = 30 * time.Second
)

type Service struct {
	client   *resty.Client
	apiToken string
}

// NewService reads the PipeDrive credentials from the environment.
func NewService() (*Service, error) {
	apiToken := common.GetEnv("PIPEDRIVE_API_TOKEN", "")
	if apiToken == "" {
		return nil, ErrMissingAPIToken
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(common.GetDurationEnv("PIPEDRIVE_TIMEOUT", defaultTimeout)).
		SetQueryParam("api_token", apiToken)

	return &Service{
		client:   client,
		apiToken: apiToken,
	}, nil
}

type person struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type personResponse struct {
	Success bool    `json:"success"`
	Data    *person `json:"data"`
	Error   string  `json:"error"`
}

type searchResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Items []struct {
			Item person `json:"item"`
		} `json:"items"`
	} `json:"data"`
	Error string `json:"error"`
}

// CreatePerson adds a CRM person and returns its numeric id as a string.
func (s *Service) CreatePerson(ctx context.Context, name, email string) (string, error) {
	body := map[string]interface{}{
		"name":  name,
		"email": []string{email},
	}

	var res personResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&res).
		SetError(&res).
		Post("/persons")
	if err != nil {
		return "", err
	}

	if resp.IsError() || !res.Success || res.Data == nil {
		return "", fmt.Errorf("pipedrive: create person (%d): %s", resp.StatusCode(), res.Error)
	}

	return strconv.Itoa(res.Data.ID), nil
}

// SearchPersonByEmail returns the id of the person with an exact email
// match, or ErrPersonNotFound.
func (s *Service) SearchPersonByEmail(ctx context.Context, email string) (string, error) {
	var res searchResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"term":        email,
			"fields":      "email",
			"exact_match": "true",
		}).
		SetResult(&res).
		SetError(&res).
		Get("/persons/search")
	if err != nil {
		return "", err
	}

	if resp.IsError() || !res.Success {
		return "", fmt.Errorf("pipedrive: search persons (%d): %s", resp.StatusCode(), res.Error)
	}

	if len(res.Data.Items) == 0 {
		return "", ErrPersonNotFound
	}

	return strconv.Itoa(res.Data.Items[0].Item.ID), nil
}

// DeletePerson removes a CRM person by id.
func (s *Service) DeletePerson(ctx context.Context, personID string) error {
	var res personResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&res).
		SetError(&res).
		Delete("/persons/" + personID)
	if err != nil {
		return err
	}

	if resp.IsError() || !res.Success {
		return fmt.Errorf("pipedrive: delete person %s (%d): %s", personID, resp.StatusCode(), res.Error)
	}

	return nil
}
