package mailer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	sendgrid "github.com/sendgrid/sendgrid-go"
)

var ErrContactNotFound = errors.New("mailer: marketing contact not found")

// UpsertContact adds the email to the SendGrid marketing contacts list.
//
// The upsert endpoint is asynchronous and only returns a job id, so the
// contact's SendGrid id is unknown at this point. The email itself is the
// durable handle; removal resolves the id from it.
func (c *SendGridConfig) UpsertContact(email, name string) (string, error) {
	contact := map[string]string{"email": email}
	if name != "" {
		contact["first_name"] = name
	}

	body, err := json.Marshal(map[string]interface{}{
		"contacts": []map[string]string{contact},
	})
	if err != nil {
		return "", err
	}

	request := sendgrid.GetRequest(c.APIKey, "/v3/marketing/contacts", c.BaseURL)
	request.Method = http.MethodPut
	request.Body = body

	response, err := sendgrid.MakeRequestRetry(request)
	if err != nil {
		return "", err
	}

	if response.StatusCode >= 400 {
		return "", fmt.Errorf("mailer: upsert contact (%d): %s", response.StatusCode, response.Body)
	}

	return email, nil
}

// RemoveContact deletes the marketing contact whose email is the given
// handle. The id is resolved first via the exact-email lookup, then via a
// SGQL search for older accounts the lookup endpoint does not cover.
func (c *SendGridConfig) RemoveContact(email string) error {
	id, err := c.contactIDByEmail(email)
	if errors.Is(err, ErrContactNotFound) {
		id, err = c.searchContactID(email)
	}

	if err != nil {
		return err
	}

	request := sendgrid.GetRequest(c.APIKey, "/v3/marketing/contacts", c.BaseURL)
	request.Method = http.MethodDelete
	request.QueryParams = map[string]string{"ids": id}

	response, err := sendgrid.MakeRequestRetry(request)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("mailer: delete contact (%d): %s", response.StatusCode, response.Body)
	}

	return nil
}

func (c *SendGridConfig) contactIDByEmail(email string) (string, error) {
	body, err := json.Marshal(map[string][]string{"emails": {email}})
	if err != nil {
		return "", err
	}

	request := sendgrid.GetRequest(c.APIKey, "/v3/marketing/contacts/search/emails", c.BaseURL)
	request.Method = http.MethodPost
	request.Body = body

	response, err := sendgrid.MakeRequestRetry(request)
	if err != nil {
		return "", err
	}

	if response.StatusCode == http.StatusNotFound {
		return "", ErrContactNotFound
	}

	if response.StatusCode >= 400 {
		return "", fmt.Errorf("mailer: contact lookup (%d): %s", response.StatusCode, response.Body)
	}

	var res struct {
		Result map[string]struct {
			Contact struct {
				ID string `json:"id"`
			} `json:"contact"`
		} `json:"result"`
	}

	if err := json.Unmarshal([]byte(response.Body), &res); err != nil {
		return "", err
	}

	entry, ok := res.Result[email]
	if !ok || entry.Contact.ID == "" {
		return "", ErrContactNotFound
	}

	return entry.Contact.ID, nil
}

func (c *SendGridConfig) searchContactID(email string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"query": fmt.Sprintf("email = '%s'", email),
	})
	if err != nil {
		return "", err
	}

	request := sendgrid.GetRequest(c.APIKey, "/v3/marketing/contacts/search", c.BaseURL)
	request.Method = http.MethodPost
	request.Body = body

	response, err := sendgrid.MakeRequestRetry(request)
	if err != nil {
		return "", err
	}

	if response.StatusCode >= 400 {
		return "", fmt.Errorf("mailer: contact search (%d): %s", response.StatusCode, response.Body)
	}

	var res struct {
		Result []struct {
			ID string `json:"id"`
		} `json:"result"`
	}

	if err := json.Unmarshal([]byte(response.Body), &res); err != nil {
		return "", err
	}

	if len(res.Result) == 0 {
		return "", ErrContactNotFound
	}

	return res.Result[0].ID, nil
}
