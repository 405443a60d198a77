package mailchimp

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/adalertio/accounts-api/common"
)

const defaultTimeout = 30 * time.Second

var (
	ErrMissingAPIKey     = errors.New("mailchimp: MAILCHIMP_API_KEY is not set")
	ErrMissingAudienceID = errors.New("mailchimp: MAILCHIMP_AUDIENCE_ID is not set")
	ErrInvalidAPIKey     = errors.New("mailchimp: api key has no datacenter suffix")
)

type Service struct {
	limiter    *rate.Limiter
	client     *http.Client
	apiKey     string
	audienceID string
	baseURL    string
}

// NewService reads the Mailchimp credentials from the environment. The
// datacenter is encoded as the api key suffix ("<key>-us21") and selects
// the API host.
func NewService() (*Service, error) {
	apiKey := common.GetEnv("MAILCHIMP_API_KEY", "")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	audienceID := common.GetEnv("MAILCHIMP_AUDIENCE_ID", "")
	if audienceID == "" {
		return nil, ErrMissingAudienceID
	}

	idx := strings.LastIndex(apiKey, "-")
	if idx < 0 || idx == len(apiKey)-1 {
		return nil, ErrInvalidAPIKey
	}

	datacenter := apiKey[idx+1:]

	// Mailchimp allows 10 simultaneous connections; stay well under it.
	lim := rate.Every(1 * time.Second / 5)

	return &Service{
		limiter: rate.NewLimiter(lim, 1),
		client: &http.Client{
			Timeout: common.GetDurationEnv("MAILCHIMP_TIMEOUT", defaultTimeout),
		},
		apiKey:     apiKey,
		audienceID: audienceID,
		baseURL:    fmt.Sprintf("https://%s.api.mailchimp.com/3.0", datacenter),
	}, nil
}

type member struct {
	ID           string            `json:"id,omitempty"`
	EmailAddress string            `json:"email_address"`
	Status       string            `json:"status,omitempty"`
	MergeFields  map[string]string `json:"merge_fields,omitempty"`
}

// SubscriberHash is the member id Mailchimp derives from an email address:
// the MD5 of its lowercased form.
func SubscriberHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	return hex.EncodeToString(sum[:])
}

// CreateMember subscribes the email to the configured audience and returns
// the member id. An email already on the list is not an error; the existing
// member id is returned.
func (s *Service) CreateMember(ctx context.Context, email, name string) (string, error) {
	mergeFields := map[string]string{}
	if name != "" {
		mergeFields["FNAME"] = name
	}

	reqBody, err := json.Marshal(member{
		EmailAddress: email,
		Status:       "subscribed",
		MergeFields:  mergeFields,
	})
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("/lists/%s/members", s.audienceID)

	respBody, err := s.request(ctx, http.MethodPost, path, reqBody)
	if err != nil {
		if strings.Contains(err.Error(), "Member Exists") {
			return s.getMemberID(ctx, email)
		}

		return "", err
	}

	var res member
	if err := json.Unmarshal(respBody, &res); err != nil {
		return "", err
	}

	return res.ID, nil
}

// DeleteMember removes the member with the given id (the subscriber hash)
// from the audience.
func (s *Service) DeleteMember(ctx context.Context, memberID string) error {
	path := fmt.Sprintf("/lists/%s/members/%s", s.audienceID, memberID)

	_, err := s.request(ctx, http.MethodDelete, path, nil)

	return err
}

func (s *Service) getMemberID(ctx context.Context, email string) (string, error) {
	path := fmt.Sprintf("/lists/%s/members/%s", s.audienceID, SubscriberHash(email))

	respBody, err := s.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}

	var res member
	if err := json.Unmarshal(respBody, &res); err != nil {
		return "", err
	}

	return res.ID, nil
}

func (s *Service) request(ctx context.Context, method, path string, data []byte) ([]byte, error) {
	url := s.baseURL + path

	var body io.Reader
	if len(data) > 0 {
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	// Mailchimp basic auth ignores the username.
	req.SetBasicAuth("anystring", s.apiKey)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return respBody, nil
	}

	return nil, fmt.Errorf("mailchimp: %s %s (%d): %s", method, path, resp.StatusCode, string(respBody))
}
