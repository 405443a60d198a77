package mailer

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/rest"
	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/adalertio/accounts-api/common"
)

const defaultTimeout = 30 * time.Second

var ErrMissingAPIKey = errors.New("mailer: SENDGRID_API_KEY is not set")

type SendGridConfig struct {
	APIKey       string
	BaseURL      string
	MailSendPath string

	// <noreply@adalert.io>
	NoReplyEmail string
	NoReplyName  string
}

// SimpleNotification : Simple notification template data
type SimpleNotification struct {
	Subject   string
	Preheader string
	Body      string
	CCs       []string
}

// NewConfig reads the SendGrid configuration from the environment.
func NewConfig() (*SendGridConfig, error) {
	apiKey := common.GetEnv("SENDGRID_API_KEY", "")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	// sendgrid.MakeRequestRetry routes through the package client, which
	// ships without a timeout.
	sendgrid.DefaultClient = &rest.Client{
		HTTPClient: &http.Client{
			Timeout: common.GetDurationEnv("SENDGRID_TIMEOUT", defaultTimeout),
		},
	}

	return &SendGridConfig{
		APIKey:       apiKey,
		BaseURL:      "https://api.sendgrid.com",
		MailSendPath: "/v3/mail/send",
		NoReplyEmail: common.GetEnv("SENDGRID_FROM_EMAIL", "noreply@adalert.io"),
		NoReplyName:  common.GetEnv("SENDGRID_FROM_NAME", "adAlert.io"),
	}, nil
}

// SendSimpleNotification sends a plain transactional email to the given
// address.
func (c *SendGridConfig) SendSimpleNotification(sn *SimpleNotification, email string) error {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(c.NoReplyName, c.NoReplyEmail))
	m.Subject = sn.Subject

	enable := false
	m.SetTrackingSettings(&mail.TrackingSettings{SubscriptionTracking: &mail.SubscriptionTrackingSetting{Enable: &enable}})

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", email))

	if len(sn.CCs) > 0 {
		ccs := make([]*mail.Email, 0)

		for _, cc := range sn.CCs {
			if cc != email {
				ccs = append(ccs, mail.NewEmail("", cc))
			}
		}

		if len(ccs) > 0 {
			personalization.AddCCs(ccs...)
		}
	}

	m.AddPersonalizations(personalization)
	m.AddContent(mail.NewContent("text/html", sn.Body))

	request := sendgrid.GetRequest(c.APIKey, c.MailSendPath, c.BaseURL)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(m)

	response, err := sendgrid.MakeRequestRetry(request)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("mailer: send notification (%d): %s", response.StatusCode, response.Body)
	}

	return nil
}

// FormatAmount renders a minor-units amount for an email body, e.g.
// (4900, "usd") -> "$49.00".
func FormatAmount(amountMinor int64, currencyCode string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return fmt.Sprintf("%.2f %s", float64(amountMinor)/100, currencyCode)
	}

	p := message.NewPrinter(language.English)

	return p.Sprintf("%v", currency.NarrowSymbol(unit.Amount(float64(amountMinor)/100)))
}
