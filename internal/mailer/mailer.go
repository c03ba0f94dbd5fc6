package mailer

import (
	"crypto/tls"
	"fmt"
	"net/mail"
	"net/url"

	"github.com/dajohi/goemail"
)

// Mailer delivers notification email. Reminder runs treat a returned error
// as a failed delivery and leave the affected invoices unmarked.
type Mailer interface {
	IsEnabled() bool
	Send(to, subject, htmlBody string) error
}

// SMTPClient sends email through an SMTP relay from a preset address.
//
// SMTPClient implements the Mailer interface.
type SMTPClient struct {
	smtp        *goemail.SMTP
	mailName    string
	mailAddress string
	disabled    bool
}

// NewSMTPClient builds a client. Email is considered disabled if any of the
// required credentials are missing; a disabled client reports success
// without sending.
func NewSMTPClient(host, user, password, fromAddress string, skipVerify bool) (*SMTPClient, error) {
	if host == "" || user == "" || password == "" {
		return &SMTPClient{disabled: true}, nil
	}

	u, err := url.Parse(fmt.Sprintf("smtps://%v:%v@%v", user, password, host))
	if err != nil {
		return nil, fmt.Errorf("mailer: parse smtp host: %w", err)
	}
	addr, err := mail.ParseAddress(fromAddress)
	if err != nil {
		return nil, fmt.Errorf("mailer: parse from address: %w", err)
	}
	smtp, err := goemail.NewSMTP(u.String(), &tls.Config{
		InsecureSkipVerify: skipVerify,
	})
	if err != nil {
		return nil, fmt.Errorf("mailer: smtp setup: %w", err)
	}

	return &SMTPClient{
		smtp:        smtp,
		mailName:    addr.Name,
		mailAddress: addr.Address,
	}, nil
}

// IsEnabled returns whether the mail relay is configured.
func (c *SMTPClient) IsEnabled() bool {
	return !c.disabled
}

// Send delivers one HTML email to a single recipient.
func (c *SMTPClient) Send(to, subject, htmlBody string) error {
	if c.disabled {
		return nil
	}
	msg := goemail.NewHTMLMessage(c.mailAddress, subject, htmlBody)
	msg.SetName(c.mailName)
	msg.AddTo(to)
	return c.smtp.Send(msg)
}
