package mailer

import (
	"context"
	"errors"
	"fmt"

	tpl "github.com/oksasatya/rituday/pkg/mailer/templates"
)

var (
	ErrNoRecipient     = errors.New("email job has no recipient")
	ErrUnknownTemplate = errors.New("unknown email template")
	ErrEmptyMessage    = errors.New("email job needs a subject and a text or html body")
)

// Sender delivers a rendered email. *Mailgun satisfies it.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Compose renders the job into subject, text and html bodies.
// Template jobs are rendered from the embedded templates; raw jobs are passed through.
func (j EmailJob) Compose() (subject, text, html string, err error) {
	if j.To == "" {
		return "", "", "", ErrNoRecipient
	}
	if j.Template == "" {
		if j.Subject == "" || (j.Text == "" && j.HTML == "") {
			return "", "", "", ErrEmptyMessage
		}
		return j.Subject, j.Text, j.HTML, nil
	}
	if !tpl.Known(j.Template) {
		return "", "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, j.Template)
	}
	return tpl.Render(j.Template, j.Data)
}

// Deliver composes the job and hands it to s.
func Deliver(ctx context.Context, s Sender, j EmailJob) error {
	subject, text, html, err := j.Compose()
	if err != nil {
		return err
	}
	return s.Send(ctx, j.To, subject, text, html)
}
