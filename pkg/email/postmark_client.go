package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

type postmarkClient struct {
	client  *postmark.Client
	from    string
	replyTo string
}

// NewPostmarkClient builds a Postmark-backed sender from cfg. It rejects
// incomplete configuration up front so a misconfigured service fails at
// startup, not on the first send.
func NewPostmarkClient(cfg Config) (EmailSender, error) {
	switch {
	case cfg.PostmarkServerToken == "":
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	case cfg.PostmarkAccountToken == "":
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	case !emailRegex.MatchString(cfg.SenderEmail):
		return nil, fmt.Errorf("%w: SenderEmail %q is not a valid address", ErrInvalidConfig, cfg.SenderEmail)
	case !emailRegex.MatchString(cfg.SupportEmail):
		return nil, fmt.Errorf("%w: SupportEmail %q is not a valid address", ErrInvalidConfig, cfg.SupportEmail)
	}

	return &postmarkClient{
		client:  postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		from:    cfg.SenderEmail,
		replyTo: cfg.SupportEmail,
	}, nil
}

// MustNewPostmarkClient is NewPostmarkClient that panics on invalid config.
func MustNewPostmarkClient(cfg Config) EmailSender {
	sender, err := NewPostmarkClient(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

// SendEmail delivers through Postmark's transactional API. Replies go to
// the support address; opens and HTML link clicks are tracked.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       c.from,
		ReplyTo:    c.replyTo,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("postmark: %d %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
