package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DevSender writes outbound mail into a local directory instead of going
// through a provider. Each send produces an .html file with the body and a
// .json sidecar with the envelope, named by timestamp and tag.
type DevSender struct {
	dir string
}

// NewDevSender returns a sender that drops emails into dir. The directory
// is created on first send.
func NewDevSender(dir string) EmailSender {
	return &DevSender{dir: dir}
}

func (d *DevSender) SendEmail(_ context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create outbox dir: %v", ErrFailedToSendEmail, err)
	}

	label := params.Tag
	if label == "" {
		label = params.Subject
	}
	now := time.Now()
	name := now.Format("2006_01_02_150405") + "_" + filenameSafe(label)

	if err := os.WriteFile(filepath.Join(d.dir, name+".html"), []byte(params.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: write body: %v", ErrFailedToSendEmail, err)
	}

	envelope, err := json.MarshalIndent(map[string]string{
		"timestamp": now.Format(time.RFC3339),
		"send_to":   params.SendTo,
		"subject":   params.Subject,
		"tag":       params.Tag,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode envelope: %v", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, name+".json"), envelope, 0o644); err != nil {
		return fmt.Errorf("%w: write envelope: %v", ErrFailedToSendEmail, err)
	}
	return nil
}

// filenameSafe lowercases s and keeps only characters that are safe in a
// filename, mapping spaces to underscores.
func filenameSafe(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	out := b.String()
	if len(out) > 100 {
		out = out[:100]
	}
	if out == "" {
		return "email"
	}
	return out
}
