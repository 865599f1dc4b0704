package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/growthlab/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  email.SendEmailParams
		wantErr bool
	}{
		{
			name: "valid params",
			params: email.SendEmailParams{
				SendTo:   "member@example.com",
				Subject:  "Welcome to Growthlab",
				BodyHTML: "<p>hi</p>",
			},
		},
		{
			name: "missing recipient",
			params: email.SendEmailParams{
				Subject:  "Welcome",
				BodyHTML: "<p>hi</p>",
			},
			wantErr: true,
		},
		{
			name: "malformed recipient",
			params: email.SendEmailParams{
				SendTo:   "not-an-email",
				Subject:  "Welcome",
				BodyHTML: "<p>hi</p>",
			},
			wantErr: true,
		},
		{
			name: "missing subject",
			params: email.SendEmailParams{
				SendTo:   "member@example.com",
				BodyHTML: "<p>hi</p>",
			},
			wantErr: true,
		},
		{
			name: "missing body",
			params: email.SendEmailParams{
				SendTo:  "member@example.com",
				Subject: "Welcome",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, email.ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPostmarkClient_RequiresTokens(t *testing.T) {
	t.Parallel()

	_, err := email.NewPostmarkClient(email.Config{
		SenderEmail:  "noreply@growthlab.io",
		SupportEmail: "support@growthlab.io",
	})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}

func TestDevSender_WritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir)

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "member@example.com",
		Subject:  "Subscription cancelled",
		BodyHTML: "<p>Sorry to see you go</p>",
		Tag:      "subscription-cancelled",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlFile, jsonFile string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlFile = filepath.Join(dir, e.Name())
		case ".json":
			jsonFile = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, htmlFile)
	require.NotEmpty(t, jsonFile)

	html, err := os.ReadFile(htmlFile)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Sorry to see you go")

	raw, err := os.ReadFile(jsonFile)
	require.NoError(t, err)
	var meta map[string]string
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "member@example.com", meta["send_to"])
	assert.Equal(t, "subscription-cancelled", meta["tag"])
	assert.True(t, strings.Contains(filepath.Base(htmlFile), "subscription-cancelled"))
}
