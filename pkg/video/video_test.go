package video_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/growthlab/pkg/video"
)

func TestExtractID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantID       string
		wantProvider video.Provider
		wantOK       bool
	}{
		{
			name:         "youtube watch URL",
			input:        "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantID:       "dQw4w9WgXcQ",
			wantProvider: video.ProviderYouTube,
			wantOK:       true,
		},
		{
			name:         "youtube watch URL with extra params",
			input:        "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42s",
			wantID:       "dQw4w9WgXcQ",
			wantProvider: video.ProviderYouTube,
			wantOK:       true,
		},
		{
			name:         "youtu.be short URL",
			input:        "https://youtu.be/dQw4w9WgXcQ",
			wantID:       "dQw4w9WgXcQ",
			wantProvider: video.ProviderYouTube,
			wantOK:       true,
		},
		{
			name:         "youtube embed URL",
			input:        "https://www.youtube.com/embed/dQw4w9WgXcQ",
			wantID:       "dQw4w9WgXcQ",
			wantProvider: video.ProviderYouTube,
			wantOK:       true,
		},
		{
			name:         "bare youtube ID",
			input:        "dQw4w9WgXcQ",
			wantID:       "dQw4w9WgXcQ",
			wantProvider: video.ProviderYouTube,
			wantOK:       true,
		},
		{
			name:         "vimeo page URL",
			input:        "https://vimeo.com/76979871",
			wantID:       "76979871",
			wantProvider: video.ProviderVimeo,
			wantOK:       true,
		},
		{
			name:         "vimeo player URL",
			input:        "https://player.vimeo.com/video/76979871",
			wantID:       "76979871",
			wantProvider: video.ProviderVimeo,
			wantOK:       true,
		},
		{
			name:         "bare numeric ID is vimeo",
			input:        "76979871",
			wantID:       "76979871",
			wantProvider: video.ProviderVimeo,
			wantOK:       true,
		},
		{
			name:   "unrecognizable input",
			input:  "https://example.com/watch?v=nope",
			wantOK: false,
		},
		{
			name:   "empty input",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, provider, ok := video.ExtractID(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantID, id)
				assert.Equal(t, tt.wantProvider, provider)
			}
		})
	}
}

func TestExtractID_Idempotent(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://vimeo.com/76979871",
		"76979871",
	} {
		id, _, ok := video.ExtractID(input)
		require.True(t, ok)

		again, _, ok := video.ExtractID(id)
		require.True(t, ok)
		assert.Equal(t, id, again)
	}
}
