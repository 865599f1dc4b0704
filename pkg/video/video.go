// Package video extracts provider video identifiers from URLs or bare IDs.
//
// Lesson articles reference their video either by a bare provider ID or by a
// full YouTube/Vimeo URL pasted into the CMS. Callers use ExtractID to
// normalize the field and render a "video unavailable" state instead of
// failing when nothing recognizable is found.
package video

import (
	"regexp"
	"strings"
)

// Provider identifies the video hosting service an ID belongs to.
type Provider string

const (
	ProviderYouTube Provider = "youtube"
	ProviderVimeo   Provider = "vimeo"
)

var (
	// YouTube IDs are exactly 11 characters of this class.
	youtubeIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
	}

	vimeoIDRe = regexp.MustCompile(`^\d+$`)

	vimeoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`player\.vimeo\.com/video/(\d+)`),
		regexp.MustCompile(`vimeo\.com/(\d+)`),
	}
)

// ExtractID returns the provider video ID found in input, which may be a bare
// ID or a full URL. It reports ok=false when no recognizable pattern matches.
//
// ExtractID is idempotent: applying it to an already-extracted ID returns the
// same ID unchanged.
func ExtractID(input string) (id string, provider Provider, ok bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "", false
	}

	// Bare numeric IDs are Vimeo; bare 11-char tokens are YouTube. Numeric
	// is checked first so an all-digit 11-char token keeps its Vimeo
	// interpretation on a second pass.
	if vimeoIDRe.MatchString(input) {
		return input, ProviderVimeo, true
	}
	if youtubeIDRe.MatchString(input) {
		return input, ProviderYouTube, true
	}

	for _, re := range youtubePatterns {
		if m := re.FindStringSubmatch(input); m != nil {
			return m[1], ProviderYouTube, true
		}
	}
	for _, re := range vimeoPatterns {
		if m := re.FindStringSubmatch(input); m != nil {
			return m[1], ProviderVimeo, true
		}
	}

	return "", "", false
}
