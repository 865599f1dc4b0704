package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/growthlab/pkg/slug"
	"github.com/dmitrymomot/growthlab/pkg/video"
	"github.com/dmitrymomot/growthlab/svc/content"
)

var titleCaser = cases.Title(language.English)

// assetUploader mirrors a remote asset and returns its new public URL.
// Implemented by the S3 mirror; nil disables asset migration.
type assetUploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// imgSrcPattern matches image sources in the CMS rich-text HTML.
var imgSrcPattern = regexp.MustCompile(`<img[^>]+src="([^"]+)"`)

// transform maps one CMS item onto the article shape. The body HTML passes
// through as-is apart from asset URL rewriting.
func transform(ctx context.Context, item webflowItem, assets assetUploader) (content.Article, error) {
	title := item.field("name")
	if title == "" {
		return content.Article{}, fmt.Errorf("item %s has no name", item.ID)
	}

	a := content.Article{
		ID:          item.ID,
		Title:       title,
		Description: item.field("description"),
		Type:        articleType(item),
		Categories:  categories(item),
		AccessLevel: accessLevel(item),
		Body:        item.field("body"),
		Slug:        articleSlug(item),
		CreatedAt:   item.CreatedOn,
		UpdatedAt:   item.LastUpdated,
		Published:   !item.IsDraft && !item.IsArchived,
	}

	if raw := item.field("video-url"); raw != "" {
		id, _, ok := video.ExtractID(raw)
		if !ok {
			// The article survives without its video; the reader gets a
			// "video unavailable" state instead of a broken embed.
			fmt.Printf("  warn: unrecognized video reference %q\n", raw)
		}
		a.VideoID = id
	}

	if assets != nil && a.Body != "" {
		body, err := rewriteAssets(ctx, a.Body, item.ID, assets)
		if err != nil {
			return content.Article{}, err
		}
		a.Body = body
	}

	return a, nil
}

func articleSlug(item webflowItem) string {
	if s := item.field("slug"); s != "" {
		return slug.Make(s)
	}
	return slug.Make(item.field("name"))
}

func articleType(item webflowItem) string {
	if t := item.field("type"); t != "" {
		return strings.ToLower(t)
	}
	return "article"
}

// categories normalizes the category list to title case, accepting either a
// single string or a list field.
func categories(item webflowItem) []string {
	var raw []string
	switch v := item.FieldData["categories"].(type) {
	case string:
		raw = strings.Split(v, ",")
	case []any:
		for _, c := range v {
			if s, ok := c.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	var out []string
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c != "" {
			out = append(out, titleCaser.String(c))
		}
	}
	return out
}

func accessLevel(item webflowItem) content.AccessLevel {
	if free, ok := item.FieldData["free"].(bool); ok && free {
		return content.AccessFree
	}
	if strings.EqualFold(item.field("access-level"), string(content.AccessFree)) {
		return content.AccessFree
	}
	return content.AccessMember
}

// rewriteAssets mirrors every image referenced by the body into our own
// storage and swaps the URLs. A single unfetchable asset fails the record;
// the batch continues with the next one.
func rewriteAssets(ctx context.Context, body, itemID string, assets assetUploader) (string, error) {
	matches := imgSrcPattern.FindAllStringSubmatch(body, -1)
	seen := make(map[string]string, len(matches))

	for _, m := range matches {
		src := m[1]
		if _, done := seen[src]; done || !strings.HasPrefix(src, "http") {
			continue
		}

		data, contentType, err := fetchAsset(ctx, src)
		if err != nil {
			return "", fmt.Errorf("fetch asset %s: %w", src, err)
		}

		key := "articles/" + itemID + "/" + path.Base(src)
		newURL, err := assets.Upload(ctx, key, contentType, data)
		if err != nil {
			return "", fmt.Errorf("upload asset %s: %w", src, err)
		}
		seen[src] = newURL
	}

	for src, newURL := range seen {
		body = strings.ReplaceAll(body, src, newURL)
	}
	return body, nil
}

func fetchAsset(ctx context.Context, src string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, "", err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, "", errors.New("status " + res.Status)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, 32<<20))
	if err != nil {
		return nil, "", err
	}
	return data, res.Header.Get("Content-Type"), nil
}
