package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// DefaultSearchIndex is the OpenSearch index holding published articles.
const DefaultSearchIndex = "articles"

// SearchHit is one search result. The body is not returned: access gating
// happens on fetch, so search exposes only discovery metadata.
type SearchHit struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Type        string   `json:"type"`
	Categories  []string `json:"categories"`
	AccessLevel string   `json:"accessLevel"`
}

// SearchIndex indexes and queries published articles in OpenSearch.
type SearchIndex struct {
	client *opensearch.Client
	index  string
}

// NewSearchIndex creates a search index handle. An empty index name falls
// back to DefaultSearchIndex.
func NewSearchIndex(client *opensearch.Client, index string) *SearchIndex {
	if index == "" {
		index = DefaultSearchIndex
	}
	return &SearchIndex{client: client, index: index}
}

// Index writes the article document. Unpublished articles are removed from
// the index instead so drafts never surface in search.
func (s *SearchIndex) Index(ctx context.Context, a Article) error {
	if !a.Published {
		return s.Delete(ctx, a.ID)
	}

	doc, err := json.Marshal(map[string]any{
		"id":          a.ID,
		"title":       a.Title,
		"description": a.Description,
		"body":        a.Body,
		"slug":        a.Slug,
		"type":        a.Type,
		"categories":  a.Categories,
		"accessLevel": string(a.AccessLevel),
	})
	if err != nil {
		return errors.Join(ErrSearchUnavailable, err)
	}

	req := opensearchapi.IndexRequest{
		Index:      s.index,
		DocumentID: a.ID,
		Body:       bytes.NewReader(doc),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return errors.Join(ErrSearchUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: index %s: %s", ErrSearchUnavailable, a.ID, res.Status())
	}
	return nil
}

// Delete removes an article from the index. Missing documents are not an
// error.
func (s *SearchIndex) Delete(ctx context.Context, id string) error {
	req := opensearchapi.DeleteRequest{
		Index:      s.index,
		DocumentID: id,
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return errors.Join(ErrSearchUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("%w: delete %s: %s", ErrSearchUnavailable, id, res.Status())
	}
	return nil
}

// Search runs a full-text query over title, description, body and
// categories, title weighted highest.
func (s *SearchIndex) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 20
	}

	body, err := json.Marshal(map[string]any{
		"size": limit,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"title^3", "description^2", "body", "categories"},
			},
		},
	})
	if err != nil {
		return nil, errors.Join(ErrSearchUnavailable, err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, errors.Join(ErrSearchUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("%w: search: %s", ErrSearchUnavailable, res.Status())
	}

	return decodeHits(res.Body)
}

func decodeHits(r io.Reader) ([]SearchHit, error) {
	var envelope struct {
		Hits struct {
			Hits []struct {
				Source SearchHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, errors.Join(ErrSearchUnavailable, err)
	}

	out := make([]SearchHit, 0, len(envelope.Hits.Hits))
	for _, h := range envelope.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
