package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// webflowConfig holds CMS API credentials and the collection to import.
type webflowConfig struct {
	APIToken     string `env:"WEBFLOW_API_TOKEN,required"`
	CollectionID string `env:"WEBFLOW_COLLECTION_ID,required"`
	BaseURL      string `env:"WEBFLOW_BASE_URL" envDefault:"https://api.webflow.com/v2"`
}

var errWebflowAPI = errors.New("webflow API request failed")

// webflowItem is one CMS collection item. FieldData carries the
// collection-specific fields; the importer maps them by convention.
type webflowItem struct {
	ID          string         `json:"id"`
	CreatedOn   time.Time      `json:"createdOn"`
	LastUpdated time.Time      `json:"lastUpdated"`
	IsDraft     bool           `json:"isDraft"`
	IsArchived  bool           `json:"isArchived"`
	FieldData   map[string]any `json:"fieldData"`
}

// field returns a string field from the item's field data.
func (i webflowItem) field(key string) string {
	s, _ := i.FieldData[key].(string)
	return s
}

type webflowClient struct {
	http *http.Client
	cfg  webflowConfig
}

func newWebflowClient(cfg webflowConfig) *webflowClient {
	return &webflowClient{
		http: &http.Client{Timeout: 30 * time.Second},
		cfg:  cfg,
	}
}

// ListItems pages through the whole collection.
func (c *webflowClient) ListItems(ctx context.Context) ([]webflowItem, error) {
	const pageSize = 100

	var all []webflowItem
	for offset := 0; ; offset += pageSize {
		page, total, err := c.listPage(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(all) >= total || len(page) == 0 {
			return all, nil
		}
	}
}

func (c *webflowClient) listPage(ctx context.Context, offset, limit int) ([]webflowItem, int, error) {
	endpoint := fmt.Sprintf("%s/collections/%s/items?%s",
		c.cfg.BaseURL, c.cfg.CollectionID,
		url.Values{
			"offset": []string{strconv.Itoa(offset)},
			"limit":  []string{strconv.Itoa(limit)},
		}.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, errors.Join(errWebflowAPI, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, 0, errors.Join(errWebflowAPI, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("%w: status %d", errWebflowAPI, res.StatusCode)
	}

	var body struct {
		Items      []webflowItem `json:"items"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, 0, errors.Join(errWebflowAPI, err)
	}
	return body.Items, body.Pagination.Total, nil
}
