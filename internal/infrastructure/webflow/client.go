// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package webflow

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/httpclient"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/metrics"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/utils"
)

var (
	errItemNotVisible = stderrors.New("item not visible yet")
	errLookupRejected = stderrors.New("item lookup rejected")
)

// metricsRoundTripper records the duration of every request sent to Webflow
type metricsRoundTripper struct {
	metrics *metrics.Metrics
}

func (rt *metricsRoundTripper) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	start := time.Now()
	resp, err := next(req)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	rt.metrics.DownstreamRequest(req.Method, statusCode, time.Since(start))

	return resp, err
}

// Client writes items into one Webflow CMS collection
type Client struct {
	config     Config
	httpClient *httpclient.Client
	metrics    *metrics.Metrics

	// conflictRetry bounds the lookups made after a create conflict
	conflictRetry utils.RetryConfig
}

// NewClient creates a new Webflow client with the given configuration
func NewClient(cfg Config, m *metrics.Metrics) (*Client, error) {
	if cfg.APIToken == "" || cfg.CollectionID == "" {
		return nil, fmt.Errorf("api token and collection id are required for Webflow client")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	// bearer token on every request, spans around every request
	transport := otelhttp.NewTransport(&oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIToken}),
		Base:   http.DefaultTransport,
	})

	httpConfig := httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
		RetryBackoff: true,
		MaxDelay:     30 * time.Second,
		Transport:    transport,
	}

	client := &Client{
		config:     cfg,
		httpClient: httpclient.NewClient(httpConfig),
		metrics:    m,
		conflictRetry: utils.RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   100 * time.Millisecond,
			MaxDelay:    500 * time.Millisecond,
			ShouldRetry: func(err error) bool {
				return stderrors.Is(err, errItemNotVisible)
			},
		},
	}
	client.httpClient.AddRoundTripper(&metricsRoundTripper{metrics: m})

	slog.InfoContext(context.Background(), "Webflow client initialized",
		"base_url", cfg.BaseURL,
		"collection_id", cfg.CollectionID,
	)

	return client, nil
}

// UpsertItem updates the item holding the slug, or creates it when none does
func (c *Client) UpsertItem(ctx context.Context, fieldData model.ItemFieldData) (*model.UpsertResult, error) {
	slug := fieldData.SlugValue()
	payload := model.NewPublishedItemPayload(fieldData)

	item, lookup, err := c.findItemBySlug(ctx, slug)
	if lookup == nil {
		return nil, err
	}
	if err != nil {
		slog.WarnContext(ctx, "collection item lookup rejected",
			"slug", slug,
			"status_code", lookup.StatusCode,
			"error", err,
		)
		return c.record(&model.UpsertResult{
			Action:     model.UpsertActionNone,
			StatusCode: lookup.StatusCode,
			Body:       model.DecodeResponseBody(lookup.Body),
			Err:        err,
		}), nil
	}

	if item != nil {
		return c.updateItem(ctx, item.ItemID(), payload)
	}

	result, err := c.createItem(ctx, payload)
	if err != nil {
		return nil, err
	}

	var conflict errors.Conflict
	if !stderrors.As(result.Err, &conflict) {
		return c.record(result), nil
	}

	return c.resolveCreateConflict(ctx, slug, payload, result)
}

// IsReady checks that the client has what it needs to reach the collection
func (c *Client) IsReady(ctx context.Context) error {
	if c.config.APIToken == "" || c.config.CollectionID == "" {
		return errors.NewServiceUnavailable("Webflow client is not configured")
	}
	return nil
}

// resolveCreateConflict handles a create that lost a race with another
// writer for the same slug: the winner's item is looked up and updated.
func (c *Client) resolveCreateConflict(ctx context.Context, slug string, payload model.ItemPayload, conflict *model.UpsertResult) (*model.UpsertResult, error) {
	slog.InfoContext(ctx, "create conflicted, looking the item up again", "slug", slug)

	var existing *model.CollectionItem
	err := utils.RetryWithExponentialBackoff(ctx, c.conflictRetry, func() error {
		item, lookup, errLookup := c.findItemBySlug(ctx, slug)
		if lookup == nil {
			return errLookup
		}
		if errLookup != nil {
			return fmt.Errorf("%w: %w", errLookupRejected, errLookup)
		}
		if item == nil {
			return errItemNotVisible
		}
		existing = item
		return nil
	})

	switch {
	case err == nil:
		return c.updateItem(ctx, existing.ItemID(), payload)
	case stderrors.Is(err, errItemNotVisible), stderrors.Is(err, errLookupRejected):
		slog.WarnContext(ctx, "conflicting item not found, returning create response",
			"slug", slug,
			"error", err,
		)
		return c.record(conflict), nil
	default:
		return nil, err
	}
}

func (c *Client) findItemBySlug(ctx context.Context, slug string) (*model.CollectionItem, *httpclient.Response, error) {
	query := url.Values{"slug": {slug}}

	resp, err := c.send(ctx, http.MethodGet, c.itemsURL()+"?"+query.Encode(), nil)
	if err != nil {
		return nil, resp, err
	}

	var list model.ListItemsResponse
	if errUnmarshal := json.Unmarshal(resp.Body, &list); errUnmarshal != nil {
		slog.DebugContext(ctx, "undecodable item list, treating as empty",
			"slug", slug,
			"error", errUnmarshal,
		)
		return nil, resp, nil
	}
	if len(list.Items) == 0 {
		return nil, resp, nil
	}

	return &list.Items[0], resp, nil
}

func (c *Client) updateItem(ctx context.Context, itemID string, payload model.ItemPayload) (*model.UpsertResult, error) {
	slog.InfoContext(ctx, "updating collection item",
		"item_id", itemID,
		"slug", payload.FieldData.SlugValue(),
	)

	resp, err := c.send(ctx, http.MethodPatch, c.itemsURL()+"/"+url.PathEscape(itemID), payload)
	if resp == nil {
		return nil, err
	}

	return c.record(&model.UpsertResult{
		Action:     model.UpsertActionUpdated,
		ItemID:     itemID,
		StatusCode: resp.StatusCode,
		Body:       model.DecodeResponseBody(resp.Body),
		Err:        err,
	}), nil
}

func (c *Client) createItem(ctx context.Context, payload model.ItemPayload) (*model.UpsertResult, error) {
	slog.InfoContext(ctx, "creating collection item",
		"slug", payload.FieldData.SlugValue(),
	)

	resp, err := c.send(ctx, http.MethodPost, c.itemsURL(), payload)
	if resp == nil {
		return nil, err
	}

	result := &model.UpsertResult{
		Action:     model.UpsertActionCreated,
		StatusCode: resp.StatusCode,
		Body:       model.DecodeResponseBody(resp.Body),
		Err:        err,
	}

	var created model.CollectionItem
	if json.Unmarshal(resp.Body, &created) == nil {
		result.ItemID = created.ItemID()
	}

	return result, nil
}

// send performs one request. Every answered request returns its response;
// a non-2xx answer also returns the domain error for its status, and a
// transport failure returns only the error.
func (c *Client) send(ctx context.Context, method, endpoint string, payload any) (*httpclient.Response, error) {
	var (
		body    []byte
		headers map[string]string
	)

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.NewUnexpected("failed to encode collection item", err)
		}
		body = encoded
		headers = map[string]string{
			constants.ContentTypeHeader: constants.ContentTypeJSON,
		}
	}

	resp, err := c.httpClient.Request(ctx, method, endpoint, body, headers)
	if err != nil {
		if !isStatusError(err) {
			resp = nil
		}
		return resp, MapHTTPError(ctx, err)
	}

	return resp, nil
}

func (c *Client) record(result *model.UpsertResult) *model.UpsertResult {
	c.metrics.ItemUpserted(string(result.Action), result.StatusCode)
	return result
}

func (c *Client) itemsURL() string {
	return fmt.Sprintf("%s/v2/collections/%s/items", c.config.BaseURL, url.PathEscape(c.config.CollectionID))
}

var _ port.CollectionItemWriter = (*Client)(nil)
