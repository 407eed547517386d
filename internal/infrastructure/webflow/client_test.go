// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package webflow

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/metrics"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/utils"
)

const (
	testToken        = "wf-token"
	testCollectionID = "col-1"
	itemsPath        = "/v2/collections/col-1/items"
)

type recordedRequest struct {
	Method        string
	Path          string
	Slug          string
	Authorization string
	ContentType   string
	Body          []byte
}

// fakeCollection is a scripted Webflow collection API
type fakeCollection struct {
	mu       sync.Mutex
	requests []recordedRequest

	lookup func(call int) (int, string)
	create func() (int, string)
	update func(itemID string) (int, string)

	lookups int
}

func (f *fakeCollection) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Slug:          r.URL.Query().Get("slug"),
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          body,
	})
	f.mu.Unlock()

	status, response := http.StatusNotFound, `{}`
	switch {
	case r.Method == http.MethodGet && r.URL.Path == itemsPath:
		f.mu.Lock()
		call := f.lookups
		f.lookups++
		f.mu.Unlock()
		status, response = f.lookup(call)
	case r.Method == http.MethodPost && r.URL.Path == itemsPath:
		status, response = f.create()
	case r.Method == http.MethodPatch && len(r.URL.Path) > len(itemsPath)+1:
		status, response = f.update(r.URL.Path[len(itemsPath)+1:])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(response))
}

func (f *fakeCollection) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	methods := make([]string, 0, len(f.requests))
	for _, r := range f.requests {
		methods = append(methods, r.Method)
	}
	return methods
}

func (f *fakeCollection) last(method string) recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].Method == method {
			return f.requests[i]
		}
	}
	return recordedRequest{}
}

func emptyLookup(int) (int, string) {
	return http.StatusOK, `{"items":[]}`
}

func newTestClient(t *testing.T, fake *fakeCollection) *Client {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.APIToken = testToken
	cfg.CollectionID = testCollectionID
	cfg.Timeout = 5 * time.Second

	client, err := NewClient(cfg, metrics.New(prometheus.NewRegistry()))
	require.NoError(t, err)

	client.conflictRetry = utils.RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
		ShouldRetry: client.conflictRetry.ShouldRetry,
	}

	return client
}

func helloFieldData() model.ItemFieldData {
	return model.ItemFieldData{
		Name: utils.StringPtr("Hello"),
		Slug: utils.StringPtr("hello"),
	}
}

func TestUpsertItem_ExistingSlugUpdates(t *testing.T) {
	tests := []struct {
		name       string
		lookupBody string
		wantID     string
	}{
		{
			name:       "legacy _id",
			lookupBody: `{"items":[{"_id":"item-legacy","id":"item-new"}]}`,
			wantID:     "item-legacy",
		},
		{
			name:       "id only",
			lookupBody: `{"items":[{"id":"item-new"}]}`,
			wantID:     "item-new",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patchedID string
			fake := &fakeCollection{
				lookup: func(int) (int, string) { return http.StatusOK, tt.lookupBody },
				create: func() (int, string) {
					t.Error("create must not be called for an existing slug")
					return 0, ""
				},
				update: func(itemID string) (int, string) {
					patchedID = itemID
					return http.StatusOK, `{"id":"` + itemID + `","fieldData":{"slug":"hello"}}`
				},
			}
			client := newTestClient(t, fake)

			result, err := client.UpsertItem(context.Background(), helloFieldData())
			require.NoError(t, err)

			assert.Equal(t, []string{http.MethodGet, http.MethodPatch}, fake.methods())
			assert.Equal(t, tt.wantID, patchedID)
			assert.Equal(t, model.UpsertActionUpdated, result.Action)
			assert.Equal(t, tt.wantID, result.ItemID)
			assert.Equal(t, http.StatusOK, result.StatusCode)
			assert.True(t, result.Succeeded())

			get := fake.last(http.MethodGet)
			assert.Equal(t, "hello", get.Slug)
			assert.Equal(t, "Bearer "+testToken, get.Authorization)

			patch := fake.last(http.MethodPatch)
			assert.Equal(t, "Bearer "+testToken, patch.Authorization)
			assert.Equal(t, "application/json", patch.ContentType)
			assert.JSONEq(t, `{"isArchived":false,"isDraft":false,"fieldData":{"name":"Hello","slug":"hello"}}`, string(patch.Body))
		})
	}
}

func TestUpsertItem_MissingSlugCreates(t *testing.T) {
	fake := &fakeCollection{
		lookup: emptyLookup,
		create: func() (int, string) {
			return http.StatusAccepted, `{"id":"item-9","fieldData":{"name":"Hello","slug":"hello"}}`
		},
		update: func(string) (int, string) {
			t.Error("update must not be called for a missing slug")
			return 0, ""
		},
	}
	client := newTestClient(t, fake)

	fieldData := helloFieldData()
	fieldData.Content = utils.StringPtr("Body")

	result, err := client.UpsertItem(context.Background(), fieldData)
	require.NoError(t, err)

	assert.Equal(t, []string{http.MethodGet, http.MethodPost}, fake.methods())
	assert.Equal(t, model.UpsertActionCreated, result.Action)
	assert.Equal(t, "item-9", result.ItemID)
	assert.Equal(t, http.StatusAccepted, result.StatusCode)

	post := fake.last(http.MethodPost)
	assert.Equal(t, "Bearer "+testToken, post.Authorization)
	assert.Equal(t, "application/json", post.ContentType)
	assert.JSONEq(t,
		`{"isArchived":false,"isDraft":false,"fieldData":{"name":"Hello","slug":"hello","content":"Body"}}`,
		string(post.Body))

	body, ok := result.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "item-9", body["id"])
}

func TestUpsertItem_CreateConflictUpdatesExisting(t *testing.T) {
	fake := &fakeCollection{
		lookup: func(call int) (int, string) {
			if call < 2 {
				return http.StatusOK, `{"items":[]}`
			}
			return http.StatusOK, `{"items":[{"id":"item-raced"}]}`
		},
		create: func() (int, string) {
			return http.StatusConflict, `{"code":"duplicate_value","message":"slug already in use"}`
		},
		update: func(itemID string) (int, string) {
			return http.StatusOK, `{"id":"` + itemID + `"}`
		},
	}
	client := newTestClient(t, fake)

	result, err := client.UpsertItem(context.Background(), helloFieldData())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{http.MethodGet, http.MethodPost, http.MethodGet, http.MethodGet, http.MethodPatch},
		fake.methods())
	assert.Equal(t, model.UpsertActionUpdated, result.Action)
	assert.Equal(t, "item-raced", result.ItemID)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.NoError(t, result.Err)
}

func TestUpsertItem_CreateConflictWithoutVisibleItem(t *testing.T) {
	fake := &fakeCollection{
		lookup: emptyLookup,
		create: func() (int, string) {
			return http.StatusConflict, `{"message":"slug already in use"}`
		},
		update: func(string) (int, string) {
			t.Error("update must not be called without a found item")
			return 0, ""
		},
	}
	client := newTestClient(t, fake)

	result, err := client.UpsertItem(context.Background(), helloFieldData())
	require.NoError(t, err)

	// initial lookup, create, then the bounded re-lookups
	assert.Equal(t,
		[]string{http.MethodGet, http.MethodPost, http.MethodGet, http.MethodGet, http.MethodGet},
		fake.methods())
	assert.Equal(t, model.UpsertActionCreated, result.Action)
	assert.Equal(t, http.StatusConflict, result.StatusCode)
	assert.False(t, result.Succeeded())

	var conflict errors.Conflict
	assert.True(t, stderrors.As(result.Err, &conflict))
}

func TestUpsertItem_DownstreamRejectionIsNotAnError(t *testing.T) {
	fake := &fakeCollection{
		lookup: func(int) (int, string) { return http.StatusOK, `{"items":[{"_id":"item-1"}]}` },
		create: func() (int, string) { return http.StatusOK, `{}` },
		update: func(string) (int, string) {
			return http.StatusBadRequest, `{"code":"validation_error","message":"Validation Error"}`
		},
	}
	client := newTestClient(t, fake)

	result, err := client.UpsertItem(context.Background(), helloFieldData())
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	assert.False(t, result.Succeeded())
	assert.Equal(t, map[string]any{"code": "validation_error", "message": "Validation Error"}, result.Body)

	var validation errors.Validation
	assert.True(t, stderrors.As(result.Err, &validation))
}

func TestUpsertItem_UpdateStatusCarriesDomainError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "item gone",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var target errors.NotFound
				assert.True(t, stderrors.As(err, &target))
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				var target errors.ServiceUnavailable
				assert.True(t, stderrors.As(err, &target))
			},
		},
		{
			name:   "token rejected",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var target errors.BadGateway
				assert.True(t, stderrors.As(err, &target))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCollection{
				lookup: func(int) (int, string) { return http.StatusOK, `{"items":[{"id":"item-1"}]}` },
				create: func() (int, string) {
					t.Error("create must not be called for an existing slug")
					return 0, ""
				},
				update: func(string) (int, string) { return tt.status, `{"message":"rejected"}` },
			}
			client := newTestClient(t, fake)

			result, err := client.UpsertItem(context.Background(), helloFieldData())
			require.NoError(t, err)

			assert.Equal(t, model.UpsertActionUpdated, result.Action)
			assert.Equal(t, tt.status, result.StatusCode)
			assert.False(t, result.Succeeded())
			tt.check(t, result.Err)
		})
	}
}

func TestUpsertItem_UndecodableBodyBecomesEmptyObject(t *testing.T) {
	fake := &fakeCollection{
		lookup: emptyLookup,
		create: func() (int, string) { return http.StatusOK, `not json` },
		update: func(string) (int, string) { return http.StatusOK, `{}` },
	}
	client := newTestClient(t, fake)

	result, err := client.UpsertItem(context.Background(), helloFieldData())
	require.NoError(t, err)

	assert.Equal(t, map[string]any{}, result.Body)
	assert.Empty(t, result.ItemID)
}

func TestUpsertItem_LookupRejected(t *testing.T) {
	fake := &fakeCollection{
		lookup: func(int) (int, string) { return http.StatusUnauthorized, `{"message":"invalid token"}` },
		create: func() (int, string) {
			t.Error("create must not be called after a rejected lookup")
			return 0, ""
		},
		update: func(string) (int, string) {
			t.Error("update must not be called after a rejected lookup")
			return 0, ""
		},
	}
	client := newTestClient(t, fake)

	result, err := client.UpsertItem(context.Background(), helloFieldData())
	require.NoError(t, err)

	assert.Equal(t, []string{http.MethodGet}, fake.methods())
	assert.Equal(t, model.UpsertActionNone, result.Action)
	assert.Equal(t, http.StatusUnauthorized, result.StatusCode)
	assert.Equal(t, map[string]any{"message": "invalid token"}, result.Body)

	var badGateway errors.BadGateway
	assert.True(t, stderrors.As(result.Err, &badGateway))
}

func TestUpsertItem_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.APIToken = testToken
	cfg.CollectionID = testCollectionID
	cfg.Timeout = time.Second

	client, err := NewClient(cfg, nil)
	require.NoError(t, err)

	result, err := client.UpsertItem(context.Background(), helloFieldData())
	require.Error(t, err)
	assert.Nil(t, result)

	var badGateway errors.BadGateway
	require.True(t, stderrors.As(err, &badGateway))
	assert.Equal(t, "Upstream request failed", badGateway.Message())
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		cid     string
		wantErr bool
	}{
		{name: "configured", token: "t", cid: "c"},
		{name: "missing token", cid: "c", wantErr: true},
		{name: "missing collection", token: "t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.APIToken = tt.token
			cfg.CollectionID = tt.cid

			client, err := NewClient(cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, client.IsReady(context.Background()))
			assert.Equal(t, "https://api.webflow.com/v2/collections/c/items", client.itemsURL())
		})
	}
}

func TestItemPayloadEncoding(t *testing.T) {
	payload := model.NewPublishedItemPayload(helloFieldData())

	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isArchived":false,"isDraft":false,"fieldData":{"name":"Hello","slug":"hello"}}`, string(encoded))
}
