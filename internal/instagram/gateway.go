package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leadscope/mcpgram/pkg/apperr"
	"github.com/leadscope/mcpgram/pkg/pagination"
)

// Gateway talks JSON to a provider gateway service. It is the only place that
// knows the provider's HTTP surface; everything above it depends on Client.
type Gateway struct {
	baseURL  string
	http     *http.Client
	observer func(endpoint string, duration time.Duration, err error)
}

// NewGateway constructs a Gateway for the given base URL. A nil httpClient
// falls back to a client with a conservative per-request timeout.
func NewGateway(baseURL string, httpClient *http.Client) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// SetObserver installs a callback invoked after every provider request with
// the request path, elapsed time, and outcome. Nil disables observation.
func (g *Gateway) SetObserver(fn func(endpoint string, duration time.Duration, err error)) {
	g.observer = fn
}

// Authenticate implements Client.
func (g *Gateway) Authenticate(ctx context.Context, creds Credentials, deviceID string) error {
	body := map[string]string{
		"username":  creds.Username,
		"password":  creds.Password,
		"device_id": deviceID,
	}
	return g.post(ctx, "/v1/auth/login", body, nil)
}

// ResolveMediaByURL implements Client.
func (g *Gateway) ResolveMediaByURL(ctx context.Context, postURL string) (string, error) {
	var out struct {
		MediaID string `json:"media_id"`
	}
	q := url.Values{"url": {postURL}}
	if err := g.get(ctx, "/v1/media/resolve?"+q.Encode(), &out); err != nil {
		return "", err
	}
	if out.MediaID == "" {
		return "", fmt.Errorf("resolve %q: %w", postURL, apperr.ErrNotFound)
	}
	return out.MediaID, nil
}

// UserIDByHandle implements Client.
func (g *Gateway) UserIDByHandle(ctx context.Context, handle string) (string, error) {
	var out struct {
		PK string `json:"pk"`
	}
	if err := g.get(ctx, "/v1/users/by_handle/"+url.PathEscape(handle), &out); err != nil {
		return "", err
	}
	if out.PK == "" {
		return "", fmt.Errorf("handle %q: %w", handle, apperr.ErrNotFound)
	}
	return out.PK, nil
}

// UserInfo implements Client.
func (g *Gateway) UserInfo(ctx context.Context, userID string) (UserProfile, error) {
	var out UserProfile
	err := g.get(ctx, "/v1/users/"+url.PathEscape(userID), &out)
	return out, err
}

// MediaComments implements Client.
func (g *Gateway) MediaComments(mediaID string) pagination.CursorFeed[Comment] {
	return newGatewayFeed[Comment](g, "/v1/media/"+url.PathEscape(mediaID)+"/comments")
}

// MediaLikers implements Client.
func (g *Gateway) MediaLikers(mediaID string) pagination.CursorFeed[UserProfile] {
	return newGatewayFeed[UserProfile](g, "/v1/media/"+url.PathEscape(mediaID)+"/likers")
}

// AccountFollowers implements Client.
func (g *Gateway) AccountFollowers(userID string) pagination.CursorFeed[UserProfile] {
	return newGatewayFeed[UserProfile](g, "/v1/users/"+url.PathEscape(userID)+"/followers")
}

// AccountPosts implements Client.
func (g *Gateway) AccountPosts(userID string) pagination.CursorFeed[Post] {
	return newGatewayFeed[Post](g, "/v1/users/"+url.PathEscape(userID)+"/posts")
}

// gatewayFeed tracks the opaque cursor between page requests for one path.
type gatewayFeed[T any] struct {
	g      *Gateway
	path   string
	cursor string
}

func newGatewayFeed[T any](g *Gateway, path string) *gatewayFeed[T] {
	return &gatewayFeed[T]{g: g, path: path}
}

// NextPage implements pagination.CursorFeed.
func (f *gatewayFeed[T]) NextPage(ctx context.Context) (pagination.PageBatch[T], error) {
	var out struct {
		Items         []T    `json:"items"`
		NextCursor    string `json:"next_cursor"`
		MoreAvailable bool   `json:"more_available"`
	}
	path := f.path
	if f.cursor != "" {
		q := url.Values{"cursor": {f.cursor}}
		path += "?" + q.Encode()
	}
	if err := f.g.get(ctx, path, &out); err != nil {
		return pagination.PageBatch[T]{}, err
	}
	f.cursor = out.NextCursor
	return pagination.PageBatch[T]{
		Items:   out.Items,
		HasMore: out.MoreAvailable && out.NextCursor != "",
	}, nil
}

func (g *Gateway) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	return g.do(req, out)
}

func (g *Gateway) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("gateway: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return g.do(req, out)
}

func (g *Gateway) do(req *http.Request, out any) (err error) {
	if g.observer != nil {
		start := time.Now()
		defer func() { g.observer(req.URL.Path, time.Since(start), err) }()
	}

	res, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = res.Body.Close() }()

	if err := classifyStatus(res); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode %s: %w", req.URL.Path, err)
	}
	return nil
}

// classifyStatus maps gateway HTTP statuses onto the apperr sentinels so the
// rest of the system reacts by failure kind instead of status code.
func classifyStatus(res *http.Response) error {
	switch {
	case res.StatusCode < 300:
		return nil
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return fmt.Errorf("gateway: %s: %w", res.Status, apperr.ErrAuthRequired)
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("gateway: %s: %w", res.Status, apperr.ErrNotFound)
	case res.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("gateway: %s: %w", res.Status, apperr.ErrRateLimited)
	default:
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return fmt.Errorf("gateway: %s: %s", res.Status, strings.TrimSpace(string(snippet)))
	}
}
