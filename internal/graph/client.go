// Package graph is a small client for the ad platform's Graph REST API:
// the authenticated profile, ad accounts, their pixels and the server-side
// conversions endpoint.
package graph

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
)

// maxPages bounds cursor pagination on list endpoints.
const maxPages = 20

type Client struct {
	BaseURL       string
	AppSecret     string
	TestEventCode string
	HTTPClient    *http.Client
}

// NewClient builds a client for baseURL/version. Every request made through
// it is bounded by timeout.
func NewClient(baseURL string, version string, appSecret string, timeout time.Duration) *Client {
	base := strings.TrimRight(baseURL, "/")
	if v := strings.Trim(version, "/"); v != "" {
		base = base + "/" + v
	}

	return &Client{
		BaseURL:   base,
		AppSecret: appSecret,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AdAccount struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

type Pixel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type params struct {
	AccessToken    string `url:"access_token"`
	AppSecretProof string `url:"appsecret_proof,omitempty"`
	Fields         string `url:"fields,omitempty"`
	Limit          int    `url:"limit,omitempty"`
	After          string `url:"after,omitempty"`
}

type paging struct {
	Cursors struct {
		After string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next"`
}

type listEnvelope[T any] struct {
	Data   []T    `json:"data"`
	Paging paging `json:"paging"`
}

// Me returns the profile behind token.
func (c *Client) Me(ctx context.Context, token string) (Profile, error) {
	var p Profile
	err := c.get(ctx, "/me", c.params(token, "id,name,email"), &p)
	return p, err
}

// AdAccounts lists every ad account the token's owner can access.
func (c *Client) AdAccounts(ctx context.Context, token string) ([]AdAccount, error) {
	return list[AdAccount](ctx, c, "/me/adaccounts", c.params(token, "id,account_id,name"))
}

// OwnedPixels lists the pixels owned by an ad account. Both "act_<id>" and
// bare numeric ids are accepted.
func (c *Client) OwnedPixels(ctx context.Context, token string, accountID string) ([]Pixel, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, errors.New("graph: empty ad account id")
	}
	if !strings.HasPrefix(accountID, "act_") {
		accountID = "act_" + accountID
	}

	return list[Pixel](ctx, c, "/"+url.PathEscape(accountID)+"/owned_pixels", c.params(token, "id,name"))
}

func list[T any](ctx context.Context, c *Client, path string, p params) ([]T, error) {
	var out []T
	p.Limit = 100

	for page := 0; page < maxPages; page++ {
		var env listEnvelope[T]
		if err := c.get(ctx, path, p, &env); err != nil {
			return nil, err
		}
		out = append(out, env.Data...)

		if env.Paging.Next == "" || env.Paging.Cursors.After == "" {
			break
		}
		p.After = env.Paging.Cursors.After
	}

	return out, nil
}

func (c *Client) params(token string, fields string) params {
	return params{
		AccessToken:    token,
		AppSecretProof: c.proof(token),
		Fields:         fields,
	}
}

// proof is the appsecret_proof the platform requires when the app enforces
// it: hex HMAC-SHA256 of the access token keyed by the app secret.
func (c *Client) proof(token string) string {
	if c.AppSecret == "" || token == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(c.AppSecret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) get(ctx context.Context, path string, p params, out any) error {
	return c.do(ctx, http.MethodGet, path, p, nil, out)
}

func (c *Client) do(ctx context.Context, method string, path string, p params, body any, out any) error {
	values, err := query.Values(p)
	if err != nil {
		return errors.Wrap(err, "graph: encode query")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "graph: encode body")
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.BaseURL + path + "?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, "graph: build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		// *url.Error repeats the full URL, access token included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return errors.Wrapf(err, "graph: %s %s", method, path)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return errors.Wrapf(err, "graph: read %s", path)
	}

	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "graph: decode %s", path)
	}
	return nil
}

// APIError is the error object the Graph API returns on failed calls.
type APIError struct {
	Status    int    `json:"-"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	Subcode   int    `json:"error_subcode"`
	FBTraceID string `json:"fbtrace_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph: %s (status %d, code %d, type %s)", e.Message, e.Status, e.Code, e.Type)
}

func decodeError(status int, raw []byte) error {
	var env struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || env.Error == nil {
		msg := strings.TrimSpace(string(raw))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{Status: status, Message: msg}
	}

	env.Error.Status = status
	return env.Error
}

// IsPermissionError reports whether err is a Graph permission failure
// (code 10 or the 200-299 permission range).
func IsPermissionError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == 10 || (apiErr.Code >= 200 && apiErr.Code < 300)
}

// IsTokenError reports whether err means the access token is invalid or expired.
func IsTokenError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == 190 {
		return true
	}
	return apiErr.Status == http.StatusUnauthorized && apiErr.Type == "OAuthException"
}
