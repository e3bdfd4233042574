package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fediwatch/reporter/pkg/fedi"
)

// pageLimit is the page size requested from the relationship endpoints, the
// maximum the Mastodon API allows.
const pageLimit = 80

const (
	InstanceURL          = "/api/v1/instance"
	VerifyCredentialsURL = "/api/v1/accounts/verify_credentials"
	AccountsURL          = "/api/v1/accounts"
)

// APIError is a non-success response from the server, carrying the error
// message the API puts in the body when it sends one.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api responded with status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL string

	token  string
	client *http.Client
}

func NewClient(server, token string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(server, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) Instance(ctx context.Context) (*fedi.Instance, error) {
	var inst fedi.Instance
	_, err := c.get(ctx, c.BaseURL+InstanceURL, &inst)
	if err != nil {
		return nil, err
	}

	return &inst, nil
}

// VerifyCredentials returns the account the access token belongs to.
func (c *Client) VerifyCredentials(ctx context.Context) (*fedi.Account, error) {
	var acc fedi.Account
	_, err := c.get(ctx, c.BaseURL+VerifyCredentialsURL, &acc)
	if err != nil {
		return nil, err
	}

	return &acc, nil
}

func (c *Client) Followers(ctx context.Context, id string) ([]fedi.Account, error) {
	return c.drain(ctx, fmt.Sprintf("%s%s/%s/followers?limit=%d", c.BaseURL, AccountsURL, id, pageLimit))
}

func (c *Client) Following(ctx context.Context, id string) ([]fedi.Account, error) {
	return c.drain(ctx, fmt.Sprintf("%s%s/%s/following?limit=%d", c.BaseURL, AccountsURL, id, pageLimit))
}

// drain follows the Link rel="next" headers until the server runs out of
// pages and returns the concatenated result.
func (c *Client) drain(ctx context.Context, first string) ([]fedi.Account, error) {
	accounts := []fedi.Account{}

	next := first
	for next != "" {
		var page []fedi.Account
		header, err := c.get(ctx, next, &page)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, page...)
		next = nextLink(header)
	}

	return accounts, nil
}

func (c *Client) get(ctx context.Context, url string, v any) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Authorization", "Bearer "+c.token)
	req.Header.Add("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apierr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apierr)
		return nil, apierr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return nil, err
	}

	return resp.Header, nil
}

// nextLink extracts the rel="next" target from a Link header, if any.
func nextLink(header http.Header) string {
	for _, link := range strings.Split(header.Get("Link"), ",") {
		parts := strings.Split(link, ";")
		if len(parts) < 2 {
			continue
		}

		target := strings.Trim(strings.TrimSpace(parts[0]), "<>")
		for _, param := range parts[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return target
			}
		}
	}

	return ""
}
