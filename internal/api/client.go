// Package api is a minimal client for the engine cloud API. The only call
// this tool needs is listing the organizations the authenticated user
// belongs to, used to turn an organization name into an id.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	lerrors "github.com/tradeops/leanctl/internal/errors"
)

const defaultBaseURL = "https://www.quantconnect.com/api/v2"

// Organization is one organization the user is a member of.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client talks to the cloud API. The organization list is fetched at most
// once per client; construct one client per command invocation so results
// never leak across invocations.
type Client struct {
	baseURL string
	userID  string
	token   string
	http    *http.Client

	orgs    []Organization
	fetched bool
}

// NewClient creates an API client authenticated with the given credentials.
func NewClient(userID, token string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		userID:  userID,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURL is NewClient against a non-default endpoint,
// primarily for tests.
func NewClientWithBaseURL(baseURL, userID, token string) *Client {
	c := NewClient(userID, token)
	c.baseURL = baseURL
	return c
}

// Organizations returns all organizations the user is a member of. The list
// is fetched once and cached for the lifetime of the client.
func (c *Client) Organizations(ctx context.Context) ([]Organization, error) {
	if c.fetched {
		return c.orgs, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/organizations/read", nil)
	if err != nil {
		return nil, fmt.Errorf("build organizations request: %w", err)
	}
	req.SetBasicAuth(c.userID, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, lerrors.Wrap(err, lerrors.CategoryAPI, "organizations", "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, lerrors.New(lerrors.CategoryAPI, "organizations",
			fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	var payload struct {
		Organizations []Organization `json:"organizations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, lerrors.Wrap(err, lerrors.CategoryAPI, "organizations", "decode response")
	}

	c.orgs = payload.Organizations
	c.fetched = true
	return c.orgs, nil
}

// ResolveOrganization converts an organization name or id given by the user
// to an organization id. Repeated calls reuse the cached organization list.
func (c *Client) ResolveOrganization(ctx context.Context, nameOrID string) (string, error) {
	orgs, err := c.Organizations(ctx)
	if err != nil {
		return "", err
	}
	for _, org := range orgs {
		if org.ID == nameOrID || org.Name == nameOrID {
			return org.ID, nil
		}
	}
	return "", &lerrors.OrganizationNotFoundError{Input: nameOrID}
}
