// Package keycloak is a thin client for the identity-provider admin
// operations this service needs. The provider owns credentials and token
// issuance; locally we only mirror the subject id and email.
package keycloak

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/common/errorz"
)

type Client struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

type Options struct {
	BaseURL      string
	Realm        string
	ClientID     string
	ClientSecret string
}

func NewClient(opts Options) *Client {
	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		realm:        opts.Realm,
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateUser registers the user with the provider and returns the subject id.
func (c *Client) CreateUser(ctx context.Context, email, username, password string) (string, error) {
	token, err := c.adminToken(ctx)
	if err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"email":    email,
		"username": username,
		"enabled":  true,
		"credentials": []map[string]interface{}{
			{"type": "password", "value": password, "temporary": false},
		},
	}
	body, _ := json.Marshal(payload)

	endpoint := fmt.Sprintf("%s/admin/realms/%s/users", c.baseURL, c.realm)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create user request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return "", errorz.ErrDuplicate
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	// Keycloak returns the new subject id in the Location header.
	location := resp.Header.Get("Location")
	parts := strings.Split(location, "/")
	if len(parts) == 0 || location == "" {
		return "", fmt.Errorf("identity provider returned no subject id")
	}
	return parts[len(parts)-1], nil
}

// DeleteUser removes the subject from the provider.
func (c *Client) DeleteUser(ctx context.Context, subjectID string) error {
	endpoint := fmt.Sprintf("%s/admin/realms/%s/users/%s", c.baseURL, c.realm, subjectID)
	return c.adminCall(ctx, http.MethodDelete, endpoint, nil, http.StatusNoContent)
}

// MarkEmailVerified flips the provider-side verified flag after our own code
// check succeeded.
func (c *Client) MarkEmailVerified(ctx context.Context, subjectID string) error {
	endpoint := fmt.Sprintf("%s/admin/realms/%s/users/%s", c.baseURL, c.realm, subjectID)
	return c.adminCall(ctx, http.MethodPut, endpoint, map[string]interface{}{"emailVerified": true}, http.StatusNoContent)
}

func (c *Client) adminCall(ctx context.Context, method, endpoint string, payload interface{}, wantStatus int) error {
	token, err := c.adminToken(ctx)
	if err != nil {
		return err
	}

	var reader *strings.Reader
	if payload != nil {
		body, _ := json.Marshal(payload)
		reader = strings.NewReader(string(body))
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) adminToken(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.baseURL, c.realm)
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	return tokenResp.AccessToken, nil
}
