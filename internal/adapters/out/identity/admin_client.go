// Package identity talks to the external identity provider: an admin API
// client for managing logins and a verifier for the bearer tokens it issues.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

const dependency = "identity provider"

// AdminClient calls the provider's admin endpoints with the service key.
type AdminClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewAdminClient(baseURL, serviceKey string, timeout time.Duration) *AdminClient {
	return &AdminClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type createUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

type createUserResponse struct {
	ID string `json:"id"`
}

// CreateIdentity registers a confirmed login. An email that is already
// registered yields a ConflictError.
func (c *AdminClient) CreateIdentity(ctx context.Context, email, password string) (kernel.UUID, error) {
	body, err := json.Marshal(createUserRequest{Email: email, Password: password, EmailConfirm: true})
	if err != nil {
		return kernel.UUID{}, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/admin/users", body)
	if err != nil {
		return kernel.UUID{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		return kernel.UUID{}, errs.NewConflictError("email", email)
	case resp.StatusCode >= http.StatusBadRequest:
		return kernel.UUID{}, statusError(resp)
	}

	var created createUserResponse
	if err = json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return kernel.UUID{}, errs.NewStoreUnavailableError(dependency, fmt.Errorf("decode response: %w", err))
	}
	return kernel.UUIDFromString(created.ID)
}

// DeleteIdentity removes a login. Deleting an unknown id succeeds.
func (c *AdminClient) DeleteIdentity(ctx context.Context, id kernel.UUID) error {
	resp, err := c.do(ctx, http.MethodDelete, "/admin/users/"+id.String(), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusNotFound {
		return statusError(resp)
	}
	return nil
}

func (c *AdminClient) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, errs.NewTimeoutError(dependency, err)
		}
		return nil, errs.WrapDependency(dependency, err)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return errs.NewStoreUnavailableError(dependency,
		fmt.Errorf("%s %s: %d %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, bytes.TrimSpace(msg)))
}
