// Package identity talks to the external identity service that provisions
// login accounts for imported customers.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// provisionTimeout bounds the wait on the identity service. Provisioning past
// this point is treated as a failure (warning on the import, not a hard stop).
const provisionTimeout = 30 * time.Second

type ProvisionRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	RoleName     string `json:"role_name"`
	AuthProvider string `json:"auth_provider"`
}

type ProvisionResult struct {
	UserID string `json:"user_id"`
}

// Provisioner requests account creation from the identity collaborator.
type Provisioner interface {
	Provision(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error)
}

type httpProvisioner struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPProvisioner(baseURL string) Provisioner {
	return &httpProvisioner{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: provisionTimeout,
		},
	}
}

type provisionResponse struct {
	Success      bool   `json:"success"`
	UserID       string `json:"user_id"`
	ErrorMessage string `json:"error_message"`
}

func (p *httpProvisioner) Provision(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, provisionTimeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, p.baseURL+"/api/v1/accounts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded provisionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if !decoded.Success {
		return nil, fmt.Errorf("identity provisioning rejected: %s", decoded.ErrorMessage)
	}
	return &ProvisionResult{UserID: decoded.UserID}, nil
}
