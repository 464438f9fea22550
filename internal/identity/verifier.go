package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DevUserID is the fixed identity attributed to every request in dev mode.
const DevUserID = "dev-user"

// ErrUnverified is returned when the auth provider rejects a token or
// responds with anything but the canonical verification schema.
var ErrUnverified = errors.New("token could not be verified")

// Verifier resolves a bearer token to a user identifier.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// ProviderVerifier verifies tokens against the auth provider's
// verification endpoint using a server-held secret.
type ProviderVerifier struct {
	verifyURL  string
	secret     string
	httpClient *http.Client
}

// NewProviderVerifier constructs a ProviderVerifier.
func NewProviderVerifier(verifyURL, secret string) (*ProviderVerifier, error) {
	if strings.TrimSpace(verifyURL) == "" {
		return nil, fmt.Errorf("AUTH_VERIFY_URL is required")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("AUTH_SERVER_SECRET is required")
	}
	return &ProviderVerifier{
		verifyURL: verifyURL,
		secret:    secret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// verifyResponse is the canonical verification schema. Any response that
// does not carry a non-empty subject is treated as a provider failure,
// never guessed around.
type verifyResponse struct {
	Sub string `json:"sub"`
}

// Verify exchanges the token for a verified user identifier.
func (v *ProviderVerifier) Verify(ctx context.Context, token string) (string, error) {
	body, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.secret)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: provider status %d", ErrUnverified, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read provider response: %w", err)
	}

	var parsed verifyResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: undecodable provider response", ErrUnverified)
	}
	if strings.TrimSpace(parsed.Sub) == "" {
		return "", fmt.Errorf("%w: provider response missing sub", ErrUnverified)
	}
	return parsed.Sub, nil
}

// DevVerifier bypasses verification and returns the fixed development user.
// It must never be selected outside local development.
type DevVerifier struct{}

// Verify returns DevUserID for any token, including an empty one.
func (DevVerifier) Verify(ctx context.Context, token string) (string, error) {
	_ = ctx
	_ = token
	return DevUserID, nil
}
