package ghsync

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"jobpilot-backend/internal/jobs"
)

// SyncPath is the fixed path the job list is committed to.
const SyncPath = "jobpilot/jobs.json"

// ErrBadRepo indicates the repository string is not "owner/repo".
var ErrBadRepo = errors.New(`repository must be "owner/repo"`)

// Client talks to the GitHub contents API.
type Client struct {
	baseURL string
}

// NewClient constructs a Client. baseURL is the API root, overridable
// for tests.
func NewClient(baseURL string) *Client {
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Push serializes the job list as indented JSON and commits it to the
// target repository, updating in place when the file already exists.
func (c *Client) Push(ctx context.Context, token, repo string, list []jobs.JobResponse) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}

	content, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize jobs: %w", err)
	}

	httpClient := c.httpClient(ctx, token)
	contentsURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, name, SyncPath)

	// The contents API needs the current blob sha to update rather than
	// create; a missing file is fine.
	sha, err := c.currentSHA(ctx, httpClient, contentsURL)
	if err != nil {
		return err
	}

	payload := map[string]string{
		"message": fmt.Sprintf("Sync jobs %s", time.Now().UTC().Format(time.RFC3339)),
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if sha != "" {
		payload["sha"] = sha
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, contentsURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("github: %s", remoteMessage(resp))
	}
	return nil
}

// CheckAccess reports whether the repository metadata is reachable with
// the given credential.
func (c *Client) CheckAccess(ctx context.Context, token, repo string) (bool, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, name), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient(ctx, token).Do(req)
	if err != nil {
		return false, fmt.Errorf("github unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

func (c *Client) httpClient(ctx context.Context, token string) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(ctx, src)
	client.Timeout = 30 * time.Second
	return client
}

func (c *Client) currentSHA(ctx context.Context, httpClient *http.Client, contentsURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, contentsURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("github unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("github: %s", remoteMessage(resp))
	}

	var parsed struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode contents response: %w", err)
	}
	return parsed.SHA, nil
}

func remoteMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var parsed struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &parsed) == nil && parsed.Message != "" {
			return parsed.Message
		}
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

func splitRepo(repo string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(repo), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrBadRepo
	}
	return parts[0], parts[1], nil
}
