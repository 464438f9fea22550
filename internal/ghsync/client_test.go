package ghsync

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobpilot-backend/internal/jobs"
)

func TestPushRejectsMalformedRepoBeforeNetwork(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	for _, repo := range []string{"", "noslash", "a/b/c", "/b", "a/", " / "} {
		err := client.Push(context.Background(), "token", repo, nil)
		if !errors.Is(err, ErrBadRepo) {
			t.Fatalf("repo %q: expected ErrBadRepo, got %v", repo, err)
		}
	}
	if calls != 0 {
		t.Fatalf("expected no network calls for malformed repos, got %d", calls)
	}
}

func TestPushCreatesNewFile(t *testing.T) {
	var putBody map[string]string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/repos/owner/repo/contents/") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			// File does not exist yet.
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		case http.MethodPut:
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&putBody)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected method: %s", r.Method)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	list := []jobs.JobResponse{{ID: "job-1", Title: "Dev"}}
	if err := client.Push(context.Background(), "gh-token", "owner/repo", list); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if gotAuth != "Bearer gh-token" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if _, ok := putBody["sha"]; ok {
		t.Fatalf("sha must be omitted when the file does not exist")
	}
	decoded, err := base64.StdEncoding.DecodeString(putBody["content"])
	if err != nil {
		t.Fatalf("decode content: %v", err)
	}
	var pushed []jobs.JobResponse
	if err := json.Unmarshal(decoded, &pushed); err != nil {
		t.Fatalf("unmarshal content: %v", err)
	}
	if len(pushed) != 1 || pushed[0].ID != "job-1" {
		t.Fatalf("unexpected pushed content: %s", decoded)
	}
}

func TestPushUpdatesExistingFile(t *testing.T) {
	var putBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"sha":"abc123"}`))
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&putBody)
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if err := client.Push(context.Background(), "gh-token", "owner/repo", nil); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if putBody["sha"] != "abc123" {
		t.Fatalf("expected current sha forwarded, got %q", putBody["sha"])
	}
}

func TestPushSurfacesRemoteMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		case http.MethodPut:
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"Invalid request"}`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Push(context.Background(), "gh-token", "owner/repo", nil)
	if err == nil || !strings.Contains(err.Error(), "Invalid request") {
		t.Fatalf("expected remote message in error, got %v", err)
	}
}

func TestCheckAccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/owner/visible" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	ok, err := client.CheckAccess(context.Background(), "token", "owner/visible")
	if err != nil {
		t.Fatalf("CheckAccess: %v", err)
	}
	if !ok {
		t.Fatalf("expected accessible repo")
	}

	ok, err = client.CheckAccess(context.Background(), "token", "owner/hidden")
	if err != nil {
		t.Fatalf("CheckAccess: %v", err)
	}
	if ok {
		t.Fatalf("expected inaccessible repo")
	}

	if _, err := client.CheckAccess(context.Background(), "token", "bad"); !errors.Is(err, ErrBadRepo) {
		t.Fatalf("expected ErrBadRepo, got %v", err)
	}
}
