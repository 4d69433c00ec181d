package email

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestTokenSource(serverURL string) *gmailTokenSource {
	src := newGmailTokenSource("client-id", "client-secret", "refresh-token")
	src.tokenURL = serverURL
	return src
}

func TestTokenRefreshesAndCaches(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "refresh_token" {
			t.Errorf("grant_type = %q", got)
		}
		if got := r.PostForm.Get("refresh_token"); got != "refresh-token" {
			t.Errorf("refresh_token = %q", got)
		}
		fmt.Fprintf(w, `{"access_token":"token-%d","expires_in":3600}`, calls.Load())
	}))
	defer server.Close()

	src := newTestTokenSource(server.URL)

	first, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	second, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	if first != "token-1" || second != "token-1" {
		t.Fatalf("tokens = %q, %q; want cached token-1", first, second)
	}
	if calls.Load() != 1 {
		t.Fatalf("refresh calls = %d, want 1", calls.Load())
	}
}

func TestTokenRefreshesBeforeExpiryMargin(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// expires_in shorter than the safety margin, so the cached token is
		// already considered stale.
		fmt.Fprintf(w, `{"access_token":"token-%d","expires_in":60}`, calls.Load())
	}))
	defer server.Close()

	src := newTestTokenSource(server.URL)

	if _, err := src.Token(context.Background()); err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	token, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	if token != "token-2" {
		t.Fatalf("token = %q, want fresh token-2", token)
	}
	if calls.Load() != 2 {
		t.Fatalf("refresh calls = %d, want 2", calls.Load())
	}
}

func TestTokenConcurrentCallersRefreshOnce(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		fmt.Fprint(w, `{"access_token":"shared-token","expires_in":3600}`)
	}))
	defer server.Close()

	src := newTestTokenSource(server.URL)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := src.Token(context.Background())
			if err != nil {
				t.Errorf("Token failed: %v", err)
				return
			}
			if token != "shared-token" {
				t.Errorf("token = %q", token)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("refresh calls = %d, want 1", calls.Load())
	}
}

func TestTokenSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_grant", http.StatusBadRequest)
	}))
	defer server.Close()

	src := newTestTokenSource(server.URL)
	if _, err := src.Token(context.Background()); err == nil {
		t.Fatal("want error on non-200 token response")
	}
}
