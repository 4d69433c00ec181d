package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const googleTokenURL = "https://oauth2.googleapis.com/token"

// expiryMargin refreshes the token before Google's reported expiry so a
// token never goes stale mid-send.
const expiryMargin = 5 * time.Minute

// gmailTokenSource exchanges a long-lived refresh token for short-lived
// access tokens and caches them process-wide. Readers check the cached
// expiry without holding the lock long; only an expired cache contends on
// the refresh path, and the expiry is re-checked under the lock so
// concurrent callers trigger a single refresh.
type gmailTokenSource struct {
	clientID     string
	clientSecret string
	refreshToken string
	tokenURL     string
	httpClient   *http.Client

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
}

func newGmailTokenSource(clientID, clientSecret, refreshToken string) *gmailTokenSource {
	return &gmailTokenSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		tokenURL:     googleTokenURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Token returns a valid access token, refreshing it when the cached one is
// within the expiry margin.
func (s *gmailTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	if token, ok := s.cached(); ok {
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if token, ok := s.cached(); ok {
		return token, nil
	}

	token, expiresIn, err := s.refresh(ctx)
	if err != nil {
		return "", err
	}

	s.accessToken = token
	s.expiresAt = time.Now().Add(time.Duration(expiresIn)*time.Second - expiryMargin)
	return s.accessToken, nil
}

func (s *gmailTokenSource) cached() (string, bool) {
	if s.accessToken != "" && time.Now().Before(s.expiresAt) {
		return s.accessToken, true
	}
	return "", false
}

func (s *gmailTokenSource) refresh(ctx context.Context) (string, int64, error) {
	form := url.Values{
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"refresh_token": {s.refreshToken},
		"grant_type":    {"refresh_token"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("gmail token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("gmail token refresh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("gmail token refresh: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", 0, fmt.Errorf("gmail token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", 0, fmt.Errorf("gmail token response: empty access token")
	}

	return payload.AccessToken, payload.ExpiresIn, nil
}
