// Package catalog implements course search against an external catalog
// API with an OAuth2 client-credentials token cache, response
// normalization into the canonical course record, and a deterministic
// mock-data fallback.
//
// Every upstream failure in this package is soft: callers receive an
// "unavailable" signal and switch to mock data, never an error.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/openlecture/vorlesung/pkg/debug"
	"github.com/openlecture/vorlesung/pkg/observability"
)

// tokenSafetyMargin is subtracted from the advertised token lifetime so
// a token is refreshed before it actually expires upstream.
const tokenSafetyMargin = 300 * time.Second

// tokenSource caches an OAuth2 client-credentials bearer token for the
// catalog API. Without configured credentials it is permanently
// unavailable and the server runs in mock mode.
//
// Unlike the single-threaded original, concurrent requests here can race
// on a cold cache, so the refresh path holds a mutex. A duplicate
// exchange would be harmless but the lock also keeps token/expiry writes
// coherent.
type tokenSource struct {
	apiBase string
	key     string
	secret  string
	client  *http.Client

	mu     sync.Mutex
	token  string
	expiry time.Time

	// nowFunc is replaceable in tests.
	nowFunc func() time.Time
}

func newTokenSource(apiBase, key, secret string, client *http.Client) *tokenSource {
	return &tokenSource{
		apiBase: strings.TrimRight(apiBase, "/"),
		key:     key,
		secret:  secret,
		client:  client,
		nowFunc: time.Now,
	}
}

// Token returns a valid bearer token, or ok=false when none can be
// obtained. A false return means "use mock data", never an error.
func (ts *tokenSource) Token(ctx context.Context) (string, bool) {
	if ts.key == "" || ts.secret == "" {
		return "", false
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && ts.nowFunc().Before(ts.expiry) {
		return ts.token, true
	}

	token, expiresIn, err := ts.exchange(ctx)
	if err != nil {
		observability.TokenRefreshTotal.WithLabelValues("error").Inc()
		debug.Log("catalog", "token exchange failed", "error", err)
		return "", false
	}

	observability.TokenRefreshTotal.WithLabelValues("ok").Inc()
	ts.token = token
	ts.expiry = ts.nowFunc().Add(time.Duration(expiresIn)*time.Second - tokenSafetyMargin)
	debug.Log("catalog", "token refreshed", "expires_in", expiresIn)
	return ts.token, true
}

// exchange performs one client-credentials grant against the catalog's
// token endpoint using HTTP Basic auth.
func (ts *tokenSource) exchange(ctx context.Context) (string, int, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	endpoint := ts.apiBase + "/oauth2/client_credentials/token"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.SetBasicAuth(ts.key, ts.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", 0, fmt.Errorf("decoding token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", 0, fmt.Errorf("token response has no access_token")
	}
	return payload.AccessToken, payload.ExpiresIn, nil
}
