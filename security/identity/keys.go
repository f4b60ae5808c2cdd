package identity

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// DefaultCertURL publishes the Firebase ID token signing certificates.
const DefaultCertURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

const (
	defaultKeyTTL = time.Hour
	// minForcedRefresh bounds refetches triggered by an unknown kid while the set is fresh.
	minForcedRefresh = time.Minute
	refreshTimeout   = 10 * time.Second
)

var errUnknownKid = errors.New("no signing key for kid")

// keySet caches the issuer's public keys by kid until the endpoint's max-age lapses.
type keySet struct {
	url    string
	client *http.Client
	now    func() time.Time

	mu     sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiry    time.Time
	fetchedAt time.Time

	group singleflight.Group
}

func newKeySet(url string, client *http.Client) *keySet {
	if url == "" {
		url = DefaultCertURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &keySet{url: url, client: client, now: time.Now}
}

// key returns the public key for kid. The set is refreshed when stale, or when
// kid is unknown and the last fetch is older than minForcedRefresh.
func (s *keySet) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	s.mu.RLock()
	k, ok := s.keys[kid]
	now := s.now()
	fresh := now.Before(s.expiry)
	recent := now.Sub(s.fetchedAt) < minForcedRefresh
	s.mu.RUnlock()
	if ok && fresh {
		return k, nil
	}
	if fresh && recent {
		return nil, fmt.Errorf("%w %q", errUnknownKid, kid)
	}

	// shared by every waiting caller; not cancelled with the triggering request
	if _, err, _ := s.group.Do("refresh", func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return nil, s.refresh(rctx)
	}); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if k, ok = s.keys[kid]; !ok {
		return nil, fmt.Errorf("%w %q", errUnknownKid, kid)
	}
	return k, nil
}

func (s *keySet) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build key request: %w", err)
	}
	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch signing keys: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch signing keys: status %d", res.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(res.Body).Decode(&certs); err != nil {
		return fmt.Errorf("failed to decode signing keys: %w", err)
	}
	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pem := range certs {
		pub, err := jwtstd.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return fmt.Errorf("failed to parse signing key %s: %w", kid, err)
		}
		keys[kid] = pub
	}

	s.mu.Lock()
	s.keys = keys
	s.fetchedAt = s.now()
	s.expiry = s.fetchedAt.Add(maxAge(res.Header.Get("Cache-Control")))
	s.mu.Unlock()
	return nil
}

// maxAge reads max-age from a Cache-Control header.
func maxAge(header string) time.Duration {
	for _, directive := range strings.Split(header, ",") {
		directive = strings.TrimSpace(directive)
		if v, ok := strings.CutPrefix(directive, "max-age="); ok {
			if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}
	return defaultKeyTTL
}
