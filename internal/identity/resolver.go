package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/shared"
)

// ErrTokenRejected marks tokens the identity provider refused.
var ErrTokenRejected = errors.New("identity: token rejected")

// Resolver turns a bearer token into an authenticated user.
type Resolver interface {
	Resolve(ctx context.Context, token string) (shared.User, error)
}

// HTTPResolver validates tokens against an external userinfo endpoint.
// Authentication itself lives outside this service; we only consume its
// verdict.
type HTTPResolver struct {
	endpoint string
	client   *http.Client
}

// NewHTTPResolver builds a resolver for the given userinfo URL.
func NewHTTPResolver(endpoint string, timeout time.Duration) *HTTPResolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPResolver{endpoint: endpoint, client: &http.Client{Timeout: timeout}}
}

type userinfoResponse struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

// Resolve calls the userinfo endpoint with the token and maps the subject
// claim onto a user.
func (r *HTTPResolver) Resolve(ctx context.Context, token string) (shared.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return shared.User{}, fmt.Errorf("identity: build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.client.Do(req)
	if err != nil {
		return shared.User{}, fmt.Errorf("identity: userinfo request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return shared.User{}, ErrTokenRejected
	case resp.StatusCode != http.StatusOK:
		return shared.User{}, fmt.Errorf("identity: userinfo returned %d", resp.StatusCode)
	}

	var body userinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return shared.User{}, fmt.Errorf("identity: decode userinfo: %w", err)
	}
	id, err := uuid.Parse(body.Sub)
	if err != nil {
		return shared.User{}, fmt.Errorf("identity: userinfo subject is not a uuid: %w", err)
	}
	return shared.User{ID: id, Email: body.Email}, nil
}
