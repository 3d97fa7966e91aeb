package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Credentials is what the identity provider hands back after a successful
// email/password exchange. IDToken is the per-session credential every
// document store call attaches.
type Credentials struct {
	IDToken string `json:"idToken"`
	UID     string `json:"localId"`
	Email   string `json:"email"`
}

// AuthClient authenticates email/password pairs against an
// Identity-Toolkit-style REST endpoint.
type AuthClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewAuthClient creates an identity provider client.
func NewAuthClient(baseURL, apiKey string, timeout time.Duration) *AuthClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// SignIn exchanges email/password for session credentials.
func (a *AuthClient) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	return a.exchange(ctx, "accounts:signInWithPassword", email, password)
}

// SignUp registers a new account and returns its credentials.
func (a *AuthClient) SignUp(ctx context.Context, email, password string) (*Credentials, error) {
	return a.exchange(ctx, "accounts:signUp", email, password)
}

func (a *AuthClient) exchange(ctx context.Context, op, email, password string) (*Credentials, error) {
	payload := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", a.baseURL, op, url.QueryEscape(a.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%s", friendlyAuthError(resBody))
	}

	var creds Credentials
	if err := json.Unmarshal(resBody, &creds); err != nil {
		return nil, fmt.Errorf("%w: malformed identity response: %v", ErrUpstream, err)
	}
	if creds.IDToken == "" || creds.UID == "" {
		return nil, fmt.Errorf("%w: identity response missing credentials", ErrUpstream)
	}
	return &creds, nil
}

// friendlyAuthError maps the identity provider's error codes to messages
// suitable for a login form.
func friendlyAuthError(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "Invalid email or password. Please try again!"
	}

	switch {
	case parsed.Error.Message == "EMAIL_NOT_FOUND":
		return "Email not found."
	case parsed.Error.Message == "INVALID_EMAIL":
		return "Invalid email format."
	case parsed.Error.Message == "INVALID_PASSWORD":
		return "Incorrect password."
	case strings.HasPrefix(parsed.Error.Message, "EMAIL_EXISTS"):
		return "This email is already in use."
	default:
		return "Invalid email or password. Please try again!"
	}
}
