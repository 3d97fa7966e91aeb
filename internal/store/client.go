// client.go
//
// A scalable, high performance scene directory and analytics service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of scenedir.
// scenedir is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// scenedir is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with scenedir.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

// ErrUpstream marks any failure to reach the document store or a non-2xx
// answer from it. Read paths degrade to defaults on it, write paths report
// a boolean failure.
var ErrUpstream = errors.New("document store unavailable")

// Client talks to a path-addressed JSON document store over HTTPS.
// Documents live at {base}/{path}.json with the per-session credential
// attached as an auth query parameter.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewClient creates a store client with a bounded per-call timeout.
// Reads are routed through a circuit breaker so a dead upstream fails fast
// instead of stacking timed-out requests under dashboard load.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:     "document-store",
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return c
}

// BaseURL returns the configured store base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) docURL(path, token string) string {
	return fmt.Sprintf("%s/%s.json?auth=%s", c.baseURL, strings.Trim(path, "/"), url.QueryEscape(token))
}

// Get fetches the document or subtree at path. The raw JSON body is returned;
// an absent node comes back as the literal "null", which callers treat as empty.
func (c *Client) Get(ctx context.Context, token, path string) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.docURL(path, token), nil)
		if err != nil {
			return nil, err
		}
		res, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode > 299 {
			return nil, fmt.Errorf("%w: GET %s: %s", ErrUpstream, path, res.Status)
		}
		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return body, nil
	})
}

// Patch issues a partial merge at path. Only the fields present in patch are
// written; everything else on the node is left untouched by the store.
func (c *Client) Patch(ctx context.Context, token, path string, patch any) error {
	return c.write(ctx, "PATCH", token, path, patch)
}

// Put writes a full document at path, replacing whatever was there.
func (c *Client) Put(ctx context.Context, token, path string, doc any) error {
	return c.write(ctx, http.MethodPut, token, path, doc)
}

// Delete removes the node at path.
func (c *Client) Delete(ctx context.Context, token, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.docURL(path, token), nil)
	if err != nil {
		return err
	}
	return c.send(req)
}

func (c *Client) write(ctx context.Context, method, token, path string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.docURL(path, token), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req)
}

func (c *Client) send(req *http.Request) error {
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: %s", ErrUpstream, req.Method, req.URL.Path, res.Status)
	}
	return nil
}

// IsNull reports whether a store response body denotes an absent node.
func IsNull(body []byte) bool {
	s := strings.TrimSpace(string(body))
	return s == "" || strings.EqualFold(s, "null")
}
