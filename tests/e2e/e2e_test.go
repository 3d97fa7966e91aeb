// e2e_test.go
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

package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"testing"
	"time"
)

// TestE2EWithFullStack tests the running service over HTTP. It expects the
// stack from cmd/testcontainers (or a deployed instance) and real upstream
// credentials in the environment.
func TestE2EWithFullStack(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	baseURL := os.Getenv("E2E_BASE_URL")
	if baseURL == "" {
		t.Skip("E2E_BASE_URL not set, skipping")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	ctx := context.Background()

	t.Run("Metrics", func(t *testing.T) {
		resp := mustGet(ctx, t, client, baseURL+"/metrics")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200 from /metrics, got %d", resp.StatusCode)
		}
	})

	t.Run("HealthCheck", func(t *testing.T) {
		resp := mustGet(ctx, t, client, baseURL+"/api/health")
		defer resp.Body.Close()

		var result struct {
			Status string `json:"status"`
			Store  string `json:"store"`
		}
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, &result); err != nil {
			t.Fatalf("Failed to decode health response: %v. Body: %s", err, body)
		}
		if result.Status != "healthy" {
			t.Errorf("Expected healthy, got %q (store=%q)", result.Status, result.Store)
		}
	})

	t.Run("AnonymousScenesRejected", func(t *testing.T) {
		resp := mustGet(ctx, t, client, baseURL+"/api/scenes")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Expected 403 without a session, got %d", resp.StatusCode)
		}
	})

	email := os.Getenv("E2E_EMAIL")
	password := os.Getenv("E2E_PASSWORD")
	if email == "" || password == "" {
		t.Log("E2E_EMAIL/E2E_PASSWORD not set, skipping authenticated flows")
		return
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	authed := &http.Client{Timeout: 30 * time.Second, Jar: jar}

	t.Run("LoginAndBrowse", func(t *testing.T) {
		loginBody := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)
		req, _ := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/auth/login", strings.NewReader(loginBody))
		req.Header.Set("Content-Type", "application/json")
		resp, err := authed.Do(req)
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("Expected 200 from login, got %d: %s", resp.StatusCode, body)
		}

		scenesResp := mustGet(ctx, t, authed, baseURL+"/api/scenes")
		defer scenesResp.Body.Close()
		if scenesResp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200 from /api/scenes, got %d", scenesResp.StatusCode)
		}

		var scenes []map[string]interface{}
		body, _ := io.ReadAll(scenesResp.Body)
		if err := json.Unmarshal(body, &scenes); err != nil {
			t.Fatalf("Failed to decode scenes: %v", err)
		}
		t.Logf("Directory holds %d scenes", len(scenes))
	})

	t.Run("Analytics", func(t *testing.T) {
		resp := mustGet(ctx, t, authed, baseURL+"/api/analytics/forecast")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200 from forecast, got %d", resp.StatusCode)
		}

		var result struct {
			History  []map[string]interface{} `json:"history"`
			Forecast []map[string]interface{} `json:"forecast"`
		}
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, &result); err != nil {
			t.Fatalf("Failed to decode forecast: %v", err)
		}
		if len(result.History) < 6 {
			t.Errorf("Expected at least the 6-month window, got %d buckets", len(result.History))
		}
	})
}

func mustGet(ctx context.Context, t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	return resp
}
