// fakestore.go
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

package helpers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// RecordedRequest is one call the fake document store received.
type RecordedRequest struct {
	Method string
	Path   string // store path, without the .json suffix
	Auth   string // auth query parameter
	Body   string
}

// FakeStore is an in-process stand-in for the path-addressed document store.
// Documents are preloaded per path; every request is recorded for assertions.
type FakeStore struct {
	mu        sync.Mutex
	documents map[string]string
	requests  []RecordedRequest
	failAll   bool

	Server *httptest.Server
}

// NewFakeStore starts a fake document store.
func NewFakeStore() *FakeStore {
	fs := &FakeStore{documents: map[string]string{}}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	return fs
}

// URL returns the fake store's base URL.
func (fs *FakeStore) URL() string {
	return fs.Server.URL
}

// Close shuts the fake store down.
func (fs *FakeStore) Close() {
	fs.Server.Close()
}

// SetDocument preloads the JSON document served at path.
func (fs *FakeStore) SetDocument(path, doc string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.documents[strings.Trim(path, "/")] = doc
}

// FailAll makes every subsequent request answer 500.
func (fs *FakeStore) FailAll(fail bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.failAll = fail
}

// Requests returns a copy of everything received so far.
func (fs *FakeStore) Requests() []RecordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]RecordedRequest, len(fs.requests))
	copy(out, fs.requests)
	return out
}

// LastRequest returns the most recent request, or nil when none arrived.
func (fs *FakeStore) LastRequest() *RecordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.requests) == 0 {
		return nil
	}
	last := fs.requests[len(fs.requests)-1]
	return &last
}

func (fs *FakeStore) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.Trim(strings.TrimSuffix(r.URL.Path, ".json"), "/")

	fs.mu.Lock()
	fs.requests = append(fs.requests, RecordedRequest{
		Method: r.Method,
		Path:   path,
		Auth:   r.URL.Query().Get("auth"),
		Body:   string(body),
	})
	failing := fs.failAll
	doc, found := fs.documents[path]
	fs.mu.Unlock()

	if failing {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		if !found {
			// an absent node is the literal null, not a 404
			_, _ = w.Write([]byte("null"))
			return
		}
		_, _ = w.Write([]byte(doc))
	case http.MethodPatch, http.MethodPut:
		fs.mu.Lock()
		fs.documents[path] = string(body)
		fs.mu.Unlock()
		_, _ = w.Write(body)
	case http.MethodDelete:
		fs.mu.Lock()
		delete(fs.documents, path)
		fs.mu.Unlock()
		_, _ = w.Write([]byte("null"))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
