package blob

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), Options{
		Bucket:     "scenedir-test",
		Region:     "us-east-1",
		Endpoint:   "http://127.0.0.1:19000",
		AccessKey:  "test",
		SecretKey:  "testsecret",
		PresignTTL: 10 * time.Minute,
	})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}

func TestBuildKey(t *testing.T) {
	key := BuildKey("Campus", "L1", "lobby photo.JPG")
	if !strings.HasPrefix(key, "Campus/L1/") {
		t.Errorf("Expected Campus/L1/ prefix, got %q", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("Expected lowercased extension, got %q", key)
	}

	// two keys for the same inputs never collide
	if BuildKey("Campus", "L1", "a.png") == BuildKey("Campus", "L1", "a.png") {
		t.Error("Keys must be unique per upload")
	}
}

func TestBuildKeyUnassignedSegments(t *testing.T) {
	key := BuildKey("", "  ", "x.png")
	if !strings.HasPrefix(key, "Unassigned/Unassigned/") {
		t.Errorf("Expected Unassigned segments, got %q", key)
	}

	// slashes in a segment must not create extra path levels
	key = BuildKey("East/Wing", "L1", "x.png")
	if !strings.HasPrefix(key, "East-Wing/L1/") {
		t.Errorf("Expected slash replaced, got %q", key)
	}
}

func TestTryParseKey(t *testing.T) {
	s := newTestStore(t)

	key := "Campus/L1/abc.jpg"
	url := "http://127.0.0.1:19000/scenedir-test/" + key

	parsed, ok := s.TryParseKey(url)
	if !ok || parsed != key {
		t.Errorf("Expected %q, got %q (ok=%v)", key, parsed, ok)
	}

	if _, ok := s.TryParseKey("https://elsewhere.example.com/x.jpg"); ok {
		t.Error("Foreign URL must not parse")
	}
	if _, ok := s.TryParseKey("http://127.0.0.1:19000/scenedir-test/"); ok {
		t.Error("Base URL with empty key must not parse")
	}
}

func TestGuessContentType(t *testing.T) {
	cases := map[string]string{
		"a/b.jpg":  "image/jpeg",
		"a/b.JPEG": "image/jpeg",
		"a/b.png":  "image/png",
		"a/b.webp": "image/webp",
		"a/b.bin":  "application/octet-stream",
		"a/b":      "application/octet-stream",
	}
	for key, expected := range cases {
		if got := guessContentType(key); got != expected {
			t.Errorf("guessContentType(%q) = %q, expected %q", key, got, expected)
		}
	}
}
